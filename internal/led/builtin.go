package led

// Names of the sequences every manager starts with.
const (
	WarningSequence = "Warning"
	ErrorSequence   = "Error"
)

// Builtins returns the default sequences keyed by name.
//
// Warning flashes three times and then pauses. Error flashes slowly.
func Builtins() map[string]*Sequence {
	return map[string]*Sequence{
		WarningSequence: MustSequence(
			Step{State: On, Delay: Shorter},
			Step{State: Off, Delay: Shorter},
			Step{State: On, Delay: Shorter},
			Step{State: Off, Delay: Shorter},
			Step{State: On, Delay: Shorter},
			Step{State: Off, Delay: Longer},
		),
		ErrorSequence: MustSequence(
			Step{State: On, Delay: Long},
			Step{State: Off, Delay: Long},
		),
	}
}

// RegisterBuiltins adds the default sequences to the manager.
func RegisterBuiltins(m *Manager) {
	for name, seq := range Builtins() {
		// Builtins are always valid.
		_ = m.Add(name, seq)
	}
}
