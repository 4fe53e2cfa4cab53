package led

import "time"

// RunInfo describes one sequence run.
type RunInfo struct {
	ID        string
	Sequence  string
	Line      Line
	Repeat    bool
	StartedAt time.Time
}

// Outcome is how a run ended.
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeCancelled Outcome = "cancelled"
	OutcomeFailed    Outcome = "failed"
)

// Observer receives notifications from a Manager. Calls happen on the
// goroutine doing the work and must not block.
type Observer interface {
	SequenceAdded(name string, seq *Sequence)
	LineWritten(line Line, state State)
	RunStarted(info RunInfo)
	RunFinished(info RunInfo, outcome Outcome, err error)
}

// NopObserver ignores every notification. Embed it to implement a subset.
type NopObserver struct{}

func (NopObserver) SequenceAdded(string, *Sequence)     {}
func (NopObserver) LineWritten(Line, State)             {}
func (NopObserver) RunStarted(RunInfo)                  {}
func (NopObserver) RunFinished(RunInfo, Outcome, error) {}

// MultiObserver fans out notifications to multiple observers.
type MultiObserver []Observer

func (m MultiObserver) SequenceAdded(name string, seq *Sequence) {
	for _, o := range m {
		o.SequenceAdded(name, seq)
	}
}

func (m MultiObserver) LineWritten(line Line, state State) {
	for _, o := range m {
		o.LineWritten(line, state)
	}
}

func (m MultiObserver) RunStarted(info RunInfo) {
	for _, o := range m {
		o.RunStarted(info)
	}
}

func (m MultiObserver) RunFinished(info RunInfo, outcome Outcome, err error) {
	for _, o := range m {
		o.RunFinished(info, outcome, err)
	}
}
