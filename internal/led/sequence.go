package led

import (
	"fmt"
	"iter"
	"time"
)

// Step is a single state of a sequence and how long the LED holds it.
type Step struct {
	State State
	Delay time.Duration
}

// Sequence is an immutable, ordered, non-empty list of steps.
type Sequence struct {
	steps []Step
}

// NewSequence creates a sequence from one or more steps.
func NewSequence(steps ...Step) (*Sequence, error) {
	if len(steps) == 0 {
		return nil, NewError(ErrCodeInvalidArgument, "sequence requires at least one step", nil)
	}
	for i, step := range steps {
		if step.Delay < 0 {
			return nil, NewError(ErrCodeInvalidArgument,
				fmt.Sprintf("step %d has negative delay %s", i, step.Delay), nil)
		}
		if step.State != On && step.State != Off {
			return nil, NewError(ErrCodeInvalidArgument,
				fmt.Sprintf("step %d has invalid state %d", i, int(step.State)), nil)
		}
	}

	owned := make([]Step, len(steps))
	copy(owned, steps)
	return &Sequence{steps: owned}, nil
}

// MustSequence is like NewSequence but panics on invalid input.
func MustSequence(steps ...Step) *Sequence {
	seq, err := NewSequence(steps...)
	if err != nil {
		panic(err)
	}
	return seq
}

// Len returns the number of steps.
func (s *Sequence) Len() int {
	return len(s.steps)
}

// At returns the step at index i.
func (s *Sequence) At(i int) Step {
	return s.steps[i]
}

// All iterates the steps in order.
func (s *Sequence) All() iter.Seq2[int, Step] {
	return func(yield func(int, Step) bool) {
		for i, step := range s.steps {
			if !yield(i, step) {
				return
			}
		}
	}
}

// Steps returns a copy of the steps.
func (s *Sequence) Steps() []Step {
	out := make([]Step, len(s.steps))
	copy(out, s.steps)
	return out
}

// Duration is the time one full pass takes.
func (s *Sequence) Duration() time.Duration {
	var total time.Duration
	for _, step := range s.steps {
		total += step.Delay
	}
	return total
}
