package led

import (
	"context"
	"sync/atomic"
	"time"
)

// Phase is the position of a run in its lifecycle.
type Phase int32

const (
	PhaseIdle Phase = iota
	PhasePriming
	PhaseLooping
	PhaseDraining
	PhaseStopped
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePriming:
		return "priming"
	case PhaseLooping:
		return "looping"
	case PhaseDraining:
		return "draining"
	case PhaseStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Run is the handle for one sequence execution started by Manager.Run.
// The caller stops it by cancelling the context it passed in.
type Run struct {
	info  RunInfo
	phase atomic.Int32
	done  chan struct{}

	// set before done is closed
	outcome Outcome
	err     error
}

func newRun(info RunInfo) *Run {
	return &Run{
		info: info,
		done: make(chan struct{}),
	}
}

// ID returns the unique run identifier.
func (r *Run) ID() string { return r.info.ID }

// Name returns the sequence name.
func (r *Run) Name() string { return r.info.Sequence }

// Line returns the line the run drives.
func (r *Run) Line() Line { return r.info.Line }

// Repeat reports whether the run loops until cancelled.
func (r *Run) Repeat() bool { return r.info.Repeat }

// StartedAt returns when the run was accepted.
func (r *Run) StartedAt() time.Time { return r.info.StartedAt }

// Info returns the run description.
func (r *Run) Info() RunInfo { return r.info }

// Phase returns the current lifecycle phase.
func (r *Run) Phase() Phase {
	return Phase(r.phase.Load())
}

func (r *Run) setPhase(p Phase) {
	r.phase.Store(int32(p))
}

// Done is closed once the line has been turned off and the run is over.
func (r *Run) Done() <-chan struct{} {
	return r.done
}

// Err returns the run error. It is nil while the run is active.
func (r *Run) Err() error {
	select {
	case <-r.done:
		return r.err
	default:
		return nil
	}
}

// Outcome returns how the run ended, or "" while it is active.
func (r *Run) Outcome() Outcome {
	select {
	case <-r.done:
		return r.outcome
	default:
		return ""
	}
}

// Wait blocks until the run finishes or ctx is done.
func (r *Run) Wait(ctx context.Context) error {
	select {
	case <-r.done:
		return r.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Run) finish(outcome Outcome, err error) {
	r.outcome = outcome
	r.err = err
	r.setPhase(PhaseStopped)
}
