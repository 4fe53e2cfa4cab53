package led

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Manager owns the sequence registry and both LED outputs, and runs named
// sequences against a line in the background.
type Manager struct {
	registry *Registry
	sleep    func(time.Duration)
	observer Observer
	tracer   trace.Tracer
	logger   *slog.Logger

	mu      sync.RWMutex
	outputs [lineCount]Output
	closed  bool

	runs sync.WaitGroup
}

// Option configures a Manager.
type Option func(*Manager)

// WithSleeper replaces time.Sleep for step delays.
func WithSleeper(sleep func(time.Duration)) Option {
	return func(m *Manager) {
		m.sleep = sleep
	}
}

// WithObserver sets the observer notified about writes and runs.
func WithObserver(o Observer) Option {
	return func(m *Manager) {
		m.observer = o
	}
}

// WithTracer sets the tracer used to record one span per run.
func WithTracer(t trace.Tracer) Option {
	return func(m *Manager) {
		m.tracer = t
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// WithRegistry shares an existing registry.
func WithRegistry(r *Registry) Option {
	return func(m *Manager) {
		m.registry = r
	}
}

// NewManager creates a manager driving primary and secondary. A nil output
// is treated as an absent LED and all writes to it are no-ops.
func NewManager(primary, secondary Output, opts ...Option) *Manager {
	m := &Manager{
		registry: NewRegistry(),
		sleep:    time.Sleep,
		observer: NopObserver{},
		tracer:   tracenoop.NewTracerProvider().Tracer(""),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}

	if primary == nil {
		primary = newNoop(Primary.String(), m.logger)
	}
	if secondary == nil {
		secondary = newNoop(Secondary.String(), m.logger)
	}
	m.outputs[Primary] = primary
	m.outputs[Secondary] = secondary

	return m
}

// NewBoardManager creates a manager for the outputs of a detected board.
func NewBoardManager(b *Board, opts ...Option) *Manager {
	return NewManager(b.Primary, b.Secondary, opts...)
}

// Registry returns the sequence registry.
func (m *Manager) Registry() *Registry {
	return m.registry
}

// Add registers seq under name, replacing any previous entry.
func (m *Manager) Add(name string, seq *Sequence) error {
	if err := m.registry.Add(name, seq); err != nil {
		return err
	}
	m.logger.Debug("Sequence registered", "sequence", name, "steps", seq.Len())
	m.observer.SequenceAdded(name, seq)
	return nil
}

// Sequence looks up a registered sequence.
func (m *Manager) Sequence(name string) (*Sequence, error) {
	return m.registry.Get(name)
}

// SetState writes state to line immediately, bypassing any sequence.
func (m *Manager) SetState(line Line, state State) error {
	if !line.valid() {
		return NewError(ErrCodeInvalidArgument, fmt.Sprintf("invalid LED line %d", int(line)), nil)
	}
	return m.write(line, state)
}

// Run starts the named sequence on line in a new goroutine and returns
// without waiting. The line is forced off before the first step and again
// when the run ends, whatever the reason.
//
// With repeat the sequence loops until ctx is cancelled; cancellation is
// observed between steps, never during a delay. Without repeat the sequence
// runs exactly once and ctx is ignored.
//
// An unknown name is reported through the returned Run, not here.
func (m *Manager) Run(ctx context.Context, name string, line Line, repeat bool) (*Run, error) {
	if ctx == nil {
		return nil, NewError(ErrCodeInvalidArgument, "a cancellation context is required", nil)
	}
	if !line.valid() {
		return nil, NewError(ErrCodeInvalidArgument, fmt.Sprintf("invalid LED line %d", int(line)), nil)
	}

	run := newRun(RunInfo{
		ID:        uuid.NewString(),
		Sequence:  name,
		Line:      line,
		Repeat:    repeat,
		StartedAt: time.Now(),
	})

	m.runs.Add(1)
	go func() {
		defer m.runs.Done()
		m.execute(ctx, run)
	}()

	return run, nil
}

// Wait blocks until every run started so far has finished.
func (m *Manager) Wait() {
	m.runs.Wait()
}

// Close releases both outputs. Later writes, including those of runs still
// in flight, become no-ops. Safe to call more than once.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	outputs := m.outputs
	for _, line := range Lines() {
		m.outputs[line] = newNoop(line.String(), m.logger)
	}
	m.mu.Unlock()

	var errs []error
	for _, out := range outputs {
		if err := out.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	m.logger.Info("LED outputs released")
	return errors.Join(errs...)
}

func (m *Manager) write(line Line, state State) error {
	m.mu.RLock()
	out := m.outputs[line]
	m.mu.RUnlock()

	if err := out.Write(state.High()); err != nil {
		return fmt.Errorf("write %s to %s line: %w", state, line, err)
	}
	m.observer.LineWritten(line, state)
	return nil
}

// execute drives one run through priming, looping and draining.
func (m *Manager) execute(ctx context.Context, run *Run) {
	info := run.info
	logger := m.logger.With("run_id", info.ID, "sequence", info.Sequence, "line", info.Line.String())

	ctx, span := m.tracer.Start(ctx, "led.run", trace.WithAttributes(
		attribute.String("led.run_id", info.ID),
		attribute.String("led.sequence", info.Sequence),
		attribute.String("led.line", info.Line.String()),
		attribute.Bool("led.repeat", info.Repeat),
	))
	defer span.End()

	m.observer.RunStarted(info)
	logger.Info("Sequence run started", "repeat", info.Repeat)

	err := m.loop(ctx, run)

	// The line always ends off, on success and failure alike.
	run.setPhase(PhaseDraining)
	if offErr := m.write(info.Line, Off); offErr != nil {
		if err == nil {
			err = offErr
		} else {
			err = errors.Join(err, offErr)
		}
	}

	outcome := OutcomeCompleted
	switch {
	case err != nil:
		outcome = OutcomeFailed
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Warn("Sequence run failed", "error", err)
	case info.Repeat && ctx.Err() != nil:
		outcome = OutcomeCancelled
		logger.Info("Sequence run cancelled")
	default:
		logger.Info("Sequence run completed")
	}
	span.SetAttributes(attribute.String("led.outcome", string(outcome)))

	run.finish(outcome, err)
	m.observer.RunFinished(info, outcome, err)
	close(run.done)
}

func (m *Manager) loop(ctx context.Context, run *Run) error {
	seq, err := m.registry.Get(run.info.Sequence)
	if err != nil {
		return err
	}
	line := run.info.Line

	run.setPhase(PhasePriming)
	if err := m.write(line, Off); err != nil {
		return err
	}

	run.setPhase(PhaseLooping)
	for {
		for _, step := range seq.All() {
			if run.info.Repeat && ctx.Err() != nil {
				return nil
			}
			if err := m.write(line, step.State); err != nil {
				return err
			}
			m.sleep(step.Delay)
		}
		if !run.info.Repeat {
			return nil
		}
	}
}
