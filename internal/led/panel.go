package led

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Panel is the start/stop front end for a Manager. It owns one cancel
// function per line and allows at most one run per line at a time.
type Panel struct {
	manager *Manager
	logger  *slog.Logger

	mu     sync.Mutex
	active map[Line]*panelRun
}

type panelRun struct {
	run    *Run
	cancel context.CancelFunc
}

// LineStatus is a snapshot of one line's activity.
type LineStatus struct {
	Line      Line
	Running   bool
	RunID     string
	Sequence  string
	Repeat    bool
	Phase     Phase
	StartedAt time.Time
}

// NewPanel creates a panel controlling m.
func NewPanel(m *Manager, logger *slog.Logger) *Panel {
	if logger == nil {
		logger = slog.Default()
	}
	return &Panel{
		manager: m,
		logger:  logger,
		active:  make(map[Line]*panelRun),
	}
}

// Manager returns the underlying manager.
func (p *Panel) Manager() *Manager {
	return p.manager
}

// Start runs the named sequence on line. It fails with ErrUnknownSequence
// before starting anything if name is not registered, and with ErrLineBusy
// while another run on line has not finished draining.
func (p *Panel) Start(name string, line Line, repeat bool) (*Run, error) {
	if !line.valid() {
		return nil, NewError(ErrCodeInvalidArgument, fmt.Sprintf("invalid LED line %d", int(line)), nil)
	}
	if !p.manager.Registry().Contains(name) {
		return nil, unknownSequence(name)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if cur, ok := p.active[line]; ok {
		return nil, NewError(ErrCodeLineBusy,
			fmt.Sprintf("%s line is running sequence %q", line, cur.run.Name()), nil)
	}

	ctx, cancel := context.WithCancel(context.Background())
	run, err := p.manager.Run(ctx, name, line, repeat)
	if err != nil {
		cancel()
		return nil, err
	}

	entry := &panelRun{run: run, cancel: cancel}
	p.active[line] = entry
	go p.release(line, entry)

	p.logger.Debug("Panel started run", "line", line.String(), "sequence", name, "run_id", run.ID())
	return run, nil
}

// Stop cancels the run on line. The returned run finishes once the current
// step delay ends and the line is off.
func (p *Panel) Stop(line Line) (*Run, bool) {
	p.mu.Lock()
	entry, ok := p.active[line]
	p.mu.Unlock()

	if !ok {
		return nil, false
	}
	entry.cancel()
	p.logger.Debug("Panel stopped run", "line", line.String(), "run_id", entry.run.ID())
	return entry.run, true
}

// StopAll cancels every active run and waits for them to drain or ctx to end.
func (p *Panel) StopAll(ctx context.Context) error {
	p.mu.Lock()
	runs := make([]*Run, 0, len(p.active))
	for _, entry := range p.active {
		entry.cancel()
		runs = append(runs, entry.run)
	}
	p.mu.Unlock()

	var errs []error
	for _, run := range runs {
		if err := run.Wait(ctx); err != nil && errors.Is(err, ctx.Err()) {
			errs = append(errs, fmt.Errorf("%s line did not drain: %w", run.Line(), err))
		}
	}
	return errors.Join(errs...)
}

// Running reports whether a run is active on line.
func (p *Panel) Running(line Line) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.active[line]
	return ok
}

// Status returns one entry per line.
func (p *Panel) Status() []LineStatus {
	p.mu.Lock()
	defer p.mu.Unlock()

	statuses := make([]LineStatus, 0, lineCount)
	for _, line := range Lines() {
		status := LineStatus{Line: line, Phase: PhaseIdle}
		if entry, ok := p.active[line]; ok {
			info := entry.run.Info()
			status.Running = true
			status.RunID = info.ID
			status.Sequence = info.Sequence
			status.Repeat = info.Repeat
			status.Phase = entry.run.Phase()
			status.StartedAt = info.StartedAt
		}
		statuses = append(statuses, status)
	}
	return statuses
}

func (p *Panel) release(line Line, entry *panelRun) {
	<-entry.run.Done()
	entry.cancel()

	p.mu.Lock()
	if p.active[line] == entry {
		delete(p.active, line)
	}
	p.mu.Unlock()
}

// SetState writes state to line directly. It fails with ErrLineBusy while a
// run owns the line.
func (p *Panel) SetState(line Line, state State) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if cur, ok := p.active[line]; ok {
		return NewError(ErrCodeLineBusy,
			fmt.Sprintf("%s line is running sequence %q", line, cur.run.Name()), nil)
	}
	return p.manager.SetState(line, state)
}
