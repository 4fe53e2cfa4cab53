package led

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestPanel(t *testing.T) (*Panel, *recordingOutput, *recordingOutput) {
	t.Helper()
	primary := &recordingOutput{name: "primary"}
	secondary := &recordingOutput{name: "secondary"}
	m := NewManager(primary, secondary, WithLogger(discardLogger()))
	if err := m.Add("tick", MustSequence(
		Step{State: On, Delay: 2 * time.Millisecond},
		Step{State: Off, Delay: 2 * time.Millisecond},
	)); err != nil {
		t.Fatal(err)
	}
	return NewPanel(m, discardLogger()), primary, secondary
}

func waitIdle(t *testing.T, p *Panel, line Line) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for p.Running(line) {
		if time.Now().After(deadline) {
			t.Fatalf("%s line still running", line)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestPanel_StartStop(t *testing.T) {
	p, primary, _ := newTestPanel(t)

	run, err := p.Start("tick", Primary, true)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !p.Running(Primary) {
		t.Error("Running(primary) = false after Start")
	}
	if run.StartedAt().IsZero() || run.Name() != "tick" || run.Line() != Primary || !run.Repeat() {
		t.Errorf("run = %+v", run.Info())
	}

	stopped, ok := p.Stop(Primary)
	if !ok || stopped != run {
		t.Fatalf("Stop() = %v, %v", stopped, ok)
	}
	if err := waitRun(t, run); err != nil {
		t.Fatalf("run error = %v", err)
	}
	waitIdle(t, p, Primary)

	if high, _ := primary.last(); high {
		t.Error("primary line not off after Stop")
	}
	if run.Outcome() != OutcomeCancelled {
		t.Errorf("Outcome() = %q", run.Outcome())
	}

	if _, ok := p.Stop(Primary); ok {
		t.Error("Stop() on idle line reported a run")
	}
}

func TestPanel_RejectsSecondRunOnSameLine(t *testing.T) {
	p, _, _ := newTestPanel(t)

	if _, err := p.Start("tick", Secondary, true); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer p.StopAll(context.Background())

	if _, err := p.Start("tick", Secondary, true); !errors.Is(err, ErrLineBusy) {
		t.Errorf("second Start() error = %v, want ErrLineBusy", err)
	}

	// The other line is independent.
	if _, err := p.Start("tick", Primary, true); err != nil {
		t.Errorf("Start(primary) error = %v", err)
	}
}

func TestPanel_UnknownSequence(t *testing.T) {
	p, primary, _ := newTestPanel(t)

	if _, err := p.Start("ghost", Primary, true); !errors.Is(err, ErrUnknownSequence) {
		t.Errorf("Start() error = %v, want ErrUnknownSequence", err)
	}
	if p.Running(Primary) {
		t.Error("unknown sequence left the line marked running")
	}
	if got := primary.states(); len(got) != 0 {
		t.Errorf("writes = %v, want none", got)
	}
}

func TestPanel_OnceReleasesLine(t *testing.T) {
	p, _, _ := newTestPanel(t)

	run, err := p.Start("tick", Primary, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := waitRun(t, run); err != nil {
		t.Fatal(err)
	}
	waitIdle(t, p, Primary)

	if _, err := p.Start("tick", Primary, false); err != nil {
		t.Errorf("Start() after completion error = %v", err)
	}
}

func TestPanel_StatusAndStopAll(t *testing.T) {
	p, primary, secondary := newTestPanel(t)

	run, err := p.Start("tick", Secondary, true)
	if err != nil {
		t.Fatal(err)
	}

	statuses := p.Status()
	if len(statuses) != 2 {
		t.Fatalf("Status() returned %d entries", len(statuses))
	}
	if statuses[0].Line != Primary || statuses[0].Running {
		t.Errorf("primary status = %+v", statuses[0])
	}
	sec := statuses[1]
	if !sec.Running || sec.Sequence != "tick" || sec.RunID != run.ID() || !sec.Repeat {
		t.Errorf("secondary status = %+v", sec)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := p.StopAll(ctx); err != nil {
		t.Fatalf("StopAll() error = %v", err)
	}
	waitIdle(t, p, Secondary)

	if high, _ := secondary.last(); high {
		t.Error("secondary line not off after StopAll")
	}
	if got := primary.states(); len(got) != 0 {
		t.Errorf("primary writes = %v", got)
	}
}

func TestPanel_SetState(t *testing.T) {
	p, primary, secondary := newTestPanel(t)

	if err := p.SetState(Primary, On); err != nil {
		t.Fatalf("SetState() error = %v", err)
	}
	if high, ok := primary.last(); !ok || !high {
		t.Error("primary line not on after SetState")
	}

	run, err := p.Start("tick", Secondary, true)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.SetState(Secondary, On); !errors.Is(err, ErrLineBusy) {
		t.Errorf("SetState() on running line error = %v, want ErrLineBusy", err)
	}

	p.Stop(Secondary)
	if err := waitRun(t, run); err != nil {
		t.Fatal(err)
	}
	waitIdle(t, p, Secondary)

	if err := p.SetState(Secondary, On); err != nil {
		t.Errorf("SetState() after stop error = %v", err)
	}
	if high, _ := secondary.last(); !high {
		t.Error("secondary line not on after SetState")
	}
}
