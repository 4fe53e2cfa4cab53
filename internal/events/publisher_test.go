package events

import (
	"errors"
	"testing"
	"time"

	"github.com/smazurov/ledseq/internal/led"
)

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		var zero T
		t.Fatalf("timeout waiting for %T", zero)
		return zero
	}
}

func TestPublisher_Events(t *testing.T) {
	bus := New()
	pub := NewPublisher(bus)
	fixed := time.Date(2026, 1, 27, 10, 30, 0, 0, time.UTC)
	pub.now = func() time.Time { return fixed }

	added := make(chan SequenceAddedEvent, 1)
	started := make(chan RunStartedEvent, 1)
	finished := make(chan RunFinishedEvent, 1)
	lines := make(chan LineStateChangedEvent, 1)
	for _, unsub := range []func(){
		bus.Subscribe(func(e SequenceAddedEvent) { added <- e }),
		bus.Subscribe(func(e RunStartedEvent) { started <- e }),
		bus.Subscribe(func(e RunFinishedEvent) { finished <- e }),
		bus.Subscribe(func(e LineStateChangedEvent) { lines <- e }),
	} {
		defer unsub()
	}

	pub.SequenceAdded(led.WarningSequence, led.Builtins()[led.WarningSequence])
	if got := receive(t, added); got.Name != "Warning" || got.Steps != 6 || got.PassMs != 2500 ||
		got.Timestamp != "2026-01-27T10:30:00Z" {
		t.Errorf("SequenceAddedEvent = %+v", got)
	}

	info := led.RunInfo{ID: "id-1", Sequence: "Error", Line: led.Secondary, Repeat: true, StartedAt: fixed}
	pub.RunStarted(info)
	if got := receive(t, started); got.RunID != "id-1" || got.Line != "secondary" || !got.Repeat {
		t.Errorf("RunStartedEvent = %+v", got)
	}

	pub.LineWritten(led.Primary, led.On)
	if got := receive(t, lines); got.Line != "primary" || got.State != "on" {
		t.Errorf("LineStateChangedEvent = %+v", got)
	}

	pub.RunFinished(info, led.OutcomeFailed, errors.New("boom"))
	if got := receive(t, finished); got.Outcome != "failed" || got.Error != "boom" {
		t.Errorf("RunFinishedEvent = %+v", got)
	}
}

func TestPublisher_WithManager(t *testing.T) {
	bus := New()
	finished := make(chan RunFinishedEvent, 1)
	unsub := bus.Subscribe(func(e RunFinishedEvent) { finished <- e })
	defer unsub()

	m := led.NewManager(nil, nil,
		led.WithObserver(NewPublisher(bus)),
		led.WithSleeper(func(time.Duration) {}),
	)
	defer m.Close()
	led.RegisterBuiltins(m)

	run, err := m.Run(t.Context(), led.ErrorSequence, led.Primary, false)
	if err != nil {
		t.Fatal(err)
	}

	got := receive(t, finished)
	if got.RunID != run.ID() || got.Sequence != "Error" || got.Outcome != "completed" || got.Error != "" {
		t.Errorf("RunFinishedEvent = %+v", got)
	}
}
