package events

import (
	"sync"
	"testing"
	"time"
)

func TestBus_PublishSubscribe(t *testing.T) {
	bus := New()
	received := make(chan RunStartedEvent, 1)

	unsub := bus.Subscribe(func(e RunStartedEvent) {
		received <- e
	})
	defer unsub()

	event := RunStartedEvent{
		RunID:    "run-1",
		Sequence: "Warning",
		Line:     "primary",
		Repeat:   true,
	}
	bus.Publish(event)

	if got := <-received; got != event {
		t.Errorf("received %+v, want %+v", got, event)
	}
}

func TestBus_MultipleSubscribers(_ *testing.T) {
	bus := New()
	received1 := make(chan SequenceAddedEvent, 1)
	received2 := make(chan SequenceAddedEvent, 1)

	unsub1 := bus.Subscribe(func(e SequenceAddedEvent) { received1 <- e })
	defer unsub1()
	unsub2 := bus.Subscribe(func(e SequenceAddedEvent) { received2 <- e })
	defer unsub2()

	bus.Publish(SequenceAddedEvent{Name: "Error", Steps: 2})

	<-received1
	<-received2
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := New()
	received := make(chan RunFinishedEvent, 1)

	unsub := bus.Subscribe(func(e RunFinishedEvent) {
		received <- e
	})

	bus.Publish(RunFinishedEvent{RunID: "a"})
	<-received

	unsub()

	bus.Publish(RunFinishedEvent{RunID: "b"})
	select {
	case <-received:
		t.Fatal("Should not have received event after unsubscribe")
	case <-time.After(10 * time.Millisecond):
	}
}

func TestBus_TypeSafety(t *testing.T) {
	bus := New()

	startedReceived := make(chan bool, 1)
	lineReceived := make(chan bool, 1)

	unsub1 := bus.Subscribe(func(RunStartedEvent) { startedReceived <- true })
	defer unsub1()
	unsub2 := bus.Subscribe(func(LineStateChangedEvent) { lineReceived <- true })
	defer unsub2()

	bus.Publish(RunStartedEvent{RunID: "x"})
	<-startedReceived

	select {
	case <-lineReceived:
		t.Fatal("line subscriber should NOT have received RunStartedEvent")
	case <-time.After(10 * time.Millisecond):
	}

	bus.Publish(LineStateChangedEvent{Line: "primary", State: "on"})
	<-lineReceived

	select {
	case <-startedReceived:
		t.Fatal("run subscriber should NOT have received LineStateChangedEvent")
	case <-time.After(10 * time.Millisecond):
	}
}

func TestBus_UnknownHandlerType(_ *testing.T) {
	bus := New()
	unsub := bus.Subscribe(func(string) {})
	unsub()
}

func TestBus_ThreadSafety(_ *testing.T) {
	bus := New()
	var wg sync.WaitGroup
	numGoroutines := 10
	eventsPerGoroutine := 100
	expected := numGoroutines * eventsPerGoroutine

	receivedCh := make(chan bool, expected)
	unsub := bus.Subscribe(func(LineStateChangedEvent) {
		receivedCh <- true
	})
	defer unsub()

	for range numGoroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range eventsPerGoroutine {
				bus.Publish(LineStateChangedEvent{
					Line:      "secondary",
					State:     "off",
					Timestamp: time.Now().Format(time.RFC3339),
				})
			}
		}()
	}
	wg.Wait()

	for range expected {
		<-receivedCh
	}
}

func TestSubscribeToChannel(t *testing.T) {
	bus := New()
	ch := make(chan any, 10)

	unsub := SubscribeToChannel[RunFinishedEvent](bus, ch)
	defer unsub()

	bus.Publish(RunFinishedEvent{RunID: "r", Outcome: "completed"})

	received := <-ch
	ev, ok := received.(RunFinishedEvent)
	if !ok {
		t.Fatalf("Expected RunFinishedEvent, got %T", received)
	}
	if ev.RunID != "r" || ev.Outcome != "completed" {
		t.Errorf("received %+v", ev)
	}
}

func TestSubscribeToChannel_NonBlocking(_ *testing.T) {
	bus := New()
	ch := make(chan any) // No buffer

	unsub := SubscribeToChannel[SequenceAddedEvent](bus, ch)
	defer unsub()

	done := make(chan bool, 1)
	go func() {
		bus.Publish(SequenceAddedEvent{Name: "Warning"})
		done <- true
	}()

	<-done
}
