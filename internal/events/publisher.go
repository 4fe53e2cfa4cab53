package events

import (
	"time"

	"github.com/smazurov/ledseq/internal/led"
)

// Publisher turns led.Manager notifications into bus events.
type Publisher struct {
	bus *Bus
	now func() time.Time
}

var _ led.Observer = (*Publisher)(nil)

// NewPublisher creates an observer that publishes to bus.
func NewPublisher(bus *Bus) *Publisher {
	return &Publisher{bus: bus, now: time.Now}
}

func (p *Publisher) timestamp() string {
	return p.now().UTC().Format(time.RFC3339Nano)
}

// SequenceAdded publishes a SequenceAddedEvent.
func (p *Publisher) SequenceAdded(name string, seq *led.Sequence) {
	p.bus.Publish(SequenceAddedEvent{
		Name:      name,
		Steps:     seq.Len(),
		PassMs:    seq.Duration().Milliseconds(),
		Timestamp: p.timestamp(),
	})
}

// LineWritten publishes a LineStateChangedEvent.
func (p *Publisher) LineWritten(line led.Line, state led.State) {
	p.bus.Publish(LineStateChangedEvent{
		Line:      line.String(),
		State:     state.String(),
		Timestamp: p.timestamp(),
	})
}

// RunStarted publishes a RunStartedEvent.
func (p *Publisher) RunStarted(info led.RunInfo) {
	p.bus.Publish(RunStartedEvent{
		RunID:     info.ID,
		Sequence:  info.Sequence,
		Line:      info.Line.String(),
		Repeat:    info.Repeat,
		Timestamp: p.timestamp(),
	})
}

// RunFinished publishes a RunFinishedEvent.
func (p *Publisher) RunFinished(info led.RunInfo, outcome led.Outcome, err error) {
	ev := RunFinishedEvent{
		RunID:     info.ID,
		Sequence:  info.Sequence,
		Line:      info.Line.String(),
		Outcome:   string(outcome),
		Timestamp: p.timestamp(),
	}
	if err != nil {
		ev.Error = err.Error()
	}
	p.bus.Publish(ev)
}
