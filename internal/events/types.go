package events

// Event type constants for kelindar/event.
const (
	TypeSequenceAdded uint32 = iota + 1
	TypeRunStarted
	TypeRunFinished
	TypeLineStateChanged
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// SequenceAddedEvent is sent when a sequence is added or overwritten.
type SequenceAddedEvent struct {
	Name      string `json:"name" example:"Warning" doc:"Sequence name"`
	Steps     int    `json:"steps" example:"6" doc:"Number of steps"`
	PassMs    int64  `json:"pass_ms" example:"2500" doc:"Length of one pass in milliseconds"`
	Timestamp string `json:"timestamp" example:"2026-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for SequenceAddedEvent.
func (e SequenceAddedEvent) Type() uint32 { return TypeSequenceAdded }

// RunStartedEvent is sent when a sequence run begins on a line.
type RunStartedEvent struct {
	RunID     string `json:"run_id" example:"6f1c1c1e-0b7a-4a4e-9d59-3f2b7a1c9e21" doc:"Run identifier"`
	Sequence  string `json:"sequence" example:"Error" doc:"Sequence name"`
	Line      string `json:"line" example:"secondary" doc:"LED line"`
	Repeat    bool   `json:"repeat" example:"true" doc:"Whether the sequence loops until stopped"`
	Timestamp string `json:"timestamp" example:"2026-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for RunStartedEvent.
func (e RunStartedEvent) Type() uint32 { return TypeRunStarted }

// RunFinishedEvent is sent after a run has turned its line off.
type RunFinishedEvent struct {
	RunID     string `json:"run_id" example:"6f1c1c1e-0b7a-4a4e-9d59-3f2b7a1c9e21" doc:"Run identifier"`
	Sequence  string `json:"sequence" example:"Error" doc:"Sequence name"`
	Line      string `json:"line" example:"secondary" doc:"LED line"`
	Outcome   string `json:"outcome" example:"cancelled" enum:"completed,cancelled,failed" doc:"How the run ended"`
	Error     string `json:"error,omitempty" example:"led manager has no sequence named \"Nope\"" doc:"Failure reason"`
	Timestamp string `json:"timestamp" example:"2026-01-27T10:30:05Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for RunFinishedEvent.
func (e RunFinishedEvent) Type() uint32 { return TypeRunFinished }

// LineStateChangedEvent is sent for every value written to a line.
type LineStateChangedEvent struct {
	Line      string `json:"line" example:"primary" doc:"LED line"`
	State     string `json:"state" example:"on" enum:"on,off" doc:"Written state"`
	Timestamp string `json:"timestamp" example:"2026-01-27T10:30:00.25Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for LineStateChangedEvent.
func (e LineStateChangedEvent) Type() uint32 { return TypeLineStateChanged }
