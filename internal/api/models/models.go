package models

import "time"

// Health check models
type HealthData struct {
	Status  string `json:"status" example:"ok" doc:"Service status"`
	Message string `json:"message" example:"API is healthy" doc:"Status message"`
}

type HealthResponse struct {
	Body HealthData
}

// Version models
type VersionData struct {
	Version   string `json:"version" example:"dev" doc:"Application version"`
	GitCommit string `json:"git_commit" example:"abc1234" doc:"Git commit SHA"`
	BuildDate string `json:"build_date" example:"2026-01-15 14:30" doc:"Build timestamp"`
	BuildID   string `json:"build_id" example:"a1b2c3d4" doc:"Unique build identifier"`
	GoVersion string `json:"go_version" example:"go1.24.0" doc:"Go compiler version"`
	Compiler  string `json:"compiler" example:"gc" doc:"Compiler used"`
	Platform  string `json:"platform" example:"linux/arm64" doc:"Platform"`
}

type VersionResponse struct {
	Body VersionData
}

// Sequence models
type StepData struct {
	State   string `json:"state" example:"on" enum:"on,off" doc:"LED state for this step"`
	Delay   string `json:"delay" example:"250ms" doc:"How long the state is held"`
	DelayMs int64  `json:"delay_ms" example:"250" doc:"Delay in milliseconds"`
}

type SequenceData struct {
	Name   string     `json:"name" example:"Warning" doc:"Sequence name"`
	Steps  []StepData `json:"steps" doc:"Ordered steps"`
	PassMs int64      `json:"pass_ms" example:"2500" doc:"Length of one pass in milliseconds"`
}

type SequenceListData struct {
	Sequences []SequenceData `json:"sequences" doc:"Registered sequences sorted by name"`
	Count     int            `json:"count" example:"2" doc:"Number of sequences"`
}

type SequenceListResponse struct {
	Body SequenceListData
}

type SequenceResponse struct {
	Body SequenceData
}

type SequenceNameInput struct {
	Name string `path:"name" example:"Warning" doc:"Sequence name"`
}

type StepInput struct {
	State string `json:"state" example:"on" doc:"on/off (also high/low, 1/0, true/false)"`
	Delay string `json:"delay,omitempty" example:"shorter" doc:"Interval name (shortest..longest) or Go duration"`
}

type SequencePutRequest struct {
	Name string `path:"name" minLength:"1" example:"Heartbeat" doc:"Sequence name"`
	Body struct {
		Steps []StepInput `json:"steps" minItems:"1" doc:"Ordered steps, at least one"`
	}
}

// Line models
type LineData struct {
	Line      string     `json:"line" example:"secondary" enum:"primary,secondary" doc:"LED line"`
	Running   bool       `json:"running" example:"true" doc:"Whether a sequence currently owns the line"`
	RunID     string     `json:"run_id,omitempty" example:"6f1c1c1e-0b7a-4a4e-9d59-3f2b7a1c9e21" doc:"Active run identifier"`
	Sequence  string     `json:"sequence,omitempty" example:"Error" doc:"Active sequence name"`
	Repeat    bool       `json:"repeat,omitempty" example:"true" doc:"Whether the active sequence loops"`
	Phase     string     `json:"phase" example:"looping" enum:"idle,priming,looping,draining,stopped" doc:"Run phase"`
	StartedAt *time.Time `json:"started_at,omitempty" doc:"When the active run started"`
}

type LineListData struct {
	Board string     `json:"board" example:"Raspberry Pi 4 Model B Rev 1.4" doc:"Detected board model"`
	Lines []LineData `json:"lines" doc:"Status of each line"`
}

type LineListResponse struct {
	Body LineListData
}

type LineResponse struct {
	Body LineData
}

type LineInput struct {
	Line string `path:"line" example:"secondary" doc:"LED line: primary or secondary"`
}

type RunRequest struct {
	Line string `path:"line" example:"secondary" doc:"LED line: primary or secondary"`
	Body struct {
		Sequence string `json:"sequence" minLength:"1" example:"Error" doc:"Sequence to run"`
		Repeat   *bool  `json:"repeat,omitempty" example:"true" doc:"Loop until stopped (default true); false runs one pass"`
	}
}

type RunData struct {
	RunID     string    `json:"run_id" example:"6f1c1c1e-0b7a-4a4e-9d59-3f2b7a1c9e21" doc:"Run identifier"`
	Sequence  string    `json:"sequence" example:"Error" doc:"Sequence name"`
	Line      string    `json:"line" example:"secondary" doc:"LED line"`
	Repeat    bool      `json:"repeat" example:"true" doc:"Whether the sequence loops"`
	StartedAt time.Time `json:"started_at" doc:"Run start time"`
}

type RunResponse struct {
	Body RunData
}

type StopRequest struct {
	Line string `path:"line" example:"secondary" doc:"LED line: primary or secondary"`
	Wait bool   `query:"wait" example:"true" doc:"Block until the line is off"`
}

type StopData struct {
	Stopped bool   `json:"stopped" example:"true" doc:"Whether a run was cancelled"`
	RunID   string `json:"run_id,omitempty" example:"6f1c1c1e-0b7a-4a4e-9d59-3f2b7a1c9e21" doc:"Cancelled run"`
	Outcome string `json:"outcome,omitempty" example:"cancelled" doc:"Run outcome, set when wait=true"`
}

type StopResponse struct {
	Body StopData
}

type StateRequest struct {
	Line string `path:"line" example:"primary" doc:"LED line: primary or secondary"`
	Body struct {
		State string `json:"state" example:"on" doc:"on/off (also high/low, 1/0, true/false)"`
	}
}

// Logging models
type LogLevelsData struct {
	Levels map[string]string `json:"levels" doc:"Effective level per module; the empty key is the global level"`
}

type LogLevelsResponse struct {
	Body LogLevelsData
}

type LogLevelRequest struct {
	Body struct {
		Module string `json:"module,omitempty" example:"led" doc:"Module name; empty sets the global level"`
		Level  string `json:"level" enum:"debug,info,warn,warning,error" example:"debug" doc:"New level"`
	}
}
