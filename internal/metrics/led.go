// Package metrics provides Prometheus metrics for LED lines and sequence runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/smazurov/ledseq/internal/led"
)

var (
	lineWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledseq",
		Subsystem: "line",
		Name:      "writes_total",
		Help:      "Values written to an LED line",
	}, []string{"line", "state"})

	lineState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "ledseq",
		Subsystem: "line",
		Name:      "state",
		Help:      "Last value written to an LED line (1 on, 0 off)",
	}, []string{"line"})

	runsStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledseq",
		Subsystem: "run",
		Name:      "started_total",
		Help:      "Sequence runs started",
	}, []string{"line", "sequence"})

	runsFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledseq",
		Subsystem: "run",
		Name:      "finished_total",
		Help:      "Sequence runs finished, by outcome",
	}, []string{"line", "outcome"})

	runsActive = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "ledseq",
		Subsystem: "run",
		Name:      "active",
		Help:      "Sequence runs in progress",
	}, []string{"line"})

	runDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ledseq",
		Subsystem: "run",
		Name:      "duration_seconds",
		Help:      "Wall time from run start to the final off write",
		Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 300, 900},
	}, []string{"line", "outcome"})

	sequencesAdded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ledseq",
		Subsystem: "sequence",
		Name:      "added_total",
		Help:      "Sequences added or overwritten",
	})
)

// Observer records led.Manager notifications as Prometheus metrics.
type Observer struct {
	now func() time.Time
}

var _ led.Observer = (*Observer)(nil)

// NewObserver creates a metrics observer.
func NewObserver() *Observer {
	return &Observer{now: time.Now}
}

// SequenceAdded counts added sequences.
func (o *Observer) SequenceAdded(string, *led.Sequence) {
	sequencesAdded.Inc()
}

// LineWritten counts the write and records the line level.
func (o *Observer) LineWritten(line led.Line, state led.State) {
	lineWrites.WithLabelValues(line.String(), state.String()).Inc()
	level := 0.0
	if state.High() {
		level = 1
	}
	lineState.WithLabelValues(line.String()).Set(level)
}

// RunStarted counts the run and marks it active.
func (o *Observer) RunStarted(info led.RunInfo) {
	runsStarted.WithLabelValues(info.Line.String(), info.Sequence).Inc()
	runsActive.WithLabelValues(info.Line.String()).Inc()
}

// RunFinished counts the outcome and observes the run duration.
func (o *Observer) RunFinished(info led.RunInfo, outcome led.Outcome, _ error) {
	line := info.Line.String()
	runsFinished.WithLabelValues(line, string(outcome)).Inc()
	runsActive.WithLabelValues(line).Dec()
	if !info.StartedAt.IsZero() {
		runDuration.WithLabelValues(line, string(outcome)).Observe(o.now().Sub(info.StartedAt).Seconds())
	}
}
