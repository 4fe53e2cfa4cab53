package led

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// timeline records writes and sleeps across both lines on a virtual clock.
type timeline struct {
	mu       sync.Mutex
	events   []string
	now      time.Duration
	cancelAt time.Duration
	cancel   func()
}

func (tl *timeline) sleep(d time.Duration) {
	tl.mu.Lock()
	tl.events = append(tl.events, "sleep "+d.String())
	tl.now += d
	cancel := tl.cancel
	if cancel != nil && tl.now >= tl.cancelAt {
		tl.cancel = nil
	} else {
		cancel = nil
	}
	tl.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

func (tl *timeline) cancelAfter(d time.Duration, cancel func()) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	tl.cancelAt = d
	tl.cancel = cancel
}

func (tl *timeline) snapshot() []string {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	return slices.Clone(tl.events)
}

func (tl *timeline) output(name string) *recordingOutput {
	return &recordingOutput{name: name, tl: tl}
}

// recordingOutput is an Output that logs every write to a timeline.
type recordingOutput struct {
	name string
	tl   *timeline

	mu     sync.Mutex
	writes []bool
	closes int
	failOn *bool
}

func (o *recordingOutput) Write(high bool) error {
	o.mu.Lock()
	fail := o.failOn != nil && *o.failOn == high
	if !fail {
		o.writes = append(o.writes, high)
	}
	o.mu.Unlock()

	if fail {
		return errors.New("simulated write failure")
	}

	if o.tl != nil {
		o.tl.mu.Lock()
		o.tl.events = append(o.tl.events, fmt.Sprintf("%s %s", o.name, stateName(high)))
		o.tl.mu.Unlock()
	}
	return nil
}

func (o *recordingOutput) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closes++
	return nil
}

func (o *recordingOutput) states() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, 0, len(o.writes))
	for _, w := range o.writes {
		out = append(out, stateName(w))
	}
	return out
}

func (o *recordingOutput) last() (bool, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.writes) == 0 {
		return false, false
	}
	return o.writes[len(o.writes)-1], true
}

func stateName(high bool) string {
	if high {
		return "on"
	}
	return "off"
}

// countingObserver tallies Manager notifications.
type countingObserver struct {
	mu       sync.Mutex
	added    []string
	writes   int
	started  int
	finished []Outcome
}

func (c *countingObserver) SequenceAdded(name string, _ *Sequence) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.added = append(c.added, name)
}

func (c *countingObserver) LineWritten(Line, State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writes++
}

func (c *countingObserver) RunStarted(RunInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.started++
}

func (c *countingObserver) RunFinished(_ RunInfo, outcome Outcome, _ error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.finished = append(c.finished, outcome)
}
