// Package timer provides duration tracking for multi-stage command runs.
package timer

import "time"

// Timer tracks the total duration of a command run and the duration of the
// current stage within it.
type Timer interface {
	// Start begins tracking. Calling Start again resets both durations.
	Start()
	// NewStage marks the beginning of a new stage.
	NewStage()
	// GetTiming returns the total duration and the current stage duration.
	GetTiming() (total time.Duration, stage time.Duration)
}

type realTimer struct {
	start      time.Time
	stageStart time.Time
	now        func() time.Time
}

// New creates a started Timer backed by the wall clock.
func New() Timer {
	tmr := &realTimer{now: time.Now}
	tmr.Start()

	return tmr
}

func (t *realTimer) Start() {
	t.start = t.now()
	t.stageStart = t.start
}

func (t *realTimer) NewStage() {
	t.stageStart = t.now()
}

func (t *realTimer) GetTiming() (time.Duration, time.Duration) {
	current := t.now()

	return current.Sub(t.start), current.Sub(t.stageStart)
}
