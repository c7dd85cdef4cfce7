package util

import (
	"fmt"
	"math"
	"time"
)

type TimerState struct {
	name         string
	lastDuration float64

	totalDuration  float64
	executionCount int64

	minDuration float64
	maxDuration float64
}

func (t *TimerState) averageDuration() float64 {
	if t.executionCount == 0 {
		return 0
	}
	return t.totalDuration / float64(t.executionCount)
}

func (t *TimerState) Count() int64 {
	return t.executionCount
}

func (t *TimerState) LastMS() float64 {
	return t.lastDuration
}

func (t *TimerState) String() string {
	return fmt.Sprintf("%s last: %.2fms, avg: %.2fms, min: %.2fms, max: %.2fms", t.name, t.lastDuration, t.averageDuration(), t.minDuration, t.maxDuration)
}

func (t *TimerState) record(durationInMS float64) {
	t.lastDuration = durationInMS
	t.totalDuration += durationInMS
	t.executionCount++
	t.minDuration = math.Min(t.minDuration, durationInMS)
	t.maxDuration = math.Max(t.maxDuration, durationInMS)
}

// Timer collects named durations of the startup steps (font loading, atlas, mesh).
type Timer struct {
	states     map[string]*TimerState
	timerNames []string
}

func NewTimer() *Timer {
	return &Timer{
		states: make(map[string]*TimerState),
	}
}

func (t *Timer) GetState(name string) *TimerState {
	return t.states[name]
}

func (t *Timer) String() string {
	var str string
	for _, name := range t.timerNames {
		str += t.states[name].String() + "\n"
	}
	return str
}

// Start begins a measurement; the returned func stops it and returns the duration in ms.
func (t *Timer) Start(name string) func() float64 {
	state, ok := t.states[name]
	if !ok {
		t.timerNames = append(t.timerNames, name)
		state = &TimerState{
			name:        name,
			minDuration: math.MaxFloat64,
			maxDuration: 0,
		}
		t.states[name] = state
	}
	start := time.Now()
	return func() float64 {
		durationInMS := float64(time.Since(start).Microseconds()) / 1000.0
		state.record(durationInMS)
		return durationInMS
	}
}

// Measure runs step under the named timer and passes its error through.
func (t *Timer) Measure(name string, step func() error) error {
	stop := t.Start(name)
	err := step()
	stop()
	return err
}
