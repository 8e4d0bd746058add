// Package timing measures how long each stage of a command takes.
package timing

import (
	"fmt"
	"strings"
	"time"
)

// Timer records stage durations. Each stage runs from the previous
// mark (or the start) to the moment it is recorded.
type Timer struct {
	now    func() time.Time
	start  time.Time
	last   time.Time
	stages []Stage
}

// Stage is one recorded step
type Stage struct {
	Label    string
	Duration time.Duration
}

// NewTimer creates a timer started now
func NewTimer() *Timer {
	return newTimerWithClock(time.Now)
}

func newTimerWithClock(now func() time.Time) *Timer {
	start := now()
	return &Timer{now: now, start: start, last: start}
}

// Mark closes the current stage under label and returns its duration
func (t *Timer) Mark(label string) time.Duration {
	at := t.now()
	d := at.Sub(t.last)
	t.last = at
	t.stages = append(t.stages, Stage{Label: label, Duration: d})
	return d
}

// Elapsed returns total time since the timer started
func (t *Timer) Elapsed() time.Duration {
	return t.now().Sub(t.start)
}

// Stages returns recorded stages in order
func (t *Timer) Stages() []Stage {
	return append([]Stage(nil), t.stages...)
}

// Summary formats the total and every stage in milliseconds
func (t *Timer) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "total: %.3fms", ms(t.Elapsed()))
	if len(t.stages) == 0 {
		return b.String()
	}
	b.WriteString(" (")
	for i, s := range t.stages {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %.3fms", s.Label, ms(s.Duration))
	}
	b.WriteString(")")
	return b.String()
}

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}
