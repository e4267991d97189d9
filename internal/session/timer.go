package session

import (
	"fmt"
	"time"
)

// Timer measures how long the learner spends on one problem. Only one
// origin is tracked; starting again replaces it.
type Timer struct {
	start   time.Time
	running bool
	last    int
}

// Start records now as the origin and marks the timer running.
func (t *Timer) Start(now time.Time) {
	t.start = now
	t.running = true
	t.last = 0
}

// Stop halts the timer and returns the whole seconds elapsed since Start.
// It returns 0 when the timer is not running. The origin is kept so a
// later Resume continues from it.
func (t *Timer) Stop(now time.Time) int {
	if !t.running {
		return 0
	}
	t.last = t.since(now)
	t.running = false
	return t.last
}

// Resume restarts a stopped timer from its original origin. It is a no-op
// on a timer that was never started.
func (t *Timer) Resume() {
	if t.start.IsZero() {
		return
	}
	t.running = true
}

// Elapsed returns whole seconds since Start while running, and the value
// captured by the last Stop otherwise.
func (t *Timer) Elapsed(now time.Time) int {
	if !t.running {
		return t.last
	}
	return t.since(now)
}

func (t *Timer) since(now time.Time) int {
	d := now.Sub(t.start)
	if d < 0 {
		return 0
	}
	return int(d / time.Second)
}

// Running reports whether the timer has been started and not stopped.
func (t *Timer) Running() bool { return t.running }

// FormatTime renders seconds as minutes and zero-padded seconds, e.g. 65 -> "1:05".
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
