package snake

import (
	"fmt"
	"time"
)

// Timer tracks the elapsed time of one game session.
// The elapsed value is only recomputed by Update, which the shell calls once
// per second; Stop freezes the last computed value.
type Timer struct {
	epoch   time.Time
	elapsed time.Duration
	running bool
}

// Start captures now as the epoch and zeroes the elapsed time.
func (t *Timer) Start(now time.Time) {
	t.epoch = now
	t.elapsed = 0
	t.running = true
}

// Update recomputes the elapsed time. It does nothing once stopped.
func (t *Timer) Update(now time.Time) {
	if !t.running {
		return
	}
	if d := now.Sub(t.epoch); d > 0 {
		t.elapsed = d
	}
}

// Stop halts further updates, keeping the last computed value.
func (t *Timer) Stop() {
	t.running = false
}

// Running reports whether the timer is counting.
func (t *Timer) Running() bool {
	return t.running
}

// Elapsed returns the last computed elapsed time.
func (t *Timer) Elapsed() time.Duration {
	return t.elapsed
}

// String formats the elapsed time as MM:SS.
func (t *Timer) String() string {
	return FormatElapsed(t.elapsed)
}

// FormatElapsed formats d as zero-padded MM:SS. Minutes grow past two digits
// rather than wrapping.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
