package snake

import (
	"testing"
	"time"
)

func TestTimer(t *testing.T) {
	var timer Timer
	t0 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	if timer.String() != "00:00" {
		t.Errorf("zero timer = %q, expected 00:00", timer.String())
	}

	timer.Start(t0)
	if !timer.Running() {
		t.Fatal("timer should run after Start")
	}
	timer.Update(t0.Add(65*time.Second + 400*time.Millisecond))
	if timer.String() != "01:05" {
		t.Errorf("after 65.4s = %q, expected 01:05", timer.String())
	}

	timer.Stop()
	timer.Update(t0.Add(10 * time.Minute))
	if timer.String() != "01:05" {
		t.Errorf("stopped timer moved to %q", timer.String())
	}
	if timer.Elapsed() != 65*time.Second+400*time.Millisecond {
		t.Errorf("Elapsed() = %s", timer.Elapsed())
	}

	timer.Start(t0.Add(time.Hour))
	if timer.String() != "00:00" {
		t.Errorf("restarted timer = %q, expected 00:00", timer.String())
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{999 * time.Millisecond, "00:00"},
		{59 * time.Second, "00:59"},
		{time.Minute, "01:00"},
		{99*time.Minute + 59*time.Second, "99:59"},
		{100 * time.Minute, "100:00"},
		{-time.Second, "00:00"},
	}

	for _, tc := range tests {
		if got := FormatElapsed(tc.d); got != tc.want {
			t.Errorf("FormatElapsed(%s) = %q, expected %q", tc.d, got, tc.want)
		}
	}
}
