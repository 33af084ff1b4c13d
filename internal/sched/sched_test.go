package sched

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestManualRepeating(t *testing.T) {
	m := NewManual(epoch)
	var fast, slow int
	m.ScheduleRepeating(100*time.Millisecond, func() { fast++ })
	m.ScheduleRepeating(time.Second, func() { slow++ })

	m.Advance(999 * time.Millisecond)
	if fast != 9 || slow != 0 {
		t.Errorf("after 999ms fast=%d slow=%d, expected 9/0", fast, slow)
	}
	m.Advance(time.Millisecond)
	if fast != 10 || slow != 1 {
		t.Errorf("after 1s fast=%d slow=%d, expected 10/1", fast, slow)
	}
	if got := m.Now(); !got.Equal(epoch.Add(time.Second)) {
		t.Errorf("Now() = %s, expected epoch+1s", got)
	}
}

func TestManualCancelInsideCallback(t *testing.T) {
	m := NewManual(epoch)
	var runs int
	var h Handle
	h = m.ScheduleRepeating(10*time.Millisecond, func() {
		runs++
		if runs == 3 {
			m.Cancel(h)
		}
	})

	m.Advance(time.Second)
	if runs != 3 {
		t.Errorf("job ran %d times, expected 3", runs)
	}
	if m.Active() != 0 {
		t.Errorf("Active() = %d, expected 0", m.Active())
	}
}

func TestManualPost(t *testing.T) {
	m := NewManual(epoch)
	var order []string
	m.Post(func() {
		order = append(order, "a")
		m.Post(func() { order = append(order, "c") })
	})
	m.Post(func() { order = append(order, "b") })

	if len(order) != 0 {
		t.Fatal("Post should not run anything before RunPending")
	}
	m.RunPending()
	if len(order) != 3 || order[0] != "a" || order[1] != "b" || order[2] != "c" {
		t.Errorf("order = %v, expected [a b c]", order)
	}
}

func TestDriverRestart(t *testing.T) {
	m := NewManual(epoch)
	var ticks int
	d := NewDriver(m, func() { ticks++ })

	if d.Running() {
		t.Fatal("new driver should be stopped")
	}

	d.Restart(150 * time.Millisecond)
	first := d.Handle()
	d.Restart(100 * time.Millisecond)
	if d.Handle() == 0 || d.Handle() == first {
		t.Errorf("Handle() = %d after restart, first was %d", d.Handle(), first)
	}
	if _, ok := m.Interval(first); ok {
		t.Error("first job still live after restart")
	}
	if m.Active() != 1 {
		t.Fatalf("Restart left %d live jobs, expected 1", m.Active())
	}
	if d.Interval() != 100*time.Millisecond {
		t.Errorf("Interval() = %s, expected 100ms", d.Interval())
	}

	m.Advance(time.Second)
	if ticks != 10 {
		t.Errorf("ticks = %d, expected 10", ticks)
	}

	d.Stop()
	d.Stop()
	if d.Running() || m.Active() != 0 || d.Handle() != 0 {
		t.Error("Stop should cancel the job")
	}
	m.Advance(time.Second)
	if ticks != 10 {
		t.Errorf("stopped driver kept ticking: %d", ticks)
	}
}

func TestLoopRunsSerially(t *testing.T) {
	l := NewLoop()
	defer l.Close()

	var (
		inside atomic.Int32
		wg     sync.WaitGroup
		count  int
	)
	wg.Add(100)
	for range 100 {
		go l.Post(func() {
			defer wg.Done()
			if inside.Add(1) != 1 {
				t.Error("callbacks overlapped")
			}
			count++
			inside.Add(-1)
		})
	}
	wg.Wait()

	if count != 100 {
		t.Errorf("count = %d, expected 100", count)
	}
}

func TestLoopCancelStopsQueuedTicks(t *testing.T) {
	l := NewLoop()
	defer l.Close()

	var runs atomic.Int32
	var h Handle
	done := make(chan struct{})
	l.Post(func() {
		h = l.ScheduleRepeating(time.Millisecond, func() {
			if runs.Add(1) == 3 {
				l.Cancel(h)
				close(done)
			}
		})
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("repeating job never reached 3 runs")
	}

	time.Sleep(20 * time.Millisecond)
	if got := runs.Load(); got != 3 {
		t.Errorf("job ran %d times after cancel, expected 3", got)
	}
}

func TestLoopClose(t *testing.T) {
	l := NewLoop()
	l.ScheduleRepeating(time.Millisecond, func() {})
	l.Close()
	l.Close()

	// After Close everything is dropped
	ran := false
	l.Post(func() { ran = true })
	if h := l.ScheduleRepeating(time.Millisecond, func() { ran = true }); h != 0 {
		t.Errorf("ScheduleRepeating after Close = %d, expected 0", h)
	}
	time.Sleep(10 * time.Millisecond)
	if ran {
		t.Error("callback ran after Close")
	}
}
