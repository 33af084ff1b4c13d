// Package sched runs game callbacks on a single logical thread.
//
// Every callback scheduled through a Scheduler runs serially, so code inside
// a callback may touch game state without locks. Loop is the real-time
// implementation; Manual is a virtual clock for tests.
package sched

import (
	"sync"
	"sync/atomic"
	"time"
)

// Handle identifies a repeating job. The zero Handle is never issued.
type Handle uint64

// Scheduler runs callbacks serially.
type Scheduler interface {
	// ScheduleRepeating runs fn every interval until the handle is cancelled.
	ScheduleRepeating(interval time.Duration, fn func()) Handle
	// Cancel stops a repeating job. A cancelled job never runs again, even if
	// one of its ticks is already queued. Unknown handles are ignored.
	Cancel(h Handle)
	// Post queues fn to run once. It never blocks.
	Post(fn func())
}

// Loop is a Scheduler backed by one goroutine and a ticker per job.
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	jobs   map[Handle]*loopJob
	next   Handle
	closed bool

	wake chan struct{}
	done chan struct{}
	wg   sync.WaitGroup
}

type loopJob struct {
	ticker *time.Ticker
	stop   chan struct{}
	active atomic.Bool
}

// NewLoop starts a loop goroutine. Call Close to stop it.
func NewLoop() *Loop {
	l := &Loop{
		jobs: make(map[Handle]*loopJob),
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	l.wg.Add(1)
	go l.run()
	return l
}

func (l *Loop) run() {
	defer l.wg.Done()
	for {
		select {
		case <-l.done:
			return
		case <-l.wake:
		}

		for {
			l.mu.Lock()
			if l.closed || len(l.queue) == 0 {
				l.mu.Unlock()
				break
			}
			fn := l.queue[0]
			l.queue[0] = nil
			l.queue = l.queue[1:]
			l.mu.Unlock()

			fn()
		}
	}
}

// Post queues fn to run on the loop goroutine. Posts after Close are dropped.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// ScheduleRepeating starts a ticker whose ticks are posted into the loop.
func (l *Loop) ScheduleRepeating(interval time.Duration, fn func()) Handle {
	job := &loopJob{
		ticker: time.NewTicker(interval),
		stop:   make(chan struct{}),
	}
	job.active.Store(true)

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		job.ticker.Stop()
		return 0
	}
	l.next++
	h := l.next
	l.jobs[h] = job
	l.mu.Unlock()

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		for {
			select {
			case <-job.stop:
				return
			case <-job.ticker.C:
				l.Post(func() {
					if job.active.Load() {
						fn()
					}
				})
			}
		}
	}()
	return h
}

// Cancel stops the job. Safe to call from inside a callback.
func (l *Loop) Cancel(h Handle) {
	l.mu.Lock()
	job, ok := l.jobs[h]
	delete(l.jobs, h)
	l.mu.Unlock()
	if !ok {
		return
	}
	job.active.Store(false)
	job.ticker.Stop()
	close(job.stop)
}

// Close cancels every job, stops the loop and waits for its goroutines.
// Queued callbacks that have not started are dropped. Close must not be
// called from inside a callback.
func (l *Loop) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	jobs := l.jobs
	l.jobs = nil
	l.queue = nil
	l.mu.Unlock()

	for _, job := range jobs {
		job.active.Store(false)
		job.ticker.Stop()
		close(job.stop)
	}
	close(l.done)
	l.wg.Wait()
}

// Driver owns at most one repeating job and can restart it at a new interval.
// It is not safe for concurrent use; call it from scheduler callbacks only.
type Driver struct {
	s        Scheduler
	fn       func()
	handle   Handle
	interval time.Duration
	running  bool
}

// NewDriver creates a stopped driver for fn.
func NewDriver(s Scheduler, fn func()) *Driver {
	return &Driver{s: s, fn: fn}
}

// Restart cancels the current job, if any, and starts a new one.
func (d *Driver) Restart(interval time.Duration) {
	d.Stop()
	d.handle = d.s.ScheduleRepeating(interval, d.fn)
	d.interval = interval
	d.running = true
}

// Stop cancels the current job. Stopping a stopped driver is a no-op.
func (d *Driver) Stop() {
	if !d.running {
		return
	}
	d.s.Cancel(d.handle)
	d.handle = 0
	d.running = false
}

// Interval returns the interval of the last Restart.
func (d *Driver) Interval() time.Duration {
	return d.interval
}

// Handle returns the live job's handle, or 0 when stopped.
func (d *Driver) Handle() Handle {
	return d.handle
}

// Running reports whether the driver has a live job.
func (d *Driver) Running() bool {
	return d.running
}
