package sched

import (
	"sort"
	"time"
)

// Manual is a Scheduler driven by a virtual clock. Nothing runs until
// Advance or RunPending is called, which makes it suited to tests.
type Manual struct {
	epoch  time.Time
	now    time.Duration
	next   Handle
	jobs   map[Handle]*manualJob
	posted []func()
}

type manualJob struct {
	interval time.Duration
	due      time.Duration
	fn       func()
}

// NewManual creates a manual scheduler whose clock starts at epoch.
func NewManual(epoch time.Time) *Manual {
	return &Manual{
		epoch: epoch,
		jobs:  make(map[Handle]*manualJob),
	}
}

// Now returns the virtual time.
func (m *Manual) Now() time.Time {
	return m.epoch.Add(m.now)
}

// Post queues fn for the next RunPending or Advance.
func (m *Manual) Post(fn func()) {
	m.posted = append(m.posted, fn)
}

// ScheduleRepeating registers fn to run every interval of virtual time.
func (m *Manual) ScheduleRepeating(interval time.Duration, fn func()) Handle {
	m.next++
	m.jobs[m.next] = &manualJob{
		interval: interval,
		due:      m.now + interval,
		fn:       fn,
	}
	return m.next
}

// Cancel removes a job.
func (m *Manual) Cancel(h Handle) {
	delete(m.jobs, h)
}

// Active returns the number of live repeating jobs.
func (m *Manual) Active() int {
	return len(m.jobs)
}

// Interval returns the interval of a live job, or false if it is not live.
func (m *Manual) Interval(h Handle) (time.Duration, bool) {
	job, ok := m.jobs[h]
	if !ok {
		return 0, false
	}
	return job.interval, true
}

// RunPending runs posted callbacks, including ones they post, until the
// queue is empty.
func (m *Manual) RunPending() {
	for len(m.posted) > 0 {
		fn := m.posted[0]
		m.posted = m.posted[1:]
		fn()
	}
}

// Advance moves the clock forward by d, firing every job that comes due in
// time order. Jobs due at the same instant fire in scheduling order.
func (m *Manual) Advance(d time.Duration) {
	m.RunPending()
	target := m.now + d
	for {
		job := m.earliest()
		if job == nil || job.due > target {
			break
		}
		m.now = job.due
		job.due += job.interval
		job.fn()
		m.RunPending()
	}
	m.now = target
}

func (m *Manual) earliest() *manualJob {
	handles := make([]Handle, 0, len(m.jobs))
	for h := range m.jobs {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	var best *manualJob
	for _, h := range handles {
		job := m.jobs[h]
		if best == nil || job.due < best.due {
			best = job
		}
	}
	return best
}
