package debounce

import (
	"sync"
	"time"
)

// Debouncer delays a task until a quiet interval has passed since the last Trigger.
type Debouncer struct {
	sched    Scheduler
	interval time.Duration

	mu      sync.Mutex
	gen     uint64
	timer   Timer
	stopped bool
}

// New returns a Debouncer. A nil scheduler means RealTime.
func New(s Scheduler, interval time.Duration) *Debouncer {
	if s == nil {
		s = RealTime{}
	}
	return &Debouncer{sched: s, interval: interval}
}

// Interval returns the quiet interval.
func (d *Debouncer) Interval() time.Duration { return d.interval }

// Trigger schedules fn, cancelling any pending task. It is a no-op after Stop.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.cancelLocked()
	gen := d.gen
	d.timer = d.sched.AfterFunc(d.interval, func() {
		d.mu.Lock()
		if d.gen != gen || d.stopped {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		fn()
	})
}

// Cancel drops the pending task, if any, and reports whether there was one.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cancelLocked()
}

// Pending reports whether a task is scheduled and has not run yet.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Stop cancels the pending task and disables further triggers.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
	d.stopped = true
}

func (d *Debouncer) cancelLocked() bool {
	d.gen++
	if d.timer == nil {
		return false
	}
	d.timer.Stop()
	d.timer = nil
	return true
}
