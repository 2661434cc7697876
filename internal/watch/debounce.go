// Package watch debounces bursts of input and reports scan folder changes.
package watch

import (
	"sync"
	"time"
)

// DefaultInterval is the quiet period after the last trigger before the
// pending call runs.
const DefaultInterval = 300 * time.Millisecond

// Debouncer runs only the last of a burst of calls, once the burst has been
// quiet for the interval. At most one call is pending at a time.
type Debouncer struct {
	interval time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending func()
	stopped bool
	running sync.WaitGroup
}

// NewDebouncer creates a debouncer. A non-positive interval uses DefaultInterval.
func NewDebouncer(interval time.Duration) *Debouncer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Debouncer{interval: interval}
}

// Interval returns the quiet period.
func (d *Debouncer) Interval() time.Duration {
	return d.interval
}

// Trigger cancels the pending call, if any, and schedules fn.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.cancelLocked()
	d.pending = fn
	d.running.Add(1)
	d.timer = time.AfterFunc(d.interval, func() {
		defer d.running.Done()
		fn()
	})
}

// Flush runs the pending call now instead of waiting for the interval, then
// waits for any call already started.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	fn := d.pending
	if d.timer == nil || !d.timer.Stop() {
		fn = nil
	} else {
		d.running.Done()
	}
	d.timer = nil
	d.pending = nil
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
	d.running.Wait()
}

// Stop cancels the pending call. Later triggers are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.cancelLocked()
}

func (d *Debouncer) cancelLocked() {
	if d.timer != nil && d.timer.Stop() {
		d.running.Done()
	}
	d.timer = nil
	d.pending = nil
}
