package sequence

import (
	"sync"
	"time"
)

// DefaultAutoSaveDelay is how long the auto-save path waits after the last
// edit before firing.
const DefaultAutoSaveDelay = 800 * time.Millisecond

// Debouncer runs a function after a quiet period. Each Trigger cancels the
// pending run and restarts the timer, so only the last call within a burst
// fires. Safe for concurrent use.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

// NewDebouncer creates a debouncer with the given quiet period.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultAutoSaveDelay
	}
	return &Debouncer{delay: delay}
}

// Trigger schedules fn to run after the quiet period, replacing any
// previously scheduled function.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending run.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Flush cancels the pending timer and runs fn immediately if a run was
// pending. Used when a manual save preempts the auto-save window.
func (d *Debouncer) Flush(fn func()) {
	d.mu.Lock()
	pending := d.timer != nil && d.timer.Stop()
	d.timer = nil
	d.mu.Unlock()
	if pending {
		fn()
	}
}
