package resilience

import (
	"sync"
	"time"
)

// DefaultDebounceDelay is the default quiet period before the debounced
// action fires.
const DefaultDebounceDelay = 500 * time.Millisecond

// Debouncer coalesces rapid successive triggers into a single downstream
// call after a quiet period.
//
// The downstream func receives no arguments: it must read the latest
// state at fire time from its own source of truth, never values captured
// when the trigger was scheduled.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	fn      func()
	timer   *time.Timer
	stopped bool
}

// NewDebouncer creates a debouncer that invokes fn after delay of quiet.
// A non-positive delay falls back to DefaultDebounceDelay.
func NewDebouncer(delay time.Duration, fn func()) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}
	return &Debouncer{
		delay: delay,
		fn:    fn,
	}
}

// Trigger restarts the quiet window. Any pending timer is cancelled and
// a new one scheduled; the downstream func fires exactly once per settle.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	d.fn()
}

// Stop cancels any pending timer and suppresses all future firings.
// Safe to call more than once. Must be called at teardown so the
// debouncer never acts on a destroyed context.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Pending reports whether a trigger is waiting to fire.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}
