package watch

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultDebounce is the quiescence interval used when none is configured.
const DefaultDebounce = 400 * time.Millisecond

// Debouncer collapses bursts of Trigger calls into a single call of fn,
// made once no Trigger has arrived for the delay.
type Debouncer struct {
	clock clockwork.Clock
	delay time.Duration
	fn    func()

	mu      sync.Mutex
	timer   clockwork.Timer
	stopped bool
}

// NewDebouncer returns a Debouncer calling fn. A nil clock uses real time.
func NewDebouncer(clock clockwork.Clock, delay time.Duration, fn func()) *Debouncer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{clock: clock, delay: delay, fn: fn}
}

// Trigger restarts the quiescence timer.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = d.clock.AfterFunc(d.delay, d.fire)
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Stop drops any pending call. Later Triggers are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
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
