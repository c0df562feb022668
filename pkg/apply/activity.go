package apply

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Activity is the apply activity counter: how many applies are in flight
// and when the last one completed. All access is serialized.
type Activity struct {
	mu            sync.Mutex
	clock         clockwork.Clock
	inFlight      int
	lastCompleted time.Time
	lastProfile   string
}

// ActivitySnapshot is a consistent copy of the counter.
type ActivitySnapshot struct {
	InFlight      int
	LastCompleted time.Time
	LastProfile   string
}

// NewActivity returns an idle counter.
func NewActivity(clock clockwork.Clock) *Activity {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Activity{clock: clock}
}

// Acquire records a run entering the pipeline and returns the new count.
func (a *Activity) Acquire() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.inFlight++
	return a.inFlight
}

// Release records a run leaving the pipeline. The count never drops
// below zero, so a double release is harmless.
func (a *Activity) Release() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.inFlight > 0 {
		a.inFlight--
	}
	return a.inFlight
}

// Complete stamps a successful completion of profile.
func (a *Activity) Complete(profile string) time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastCompleted = a.clock.Now()
	a.lastProfile = profile
	return a.lastCompleted
}

// Recent reports whether profile was the last to complete and did so less
// than window ago.
func (a *Activity) Recent(profile string, window time.Duration) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if window <= 0 || a.lastProfile != profile || a.lastCompleted.IsZero() {
		return false
	}
	return a.clock.Since(a.lastCompleted) < window
}

// Snapshot returns the current counter values.
func (a *Activity) Snapshot() ActivitySnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return ActivitySnapshot{
		InFlight:      a.inFlight,
		LastCompleted: a.lastCompleted,
		LastProfile:   a.lastProfile,
	}
}
