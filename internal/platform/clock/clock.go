// Package clock provides a small abstraction over wall-clock time so that
// scheduling logic can be tested against a frozen "now".
package clock

import (
	"sync"
	"time"
)

// Clock supplies the current time. Implementations must be safe for
// concurrent use.
type Clock interface {
	// Now returns the current time in UTC.
	Now() time.Time
}

// systemClock is the production Clock backed by time.Now.
type systemClock struct{}

// New returns a Clock backed by the system wall clock.
func New() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// FrozenClock is a Clock fixed at a configurable instant, for tests.
type FrozenClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFrozen returns a FrozenClock pinned at t.
func NewFrozen(t time.Time) *FrozenClock {
	return &FrozenClock{now: t.UTC()}
}

func (c *FrozenClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the frozen clock forward by d.
func (c *FrozenClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
