package timectrl

import (
	"sync"
	"time"
)

// Clock is the time source used by solver components. Depending on an
// interface keeps wall-clock budgets testable.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock reads the wall clock.
type RealClock struct{}

// Now implements Clock.
func (RealClock) Now() time.Time { return time.Now() }

// ManualClock is a Clock that only moves when told to. It can optionally
// advance itself by a fixed tick on every read, which lets tests drive a
// time budget through the number of polls.
type ManualClock struct {
	mu          sync.Mutex
	currentTime time.Time
	tick        time.Duration
}

// NewManualClock returns a clock frozen at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{currentTime: start}
}

// NewSteppingClock returns a clock starting at start that advances by tick
// after every call to Now.
func NewSteppingClock(start time.Time, tick time.Duration) *ManualClock {
	return &ManualClock{currentTime: start, tick: tick}
}

// Now implements Clock.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.currentTime
	c.currentTime = c.currentTime.Add(c.tick)
	return now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentTime = c.currentTime.Add(d)
}

// SetTime jumps the clock to t.
func (c *ManualClock) SetTime(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentTime = t
}
