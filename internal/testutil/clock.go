// Package testutil provides deterministic helpers for tests.
package testutil

import (
	"sync"
	"time"
)

// SteppedClock is a thread-safe wall clock that advances by a fixed step
// on every read. It replaces the system clock wherever timestamps or
// millisecond-derived ids must be reproducible.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type SteppedClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// NewSteppedClock creates a clock starting at start, advancing by step per
// Now() call. A zero step yields a frozen clock.
func NewSteppedClock(start time.Time, step time.Duration) *SteppedClock {
	return &SteppedClock{now: start, step: step}
}

// Now returns the current time, then advances the clock by one step.
func (c *SteppedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// Set repositions the clock. Used to simulate wall-clock regressions.
func (c *SteppedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
