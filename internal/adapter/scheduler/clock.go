// Package scheduler provides frame schedulers and clocks that drive the
// visualization engine outside of a window toolkit.
package scheduler

import (
	"sync"
	"time"

	"github.com/tejashwikalptaru/wavescope/internal/ports"
)

// MonotonicClock measures time elapsed since it was created.
type MonotonicClock struct {
	origin time.Time
}

// NewMonotonicClock starts a clock at zero.
func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{origin: time.Now()}
}

// Now implements ports.Clock.
func (c *MonotonicClock) Now() time.Duration {
	return time.Since(c.origin)
}

// ManualClock only moves when told to. Used by tests and headless rendering.
//
// Thread-safety: This implementation is thread-safe.
type ManualClock struct {
	mu  sync.Mutex
	now time.Duration
}

// NewManualClock creates a clock reading start.
func NewManualClock(start time.Duration) *ManualClock {
	return &ManualClock{now: start}
}

// Now implements ports.Clock.
func (c *ManualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to t.
func (c *ManualClock) Set(t time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance moves the clock forward by d and returns the new reading.
func (c *ManualClock) Advance(d time.Duration) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += d
	return c.now
}

var (
	_ ports.Clock = (*MonotonicClock)(nil)
	_ ports.Clock = (*ManualClock)(nil)
)
