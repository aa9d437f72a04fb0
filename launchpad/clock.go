package launchpad

import (
	"sync"
	"time"
)

// Clock supplies the current time as a monotonically non-decreasing
// millisecond timestamp. The core never reads a system clock directly;
// the host environment decides what "now" means.
type Clock interface {
	Now() uint64
}

// SystemClock is a Clock backed by the wall clock.
type SystemClock struct{}

func (SystemClock) Now() uint64 {
	return uint64(time.Now().UnixMilli())
}

// ManualClock is a Clock advanced explicitly, for tests and simulations.
type ManualClock struct {
	mu sync.Mutex
	t  uint64
}

// NewManualClock creates a manual clock starting at t.
func NewManualClock(t uint64) *ManualClock {
	return &ManualClock{t: t}
}

func (c *ManualClock) Now() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

// Advance moves the clock forward by d milliseconds.
func (c *ManualClock) Advance(d uint64) {
	c.mu.Lock()
	c.t += d
	c.mu.Unlock()
}

// Set moves the clock to t. Moving backwards is ignored.
func (c *ManualClock) Set(t uint64) {
	c.mu.Lock()
	if t > c.t {
		c.t = t
	}
	c.mu.Unlock()
}
