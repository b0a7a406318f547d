package testutil

import (
	"sync"
	"time"
)

// ManualClock provides a thread-safe, manually advanced wall clock for
// tests.
//
// Injected into the store via store.WithClock, it pins created_at and
// updated_at to controlled values so ordering and updatedBefore /
// updatedAfter tests are deterministic.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type ManualClock struct {
	mu sync.Mutex
	t  time.Time
}

// NewManualClock creates a clock frozen at start.
//
// Time only moves when Advance or Set is called.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{t: start}
}

// Now returns the current frozen time.
//
// Pass as store.WithClock(c.Now).
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// Set jumps the clock to t.
//
// Used when a test needs an exact timestamp rather than a delta.
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}
