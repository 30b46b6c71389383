package tx

import (
	"sync"
	"time"
)

// Clock supplies the time used for sell-cycle accounting.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now
func (SystemClock) Now() time.Time { return time.Now() }

// Epoch is where a StepClock starts unless told otherwise: 2024-01-01 UTC.
var Epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// StepClock only moves when Advance or Set is called. Scenario replays and
// tests drive cycle boundaries with it.
type StepClock struct {
	mu  sync.RWMutex
	now time.Time
}

// NewStepClock returns a clock reading start, or Epoch for the zero time.
func NewStepClock(start time.Time) *StepClock {
	if start.IsZero() {
		start = Epoch
	}
	return &StepClock{now: start}
}

// Now returns the clock reading.
func (c *StepClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *StepClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set moves the clock to t, backwards included.
func (c *StepClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
