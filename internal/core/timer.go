package core

import "time"

// Checkpoint reports when a fixed period has elapsed, for long-running loops
// that periodically flush and reset accumulated state.
type Checkpoint struct {
	period time.Duration
	last   time.Time
	now    func() time.Time
}

// NewCheckpoint constructs a Checkpoint with the given period. A non-positive
// period disables it.
func NewCheckpoint(period time.Duration) *Checkpoint {
	return NewCheckpointWithClock(period, time.Now)
}

// NewCheckpointWithClock is NewCheckpoint with an injected clock.
func NewCheckpointWithClock(period time.Duration, now func() time.Time) *Checkpoint {
	return &Checkpoint{period: period, last: now(), now: now}
}

// Due reports whether the period has passed since the last time Due returned
// true (or since construction). When it returns true the timer restarts.
func (c *Checkpoint) Due() bool {
	if c.period <= 0 {
		return false
	}
	t := c.now()
	if t.Sub(c.last) < c.period {
		return false
	}
	c.last = t
	return true
}

// Period returns the configured period.
func (c *Checkpoint) Period() time.Duration { return c.period }
