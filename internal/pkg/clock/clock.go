// Package clock provides injectable time for the simulation core.
// Rarity tiers, time-of-day evolution gates, and session expiry all
// read the clock through this interface so tests can pin the hour.
package clock

import "time"

// Clock provides time functionality
type Clock interface {
	Now() time.Time
}

// Real implements Clock using actual system time
type Real struct{}

// Now returns the current time
func (c *Real) Now() time.Time {
	return time.Now()
}

// New returns a new real clock
func New() Clock {
	return &Real{}
}

// Fixed implements Clock returning a settable instant, for tests
type Fixed struct {
	t time.Time
}

// NewFixed returns a clock frozen at t
func NewFixed(t time.Time) *Fixed {
	return &Fixed{t: t}
}

// Now returns the frozen instant
func (c *Fixed) Now() time.Time {
	return c.t
}

// Set moves the frozen instant
func (c *Fixed) Set(t time.Time) {
	c.t = t
}

// Advance moves the frozen instant forward by d
func (c *Fixed) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}
