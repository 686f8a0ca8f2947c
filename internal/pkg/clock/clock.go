// Package clock provides time utilities for the application
package clock

import "time"

// Clock provides time functionality
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}

// Real implements Clock using actual system time
type Real struct{}

// Now returns the current time
func (c *Real) Now() time.Time {
	return time.Now()
}

// Since returns the time elapsed since t
func (c *Real) Since(t time.Time) time.Duration {
	return time.Since(t)
}

// New returns a new real clock
func New() Clock {
	return &Real{}
}

// Fixed is a Clock frozen at one instant, for tests
type Fixed struct {
	At time.Time
}

// Now returns the fixed instant
func (c *Fixed) Now() time.Time {
	return c.At
}

// Since measures from the fixed instant
func (c *Fixed) Since(t time.Time) time.Duration {
	return c.At.Sub(t)
}
