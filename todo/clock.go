package todo

import "time"

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current time without a monotonic reading, so values
// survive a JSON round trip unchanged.
func (SystemClock) Now() time.Time {
	return time.Now().Round(0)
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

// Now calls fn.
func (fn ClockFunc) Now() time.Time {
	return fn()
}
