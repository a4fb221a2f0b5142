package engine

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// It decides which day "today" is when no date is supplied.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Today returns the current UTC calendar date according to c.
func Today(c Clock) GregorianDate {
	return FromTime(c.Now())
}
