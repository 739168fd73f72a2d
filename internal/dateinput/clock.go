package dateinput

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// The Machine uses it to anchor the internal reference date when no seed
// or prior value is available.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}
