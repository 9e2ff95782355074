package util

import "time"

// Clock returns the current time. Tests substitute a fixed one.
type Clock func() time.Time

// NowUTC is the default Clock.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// Expired reports whether deadline is set and has passed at now.
func Expired(deadline, now time.Time) bool {
	if deadline.IsZero() {
		return false
	}
	return !deadline.After(now)
}
