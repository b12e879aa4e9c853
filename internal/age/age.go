// Package age measures how far a timestamp is from now.
package age

import "time"

// Until returns the distance from now to t and whether t has already
// passed. The distance is never negative.
func Until(t time.Time, now time.Time) (time.Duration, bool) {
	if t.After(now) {
		return t.Sub(now), false
	}
	return now.Sub(t), true
}
