// Package timelimit carries the monotonic (start, deadline) pair every
// heuristic self-checks to terminate promptly (spec.md §5).
package timelimit

import "time"

// TimeLimit is a deadline expressed as a duration budget from a fixed
// start instant, checked against the monotonic clock.
type TimeLimit struct {
	start    time.Time
	deadline time.Duration
}

// New starts a TimeLimit with the given budget in seconds. A
// non-positive budget expires immediately on the first check.
func New(seconds float64) TimeLimit {
	return TimeLimit{start: time.Now(), deadline: time.Duration(seconds * float64(time.Second))}
}

// Expired reports whether the budget has elapsed.
func (t TimeLimit) Expired() bool {
	return time.Since(t.start) >= t.deadline
}

// Remaining returns the time left before expiry (negative once expired).
func (t TimeLimit) Remaining() time.Duration {
	return t.deadline - time.Since(t.start)
}
