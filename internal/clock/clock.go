// Package clock
// Author: momentics <momentics@gmail.com>
//
// Stopwatch is the monotonic elapsed-time source the timer sweep uses to
// decide how much to subtract from every outstanding timer. time.Now() on
// Linux/Windows/macOS is already backed by a monotonic clock, so no
// platform-specific code is needed.
package clock

import "time"

// Stopwatch measures elapsed wall-clock time since construction or the last
// Reset, using Go's monotonic clock reading.
type Stopwatch struct {
	start time.Time
}

// NewStopwatch returns a Stopwatch started now.
func NewStopwatch() *Stopwatch {
	return &Stopwatch{start: time.Now()}
}

// Elapsed returns the time since construction or the last Reset.
func (s *Stopwatch) Elapsed() time.Duration {
	return time.Since(s.start)
}

// Reset restarts the stopwatch at the current time and returns the elapsed
// time since it was last started.
func (s *Stopwatch) Reset() time.Duration {
	now := time.Now()
	elapsed := now.Sub(s.start)
	s.start = now
	return elapsed
}
