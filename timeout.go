package regwatch

import (
	"math"
	"time"
)

// Timeout bounds how long a single watch blocks, in milliseconds.
type Timeout uint32

// Infinite blocks until a change is observed.
const Infinite = Timeout(math.MaxUint32)

// Milli returns a finite timeout. Milli(0) polls without blocking.
func Milli(ms uint32) Timeout {
	if ms == math.MaxUint32 {
		ms--
	}
	return Timeout(ms)
}

// FromDuration converts d to a finite timeout, rounding down to whole milliseconds. Negative durations
// become an immediate poll.
func FromDuration(d time.Duration) Timeout {
	if d <= 0 {
		return 0
	}
	ms := d.Milliseconds()
	if ms >= math.MaxUint32 {
		return Timeout(math.MaxUint32 - 1)
	}
	return Timeout(ms)
}

// IsInfinite reports whether t never elapses.
func (t Timeout) IsInfinite() bool {
	return t == Infinite
}

// Duration returns the timeout as a duration, or a negative duration for Infinite.
func (t Timeout) Duration() time.Duration {
	if t.IsInfinite() {
		return -1
	}
	return time.Duration(t) * time.Millisecond
}
