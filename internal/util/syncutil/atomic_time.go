package syncutil

import "time"

// AtomicTime holds a time.Time shared between goroutines. The zero time
// means "never".
type AtomicTime = Atomic[time.Time]

// NewAtomicTime returns an AtomicTime holding initial.
func NewAtomicTime(initial time.Time) *AtomicTime {
	return NewAtomic(initial)
}

// SinceTime returns how long ago the stored time was, or zero if it was
// never set.
func SinceTime(at *AtomicTime) time.Duration {
	t := at.Load()
	if t.IsZero() {
		return 0
	}
	return time.Since(t)
}
