package assistant

import "time"

// Timer is a scheduled continuation that can be cancelled before it runs.
type Timer interface {
	// Stop reports whether the call prevented the continuation from running.
	Stop() bool
}

type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

// RealClock schedules continuations with time.AfterFunc.
func RealClock() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
