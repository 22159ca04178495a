package ui

import "time"

// AlertTimeout is how long non-loading alerts stay up.
const AlertTimeout = 4000 * time.Millisecond

// Clock schedules alert dismissal.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type Timer interface {
	Stop() bool
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealClock returns a Clock backed by time.AfterFunc.
func RealClock() Clock {
	return realClock{}
}
