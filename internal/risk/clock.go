package risk

import "time"

// Clock supplies the current time so calendar-day boundaries are testable
// without wall-clock timing.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall clock.
func SystemClock() Clock { return systemClock{} }

// calendarDay collapses a time to its local calendar day, the unit the
// daily P&L reset compares against.
func calendarDay(t time.Time) string {
	return t.Format("2006-01-02")
}
