package service

import "time"

// dateOnly truncates t to its calendar date in UTC. The ledger tracks
// activity per day, not per instant; every date persisted or compared by the
// engines goes through this first.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// sameDay reports whether a and b fall on the same calendar date.
func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
