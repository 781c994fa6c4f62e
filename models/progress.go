package models

import "time"

// ProgressEntry is one append-only record of a completed task. Entries are
// never mutated or deleted, only appended.
type ProgressEntry struct {
	// Email identifies the user the entry belongs to.
	Email string `json:"email"`

	// Date is the calendar date of completion.
	Date time.Time `json:"date"`

	// Task is the catalog name of the completed task.
	Task string `json:"task"`

	// Points is the award granted for this completion.
	Points int `json:"points"`

	// Report is the mandatory free-text activity report.
	Report string `json:"report"`
}

// DailyPoints is one bucket of the trailing points-per-day summary used by
// the dashboard chart.
type DailyPoints struct {
	Date   time.Time `json:"date"`
	Points int       `json:"points"`
}

// LeaderboardEntry is one row of the points ranking.
type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	Name   string `json:"name"`
	Points int    `json:"points"`
	Level  Level  `json:"level"`
}
