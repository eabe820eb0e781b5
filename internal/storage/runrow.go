package storage

import "time"

// RunRow is a lightweight listing row for /runs.
type RunRow struct {
	ID           string    `json:"id"`
	StartedAt    time.Time `json:"started_at"`
	Path         string    `json:"path,omitempty"`
	FactsVersion string    `json:"facts_version,omitempty"`
	Failed       int       `json:"failed"`
	Warnings     int       `json:"warnings"`
}
