// Package domain contains the core data types for the Wayplan trip planner.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (timeline, placement, repo, service, handler).
package domain

import "time"

// Trip represents a named, date-ranged sequence of day-index slots.
// Day indices run 1..DayCount; each slot holds at most one attached DayPlan.
type Trip struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	DayCount  int       `json:"day_count"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
