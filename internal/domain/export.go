package domain

// ExportRow is a single row in the full-data export.
// It is a flat, denormalized view: one row per stop, with trip and day-plan
// fields repeated for every stop. Trips with no attached day plans yield one
// row with zero values for all plan and stop fields; plans with no stops
// yield one row with zero values for the stop fields.
type ExportRow struct {
	// Trip fields — repeated for every stop on the trip.
	TripID        int64
	TripName      string
	TripStartDate string // "2006-01-02" formatted date

	// Day-plan fields — zero values when the trip has no plans.
	DayIndex int // 0 when the row carries no plan
	DayName  string

	// Stop fields — zero values when the plan has no stops.
	StopName  string
	StartTime string // "HH:MM", empty when the row carries no stop
	EndTime   string
	Duration  int // minutes
	Travel    int // minutes from the previous stop
	Mode      TransportMode
	Notes     string // cleaned stay memo, no machine tags
}
