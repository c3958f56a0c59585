package domain

import "time"

// DayPlan is an ordered bundle of stops for a single day.
// It is either attached to exactly one (trip, day-index) slot, or unattached
// and held in the owner's holding area. TripID and DayIndex are nil together:
// both set means attached, both nil means unattached. A plan is never shared
// by two slots — placement moves are always detach-then-attach.
type DayPlan struct {
	ID        int64  `json:"id"`
	TripID    *int64 `json:"trip_id,omitempty"`
	DayIndex  *int   `json:"day_index,omitempty"`
	Name      string    `json:"name"`
	Memo      string    `json:"memo,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Attached reports whether the plan currently occupies a trip slot.
func (p DayPlan) Attached() bool {
	return p.TripID != nil && p.DayIndex != nil
}
