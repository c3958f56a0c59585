package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransportMode is how the traveller reaches a stop from the previous one.
type TransportMode string

const (
	ModeWalk    TransportMode = "walk"
	ModeCar     TransportMode = "car"
	ModeTransit TransportMode = "transit"
	ModeBike    TransportMode = "bike"
)

// StopRef identifies a stop either by its database key or, before the first
// save, by a locally assigned placeholder key. Exactly one of the two fields
// is meaningful: ID is zero until the persistence layer assigns a real key,
// and LocalKey is dropped once it has.
type StopRef struct {
	ID       int64
	LocalKey uuid.UUID
}

// NewLocalRef returns a StopRef for a stop created locally and not yet saved.
func NewLocalRef() StopRef {
	return StopRef{LocalKey: uuid.New()}
}

// PersistedRef returns a StopRef for a stop with a database-assigned key.
func PersistedRef(id int64) StopRef {
	return StopRef{ID: id}
}

// Persisted reports whether the stop has a durable database key.
func (r StopRef) Persisted() bool {
	return r.ID != 0
}

// Stop is one scheduled visit within a day plan.
//
// Start and End are wall-clock "HH:MM" strings; an empty Start means the user
// has not pinned a time and the recompute cascade fills it in. End is always
// derived (Start plus Duration) and never authoritative input. Travel is the
// minutes needed to reach this stop from the previous one; it is zero for the
// first stop of a day.
//
// A stop without a PlaceID describes its place inline via Note.Place (a
// provisional place) or, at minimum, a non-empty Name. That precondition is
// checked at save time by the service layer, not by the timeline engine.
type Stop struct {
	Ref       StopRef
	DayPlanID int64
	Position  int // dense, 1-based within the day after recomputation
	PlaceID   *int64
	Name      string

	Start    string // "HH:MM", empty when unset
	Duration int    // stay length, minutes
	End      string // derived: Start + Duration
	Travel   int    // minutes from the previous stop; 0 for the first stop
	Mode     TransportMode

	Note       Annotation
	TravelNote TravelAnnotation

	CreatedAt time.Time
	UpdatedAt time.Time
}
