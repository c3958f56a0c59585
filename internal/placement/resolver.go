// Package placement decides what happens to the day plans already occupying
// a trip when another plan is moved in. The resolver is pure: it observes
// the current occupancy, computes the complete outcome of a move — every
// reassignment, detach, and discard — and returns it without touching
// anything. The caller applies the outcome in a single transaction, so a
// move either fully happens or not at all; there is no partial-shift state
// to recover from.
package placement

import (
	"fmt"
	"sort"

	"github.com/obrandt/wayplan/internal/domain"
)

// Mode selects the conflict policy for a move onto an occupied slot.
type Mode string

const (
	// Replace permanently discards the occupant of the target slot.
	Replace Mode = "replace"
	// Shift moves every occupied slot from the target day onward one day
	// later to free the target. Fails when a plan would be pushed past the
	// trip's last day.
	Shift Mode = "shift"
	// Independent detaches the occupant into the holding area, preserved.
	Independent Mode = "independent"
	// Swap exchanges the source and target occupants' slots.
	Swap Mode = "swap"
)

// ParseMode converts a wire-level mode string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case Replace, Shift, Independent, Swap:
		return Mode(s), nil
	}
	return "", fmt.Errorf("%w: unknown placement mode %q", domain.ErrValidation, s)
}

// Source identifies the plan being moved and, when it is currently attached,
// the slot it is moving out of.
type Source struct {
	PlanID   int64
	TripID   *int64
	DayIndex *int
}

// Target describes the destination trip as the resolver observes it:
// its day count and which plan occupies each day index.
type Target struct {
	TripID    int64
	DayCount  int
	Occupancy map[int]int64 // day index -> occupying plan id
}

// Assignment attaches one plan to one (trip, day-index) slot.
type Assignment struct {
	PlanID   int64
	TripID   int64
	DayIndex int
}

// Outcome is the fully computed effect of one move. Attach lists every slot
// assignment to apply (the moved plan's own attachment included), Detach the
// plans bumped into the holding area, and Discard the plans deleted outright.
// Slices never overlap: a plan appears in at most one of them.
type Outcome struct {
	Attach  []Assignment
	Detach  []int64
	Discard []int64
}

// Resolve computes the outcome of placing src at target day index dayIndex
// under the given mode. It returns domain.ErrValidation for an out-of-range
// day index and domain.ErrConflict when a SHIFT would overflow the trip.
// Nothing is mutated; the caller owns applying the outcome atomically.
func Resolve(src Source, target Target, dayIndex int, mode Mode) (Outcome, error) {
	if dayIndex < 1 || dayIndex > target.DayCount {
		return Outcome{}, fmt.Errorf("placement.Resolve: %w: day index %d outside 1..%d",
			domain.ErrValidation, dayIndex, target.DayCount)
	}

	// The source never blocks its own move: moving a plan onto the slot it
	// already occupies, or shifting it along with the rest, makes no sense.
	occupancy := make(map[int]int64, len(target.Occupancy))
	for idx, planID := range target.Occupancy {
		if planID != src.PlanID {
			occupancy[idx] = planID
		}
	}

	out := Outcome{
		Attach: []Assignment{{PlanID: src.PlanID, TripID: target.TripID, DayIndex: dayIndex}},
	}

	occupant, occupied := occupancy[dayIndex]
	if !occupied {
		return out, nil
	}

	switch mode {
	case Replace:
		out.Discard = append(out.Discard, occupant)

	case Shift:
		shifted, err := shiftFrom(occupancy, dayIndex, target)
		if err != nil {
			return Outcome{}, err
		}
		// Shifts come first, highest day index first, so a caller applying
		// assignments in order never lands two plans on one slot.
		out.Attach = append(shifted, out.Attach...)

	case Independent:
		out.Detach = append(out.Detach, occupant)

	case Swap:
		if src.TripID != nil && src.DayIndex != nil {
			out.Attach = append(out.Attach, Assignment{
				PlanID: occupant, TripID: *src.TripID, DayIndex: *src.DayIndex,
			})
		} else {
			// An unattached source has no slot to hand over, so the
			// occupant is preserved in the holding area instead.
			out.Detach = append(out.Detach, occupant)
		}

	default:
		return Outcome{}, fmt.Errorf("placement.Resolve: %w: unknown placement mode %q",
			domain.ErrValidation, mode)
	}

	return out, nil
}

// shiftFrom computes the +1 reassignment for every occupied slot at or after
// dayIndex, ordered by descending day index. The whole cascade is computed
// before anything is returned, so a rejected shift leaves no partial result
// behind.
func shiftFrom(occupancy map[int]int64, dayIndex int, target Target) ([]Assignment, error) {
	var indices []int
	for idx := range occupancy {
		if idx >= dayIndex {
			indices = append(indices, idx)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(indices)))

	var shifted []Assignment
	for _, idx := range indices {
		if idx+1 > target.DayCount {
			return nil, fmt.Errorf("placement.Resolve: %w: shift would push day %d past the trip's last day %d",
				domain.ErrConflict, idx, target.DayCount)
		}
		shifted = append(shifted, Assignment{
			PlanID: occupancy[idx], TripID: target.TripID, DayIndex: idx + 1,
		})
	}
	return shifted, nil
}
