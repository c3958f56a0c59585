package timeline

import "github.com/obrandt/wayplan/internal/domain"

// Edit operations for a day's stop list. Each one applies a single local
// mutation and then runs the required reset-then-recompute sequence: every
// stop after the mutation point has its pinned start time cleared before the
// cascade runs, so a stale manual override cannot mask the new timing. The
// input slice is never mutated.

// InsertAt inserts stop before index i (0..len) and recomputes. The new
// stop's start is seeded from the end of the stop before it plus its travel
// minutes, or left unset at the front so it picks up the DayStart baseline.
func InsertAt(stops []domain.Stop, i int, stop domain.Stop) ([]domain.Stop, []int) {
	i = clampIndex(i, len(stops))

	if i > 0 {
		stop.Start = AddMinutes(stops[i-1].End, stop.Travel)
	} else {
		stop.Start = ""
	}

	out := make([]domain.Stop, 0, len(stops)+1)
	out = append(out, stops[:i]...)
	out = append(out, stop)
	out = append(out, stops[i:]...)

	return Recompute(clearManualAfter(out, i))
}

// RemoveAt deletes the stop at index i and recomputes. The stops that slide
// into the gap lose their pinned start times: the former successor now has a
// new predecessor (or none), so its old manual time no longer means anything.
func RemoveAt(stops []domain.Stop, i int) ([]domain.Stop, []int) {
	if i < 0 || i >= len(stops) {
		return Recompute(stops)
	}

	out := make([]domain.Stop, 0, len(stops)-1)
	out = append(out, stops[:i]...)
	out = append(out, stops[i+1:]...)

	if i == 0 && len(out) > 0 {
		// The new first stop has no predecessor to travel from.
		out[0].Travel = 0
	}

	return Recompute(clearManualAfter(out, i-1))
}

// Move relocates the stop at index from to index to and recomputes.
// Reordering is remove-then-reinsert; it has no arithmetic of its own.
func Move(stops []domain.Stop, from, to int) ([]domain.Stop, []int) {
	if from < 0 || from >= len(stops) || from == to {
		return Recompute(stops)
	}
	to = clampIndex(to, len(stops)-1)

	moved := stops[from]
	rest := make([]domain.Stop, 0, len(stops))
	rest = append(rest, stops[:from]...)
	rest = append(rest, stops[from+1:]...)

	out := make([]domain.Stop, 0, len(stops))
	out = append(out, rest[:to]...)
	out = append(out, moved)
	out = append(out, rest[to:]...)

	lo := from
	if to < lo {
		lo = to
	}
	return Recompute(clearManualAfter(out, lo-1))
}

// UpdateAt replaces the stop at index i in place and recomputes. Later stops
// lose their pinned start times so the edit cascades cleanly forward.
func UpdateAt(stops []domain.Stop, i int, stop domain.Stop) ([]domain.Stop, []int) {
	if i < 0 || i >= len(stops) {
		return Recompute(stops)
	}

	out := make([]domain.Stop, len(stops))
	copy(out, stops)
	out[i] = stop

	return Recompute(clearManualAfter(out, i))
}

// clearManualAfter returns a copy of stops with Start cleared on every stop
// strictly after index i. Pass -1 to clear the whole list back to defaults.
func clearManualAfter(stops []domain.Stop, i int) []domain.Stop {
	out := make([]domain.Stop, len(stops))
	copy(out, stops)
	for j := range out {
		if j > i {
			out[j].Start = ""
		}
	}
	return out
}

// clampIndex confines i to the insertable range 0..n.
func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
