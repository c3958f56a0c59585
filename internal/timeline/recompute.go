package timeline

import "github.com/obrandt/wayplan/internal/domain"

// Recompute derives every stop's start and end time from ordering, durations,
// and travel times in a single forward pass.
//
// The first stop keeps its pinned start time or defaults to DayStart. Every
// later stop begins at the previous stop's end plus its travel minutes — or
// at its own pinned start time when that is later, so a manual time is
// honored only if it is physically reachable. An earlier manual time is
// clamped forward; the 1-based positions of stops whose pinned time lost out
// are returned in adjusted so callers can tell the user which value won.
//
// The input is not mutated. The returned list has positions renumbered to a
// dense 1..N. Recompute is total and idempotent: recomputing its own output
// changes nothing and adjusts nothing.
func Recompute(stops []domain.Stop) (out []domain.Stop, adjusted []int) {
	if len(stops) == 0 {
		return stops, nil
	}

	out = make([]domain.Stop, len(stops))
	copy(out, stops)

	first := &out[0]
	if first.Start == "" {
		first.Start = DayStart
	}
	first.Position = 1
	first.End = AddMinutes(first.Start, first.Duration)

	for i := 1; i < len(out); i++ {
		prev, cur := &out[i-1], &out[i]
		// Earliest arrival is computed on the wrapped clock, matching the
		// rest of the arithmetic: no day-boundary carry is modeled.
		earliest := minutesOrZero(AddMinutes(prev.End, cur.Travel))

		start := earliest
		if cur.Start != "" {
			if manual := minutesOrZero(cur.Start); manual >= earliest {
				start = manual
			} else {
				adjusted = append(adjusted, i+1)
			}
		}

		cur.Position = i + 1
		cur.Start = ToClock(start)
		cur.End = ToClock(start + cur.Duration)
	}

	return out, adjusted
}
