// Package timeline keeps a day's ordered stop list chronologically
// consistent. It is pure: every function takes and returns values, touches no
// storage, and is safe to call on the request goroutine.
//
// Times are wall-clock "HH:MM" strings because the domain is a single-day
// schedule — minute arithmetic wraps modulo one day and no date or time zone
// is ever involved.
package timeline

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DayStart is the default start time for the first stop of a day when the
// user has not pinned one.
const DayStart = "10:00"

// minutesPerDay is the wrap modulus for all clock arithmetic.
const minutesPerDay = 24 * 60

// ErrInvalidTimeFormat is returned by ToMinutes for input that is not an
// "HH:MM" wall-clock value.
var ErrInvalidTimeFormat = errors.New("invalid time format")

// ToMinutes parses an "HH:MM" wall-clock value into minutes since midnight.
// An empty string is treated as 0 rather than an error, because callers use
// it defensively on optional fields.
func ToMinutes(clock string) (int, error) {
	if clock == "" {
		return 0, nil
	}
	h, m, ok := strings.Cut(clock, ":")
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, clock)
	}
	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, clock)
	}
	minutes, err := strconv.Atoi(m)
	if err != nil || len(m) != 2 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, clock)
	}
	return hours*60 + minutes, nil
}

// ToClock is the inverse of ToMinutes. Values are taken modulo one day and
// negative results wrap forward into the valid range; no day-boundary carry
// is modeled.
func ToClock(minutes int) string {
	minutes %= minutesPerDay
	if minutes < 0 {
		minutes += minutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// AddMinutes returns clock advanced by delta minutes, wrapped into the day.
func AddMinutes(clock string, delta int) string {
	return ToClock(minutesOrZero(clock) + delta)
}

// minutesOrZero parses clock, degrading malformed input to 0. The recompute
// cascade must be total, so a corrupt stored time never aborts it.
func minutesOrZero(clock string) int {
	m, err := ToMinutes(clock)
	if err != nil {
		return 0
	}
	return m
}
