package roster

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// TIME OF DAY - Wall-clock hour/minute with no date component
// =============================================================================

const dateLayout = "2006-01-02"

// TimeOfDay is a wall-clock time within a day. It carries no date and no
// location; both come from the reference instant it is attached to.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses a strict "HH:MM" value. Anything else (missing
// colon, non-numeric fields, out-of-range hour or minute) is a validation
// error. Callers construct shift definitions through this so a malformed
// time fails at load time, not inside a resolver.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return TimeOfDay{}, fmt.Errorf("%w: %q is not HH:MM", ErrMalformedTime, s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: hour %q is not numeric", ErrMalformedTime, parts[0])
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: minute %q is not numeric", ErrMalformedTime, parts[1])
	}
	if hour < 0 || hour > 23 {
		return TimeOfDay{}, fmt.Errorf("%w: hour %d out of range 0..23", ErrMalformedTime, hour)
	}
	if minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: minute %d out of range 0..59", ErrMalformedTime, minute)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// MustTimeOfDay is ParseTimeOfDay for literals known to be well-formed.
// It panics on malformed input; use only with constants.
func MustTimeOfDay(s string) TimeOfDay {
	tod, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return tod
}

// At returns the instant on ref's calendar day at this wall-clock time,
// seconds and nanoseconds zeroed, in ref's location.
func (t TimeOfDay) At(ref time.Time) time.Time {
	return time.Date(ref.Year(), ref.Month(), ref.Day(), t.Hour, t.Minute, 0, 0, ref.Location())
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// =============================================================================
// INTERVAL AND DAY HELPERS
// =============================================================================

// BetweenInclusive reports start <= t <= end.
func BetweenInclusive(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// DayOf strips an instant to midnight of its calendar day, keeping the
// location.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two instants fall on the same calendar date, by
// field comparison rather than instant comparison, so mixed locations do not
// shift the answer.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// SameMonthDay reports whether two instants share month and day, ignoring
// the year. Used for recurring holiday matching.
func SameMonthDay(a, b time.Time) bool {
	return a.Month() == b.Month() && a.Day() == b.Day()
}

// compareDay orders two instants by calendar date only: -1, 0, or +1.
func compareDay(a, b time.Time) int {
	switch {
	case a.Year() != b.Year():
		return sign(a.Year() - b.Year())
	case a.Month() != b.Month():
		return sign(int(a.Month()) - int(b.Month()))
	default:
		return sign(a.Day() - b.Day())
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
