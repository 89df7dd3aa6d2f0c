package roster

import "time"

// =============================================================================
// HOLIDAY - Fixed-date or annually recurring calendar override
// =============================================================================

// Holiday is a calendar date that can override normal weekday applicability
// for shifts flagged AppliesOnHolidays.
type Holiday struct {
	ID        string
	Date      time.Time
	Name      string
	Recurring bool // true = matches the same month/day every year
}

// Matches reports whether the holiday falls on the given date: an exact
// year/month/day match for fixed holidays, a month/day match for recurring
// ones. Recurrence deliberately compares only month and day, so a holiday
// stored on Feb 29 recurs only in leap years.
func (h Holiday) Matches(date time.Time) bool {
	if h.Recurring {
		return SameMonthDay(h.Date, date)
	}
	return SameDay(h.Date, date)
}

// IsHoliday reports whether any holiday in the list falls on the given date.
// Linear scan; holiday lists are small and this stays allocation-free.
func IsHoliday(date time.Time, holidays []Holiday) bool {
	for _, h := range holidays {
		if h.Matches(date) {
			return true
		}
	}
	return false
}
