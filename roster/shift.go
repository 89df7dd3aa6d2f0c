/*
shift.go - Shift activity resolution

PURPOSE:
  Determines which shift definitions are active at a reference instant,
  including shifts that cross midnight. A night shift has TWO candidate
  occurrences covering any instant: the one anchored to today's entry and
  the one anchored to yesterday's. Both must be checked against their own
  day's validity (weekday membership or holiday override).

THE SHARED PREDICATE:
  activeAt() is the single interval algorithm in this package. Both the
  set-valued activity resolver (ActiveShifts) and the per-employee duty
  resolver (duty.go) call it, so the two entry points can never disagree
  about a window.
*/
package roster

import "time"

// activeAt reports whether the shift is active at now.
//
// Day shifts: today must be a valid day and now must fall inside
// [entry, exit] anchored to today, inclusive on both ends.
//
// Night shifts: the exit anchored to today is pushed to the next calendar
// day, then two occurrences are tested: today's window against today's
// validity, and yesterday's window (both bounds shifted back one day)
// against yesterday's validity.
func activeAt(shift ShiftDefinition, now time.Time, holidays []Holiday) bool {
	entryToday := shift.Entry.At(now)
	exitToday := shift.Exit.At(now)

	todayValid := shift.Weekdays.Contains(now.Weekday()) ||
		(shift.AppliesOnHolidays && IsHoliday(now, holidays))

	if !shift.IsNightShift() {
		return todayValid && BetweenInclusive(now, entryToday, exitToday)
	}

	// Exit occurs on the calendar day after entry.
	exitToday = exitToday.AddDate(0, 0, 1)

	yesterday := now.AddDate(0, 0, -1)
	yesterdayValid := shift.Weekdays.Contains(yesterday.Weekday()) ||
		(shift.AppliesOnHolidays && IsHoliday(yesterday, holidays))

	activeToday := todayValid && BetweenInclusive(now, entryToday, exitToday)
	activeFromYesterday := yesterdayValid &&
		BetweenInclusive(now, entryToday.AddDate(0, 0, -1), exitToday.AddDate(0, 0, -1))

	return activeToday || activeFromYesterday
}

// ActiveShifts returns every shift definition active at now. The result is a
// set: overlapping shifts are all reported, no precedence is imposed, and
// any display ordering is a presentation concern. Input order is preserved.
func ActiveShifts(now time.Time, shifts []ShiftDefinition, holidays []Holiday) []ShiftDefinition {
	var active []ShiftDefinition
	for _, s := range shifts {
		if activeAt(s, now, holidays) {
			active = append(active, s)
		}
	}
	return active
}

// ActiveShiftNames returns the names of the shifts active at now.
func ActiveShiftNames(now time.Time, shifts []ShiftDefinition, holidays []Holiday) []string {
	active := ActiveShifts(now, shifts, holidays)
	names := make([]string, len(active))
	for i, s := range active {
		names[i] = s.Name
	}
	return names
}

// ActiveTasks returns the union of the task labels of all shifts active at
// now, deduplicated, in first-seen order. The task entry form uses this to
// scope selectable tasks to the current shift.
func ActiveTasks(now time.Time, shifts []ShiftDefinition, holidays []Holiday) []string {
	seen := make(map[string]bool)
	var tasks []string
	for _, s := range ActiveShifts(now, shifts, holidays) {
		for _, task := range s.Tasks {
			if !seen[task] {
				seen[task] = true
				tasks = append(tasks, task)
			}
		}
	}
	return tasks
}
