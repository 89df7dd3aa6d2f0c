/*
shift_test.go - Shift activity resolution tests

ORGANIZATION:
  Shared test helpers live at the top of this file and are used across the
  package tests. Dates are fixed so every test is deterministic:
  2024-01-01 is a Monday.

READING THESE TESTS:
  Each test has a descriptive name, GIVEN/WHEN/THEN comments explaining the
  scenario, and assertions with explanatory messages.
*/
package roster_test

import (
	"testing"
	"time"

	"github.com/warp/duty-engine/roster"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// at returns a UTC instant. 2024-01-01 is a Monday.
func at(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}

func day(year int, month time.Month, d int) time.Time {
	return at(year, month, d, 0, 0)
}

func mustShift(t *testing.T, name, entry, exit string, weekdays roster.WeekdaySet, onHolidays bool, tasks ...string) roster.ShiftDefinition {
	t.Helper()
	shift, err := roster.NewShiftDefinition(roster.ShiftID("id-"+name), name, entry, exit, weekdays, onHolidays, tasks...)
	if err != nil {
		t.Fatalf("NewShiftDefinition(%s): %v", name, err)
	}
	return shift
}

func weekdaysMonFri() roster.WeekdaySet {
	return roster.NewWeekdaySet(time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday)
}

func allWeekdays() roster.WeekdaySet {
	return roster.NewWeekdaySet(time.Sunday, time.Monday, time.Tuesday,
		time.Wednesday, time.Thursday, time.Friday, time.Saturday)
}

func activeNames(t *testing.T, now time.Time, shifts []roster.ShiftDefinition, holidays []roster.Holiday) map[string]bool {
	t.Helper()
	names := make(map[string]bool)
	for _, s := range roster.ActiveShifts(now, shifts, holidays) {
		names[s.Name] = true
	}
	return names
}

// =============================================================================
// DAY SHIFT TESTS
// =============================================================================

func TestActiveShifts_DayShift_InsideWindow(t *testing.T) {
	// GIVEN: A Mon-Fri day shift 08:00-16:00
	// WHEN: Resolving at Monday 10:30
	// THEN: The shift is active

	shift := mustShift(t, "Mañana", "08:00", "16:00", weekdaysMonFri(), false)
	now := at(2024, time.January, 1, 10, 30) // Monday

	active := roster.ActiveShifts(now, []roster.ShiftDefinition{shift}, nil)
	if len(active) != 1 || active[0].Name != "Mañana" {
		t.Errorf("Expected [Mañana] active at Monday 10:30, got %v", active)
	}
}

func TestActiveShifts_DayShift_BoundsInclusive(t *testing.T) {
	// GIVEN: A Mon-Fri day shift 08:00-16:00
	// WHEN: Resolving exactly at entry and exactly at exit
	// THEN: Both bounds count as active (inclusive interval)

	shift := mustShift(t, "Mañana", "08:00", "16:00", weekdaysMonFri(), false)
	shifts := []roster.ShiftDefinition{shift}

	if !activeNames(t, at(2024, time.January, 1, 8, 0), shifts, nil)["Mañana"] {
		t.Error("Shift should be active exactly at entry time 08:00")
	}
	if !activeNames(t, at(2024, time.January, 1, 16, 0), shifts, nil)["Mañana"] {
		t.Error("Shift should be active exactly at exit time 16:00")
	}
	if activeNames(t, at(2024, time.January, 1, 16, 1), shifts, nil)["Mañana"] {
		t.Error("Shift should not be active one minute after exit")
	}
}

func TestActiveShifts_DayShift_WrongWeekday(t *testing.T) {
	// GIVEN: A Mon-Fri day shift
	// WHEN: Resolving Saturday inside the window
	// THEN: Not active

	shift := mustShift(t, "Mañana", "08:00", "16:00", weekdaysMonFri(), false)
	now := at(2024, time.January, 6, 10, 0) // Saturday

	if len(roster.ActiveShifts(now, []roster.ShiftDefinition{shift}, nil)) != 0 {
		t.Error("Shift should not be active on Saturday")
	}
}

// =============================================================================
// NIGHT SHIFT TESTS
// =============================================================================

func TestActiveShifts_NightShift_Symmetry(t *testing.T) {
	// GIVEN: A night shift 22:00-06:00 active on Monday only
	// WHEN: Resolving at Monday 23:00, Tuesday 03:00, and Tuesday 10:00
	// THEN: Active via the today branch, active via the yesterday branch,
	//       and inactive outside both windows

	shift := mustShift(t, "Noche", "22:00", "06:00", roster.NewWeekdaySet(time.Monday), false)
	shifts := []roster.ShiftDefinition{shift}

	if !shift.IsNightShift() {
		t.Fatal("22:00-06:00 must derive as a night shift")
	}

	if !activeNames(t, at(2024, time.January, 1, 23, 0), shifts, nil)["Noche"] {
		t.Error("Night shift should be active Monday 23:00 (today branch)")
	}
	if !activeNames(t, at(2024, time.January, 2, 3, 0), shifts, nil)["Noche"] {
		t.Error("Night shift should be active Tuesday 03:00 (yesterday branch)")
	}
	if activeNames(t, at(2024, time.January, 2, 10, 0), shifts, nil)["Noche"] {
		t.Error("Night shift should not be active Tuesday 10:00")
	}
}

func TestActiveShifts_NightShift_TuesdayNotValidEntry(t *testing.T) {
	// GIVEN: A Monday-only night shift 22:00-06:00
	// WHEN: Resolving at Tuesday 23:00
	// THEN: Not active - Tuesday is not a valid entry day and Monday's
	//       occurrence ended at 06:00

	shift := mustShift(t, "Noche", "22:00", "06:00", roster.NewWeekdaySet(time.Monday), false)
	now := at(2024, time.January, 2, 23, 0)

	if len(roster.ActiveShifts(now, []roster.ShiftDefinition{shift}, nil)) != 0 {
		t.Error("Night shift should not be active Tuesday 23:00")
	}
}

func TestActiveShifts_NightShift_SundayIntoMonday(t *testing.T) {
	// GIVEN: A Mon-Fri night shift 22:00-06:00
	// WHEN: Resolving at Monday 03:00 (the tail of Sunday's would-be window)
	// THEN: Not active - Sunday is not a valid entry day

	shift := mustShift(t, "Noche 1°", "22:00", "06:00", weekdaysMonFri(), false)
	now := at(2024, time.January, 1, 3, 0) // Monday 03:00

	if len(roster.ActiveShifts(now, []roster.ShiftDefinition{shift}, nil)) != 0 {
		t.Error("Mon-Fri night shift should not be active Monday 03:00; Sunday entry is invalid")
	}
}

// =============================================================================
// HOLIDAY OVERRIDE TESTS
// =============================================================================

func TestActiveShifts_HolidayOnlyShift(t *testing.T) {
	// GIVEN: A shift with NO weekdays and applies_on_holidays=true, and a
	//        non-recurring holiday on 2024-03-15
	// WHEN: Resolving on the holiday and the day before, inside the window
	// THEN: Active on the holiday, inactive the day before

	shift := mustShift(t, "Guardia", "08:00", "20:00", 0, true)
	holidays := []roster.Holiday{{ID: "h1", Date: day(2024, time.March, 15), Name: "Asueto", Recurring: false}}
	shifts := []roster.ShiftDefinition{shift}

	if !activeNames(t, at(2024, time.March, 15, 10, 0), shifts, holidays)["Guardia"] {
		t.Error("Holiday-only shift should be active on the holiday")
	}
	if activeNames(t, at(2024, time.March, 14, 10, 0), shifts, holidays)["Guardia"] {
		t.Error("Holiday-only shift should be inactive the day before the holiday")
	}
}

func TestActiveShifts_NightShift_HolidayYesterday(t *testing.T) {
	// GIVEN: A holiday-only night shift 22:00-06:00 and a holiday on
	//        2024-03-15
	// WHEN: Resolving at 2024-03-16 03:00
	// THEN: Active - yesterday was a valid (holiday) entry day

	shift := mustShift(t, "Guardia Noche", "22:00", "06:00", 0, true)
	holidays := []roster.Holiday{{ID: "h1", Date: day(2024, time.March, 15), Name: "Asueto", Recurring: false}}

	if !activeNames(t, at(2024, time.March, 16, 3, 0), []roster.ShiftDefinition{shift}, holidays)["Guardia Noche"] {
		t.Error("Holiday night shift should still run at 03:00 the day after the holiday")
	}
}

// =============================================================================
// SET SEMANTICS
// =============================================================================

func TestActiveShifts_OverlappingShiftsBothReported(t *testing.T) {
	// GIVEN: Two overlapping day shifts
	// WHEN: Resolving inside the overlap
	// THEN: Both are reported; the result is a set with no precedence

	early := mustShift(t, "Mañana", "07:00", "13:00", allWeekdays(), false)
	late := mustShift(t, "Intermedio", "12:00", "18:00", allWeekdays(), false)
	now := at(2024, time.January, 1, 12, 30)

	names := activeNames(t, now, []roster.ShiftDefinition{early, late}, nil)
	if !names["Mañana"] || !names["Intermedio"] {
		t.Errorf("Expected both overlapping shifts active at 12:30, got %v", names)
	}
}

func TestActiveShifts_DisabledShiftNeverActive(t *testing.T) {
	// GIVEN: A shift with an empty weekday set and no holiday override
	// WHEN: Resolving at any instant inside its window
	// THEN: Never active - a disabled shift is valid, not an error

	shift := mustShift(t, "Reserva", "08:00", "16:00", 0, false)

	for hour := 0; hour < 24; hour++ {
		if len(roster.ActiveShifts(at(2024, time.January, 1, hour, 0), []roster.ShiftDefinition{shift}, nil)) != 0 {
			t.Fatalf("Disabled shift should never be active (hour %d)", hour)
		}
	}
}

func TestActiveShifts_Idempotent(t *testing.T) {
	// GIVEN: Fixed inputs and a fixed reference instant
	// WHEN: Resolving twice
	// THEN: Identical results - the resolver reads no ambient state

	shifts := []roster.ShiftDefinition{
		mustShift(t, "Mañana", "07:00", "13:00", allWeekdays(), false),
		mustShift(t, "Noche", "22:00", "06:00", weekdaysMonFri(), false),
	}
	holidays := []roster.Holiday{{ID: "h1", Date: day(2023, time.December, 25), Name: "Navidad", Recurring: true}}
	now := at(2024, time.January, 2, 2, 0)

	first := roster.ActiveShifts(now, shifts, holidays)
	second := roster.ActiveShifts(now, shifts, holidays)

	if len(first) != len(second) {
		t.Fatalf("Resolver not idempotent: %d vs %d shifts", len(first), len(second))
	}
	for i := range first {
		if first[i].Name != second[i].Name {
			t.Errorf("Resolver not idempotent at index %d: %s vs %s", i, first[i].Name, second[i].Name)
		}
	}
}

func TestActiveShiftNames(t *testing.T) {
	// GIVEN: Two overlapping shifts
	// WHEN: Listing names at 12:30
	// THEN: Both names, in input order

	shifts := []roster.ShiftDefinition{
		mustShift(t, "Mañana", "07:00", "13:00", allWeekdays(), false),
		mustShift(t, "Intermedio", "12:00", "18:00", allWeekdays(), false),
	}
	names := roster.ActiveShiftNames(at(2024, time.January, 1, 12, 30), shifts, nil)
	if len(names) != 2 || names[0] != "Mañana" || names[1] != "Intermedio" {
		t.Errorf("ActiveShiftNames = %v, want [Mañana Intermedio]", names)
	}
}

// =============================================================================
// ACTIVE TASKS
// =============================================================================

func TestActiveTasks_UnionOfActiveShifts(t *testing.T) {
	// GIVEN: Two overlapping shifts sharing one task label
	// WHEN: Collecting tasks inside the overlap
	// THEN: The union is deduplicated, first-seen order

	early := mustShift(t, "Mañana", "07:00", "13:00", allWeekdays(), false, "Limpieza", "Acceso")
	late := mustShift(t, "Intermedio", "12:00", "18:00", allWeekdays(), false, "Acceso", "Mantenimiento")
	now := at(2024, time.January, 1, 12, 30)

	tasks := roster.ActiveTasks(now, []roster.ShiftDefinition{early, late}, nil)
	want := []string{"Limpieza", "Acceso", "Mantenimiento"}
	if len(tasks) != len(want) {
		t.Fatalf("Expected %v, got %v", want, tasks)
	}
	for i := range want {
		if tasks[i] != want[i] {
			t.Errorf("Task %d: expected %q, got %q", i, want[i], tasks[i])
		}
	}
}

func TestActiveTasks_NoActiveShift(t *testing.T) {
	// GIVEN: No shift active at the instant
	// WHEN: Collecting tasks
	// THEN: Empty

	shift := mustShift(t, "Mañana", "07:00", "13:00", weekdaysMonFri(), false, "Limpieza")
	now := at(2024, time.January, 6, 10, 0) // Saturday

	if tasks := roster.ActiveTasks(now, []roster.ShiftDefinition{shift}, nil); len(tasks) != 0 {
		t.Errorf("Expected no tasks, got %v", tasks)
	}
}
