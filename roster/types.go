/*
Package roster provides the core shift and on-duty resolution engine.

PURPOSE:
  This package contains the domain types and pure algorithms that answer the
  questions every monitoring and reporting view keeps asking: which shifts
  are active right now, which employees are on duty, who is on leave, and
  how does the force break down between present, absent, and resting.

KEY CONCEPTS IN THIS FILE (types.go):
  - TimeOfDay:       Wall-clock hour/minute with no date component
  - WeekdaySet:      The weekdays on which a shift normally runs
  - ShiftDefinition: A named, recurring work window (entry/exit/weekdays)
  - Employee:        A roster member, joined to a shift BY NAME
  - LeaveRecord:     An inclusive date range excusing an employee from duty

DESIGN PRINCIPLES:
  1. Purity: No function in this package reads a clock or performs I/O.
     Every resolver takes the reference instant as a parameter, so the same
     inputs always produce the same answer.
  2. Snapshots: Inputs are complete, already-fetched collections. Nothing
     here mutates or caches them.
  3. Fail fast: Malformed time values are rejected when a definition is
     constructed, never silently coerced to midnight.
  4. One interval algorithm: The night-crossing window math is factored into
     a single predicate shared by the activity and duty resolvers, so the
     two can never disagree.

USAGE:
  shift, err := roster.NewShiftDefinition("t1", "Noche 1°", "22:00", "06:00",
      roster.NewWeekdaySet(time.Monday, time.Tuesday), false, "Rondín")
  active := roster.ActiveShifts(now, shifts, holidays)
  report, err := roster.Muster(now, employees, shifts, holidays, leaves)

SEE ALSO:
  - shift.go:   Shift activity resolution (night-crossing algorithm)
  - duty.go:    Per-employee duty resolution
  - leave.go:   Leave coverage
  - report.go:  Muster report (present / on leave / resting)
*/
package roster

import (
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type EmployeeID string
type ShiftID string

// =============================================================================
// WEEKDAY SET
// =============================================================================

// WeekdaySet is the set of weekdays a shift normally runs on, stored as a
// bitmask indexed by time.Weekday (0=Sunday..6=Saturday).
//
// An empty set is valid: combined with AppliesOnHolidays=false it describes
// a disabled shift that is never active.
type WeekdaySet uint8

func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var ws WeekdaySet
	for _, d := range days {
		ws |= 1 << uint(d)
	}
	return ws
}

// WeekdaySetFromInts builds a set from 0..6 weekday numbers (0=Sunday).
// Out-of-range values are rejected.
func WeekdaySetFromInts(days []int) (WeekdaySet, error) {
	var ws WeekdaySet
	for _, d := range days {
		if d < 0 || d > 6 {
			return 0, fmt.Errorf("%w: weekday %d out of range 0..6", ErrInvalidWeekday, d)
		}
		ws |= 1 << uint(d)
	}
	return ws, nil
}

func (ws WeekdaySet) Contains(d time.Weekday) bool {
	return ws&(1<<uint(d)) != 0
}

func (ws WeekdaySet) IsEmpty() bool {
	return ws == 0
}

// Days returns the member weekdays in Sunday-first order.
func (ws WeekdaySet) Days() []time.Weekday {
	var days []time.Weekday
	for d := time.Sunday; d <= time.Saturday; d++ {
		if ws.Contains(d) {
			days = append(days, d)
		}
	}
	return days
}

// Ints returns the member weekdays as 0..6 numbers (for serialization).
func (ws WeekdaySet) Ints() []int {
	days := ws.Days()
	ints := make([]int, len(days))
	for i, d := range days {
		ints[i] = int(d)
	}
	return ints
}

func (ws WeekdaySet) String() string {
	days := ws.Days()
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()[:3]
	}
	return strings.Join(names, ",")
}

// =============================================================================
// SHIFT DEFINITION
// =============================================================================

// ShiftDefinition is a named, recurring work-time window.
//
// Night crossing is DERIVED from the entry/exit hours, not independently
// settable: a shift whose exit hour is numerically lower than its entry hour
// spans two calendar dates. Keeping the flag derived rules out contradictory
// definitions.
type ShiftDefinition struct {
	ID                ShiftID
	Name              string
	Entry             TimeOfDay
	Exit              TimeOfDay
	Weekdays          WeekdaySet
	AppliesOnHolidays bool
	Tasks             []string
}

// NewShiftDefinition builds a validated shift definition. The entry and exit
// times are given as "HH:MM" strings and parsed fail-fast: a malformed value
// is a construction error, never coerced to midnight.
func NewShiftDefinition(id ShiftID, name, entry, exit string, weekdays WeekdaySet, appliesOnHolidays bool, tasks ...string) (ShiftDefinition, error) {
	entryTod, err := ParseTimeOfDay(entry)
	if err != nil {
		return ShiftDefinition{}, fmt.Errorf("shift %q entry time: %w", name, err)
	}
	exitTod, err := ParseTimeOfDay(exit)
	if err != nil {
		return ShiftDefinition{}, fmt.Errorf("shift %q exit time: %w", name, err)
	}
	if strings.TrimSpace(name) == "" {
		return ShiftDefinition{}, fmt.Errorf("%w: shift name is empty", ErrInvalidShift)
	}
	return ShiftDefinition{
		ID:                id,
		Name:              name,
		Entry:             entryTod,
		Exit:              exitTod,
		Weekdays:          weekdays,
		AppliesOnHolidays: appliesOnHolidays,
		Tasks:             tasks,
	}, nil
}

// IsNightShift reports whether the shift spans two calendar dates, i.e. its
// exit hour is numerically before its entry hour.
func (s ShiftDefinition) IsNightShift() bool {
	return s.Exit.Hour < s.Entry.Hour
}

func (s ShiftDefinition) String() string {
	return fmt.Sprintf("%s [%s-%s %s]", s.Name, s.Entry, s.Exit, s.Weekdays)
}

// =============================================================================
// EMPLOYEE
// =============================================================================

// militaryRanks is the fixed set of hierarchy codes classified as military.
// Every other rank code is civilian.
var militaryRanks = map[string]bool{
	"MSTV": true,
	"MITV": true,
	"CS":   true,
	"CI":   true,
	"CP":   true,
	"SS":   true,
	"SI":   true,
	"SP":   true,
	"SM":   true,
}

// IsMilitaryRank reports whether a hierarchy code belongs to the military set.
func IsMilitaryRank(rank string) bool {
	return militaryRanks[rank]
}

// Employee is a roster member. AssignedShift references a ShiftDefinition by
// NAME, not by ID, a decoupled join inherited from the data model. A name
// that matches no definition is an expected, recoverable condition: the
// employee simply cannot be on duty.
type Employee struct {
	ID            EmployeeID
	FirstName     string
	LastName      string
	Rank          string
	AssignedShift string
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

func (e Employee) IsMilitary() bool {
	return IsMilitaryRank(e.Rank)
}

// =============================================================================
// LEAVE RECORD
// =============================================================================

// LeaveRecord is an inclusive [Start, End] date range during which an
// employee is excused from duty. Start and End are held at calendar-day
// granularity; Start == End describes single-day leave.
type LeaveRecord struct {
	ID         string
	EmployeeID EmployeeID
	Start      time.Time
	End        time.Time
	Reason     string
}

// NewLeaveRecord builds a validated leave record. Start and End are
// normalized to day granularity; an End before Start is rejected at
// construction so no query ever sees an inverted range.
func NewLeaveRecord(id string, employeeID EmployeeID, start, end time.Time, reason string) (LeaveRecord, error) {
	start = DayOf(start)
	end = DayOf(end)
	if end.Before(start) {
		return LeaveRecord{}, fmt.Errorf("%w: %s after %s", ErrInvalidLeaveRange,
			start.Format(dateLayout), end.Format(dateLayout))
	}
	return LeaveRecord{ID: id, EmployeeID: employeeID, Start: start, End: end, Reason: reason}, nil
}

// Covers reports whether the record covers the given date, inclusive on both
// ends. The time-of-day component of date is ignored; leave is all-or-nothing
// for a calendar day.
func (l LeaveRecord) Covers(date time.Time) bool {
	return compareDay(date, l.Start) >= 0 && compareDay(date, l.End) <= 0
}

// Days returns the number of calendar days the record spans (>= 1).
func (l LeaveRecord) Days() int {
	return int(l.End.Sub(l.Start).Hours()/24) + 1
}
