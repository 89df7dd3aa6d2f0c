/*
duty.go - Per-employee duty resolution

PURPOSE:
  Answers "is this employee on duty right now?". Employees reference their
  shift by NAME, so resolution goes through a ShiftIndex built once per
  evaluation: repeated map lookups instead of repeated linear scans, and
  one place where an orphaned reference becomes visible.

  The interval math is NOT duplicated here: duty resolution delegates to the
  same activeAt predicate the activity resolver uses (shift.go), which is a
  correctness requirement: a shift reported active must imply its assignees
  test as on duty, and vice versa.
*/
package roster

import "time"

// =============================================================================
// SHIFT INDEX - By-name resolution, computed once per evaluation
// =============================================================================

// ShiftIndex resolves shift names to definitions. Build it once per
// evaluation from the same snapshot handed to ActiveShifts.
//
// Names are expected to be unique; if a snapshot carries duplicates the
// first definition wins, mirroring find-first lookup semantics.
type ShiftIndex struct {
	byName map[string]ShiftDefinition
}

func NewShiftIndex(shifts []ShiftDefinition) ShiftIndex {
	byName := make(map[string]ShiftDefinition, len(shifts))
	for _, s := range shifts {
		if _, exists := byName[s.Name]; !exists {
			byName[s.Name] = s
		}
	}
	return ShiftIndex{byName: byName}
}

// Resolve returns the definition for a shift name. ok=false marks an
// orphaned reference (renamed or deleted shift), which is expected, not fatal.
func (idx ShiftIndex) Resolve(name string) (ShiftDefinition, bool) {
	s, ok := idx.byName[name]
	return s, ok
}

func (idx ShiftIndex) Len() int {
	return len(idx.byName)
}

// OnDuty reports whether the employee's assigned shift is active at now.
// An unresolvable shift reference yields false: an unconfigured shift
// cannot be on duty.
func (idx ShiftIndex) OnDuty(emp Employee, now time.Time, holidays []Holiday) bool {
	shift, ok := idx.Resolve(emp.AssignedShift)
	if !ok {
		return false
	}
	return activeAt(shift, now, holidays)
}

// IsOnDuty is the slice-input convenience form of ShiftIndex.OnDuty, for
// callers evaluating a single employee. Aggregations should build the index
// once instead.
func IsOnDuty(emp Employee, now time.Time, shifts []ShiftDefinition, holidays []Holiday) bool {
	return NewShiftIndex(shifts).OnDuty(emp, now, holidays)
}
