/*
report.go - Muster report (the aggregation layer)

PURPOSE:
  Combines the activity, duty, and leave resolvers into one classification
  of the full roster at a reference instant:

    present              on duty in a currently active shift, not on leave
    on leave (current)   on leave today, assigned to an active shift
    on leave (other)     on leave today, assigned elsewhere in time
    resting              not in any active shift, not on leave

  The four classes partition the roster: every employee lands in exactly one.
  Each class also splits into military and civilian by rank-code membership.

CLASSIFICATION ORDER:
  Leave wins over presence: an employee on leave is never counted present
  even if their shift is running. An employee assigned to an active shift
  whose own resolved definition is not in window (possible only through a
  duplicate-name join) counts as resting; the partition invariant is
  authoritative.

PRECISION:
  Percentage-of-force figures are computed with decimal arithmetic and
  rounded to one decimal place, matching how the reporting views render
  them. Counting in floats drifts; report totals must reconcile exactly.
*/
package roster

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CLASSIFICATION
// =============================================================================

type Classification string

const (
	ClassPresent           Classification = "present"
	ClassLeaveCurrentShift Classification = "on_leave_current_shift"
	ClassLeaveOtherShift   Classification = "on_leave_other_shift"
	ClassResting           Classification = "resting"
)

// =============================================================================
// STRENGTH - Military/civilian breakdown of a set of employees
// =============================================================================

type Strength struct {
	Military int
	Civilian int
}

func (s Strength) Total() int {
	return s.Military + s.Civilian
}

func strengthOf(employees []Employee) Strength {
	var s Strength
	for _, e := range employees {
		if e.IsMilitary() {
			s.Military++
		} else {
			s.Civilian++
		}
	}
	return s
}

// percentOf returns part/whole as a percentage rounded to one decimal place.
// A zero whole yields zero, not a division error.
func percentOf(part, whole int) decimal.Decimal {
	if whole == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(part)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(whole))).
		Round(1)
}

// =============================================================================
// MUSTER REPORT
// =============================================================================

// MusterReport is the classified state of the roster at AsOf. Sets hold
// employees in roster order; ordering carries no precedence meaning.
type MusterReport struct {
	AsOf time.Time

	// Active shift definitions and the task labels they make available.
	ActiveShifts []ShiftDefinition
	ActiveTasks  []string

	Present            []Employee
	OnLeaveCurrentShift []Employee
	OnLeaveOtherShift   []Employee
	Resting            []Employee

	// Strength breakdowns.
	Force          Strength // full roster
	OnShift        Strength // employees assigned to an active shift
	PresentForce   Strength
	AbsentOnShift  Strength // on-shift employees not present (leave or no window)
	PresentPercent decimal.Decimal // present / on-shift, one decimal place
}

// Classify returns the classification of an employee id in this report.
// Unknown ids return ClassResting with ok=false.
func (r *MusterReport) Classify(id EmployeeID) (Classification, bool) {
	for _, e := range r.Present {
		if e.ID == id {
			return ClassPresent, true
		}
	}
	for _, e := range r.OnLeaveCurrentShift {
		if e.ID == id {
			return ClassLeaveCurrentShift, true
		}
	}
	for _, e := range r.OnLeaveOtherShift {
		if e.ID == id {
			return ClassLeaveOtherShift, true
		}
	}
	for _, e := range r.Resting {
		if e.ID == id {
			return ClassResting, true
		}
	}
	return ClassResting, false
}

// Size returns the number of classified employees across all four classes.
func (r *MusterReport) Size() int {
	return len(r.Present) + len(r.OnLeaveCurrentShift) + len(r.OnLeaveOtherShift) + len(r.Resting)
}

// Muster classifies the full roster at now.
//
// now is the caller's clock; a zero instant is a contract violation and is
// rejected rather than silently replaced with wall-clock time. Empty shift
// or holiday lists are valid inputs and degrade to "no active shift" /
// "never holiday".
func Muster(now time.Time, employees []Employee, shifts []ShiftDefinition, holidays []Holiday, leaves []LeaveRecord) (*MusterReport, error) {
	if now.IsZero() {
		return nil, ErrNoReferenceInstant
	}

	active := ActiveShifts(now, shifts, holidays)
	activeNames := make(map[string]bool, len(active))
	for _, s := range active {
		activeNames[s.Name] = true
	}
	index := NewShiftIndex(shifts)

	report := &MusterReport{
		AsOf:         now,
		ActiveShifts: active,
		ActiveTasks:  ActiveTasks(now, shifts, holidays),
	}

	// Single pass: each employee lands in exactly one class.
	var onShift []Employee
	for _, emp := range employees {
		onLeave := IsOnLeaveOn(emp.ID, now, leaves)
		inActiveShift := activeNames[emp.AssignedShift]
		if inActiveShift {
			onShift = append(onShift, emp)
		}

		switch {
		case onLeave && inActiveShift:
			report.OnLeaveCurrentShift = append(report.OnLeaveCurrentShift, emp)
		case onLeave:
			report.OnLeaveOtherShift = append(report.OnLeaveOtherShift, emp)
		case inActiveShift && index.OnDuty(emp, now, holidays):
			report.Present = append(report.Present, emp)
		default:
			report.Resting = append(report.Resting, emp)
		}
	}

	report.Force = strengthOf(employees)
	report.OnShift = strengthOf(onShift)
	report.PresentForce = strengthOf(report.Present)
	report.AbsentOnShift = Strength{
		Military: report.OnShift.Military - report.PresentForce.Military,
		Civilian: report.OnShift.Civilian - report.PresentForce.Civilian,
	}
	report.PresentPercent = percentOf(report.PresentForce.Total(), report.OnShift.Total())

	return report, nil
}
