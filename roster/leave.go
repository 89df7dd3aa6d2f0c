package roster

import "time"

// =============================================================================
// LEAVE RESOLUTION
// =============================================================================

// IsOnLeaveOn reports whether the employee has a leave record covering the
// given date. The time-of-day component of date never affects the answer;
// leave is all-or-nothing for a calendar day.
//
// Overlapping records for the same employee are tolerated: any covering
// record is sufficient.
func IsOnLeaveOn(employeeID EmployeeID, date time.Time, leaves []LeaveRecord) bool {
	for _, l := range leaves {
		if l.EmployeeID == employeeID && l.Covers(date) {
			return true
		}
	}
	return false
}

// LeaveFor returns the first leave record covering the given date for the
// employee, for display alongside the on-leave classification.
func LeaveFor(employeeID EmployeeID, date time.Time, leaves []LeaveRecord) (LeaveRecord, bool) {
	for _, l := range leaves {
		if l.EmployeeID == employeeID && l.Covers(date) {
			return l, true
		}
	}
	return LeaveRecord{}, false
}
