/*
errors.go - Centralized error types for the duty engine

PURPOSE:
  All error types in one place for consistency and discoverability. Callers
  and outer layers match with errors.Is().

ERROR CATEGORIES:
  1. Validation errors - Malformed input data, rejected at construction
  2. Contract errors   - Caller misuse (missing reference instant)
  3. Lookup errors     - Missing entities, surfaced by store layers

NOTE ON MISSING SHIFT REFERENCES:
  An employee whose assigned shift name matches no definition is NOT an
  error. The duty resolver returns false and the muster report classifies
  the employee as resting; an unconfigured shift cannot be on duty.
*/
package roster

import (
	"errors"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrMalformedTime is returned when an hour/minute value cannot be
	// parsed. Definitions carrying such values never enter the working set.
	ErrMalformedTime = errors.New("malformed time of day")

	// ErrInvalidWeekday is returned for weekday numbers outside 0..6.
	ErrInvalidWeekday = errors.New("invalid weekday")

	// ErrInvalidShift is returned for structurally invalid shift definitions.
	ErrInvalidShift = errors.New("invalid shift definition")

	// ErrInvalidLeaveRange is returned when a leave record ends before it
	// starts.
	ErrInvalidLeaveRange = errors.New("invalid leave range: end before start")

	// ErrNoReferenceInstant is returned when an aggregation is requested
	// without a reference instant. The engine never substitutes the wall
	// clock; callers own the clock.
	ErrNoReferenceInstant = errors.New("no reference instant supplied")

	// ErrShiftNotFound is returned by store layers for unknown shift ids.
	ErrShiftNotFound = errors.New("shift definition not found")

	// ErrEmployeeNotFound is returned by store layers for unknown employees.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrLeaveNotFound is returned by store layers for unknown leave records.
	ErrLeaveNotFound = errors.New("leave record not found")

	// ErrHolidayNotFound is returned by store layers for unknown holidays.
	ErrHolidayNotFound = errors.New("holiday not found")

	// ErrShiftInUse is returned when deleting a shift that still has
	// employees assigned to it by name.
	ErrShiftInUse = errors.New("shift has employees assigned")

	// ErrDuplicateShiftName is returned by store layers when a second
	// definition would reuse an existing name. Names are the join key to
	// employees, so they stay unique in storage.
	ErrDuplicateShiftName = errors.New("shift name already exists")
)

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsValidation reports whether the error is a data validation failure the
// caller can fix by correcting input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMalformedTime) ||
		errors.Is(err, ErrInvalidWeekday) ||
		errors.Is(err, ErrInvalidShift) ||
		errors.Is(err, ErrInvalidLeaveRange)
}

// IsNotFound reports whether the error indicates a missing entity.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrShiftNotFound) ||
		errors.Is(err, ErrEmployeeNotFound) ||
		errors.Is(err, ErrLeaveNotFound) ||
		errors.Is(err, ErrHolidayNotFound)
}

// IsConflict reports whether the error indicates a state conflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrShiftInUse) ||
		errors.Is(err, ErrDuplicateShiftName)
}
