/*
directory.go - Read-only query capabilities the engine consumes

PURPOSE:
  The engine itself performs no I/O: callers fetch complete collections
  through a Directory and hand the snapshot to the pure resolvers. Fetching
  may be asynchronous or remote behind the interface; that asynchrony stays
  strictly outside the engine boundary.

IMPLEMENTATIONS:
  - store/sqlite:       production SQLite-backed directory
  - roster/store:       in-memory directory for tests and dev
*/
package roster

import (
	"context"
	"time"
)

// Directory provides the four read-only fetch capabilities of the duty
// engine. Shapes only; transport and storage live behind implementations.
type Directory interface {
	FetchEmployees(ctx context.Context) ([]Employee, error)
	FetchShiftDefinitions(ctx context.Context) ([]ShiftDefinition, error)
	FetchHolidays(ctx context.Context) ([]Holiday, error)

	// FetchLeaveRecords returns leave records, optionally filtered to the
	// given employees. No ids means the full set.
	FetchLeaveRecords(ctx context.Context, forEmployees ...EmployeeID) ([]LeaveRecord, error)
}

// =============================================================================
// SNAPSHOT - One evaluation's worth of fetched data
// =============================================================================

// Snapshot is a complete, immutable capture of the directory taken for one
// evaluation. The resolvers never re-fetch; repeated calls against the same
// snapshot and instant are idempotent by construction.
type Snapshot struct {
	Employees []Employee
	Shifts    []ShiftDefinition
	Holidays  []Holiday
	Leaves    []LeaveRecord
}

// TakeSnapshot fetches all four collections from the directory.
func TakeSnapshot(ctx context.Context, d Directory) (*Snapshot, error) {
	employees, err := d.FetchEmployees(ctx)
	if err != nil {
		return nil, err
	}
	shifts, err := d.FetchShiftDefinitions(ctx)
	if err != nil {
		return nil, err
	}
	holidays, err := d.FetchHolidays(ctx)
	if err != nil {
		return nil, err
	}
	leaves, err := d.FetchLeaveRecords(ctx)
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		Employees: employees,
		Shifts:    shifts,
		Holidays:  holidays,
		Leaves:    leaves,
	}, nil
}

// Muster classifies the snapshot's roster at now.
func (s *Snapshot) Muster(now time.Time) (*MusterReport, error) {
	return Muster(now, s.Employees, s.Shifts, s.Holidays, s.Leaves)
}

// ActiveShifts returns the snapshot's shifts active at now.
func (s *Snapshot) ActiveShifts(now time.Time) []ShiftDefinition {
	return ActiveShifts(now, s.Shifts, s.Holidays)
}
