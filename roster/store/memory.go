// Package store provides an in-memory Directory implementation for tests
// and development.
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/warp/duty-engine/roster"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory implements roster.Directory plus the write operations the HTTP
// layer needs, guarded by a single RWMutex. Reads return copies so callers
// can hold snapshots across later writes.
type Memory struct {
	mu        sync.RWMutex
	employees []roster.Employee
	shifts    []roster.ShiftDefinition
	holidays  []roster.Holiday
	leaves    []roster.LeaveRecord
}

func NewMemory() *Memory {
	return &Memory{}
}

// -----------------------------------------------------------------------------
// Directory (reads)
// -----------------------------------------------------------------------------

func (m *Memory) FetchEmployees(_ context.Context) ([]roster.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]roster.Employee(nil), m.employees...), nil
}

func (m *Memory) FetchShiftDefinitions(_ context.Context) ([]roster.ShiftDefinition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]roster.ShiftDefinition(nil), m.shifts...), nil
}

func (m *Memory) FetchHolidays(_ context.Context) ([]roster.Holiday, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]roster.Holiday(nil), m.holidays...), nil
}

func (m *Memory) FetchLeaveRecords(_ context.Context, forEmployees ...roster.EmployeeID) ([]roster.LeaveRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(forEmployees) == 0 {
		return append([]roster.LeaveRecord(nil), m.leaves...), nil
	}
	wanted := make(map[roster.EmployeeID]bool, len(forEmployees))
	for _, id := range forEmployees {
		wanted[id] = true
	}
	var result []roster.LeaveRecord
	for _, l := range m.leaves {
		if wanted[l.EmployeeID] {
			result = append(result, l)
		}
	}
	return result, nil
}

// -----------------------------------------------------------------------------
// Writes
// -----------------------------------------------------------------------------

// SaveEmployee inserts or replaces by id.
func (m *Memory) SaveEmployee(_ context.Context, emp roster.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.employees {
		if e.ID == emp.ID {
			m.employees[i] = emp
			return nil
		}
	}
	m.employees = append(m.employees, emp)
	return nil
}

func (m *Memory) DeleteEmployee(_ context.Context, id roster.EmployeeID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.employees {
		if e.ID == id {
			m.employees = append(m.employees[:i], m.employees[i+1:]...)
			return nil
		}
	}
	return roster.ErrEmployeeNotFound
}

// SaveShift inserts or replaces by id. A new definition reusing another
// definition's name is rejected: names are the join key to employees.
func (m *Memory) SaveShift(_ context.Context, shift roster.ShiftDefinition) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.shifts {
		if s.Name == shift.Name && s.ID != shift.ID {
			return fmt.Errorf("%w: %q", roster.ErrDuplicateShiftName, shift.Name)
		}
	}
	for i, s := range m.shifts {
		if s.ID == shift.ID {
			m.shifts[i] = shift
			return nil
		}
	}
	m.shifts = append(m.shifts, shift)
	return nil
}

// DeleteShift removes a definition unless employees are still assigned to
// its name.
func (m *Memory) DeleteShift(_ context.Context, id roster.ShiftID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.shifts {
		if s.ID != id {
			continue
		}
		for _, e := range m.employees {
			if e.AssignedShift == s.Name {
				return fmt.Errorf("%w: %q", roster.ErrShiftInUse, s.Name)
			}
		}
		m.shifts = append(m.shifts[:i], m.shifts[i+1:]...)
		return nil
	}
	return roster.ErrShiftNotFound
}

func (m *Memory) SaveHoliday(_ context.Context, h roster.Holiday) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.holidays {
		if existing.ID == h.ID {
			m.holidays[i] = h
			return nil
		}
	}
	m.holidays = append(m.holidays, h)
	return nil
}

func (m *Memory) DeleteHoliday(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, h := range m.holidays {
		if h.ID == id {
			m.holidays = append(m.holidays[:i], m.holidays[i+1:]...)
			return nil
		}
	}
	return roster.ErrHolidayNotFound
}

func (m *Memory) SaveLeave(_ context.Context, l roster.LeaveRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.leaves {
		if existing.ID == l.ID {
			m.leaves[i] = l
			return nil
		}
	}
	m.leaves = append(m.leaves, l)
	return nil
}

func (m *Memory) DeleteLeave(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, l := range m.leaves {
		if l.ID == id {
			m.leaves = append(m.leaves[:i], m.leaves[i+1:]...)
			return nil
		}
	}
	return roster.ErrLeaveNotFound
}

// Reset drops everything. For tests and the demo scenario loader.
func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.employees = nil
	m.shifts = nil
	m.holidays = nil
	m.leaves = nil
	return nil
}
