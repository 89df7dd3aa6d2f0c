/*
Package sqlite provides a SQLite-backed implementation of the duty engine's
storage interfaces.

PURPOSE:
  Implements roster.Directory (the four read-only fetch capabilities the
  engine consumes) plus the CRUD operations the HTTP layer exposes. In
  production the same patterns apply to PostgreSQL - only minor SQL dialect
  differences.

KEY TABLES:
  employees:         Roster members (rank code, by-name shift assignment)
  shift_definitions: Shift windows; weekdays and tasks as JSON columns
  holidays:          Fixed-date and recurring calendar overrides
  leave_records:     Inclusive [start, end] leave ranges

VALIDATION AT LOAD TIME:
  Shift rows are rebuilt through roster.NewShiftDefinition when read, so a
  malformed time value stored in the database surfaces as a load error
  immediately - it never reaches a resolver where it could silently
  miscompute as midnight. Leave rows go through roster.NewLeaveRecord for
  the same reason.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/duty.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  snapshot, err := roster.TakeSnapshot(ctx, store)
  report, err := snapshot.Muster(now)

SEE ALSO:
  - roster/directory.go: Interface definition
  - roster/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/duty-engine/roster"
)

const dateLayout = "2006-01-02"

// Store implements roster.Directory and the write operations using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Roster members
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		rank TEXT NOT NULL,
		shift_name TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	-- Employees join shifts BY NAME; index the join key.
	CREATE INDEX IF NOT EXISTS idx_employees_shift_name
		ON employees(shift_name);

	-- Shift definitions (weekdays and tasks as JSON arrays)
	CREATE TABLE IF NOT EXISTS shift_definitions (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		entry_time TEXT NOT NULL,
		exit_time TEXT NOT NULL,
		weekdays_json TEXT NOT NULL DEFAULT '[]',
		applies_on_holidays BOOLEAN NOT NULL DEFAULT FALSE,
		tasks_json TEXT NOT NULL DEFAULT '[]',
		created_at TEXT NOT NULL
	);

	-- Holidays (fixed-date and annually recurring)
	CREATE TABLE IF NOT EXISTS holidays (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		name TEXT NOT NULL,
		recurring BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_holidays_date
		ON holidays(date);

	-- Leave records (inclusive date ranges)
	CREATE TABLE IF NOT EXISTS leave_records (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		reason TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_leave_records_employee
		ON leave_records(employee_id);
	CREATE INDEX IF NOT EXISTS idx_leave_records_range
		ON leave_records(start_date, end_date);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// EMPLOYEES
// =============================================================================

// SaveEmployee inserts or replaces an employee.
func (s *Store) SaveEmployee(ctx context.Context, emp roster.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO employees (id, first_name, last_name, rank, shift_name, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			rank = excluded.rank,
			shift_name = excluded.shift_name`,
		string(emp.ID), emp.FirstName, emp.LastName, emp.Rank, emp.AssignedShift,
		time.Now().UTC().Format(time.RFC3339))
	return err
}

// GetEmployee returns a single employee, or nil if unknown.
func (s *Store) GetEmployee(ctx context.Context, id roster.EmployeeID) (*roster.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, rank, shift_name
		FROM employees WHERE id = ?`, string(id))

	var emp roster.Employee
	var empID string
	err := row.Scan(&empID, &emp.FirstName, &emp.LastName, &emp.Rank, &emp.AssignedShift)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	emp.ID = roster.EmployeeID(empID)
	return &emp, nil
}

// FetchEmployees returns the full roster.
func (s *Store) FetchEmployees(ctx context.Context) ([]roster.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, first_name, last_name, rank, shift_name
		FROM employees ORDER BY last_name, first_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []roster.Employee
	for rows.Next() {
		var emp roster.Employee
		var id string
		if err := rows.Scan(&id, &emp.FirstName, &emp.LastName, &emp.Rank, &emp.AssignedShift); err != nil {
			return nil, err
		}
		emp.ID = roster.EmployeeID(id)
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// DeleteEmployee removes an employee and their leave records.
func (s *Store) DeleteEmployee(ctx context.Context, id roster.EmployeeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, string(id))
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return roster.ErrEmployeeNotFound
	}
	_, err = s.db.ExecContext(ctx, `DELETE FROM leave_records WHERE employee_id = ?`, string(id))
	return err
}

// =============================================================================
// SHIFT DEFINITIONS
// =============================================================================

// SaveShift inserts or replaces a shift definition. The UNIQUE constraint on
// name enforces the join-key invariant at the database level.
func (s *Store) SaveShift(ctx context.Context, shift roster.ShiftDefinition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	weekdaysJSON, err := json.Marshal(shift.Weekdays.Ints())
	if err != nil {
		return err
	}
	tasks := shift.Tasks
	if tasks == nil {
		tasks = []string{}
	}
	tasksJSON, err := json.Marshal(tasks)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO shift_definitions
			(id, name, entry_time, exit_time, weekdays_json, applies_on_holidays, tasks_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			entry_time = excluded.entry_time,
			exit_time = excluded.exit_time,
			weekdays_json = excluded.weekdays_json,
			applies_on_holidays = excluded.applies_on_holidays,
			tasks_json = excluded.tasks_json`,
		string(shift.ID), shift.Name, shift.Entry.String(), shift.Exit.String(),
		string(weekdaysJSON), shift.AppliesOnHolidays, string(tasksJSON),
		time.Now().UTC().Format(time.RFC3339))
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("%w: %q", roster.ErrDuplicateShiftName, shift.Name)
	}
	return err
}

// GetShift returns a single shift definition, or nil if unknown.
func (s *Store) GetShift(ctx context.Context, id roster.ShiftID) (*roster.ShiftDefinition, error) {
	shifts, err := s.queryShifts(ctx, `
		SELECT id, name, entry_time, exit_time, weekdays_json, applies_on_holidays, tasks_json
		FROM shift_definitions WHERE id = ?`, string(id))
	if err != nil {
		return nil, err
	}
	if len(shifts) == 0 {
		return nil, nil
	}
	return &shifts[0], nil
}

// FetchShiftDefinitions returns all shift definitions, validated at load.
func (s *Store) FetchShiftDefinitions(ctx context.Context) ([]roster.ShiftDefinition, error) {
	return s.queryShifts(ctx, `
		SELECT id, name, entry_time, exit_time, weekdays_json, applies_on_holidays, tasks_json
		FROM shift_definitions ORDER BY entry_time`)
}

func (s *Store) queryShifts(ctx context.Context, query string, args ...any) ([]roster.ShiftDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shifts []roster.ShiftDefinition
	for rows.Next() {
		var id, name, entry, exit, weekdaysJSON, tasksJSON string
		var appliesOnHolidays bool
		if err := rows.Scan(&id, &name, &entry, &exit, &weekdaysJSON, &appliesOnHolidays, &tasksJSON); err != nil {
			return nil, err
		}

		var weekdayInts []int
		if err := json.Unmarshal([]byte(weekdaysJSON), &weekdayInts); err != nil {
			return nil, fmt.Errorf("shift %q weekdays: %w", name, err)
		}
		weekdays, err := roster.WeekdaySetFromInts(weekdayInts)
		if err != nil {
			return nil, fmt.Errorf("shift %q: %w", name, err)
		}
		var tasks []string
		if err := json.Unmarshal([]byte(tasksJSON), &tasks); err != nil {
			return nil, fmt.Errorf("shift %q tasks: %w", name, err)
		}

		// Rebuild through the validating constructor: malformed stored
		// times fail here, at load time, never inside a resolver.
		shift, err := roster.NewShiftDefinition(roster.ShiftID(id), name, entry, exit,
			weekdays, appliesOnHolidays, tasks...)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}
	return shifts, rows.Err()
}

// DeleteShift removes a definition unless employees are still assigned to
// its name.
func (s *Store) DeleteShift(ctx context.Context, id roster.ShiftID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var name string
	err := s.db.QueryRowContext(ctx,
		`SELECT name FROM shift_definitions WHERE id = ?`, string(id)).Scan(&name)
	if err == sql.ErrNoRows {
		return roster.ErrShiftNotFound
	}
	if err != nil {
		return err
	}

	var assigned int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM employees WHERE shift_name = ?`, name).Scan(&assigned); err != nil {
		return err
	}
	if assigned > 0 {
		return fmt.Errorf("%w: %q (%d employees)", roster.ErrShiftInUse, name, assigned)
	}

	_, err = s.db.ExecContext(ctx, `DELETE FROM shift_definitions WHERE id = ?`, string(id))
	return err
}

// =============================================================================
// HOLIDAYS
// =============================================================================

// SaveHoliday inserts or replaces a holiday.
func (s *Store) SaveHoliday(ctx context.Context, h roster.Holiday) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO holidays (id, date, name, recurring, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			name = excluded.name,
			recurring = excluded.recurring`,
		h.ID, h.Date.Format(dateLayout), h.Name, h.Recurring,
		time.Now().UTC().Format(time.RFC3339))
	return err
}

// FetchHolidays returns all holidays.
func (s *Store) FetchHolidays(ctx context.Context) ([]roster.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, name, recurring FROM holidays ORDER BY date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []roster.Holiday
	for rows.Next() {
		var h roster.Holiday
		var dateStr string
		if err := rows.Scan(&h.ID, &dateStr, &h.Name, &h.Recurring); err != nil {
			return nil, err
		}
		h.Date, err = time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("holiday %q date: %w", h.Name, err)
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

// DeleteHoliday removes a holiday.
func (s *Store) DeleteHoliday(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, `DELETE FROM holidays WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return roster.ErrHolidayNotFound
	}
	return nil
}

// =============================================================================
// LEAVE RECORDS
// =============================================================================

// SaveLeave inserts or replaces a leave record.
func (s *Store) SaveLeave(ctx context.Context, l roster.LeaveRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO leave_records (id, employee_id, start_date, end_date, reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			employee_id = excluded.employee_id,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			reason = excluded.reason`,
		l.ID, string(l.EmployeeID), l.Start.Format(dateLayout), l.End.Format(dateLayout),
		l.Reason, time.Now().UTC().Format(time.RFC3339))
	return err
}

// FetchLeaveRecords returns leave records, optionally filtered to the given
// employees.
func (s *Store) FetchLeaveRecords(ctx context.Context, forEmployees ...roster.EmployeeID) ([]roster.LeaveRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, employee_id, start_date, end_date, reason FROM leave_records`
	var args []any
	if len(forEmployees) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(forEmployees)), ",")
		query += ` WHERE employee_id IN (` + placeholders + `)`
		for _, id := range forEmployees {
			args = append(args, string(id))
		}
	}
	query += ` ORDER BY start_date`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leaves []roster.LeaveRecord
	for rows.Next() {
		var id, empID, startStr, endStr string
		var reason sql.NullString
		if err := rows.Scan(&id, &empID, &startStr, &endStr, &reason); err != nil {
			return nil, err
		}
		start, err := time.Parse(dateLayout, startStr)
		if err != nil {
			return nil, fmt.Errorf("leave %s start: %w", id, err)
		}
		end, err := time.Parse(dateLayout, endStr)
		if err != nil {
			return nil, fmt.Errorf("leave %s end: %w", id, err)
		}
		record, err := roster.NewLeaveRecord(id, roster.EmployeeID(empID), start, end, reason.String)
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, record)
	}
	return leaves, rows.Err()
}

// DeleteLeave removes a leave record.
func (s *Store) DeleteLeave(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, `DELETE FROM leave_records WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return roster.ErrLeaveNotFound
	}
	return nil
}

// =============================================================================
// MAINTENANCE
// =============================================================================

// Reset drops all rows. For the demo scenario loader and tests.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"employees", "shift_definitions", "holidays", "leave_records"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}
