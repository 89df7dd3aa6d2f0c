/*
handlers.go - HTTP API handlers for the duty engine

PURPOSE:
  Exposes the shift/on-duty resolution engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Employees:
    GET    /api/employees              List the roster
    POST   /api/employees              Create/update employee
    GET    /api/employees/{id}         Get employee details
    GET    /api/employees/{id}/duty    Is the employee on duty (at=RFC3339)
    DELETE /api/employees/{id}         Remove employee

  Shifts:
    GET    /api/shifts                 List shift definitions
    POST   /api/shifts                 Create/update shift definition
    GET    /api/shifts/{id}            Get shift definition
    GET    /api/shifts/active          Shifts active at an instant
    DELETE /api/shifts/{id}            Remove shift (409 if in use)

  Holidays / Leaves:
    GET/POST/DELETE under /api/holidays and /api/leaves

  Board:
    GET    /api/board                  Muster report at an instant
    GET    /api/board/cached           Last monitor-computed report
    GET    /api/tasks/active           Task labels of active shifts

  Scenarios:
    GET    /api/scenarios              List demo scenarios
    POST   /api/scenarios/load         Load a demo scenario
    POST   /api/scenarios/reset        Wipe the database

THE at PARAMETER:
  Every computed view accepts ?at=RFC3339. The engine never reads a clock;
  when the client omits at, THIS layer supplies time.Now(). The clock stops
  at the HTTP boundary, which is what keeps the engine deterministic and
  these handlers trivially testable with fixed instants.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 409: Conflict (shift in use, duplicate name)
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - monitor.go: Background board refresher
*/
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/warp/duty-engine/roster"
	"github.com/warp/duty-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   *sqlite.Store
	Monitor *BoardMonitor

	// Track currently loaded scenario
	currentScenario string
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{Store: store}
}

// parseAt resolves the reference instant for a computed view. The engine
// itself refuses to default the clock; the HTTP boundary owns it.
func parseAt(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("at")
	if raw == "" {
		return time.Now(), nil
	}
	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid at parameter %q: %w", raw, err)
	}
	return at, nil
}

func newID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns the full roster.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.FetchEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTOs(employees))
}

// GetEmployee returns a single employee.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := roster.EmployeeID(chi.URLParam(r, "id"))

	emp, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(*emp))
}

// SaveEmployee creates or updates an employee.
func (h *Handler) SaveEmployee(w http.ResponseWriter, r *http.Request) {
	var req SaveEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.LastName == "" && req.FirstName == "" {
		writeError(w, http.StatusBadRequest, "Employee name is required", nil)
		return
	}
	if req.ID == "" {
		req.ID = newID("emp")
	}

	emp := roster.Employee{
		ID:            roster.EmployeeID(req.ID),
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Rank:          req.Rank,
		AssignedShift: req.Shift,
	}
	if err := h.Store.SaveEmployee(r.Context(), emp); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeDTO(emp))
}

// DeleteEmployee removes an employee.
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id := roster.EmployeeID(chi.URLParam(r, "id"))

	err := h.Store.DeleteEmployee(r.Context(), id)
	if roster.IsNotFound(err) {
		writeError(w, http.StatusNotFound, "Employee not found", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete employee", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": string(id)})
}

// GetEmployeeDuty reports whether an employee is on duty at an instant.
func (h *Handler) GetEmployeeDuty(w http.ResponseWriter, r *http.Request) {
	id := roster.EmployeeID(chi.URLParam(r, "id"))

	at, err := parseAt(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid reference instant", err)
		return
	}

	emp, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	shifts, err := h.Store.FetchShiftDefinitions(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load shifts", err)
		return
	}
	holidays, err := h.Store.FetchHolidays(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load holidays", err)
		return
	}

	index := roster.NewShiftIndex(shifts)
	_, resolved := index.Resolve(emp.AssignedShift)

	writeJSON(w, http.StatusOK, DutyDTO{
		EmployeeID:    string(emp.ID),
		At:            at.Format(time.RFC3339),
		OnDuty:        index.OnDuty(*emp, at, holidays),
		Shift:         emp.AssignedShift,
		ShiftResolved: resolved,
	})
}

// =============================================================================
// SHIFT HANDLERS
// =============================================================================

// ListShifts returns all shift definitions.
func (h *Handler) ListShifts(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.Store.FetchShiftDefinitions(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list shifts", err)
		return
	}
	writeJSON(w, http.StatusOK, toShiftDTOs(shifts))
}

// GetShift returns a single shift definition.
func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	id := roster.ShiftID(chi.URLParam(r, "id"))

	shift, err := h.Store.GetShift(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get shift", err)
		return
	}
	if shift == nil {
		writeError(w, http.StatusNotFound, "Shift not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toShiftDTO(*shift))
}

// SaveShift creates or updates a shift definition. Entry/exit times are
// validated here, at the edge, through the roster constructor.
func (h *Handler) SaveShift(w http.ResponseWriter, r *http.Request) {
	var req SaveShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" {
		req.ID = newID("shift")
	}

	weekdays, err := roster.WeekdaySetFromInts(req.Weekdays)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid weekdays", err)
		return
	}
	shift, err := roster.NewShiftDefinition(roster.ShiftID(req.ID), req.Name,
		req.Entry, req.Exit, weekdays, req.AppliesOnHolidays, req.Tasks...)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid shift definition", err)
		return
	}

	if err := h.Store.SaveShift(r.Context(), shift); err != nil {
		if roster.IsConflict(err) {
			writeError(w, http.StatusConflict, "Shift name already exists", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to save shift", err)
		return
	}
	writeJSON(w, http.StatusCreated, toShiftDTO(shift))
}

// DeleteShift removes a shift definition. Rejected with 409 while employees
// are still assigned to its name.
func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	id := roster.ShiftID(chi.URLParam(r, "id"))

	err := h.Store.DeleteShift(r.Context(), id)
	if roster.IsNotFound(err) {
		writeError(w, http.StatusNotFound, "Shift not found", err)
		return
	}
	if roster.IsConflict(err) {
		writeError(w, http.StatusConflict, "Shift has employees assigned", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete shift", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": string(id)})
}

// GetActiveShifts returns the shifts active at an instant.
func (h *Handler) GetActiveShifts(w http.ResponseWriter, r *http.Request) {
	at, err := parseAt(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid reference instant", err)
		return
	}

	snapshot, err := roster.TakeSnapshot(r.Context(), h.Store)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load data", err)
		return
	}

	active := snapshot.ActiveShifts(at)
	writeJSON(w, http.StatusOK, map[string]any{
		"at":     at.Format(time.RFC3339),
		"shifts": toShiftDTOs(active),
	})
}

// GetActiveTasks returns the task labels valid at an instant.
func (h *Handler) GetActiveTasks(w http.ResponseWriter, r *http.Request) {
	at, err := parseAt(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid reference instant", err)
		return
	}

	snapshot, err := roster.TakeSnapshot(r.Context(), h.Store)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load data", err)
		return
	}

	tasks := roster.ActiveTasks(at, snapshot.Shifts, snapshot.Holidays)
	if tasks == nil {
		tasks = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"at":    at.Format(time.RFC3339),
		"tasks": tasks,
	})
}

// =============================================================================
// HOLIDAY HANDLERS
// =============================================================================

// ListHolidays returns all holidays.
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.Store.FetchHolidays(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list holidays", err)
		return
	}
	dtos := make([]HolidayDTO, len(holidays))
	for i, hol := range holidays {
		dtos[i] = toHolidayDTO(hol)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// SaveHoliday creates or updates a holiday.
func (h *Handler) SaveHoliday(w http.ResponseWriter, r *http.Request) {
	var req SaveHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD", err)
		return
	}
	if req.ID == "" {
		req.ID = newID("hol")
	}

	holiday := roster.Holiday{ID: req.ID, Date: date, Name: req.Name, Recurring: req.Recurring}
	if err := h.Store.SaveHoliday(r.Context(), holiday); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save holiday", err)
		return
	}
	writeJSON(w, http.StatusCreated, toHolidayDTO(holiday))
}

// DeleteHoliday removes a holiday.
func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.Store.DeleteHoliday(r.Context(), id)
	if roster.IsNotFound(err) {
		writeError(w, http.StatusNotFound, "Holiday not found", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete holiday", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
}

// =============================================================================
// LEAVE HANDLERS
// =============================================================================

// ListLeaves returns leave records, optionally filtered by employee_id.
func (h *Handler) ListLeaves(w http.ResponseWriter, r *http.Request) {
	var filter []roster.EmployeeID
	if empID := r.URL.Query().Get("employee_id"); empID != "" {
		filter = append(filter, roster.EmployeeID(empID))
	}

	leaves, err := h.Store.FetchLeaveRecords(r.Context(), filter...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list leave records", err)
		return
	}
	dtos := make([]LeaveDTO, len(leaves))
	for i, l := range leaves {
		dtos[i] = toLeaveDTO(l)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// SaveLeave creates or updates a leave record. The inclusive-range invariant
// is enforced by the roster constructor; an inverted range is a 400.
func (h *Handler) SaveLeave(w http.ResponseWriter, r *http.Request) {
	var req SaveLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	start, err := time.Parse("2006-01-02", req.Start)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start date, expected YYYY-MM-DD", err)
		return
	}
	end, err := time.Parse("2006-01-02", req.End)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end date, expected YYYY-MM-DD", err)
		return
	}
	if req.ID == "" {
		req.ID = newID("leave")
	}

	record, err := roster.NewLeaveRecord(req.ID, roster.EmployeeID(req.EmployeeID), start, end, req.Reason)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid leave range", err)
		return
	}

	if err := h.Store.SaveLeave(r.Context(), record); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save leave record", err)
		return
	}
	writeJSON(w, http.StatusCreated, toLeaveDTO(record))
}

// DeleteLeave removes a leave record.
func (h *Handler) DeleteLeave(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.Store.DeleteLeave(r.Context(), id)
	if roster.IsNotFound(err) {
		writeError(w, http.StatusNotFound, "Leave record not found", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete leave record", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
}

// =============================================================================
// BOARD HANDLERS
// =============================================================================

// GetBoard computes the muster report at an instant.
func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	at, err := parseAt(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid reference instant", err)
		return
	}

	snapshot, err := roster.TakeSnapshot(r.Context(), h.Store)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load data", err)
		return
	}

	report, err := snapshot.Muster(at)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to compute board", err)
		return
	}
	writeJSON(w, http.StatusOK, toBoardDTO(report))
}

// GetCachedBoard returns the last monitor-computed report without touching
// the store.
func (h *Handler) GetCachedBoard(w http.ResponseWriter, r *http.Request) {
	if h.Monitor == nil {
		writeError(w, http.StatusServiceUnavailable, "Board monitor not running", nil)
		return
	}
	report, refreshedAt, ok := h.Monitor.Latest()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "No board computed yet", nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"refreshed_at": refreshedAt.Format(time.RFC3339),
		"board":        toBoardDTO(report),
	})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
