/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers (through the roster constructors), not in
  DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - roster/types.go: Domain model behind them
*/
package api

import (
	"time"

	"github.com/warp/duty-engine/roster"
)

// =============================================================================
// EMPLOYEES
// =============================================================================

// EmployeeDTO represents a roster member in API responses.
type EmployeeDTO struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Rank      string `json:"rank"`
	Military  bool   `json:"military"`
	Shift     string `json:"shift"`
}

// SaveEmployeeRequest is the request to create or update an employee.
type SaveEmployeeRequest struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Rank      string `json:"rank"`
	Shift     string `json:"shift"`
}

func toEmployeeDTO(e roster.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:        string(e.ID),
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Rank:      e.Rank,
		Military:  e.IsMilitary(),
		Shift:     e.AssignedShift,
	}
}

func toEmployeeDTOs(emps []roster.Employee) []EmployeeDTO {
	dtos := make([]EmployeeDTO, len(emps))
	for i, e := range emps {
		dtos[i] = toEmployeeDTO(e)
	}
	return dtos
}

// =============================================================================
// SHIFTS
// =============================================================================

// ShiftDTO represents a shift definition in API responses. NightShift is
// derived server-side; clients never set it.
type ShiftDTO struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Entry             string   `json:"entry"`
	Exit              string   `json:"exit"`
	Weekdays          []int    `json:"weekdays"`
	AppliesOnHolidays bool     `json:"applies_on_holidays"`
	NightShift        bool     `json:"night_shift"`
	Tasks             []string `json:"tasks"`
}

// SaveShiftRequest is the request to create or update a shift definition.
type SaveShiftRequest struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Entry             string   `json:"entry"`
	Exit              string   `json:"exit"`
	Weekdays          []int    `json:"weekdays"`
	AppliesOnHolidays bool     `json:"applies_on_holidays"`
	Tasks             []string `json:"tasks"`
}

func toShiftDTO(s roster.ShiftDefinition) ShiftDTO {
	weekdays := s.Weekdays.Ints()
	if weekdays == nil {
		weekdays = []int{}
	}
	tasks := s.Tasks
	if tasks == nil {
		tasks = []string{}
	}
	return ShiftDTO{
		ID:                string(s.ID),
		Name:              s.Name,
		Entry:             s.Entry.String(),
		Exit:              s.Exit.String(),
		Weekdays:          weekdays,
		AppliesOnHolidays: s.AppliesOnHolidays,
		NightShift:        s.IsNightShift(),
		Tasks:             tasks,
	}
}

func toShiftDTOs(shifts []roster.ShiftDefinition) []ShiftDTO {
	dtos := make([]ShiftDTO, len(shifts))
	for i, s := range shifts {
		dtos[i] = toShiftDTO(s)
	}
	return dtos
}

// =============================================================================
// HOLIDAYS
// =============================================================================

// HolidayDTO represents a holiday in API responses.
type HolidayDTO struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Name      string `json:"name"`
	Recurring bool   `json:"recurring"`
}

// SaveHolidayRequest is the request to create a holiday.
type SaveHolidayRequest struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Name      string `json:"name"`
	Recurring bool   `json:"recurring"`
}

func toHolidayDTO(h roster.Holiday) HolidayDTO {
	return HolidayDTO{
		ID:        h.ID,
		Date:      h.Date.Format("2006-01-02"),
		Name:      h.Name,
		Recurring: h.Recurring,
	}
}

// =============================================================================
// LEAVE RECORDS
// =============================================================================

// LeaveDTO represents a leave record in API responses.
type LeaveDTO struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Start      string `json:"start"`
	End        string `json:"end"`
	Days       int    `json:"days"`
	Reason     string `json:"reason,omitempty"`
}

// SaveLeaveRequest is the request to create a leave record.
type SaveLeaveRequest struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Start      string `json:"start"`
	End        string `json:"end"`
	Reason     string `json:"reason"`
}

func toLeaveDTO(l roster.LeaveRecord) LeaveDTO {
	return LeaveDTO{
		ID:         l.ID,
		EmployeeID: string(l.EmployeeID),
		Start:      l.Start.Format("2006-01-02"),
		End:        l.End.Format("2006-01-02"),
		Days:       l.Days(),
		Reason:     l.Reason,
	}
}

// =============================================================================
// BOARD (MUSTER REPORT)
// =============================================================================

// StrengthDTO is a military/civilian breakdown.
type StrengthDTO struct {
	Military int `json:"military"`
	Civilian int `json:"civilian"`
	Total    int `json:"total"`
}

func toStrengthDTO(s roster.Strength) StrengthDTO {
	return StrengthDTO{Military: s.Military, Civilian: s.Civilian, Total: s.Total()}
}

// BoardDTO is the classified state of the roster at a reference instant.
type BoardDTO struct {
	AsOf             string   `json:"as_of"`
	ActiveShifts     []ShiftDTO `json:"active_shifts"`
	ActiveShiftNames []string `json:"active_shift_names"`
	ActiveTasks      []string `json:"active_tasks"`

	Present             []EmployeeDTO `json:"present"`
	OnLeaveCurrentShift []EmployeeDTO `json:"on_leave_current_shift"`
	OnLeaveOtherShift   []EmployeeDTO `json:"on_leave_other_shift"`
	Resting             []EmployeeDTO `json:"resting"`

	Force          StrengthDTO `json:"force"`
	OnShift        StrengthDTO `json:"on_shift"`
	PresentForce   StrengthDTO `json:"present_force"`
	AbsentOnShift  StrengthDTO `json:"absent_on_shift"`
	PresentPercent string      `json:"present_percent"`
}

func toBoardDTO(r *roster.MusterReport) BoardDTO {
	names := make([]string, len(r.ActiveShifts))
	for i, s := range r.ActiveShifts {
		names[i] = s.Name
	}
	tasks := r.ActiveTasks
	if tasks == nil {
		tasks = []string{}
	}
	return BoardDTO{
		AsOf:             r.AsOf.Format(time.RFC3339),
		ActiveShifts:     toShiftDTOs(r.ActiveShifts),
		ActiveShiftNames: names,
		ActiveTasks:      tasks,

		Present:             toEmployeeDTOs(r.Present),
		OnLeaveCurrentShift: toEmployeeDTOs(r.OnLeaveCurrentShift),
		OnLeaveOtherShift:   toEmployeeDTOs(r.OnLeaveOtherShift),
		Resting:             toEmployeeDTOs(r.Resting),

		Force:          toStrengthDTO(r.Force),
		OnShift:        toStrengthDTO(r.OnShift),
		PresentForce:   toStrengthDTO(r.PresentForce),
		AbsentOnShift:  toStrengthDTO(r.AbsentOnShift),
		PresentPercent: r.PresentPercent.StringFixed(1),
	}
}

// DutyDTO answers "is this employee on duty at the given instant".
type DutyDTO struct {
	EmployeeID    string `json:"employee_id"`
	At            string `json:"at"`
	OnDuty        bool   `json:"on_duty"`
	Shift         string `json:"shift"`
	ShiftResolved bool   `json:"shift_resolved"`
}

// ScenarioDTO describes a loadable demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest selects a scenario to load.
type LoadScenarioRequest struct {
	ID string `json:"id"`
}

// ErrorResponse is the JSON shape of every error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
