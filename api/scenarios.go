/*
scenarios.go - Demo scenario loaders

PURPOSE:
  Seeds the database with ready-made rosters so the dashboard can be
  demonstrated and exercised without manual data entry. Each scenario is a
  named, self-contained data set; loading one wipes whatever was there.

SCENARIOS:
  garrison:  Three rotating shifts plus a night shift and a holiday-only
             guard detail, a mixed military/civilian roster, fixed and
             recurring holidays, and leave records straddling today.
  minimal:   One day shift and two employees, for quick smoke tests.

SEE ALSO:
  - handlers.go: writeJSON/writeError helpers
  - server.go: /api/scenarios routes
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/warp/duty-engine/roster"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "garrison",
		Name:        "Garrison roster",
		Description: "Rotating day shifts, a midnight-crossing night shift, a holiday-only guard detail, and leave records straddling today.",
	},
	{
		ID:          "minimal",
		Name:        "Minimal",
		Description: "One day shift and two employees, for smoke tests.",
	},
}

// ListScenarios returns the available demo scenarios.
// GET /api/scenarios
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"scenarios": scenarios,
		"current":   h.currentScenario,
	})
}

// LoadScenario wipes the database and loads the named scenario.
// POST /api/scenarios/load
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()
	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}

	var err error
	switch req.ID {
	case "garrison":
		err = h.loadGarrison(ctx)
	case "minimal":
		err = h.loadMinimal(ctx)
	default:
		writeError(w, http.StatusNotFound, fmt.Sprintf("Unknown scenario %q", req.ID), nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
		return
	}

	h.currentScenario = req.ID
	if h.Monitor != nil {
		h.Monitor.Refresh()
	}
	writeJSON(w, http.StatusOK, map[string]any{"loaded": req.ID})
}

// ResetDatabase wipes all data.
// POST /api/scenarios/reset
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = ""
	writeJSON(w, http.StatusOK, map[string]any{"reset": true})
}

// =============================================================================
// GARRISON SCENARIO
// =============================================================================

func (h *Handler) loadGarrison(ctx context.Context) error {
	weekdaysAll := roster.NewWeekdaySet(time.Sunday, time.Monday, time.Tuesday,
		time.Wednesday, time.Thursday, time.Friday, time.Saturday)
	weekdaysMonFri := roster.NewWeekdaySet(time.Monday, time.Tuesday,
		time.Wednesday, time.Thursday, time.Friday)

	type shiftSpec struct {
		id, name, entry, exit string
		weekdays              roster.WeekdaySet
		holidays              bool
		tasks                 []string
	}
	shiftSpecs := []shiftSpec{
		{"shift-manana", "Mañana", "07:00", "13:00", weekdaysAll, true,
			[]string{"Limpieza general", "Control de acceso"}},
		{"shift-tarde", "Tarde", "13:00", "19:00", weekdaysAll, true,
			[]string{"Limpieza general", "Mantenimiento"}},
		{"shift-noche1", "Noche 1°", "22:00", "06:00", weekdaysMonFri, false,
			[]string{"Rondín nocturno"}},
		// Disabled until the holiday detail is staffed: no weekdays, no
		// holiday override.
		{"shift-reserva", "Reserva", "08:00", "14:00", 0, false, nil},
		{"shift-guardia", "Guardia Feriados", "08:00", "20:00", 0, true,
			[]string{"Control de acceso"}},
	}
	for _, spec := range shiftSpecs {
		shift, err := roster.NewShiftDefinition(roster.ShiftID(spec.id), spec.name,
			spec.entry, spec.exit, spec.weekdays, spec.holidays, spec.tasks...)
		if err != nil {
			return err
		}
		if err := h.Store.SaveShift(ctx, shift); err != nil {
			return err
		}
	}

	employees := []roster.Employee{
		{ID: "emp-001", FirstName: "Carlos", LastName: "Benítez", Rank: "SM", AssignedShift: "Mañana"},
		{ID: "emp-002", FirstName: "María", LastName: "González", Rank: "SS", AssignedShift: "Mañana"},
		{ID: "emp-003", FirstName: "Jorge", LastName: "Romero", Rank: "CP", AssignedShift: "Tarde"},
		{ID: "emp-004", FirstName: "Lucía", LastName: "Ferreira", Rank: "PC", AssignedShift: "Tarde"},
		{ID: "emp-005", FirstName: "Ramón", LastName: "Acosta", Rank: "SI", AssignedShift: "Noche 1°"},
		{ID: "emp-006", FirstName: "Diego", LastName: "Villalba", Rank: "CS", AssignedShift: "Noche 1°"},
		{ID: "emp-007", FirstName: "Ana", LastName: "Martínez", Rank: "PC", AssignedShift: "Guardia Feriados"},
		// Orphaned assignment on purpose: the board must classify this
		// employee as resting, never error.
		{ID: "emp-008", FirstName: "Pedro", LastName: "Cáceres", Rank: "MITV", AssignedShift: "Turno Viejo"},
	}
	for _, emp := range employees {
		if err := h.Store.SaveEmployee(ctx, emp); err != nil {
			return err
		}
	}

	today := time.Now()
	holidays := []roster.Holiday{
		{ID: "hol-navidad", Date: time.Date(2023, time.December, 25, 0, 0, 0, 0, time.UTC),
			Name: "Navidad", Recurring: true},
		{ID: "hol-anionuevo", Date: time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
			Name: "Año Nuevo", Recurring: true},
		{ID: "hol-puntual", Date: roster.DayOf(today.AddDate(0, 0, 2)),
			Name: "Asueto administrativo", Recurring: false},
	}
	for _, hol := range holidays {
		if err := h.Store.SaveHoliday(ctx, hol); err != nil {
			return err
		}
	}

	leaveSpecs := []struct {
		id    string
		emp   roster.EmployeeID
		start time.Time
		end   time.Time
		why   string
	}{
		{"leave-001", "emp-002", today.AddDate(0, 0, -1), today.AddDate(0, 0, 3), "Licencia médica"},
		{"leave-002", "emp-005", today, today, "Trámite personal"},
		{"leave-003", "emp-004", today.AddDate(0, 0, 10), today.AddDate(0, 0, 15), "Vacaciones"},
	}
	for _, spec := range leaveSpecs {
		record, err := roster.NewLeaveRecord(spec.id, spec.emp, spec.start, spec.end, spec.why)
		if err != nil {
			return err
		}
		if err := h.Store.SaveLeave(ctx, record); err != nil {
			return err
		}
	}

	return nil
}

// =============================================================================
// MINIMAL SCENARIO
// =============================================================================

func (h *Handler) loadMinimal(ctx context.Context) error {
	weekdaysAll := roster.NewWeekdaySet(time.Sunday, time.Monday, time.Tuesday,
		time.Wednesday, time.Thursday, time.Friday, time.Saturday)

	shift, err := roster.NewShiftDefinition("shift-dia", "Día", "08:00", "16:00",
		weekdaysAll, true, "Tarea única")
	if err != nil {
		return err
	}
	if err := h.Store.SaveShift(ctx, shift); err != nil {
		return err
	}

	employees := []roster.Employee{
		{ID: "emp-a", FirstName: "Uno", LastName: "Prueba", Rank: "SM", AssignedShift: "Día"},
		{ID: "emp-b", FirstName: "Dos", LastName: "Prueba", Rank: "PC", AssignedShift: "Día"},
	}
	for _, emp := range employees {
		if err := h.Store.SaveEmployee(ctx, emp); err != nil {
			return err
		}
	}
	return nil
}
