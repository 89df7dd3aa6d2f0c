package roster_test

import (
	"testing"
	"time"

	"github.com/warp/duty-engine/roster"
)

func TestShiftIndex_Resolve(t *testing.T) {
	// GIVEN: An index over two shifts
	// WHEN: Resolving a known and an unknown name
	// THEN: Known names resolve; unknown names report ok=false

	shifts := []roster.ShiftDefinition{
		mustShift(t, "Mañana", "07:00", "13:00", allWeekdays(), false),
		mustShift(t, "Tarde", "13:00", "19:00", allWeekdays(), false),
	}
	idx := roster.NewShiftIndex(shifts)

	if idx.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", idx.Len())
	}
	if s, ok := idx.Resolve("Tarde"); !ok || s.Name != "Tarde" {
		t.Error("Resolve(Tarde) should find the shift")
	}
	if _, ok := idx.Resolve("Turno Viejo"); ok {
		t.Error("Resolve of an unknown name should report ok=false")
	}
}

func TestShiftIndex_DuplicateNamesFirstWins(t *testing.T) {
	// GIVEN: Two definitions sharing a name with different windows
	// WHEN: Building the index
	// THEN: The first definition wins, mirroring find-first lookup

	first := mustShift(t, "Mañana", "07:00", "13:00", allWeekdays(), false)
	second := roster.ShiftDefinition{ID: "other", Name: "Mañana",
		Entry: roster.MustTimeOfDay("20:00"), Exit: roster.MustTimeOfDay("23:00"),
		Weekdays: allWeekdays()}

	idx := roster.NewShiftIndex([]roster.ShiftDefinition{first, second})
	s, ok := idx.Resolve("Mañana")
	if !ok || s.ID != first.ID {
		t.Errorf("Duplicate name should resolve to the first definition, got %v", s.ID)
	}
}

func TestOnDuty_AssignedShiftActive(t *testing.T) {
	// GIVEN: An employee assigned to a Mon-Fri day shift
	// WHEN: Testing inside and outside the shift window
	// THEN: On duty only inside

	shifts := []roster.ShiftDefinition{
		mustShift(t, "Mañana", "07:00", "13:00", weekdaysMonFri(), false),
	}
	emp := roster.Employee{ID: "emp-1", FirstName: "Carlos", LastName: "Benítez",
		Rank: "SM", AssignedShift: "Mañana"}

	if !roster.IsOnDuty(emp, at(2024, time.January, 1, 9, 0), shifts, nil) {
		t.Error("Employee should be on duty Monday 09:00")
	}
	if roster.IsOnDuty(emp, at(2024, time.January, 1, 14, 0), shifts, nil) {
		t.Error("Employee should not be on duty after the shift ends")
	}
	if roster.IsOnDuty(emp, at(2024, time.January, 6, 9, 0), shifts, nil) {
		t.Error("Employee should not be on duty on Saturday")
	}
}

func TestOnDuty_OrphanedShiftReference(t *testing.T) {
	// GIVEN: An employee whose assigned shift name matches no definition
	// WHEN: Testing duty at any instant
	// THEN: Off duty, no error - renamed or deleted shifts must not break
	//       the board

	shifts := []roster.ShiftDefinition{
		mustShift(t, "Mañana", "07:00", "13:00", allWeekdays(), false),
	}
	emp := roster.Employee{ID: "emp-8", FirstName: "Pedro", LastName: "Cáceres",
		Rank: "MITV", AssignedShift: "Turno Viejo"}

	if roster.IsOnDuty(emp, at(2024, time.January, 1, 9, 0), shifts, nil) {
		t.Error("An orphaned shift reference should never be on duty")
	}
}

func TestOnDuty_AgreesWithActiveShifts(t *testing.T) {
	// GIVEN: A night shift and its assignee
	// WHEN: Sweeping instants across two days
	// THEN: The employee is on duty exactly when the shift reports active -
	//       both answers come from the same predicate

	shifts := []roster.ShiftDefinition{
		mustShift(t, "Noche 1°", "22:00", "06:00", weekdaysMonFri(), false),
	}
	emp := roster.Employee{ID: "emp-5", FirstName: "Ramón", LastName: "Acosta",
		Rank: "SI", AssignedShift: "Noche 1°"}

	for d := 1; d <= 2; d++ {
		for hour := 0; hour < 24; hour++ {
			now := at(2024, time.January, d, hour, 0)
			shiftActive := len(roster.ActiveShifts(now, shifts, nil)) > 0
			onDuty := roster.IsOnDuty(emp, now, shifts, nil)
			if shiftActive != onDuty {
				t.Errorf("At %v: shift active=%v but employee on duty=%v", now, shiftActive, onDuty)
			}
		}
	}
}

func TestEmployee_MilitaryClassification(t *testing.T) {
	// GIVEN: Employees with military, civilian, and empty rank codes
	// THEN: Only codes in the military hierarchy classify as military

	military := []string{"MSTV", "MITV", "CS", "CI", "CP", "SS", "SI", "SP", "SM"}
	for _, rank := range military {
		emp := roster.Employee{ID: "e", Rank: rank}
		if !emp.IsMilitary() {
			t.Errorf("Rank %s should classify as military", rank)
		}
	}
	for _, rank := range []string{"PC", "", "sm", "XYZ"} {
		emp := roster.Employee{ID: "e", Rank: rank}
		if emp.IsMilitary() {
			t.Errorf("Rank %q should classify as civilian", rank)
		}
	}
}
