package roster_test

import (
	"errors"
	"testing"
	"time"

	"github.com/warp/duty-engine/roster"
)

// =============================================================================
// TIME OF DAY PARSING
// =============================================================================

func TestParseTimeOfDay_Valid(t *testing.T) {
	// GIVEN: Well-formed HH:MM values
	// WHEN: Parsing
	// THEN: Hour and minute come back exactly

	cases := []struct {
		in           string
		hour, minute int
	}{
		{"00:00", 0, 0},
		{"07:30", 7, 30},
		{"23:59", 23, 59},
	}
	for _, c := range cases {
		tod, err := roster.ParseTimeOfDay(c.in)
		if err != nil {
			t.Errorf("ParseTimeOfDay(%q): unexpected error %v", c.in, err)
			continue
		}
		if tod.Hour != c.hour || tod.Minute != c.minute {
			t.Errorf("ParseTimeOfDay(%q) = %d:%d, want %d:%d", c.in, tod.Hour, tod.Minute, c.hour, c.minute)
		}
	}
}

func TestParseTimeOfDay_Malformed(t *testing.T) {
	// GIVEN: Malformed values of every kind
	// WHEN: Parsing
	// THEN: Each fails with ErrMalformedTime - malformed times fail at load,
	//       never inside a resolver

	for _, in := range []string{"", "7", "07:30:00", "ab:cd", "24:00", "12:60", "-1:30", "12:-5"} {
		_, err := roster.ParseTimeOfDay(in)
		if !errors.Is(err, roster.ErrMalformedTime) {
			t.Errorf("ParseTimeOfDay(%q): expected ErrMalformedTime, got %v", in, err)
		}
	}
}

func TestShiftDefinition_RejectsMalformedTime(t *testing.T) {
	// GIVEN: A shift definition with a malformed entry time
	// WHEN: Constructing it
	// THEN: Construction fails, so no malformed shift ever reaches a resolver

	_, err := roster.NewShiftDefinition("s1", "Roto", "25:00", "13:00", allWeekdays(), false)
	if !errors.Is(err, roster.ErrMalformedTime) {
		t.Errorf("Expected ErrMalformedTime for entry 25:00, got %v", err)
	}
}

// =============================================================================
// ANCHORING AND INTERVALS
// =============================================================================

func TestTimeOfDay_At(t *testing.T) {
	// GIVEN: A reference instant with seconds and a non-UTC location
	// WHEN: Anchoring a wall-clock time to it
	// THEN: The result keeps the reference date and location with seconds
	//       zeroed

	loc := time.FixedZone("UTC-3", -3*60*60)
	ref := time.Date(2024, time.June, 15, 18, 45, 33, 999, loc)

	got := roster.MustTimeOfDay("07:05").At(ref)
	want := time.Date(2024, time.June, 15, 7, 5, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("At() = %v, want %v", got, want)
	}
	if got.Location() != loc {
		t.Errorf("At() dropped the reference location")
	}
}

func TestBetweenInclusive_Bounds(t *testing.T) {
	// GIVEN: A closed interval
	// WHEN: Testing the bounds and just outside them
	// THEN: Both endpoints are inside

	start := at(2024, time.January, 1, 8, 0)
	end := at(2024, time.January, 1, 16, 0)

	if !roster.BetweenInclusive(start, start, end) {
		t.Error("Interval start should be inside")
	}
	if !roster.BetweenInclusive(end, start, end) {
		t.Error("Interval end should be inside")
	}
	if roster.BetweenInclusive(start.Add(-time.Minute), start, end) {
		t.Error("One minute before start should be outside")
	}
	if roster.BetweenInclusive(end.Add(time.Minute), start, end) {
		t.Error("One minute after end should be outside")
	}
}

func TestSameDay_AcrossLocations(t *testing.T) {
	// GIVEN: Two instants on the same calendar date in different locations
	// WHEN: Comparing by day
	// THEN: Equal - day comparison reads calendar fields, not instants

	utc := at(2024, time.January, 10, 23, 0)
	local := time.Date(2024, time.January, 10, 1, 0, 0, 0, time.FixedZone("UTC-3", -3*60*60))

	if !roster.SameDay(utc, local) {
		t.Error("Same calendar date in different locations should compare equal")
	}
}

// =============================================================================
// WEEKDAY SETS
// =============================================================================

func TestWeekdaySetFromInts(t *testing.T) {
	// GIVEN: Numeric weekday lists as stored (0=Sunday .. 6=Saturday)
	// WHEN: Building sets
	// THEN: Valid lists round-trip; out-of-range values are rejected

	set, err := roster.WeekdaySetFromInts([]int{1, 2, 3, 4, 5})
	if err != nil {
		t.Fatalf("WeekdaySetFromInts: %v", err)
	}
	if !set.Contains(time.Monday) || !set.Contains(time.Friday) {
		t.Error("Mon-Fri set should contain Monday and Friday")
	}
	if set.Contains(time.Sunday) || set.Contains(time.Saturday) {
		t.Error("Mon-Fri set should not contain weekend days")
	}

	got := set.Ints()
	want := []int{1, 2, 3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("Ints() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Ints()[%d] = %d, want %d", i, got[i], want[i])
		}
	}

	if _, err := roster.WeekdaySetFromInts([]int{7}); !errors.Is(err, roster.ErrInvalidWeekday) {
		t.Errorf("Expected ErrInvalidWeekday for 7, got %v", err)
	}
	if _, err := roster.WeekdaySetFromInts([]int{-1}); !errors.Is(err, roster.ErrInvalidWeekday) {
		t.Errorf("Expected ErrInvalidWeekday for -1, got %v", err)
	}
}

func TestWeekdaySet_Empty(t *testing.T) {
	// GIVEN: An empty weekday set
	// THEN: It is valid, contains nothing, and reports empty

	var set roster.WeekdaySet
	if !set.IsEmpty() {
		t.Error("Zero set should be empty")
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if set.Contains(d) {
			t.Errorf("Empty set should not contain %v", d)
		}
	}
}
