package accrual

import (
	"testing"
	"time"
)

// =============================================================================
// ACTUAL/ACTUAL DAY COUNT
// =============================================================================

func TestDays_ActualActual_Inclusive(t *testing.T) {
	cases := []struct {
		name  string
		start Date
		end   Date
		want  int
	}{
		{"full non-leap year", NewDate(2023, time.January, 1), NewDate(2023, time.December, 31), 365},
		{"full leap year", NewDate(2024, time.January, 1), NewDate(2024, time.December, 31), 366},
		{"leap day span", NewDate(2024, time.February, 28), NewDate(2024, time.February, 29), 2},
		{"cross year", NewDate(2024, time.December, 1), NewDate(2025, time.January, 31), 62},
		{"one week", NewDate(2025, time.March, 3), NewDate(2025, time.March, 9), 7},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Days(tc.start, tc.end, ActualActual); got != tc.want {
				t.Errorf("Days(%s, %s) = %d, want %d", tc.start, tc.end, got, tc.want)
			}
		})
	}
}

func TestDays_ZeroLengthRangeCountsAsOneDay(t *testing.T) {
	// start == end yields 1 day under the inclusive convention, NOT zero.
	// This is a property of the chosen convention and must hold for both
	// modes; a caller wanting zero-length semantics passes a window it has
	// already decided is empty.
	d := NewDate(2024, time.June, 15)

	if got := Days(d, d, ActualActual); got != 1 {
		t.Errorf("actual/actual same-day count = %d, want 1", got)
	}
	if got := Days(d, d, Thirty360); got != 1 {
		t.Errorf("30/360 same-day count = %d, want 1", got)
	}
}

func TestDays_InvertedRangeIsNonPositive(t *testing.T) {
	start := NewDate(2024, time.June, 15)
	end := NewDate(2024, time.June, 10)

	if got := Days(start, end, ActualActual); got > 0 {
		t.Errorf("inverted actual/actual count = %d, want <= 0", got)
	}
	if got := Days(start, end, Thirty360); got > 0 {
		t.Errorf("inverted 30/360 count = %d, want <= 0", got)
	}
}

// =============================================================================
// 30/360 DAY COUNT
// =============================================================================

func TestDays_Thirty360(t *testing.T) {
	cases := []struct {
		name  string
		start Date
		end   Date
		want  int
	}{
		// (0*360 + 1*30 + 0) + 1
		{"one month", NewDate(2023, time.January, 1), NewDate(2023, time.February, 1), 31},
		// both 31sts capped at 30
		{"31st to 31st", NewDate(2023, time.January, 31), NewDate(2023, time.March, 31), 61},
		// full year is always 360 + 1 regardless of leap status
		{"full year", NewDate(2024, time.January, 1), NewDate(2024, time.December, 31), 361},
		{"same month", NewDate(2023, time.May, 10), NewDate(2023, time.May, 20), 11},
		{"cross year", NewDate(2023, time.December, 15), NewDate(2024, time.January, 15), 31},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Days(tc.start, tc.end, Thirty360); got != tc.want {
				t.Errorf("Days(%s, %s) = %d, want %d", tc.start, tc.end, got, tc.want)
			}
		})
	}
}

// =============================================================================
// CONVENTION PARSING
// =============================================================================

func TestParseConvention(t *testing.T) {
	cases := []struct {
		in   string
		want Convention
		ok   bool
	}{
		{"", ActualActual, true},
		{"actual_actual", ActualActual, true},
		{"ACT/ACT", ActualActual, true},
		{"thirty_360", Thirty360, true},
		{"30/360", Thirty360, true},
		{"act/365f", "", false},
	}

	for _, tc := range cases {
		got, err := ParseConvention(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Errorf("ParseConvention(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Errorf("ParseConvention(%q) expected error", tc.in)
		}
	}
}
