package accrual

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestIsLeapYear(t *testing.T) {
	cases := map[int]bool{
		2023: false,
		2024: true,
		2000: true,  // divisible by 400
		1900: false, // century, not divisible by 400
		2100: false,
		2016: true,
	}
	for year, want := range cases {
		if got := IsLeapYear(year); got != want {
			t.Errorf("IsLeapYear(%d) = %v, want %v", year, got, want)
		}
	}
}

func TestYearBasis_SingleYear(t *testing.T) {
	nonLeap := YearBasis(NewDate(2023, time.March, 1), NewDate(2023, time.September, 30))
	if !nonLeap.Equal(decimal.NewFromInt(365)) {
		t.Errorf("2023 basis = %s, want 365", nonLeap)
	}

	leap := YearBasis(NewDate(2024, time.March, 1), NewDate(2024, time.September, 30))
	if !leap.Equal(decimal.NewFromInt(366)) {
		t.Errorf("2024 basis = %s, want 366", leap)
	}
}

func TestYearBasis_CrossYearWeighted(t *testing.T) {
	// GIVEN: Dec 1 2024 - Jan 31 2025
	//   31 inclusive days in 2024 (basis 366)
	//   31 inclusive days in 2025 (basis 365)
	// THEN: weighted basis = (31*366 + 31*365) / 62 = 365.5
	basis := YearBasis(NewDate(2024, time.December, 1), NewDate(2025, time.January, 31))

	want := decimal.NewFromFloat(365.5)
	if !basis.Equal(want) {
		t.Errorf("weighted basis = %s, want %s", basis, want)
	}
}

func TestYearBasis_MultiYearSpan(t *testing.T) {
	// GIVEN: a term covering all of 2023, 2024, 2025
	// THEN: weighted basis = (365*365 + 366*366 + 365*365) / 1096
	basis := YearBasis(NewDate(2023, time.January, 1), NewDate(2025, time.December, 31))

	want := decimal.NewFromInt(365*365 + 366*366 + 365*365).
		Div(decimal.NewFromInt(1096))
	if !basis.Equal(want) {
		t.Errorf("three-year basis = %s, want %s", basis, want)
	}

	// The blend must sit strictly between the pure bases.
	if basis.LessThanOrEqual(decimal.NewFromInt(365)) || basis.GreaterThanOrEqual(decimal.NewFromInt(366)) {
		t.Errorf("three-year basis %s outside (365, 366)", basis)
	}
}

func TestYearBasis_InvertedRangeFallsBackTo365(t *testing.T) {
	basis := YearBasis(NewDate(2024, time.June, 15), NewDate(2024, time.June, 10))
	if !basis.Equal(decimal.NewFromInt(365)) {
		t.Errorf("inverted-range basis = %s, want 365 fallback", basis)
	}
}

func TestYearBasis_SingleDay(t *testing.T) {
	// A one-day range on the leap day still resolves the leap-year basis.
	basis := YearBasis(NewDate(2024, time.February, 29), NewDate(2024, time.February, 29))
	if !basis.Equal(decimal.NewFromInt(366)) {
		t.Errorf("leap-day basis = %s, want 366", basis)
	}
}
