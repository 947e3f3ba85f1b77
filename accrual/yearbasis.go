/*
yearbasis.go - Annualization denominator for actual/actual accrual

PURPOSE:
  Resolves the "year basis" by which a day count is divided to annualize
  interest. For a range inside one calendar year this is simply that year's
  length (365 or 366). For a range spanning year boundaries it is a
  DAY-WEIGHTED AVERAGE of the covered years' lengths.

WHY A WEIGHTED BASIS:
  A deposit straddling a leap-year boundary should not be penalized or
  favored purely by which side of the boundary it starts on. Weighting each
  year's basis by the days actually spent in that year makes annualization
  proportional to real exposure in each regime:

    yearBasis = sum(d_i * b_i) / sum(d_i)

  where d_i is the inclusive day count inside year i and b_i is that year's
  length. Example: Dec 1 2024 - Jan 31 2025 spends 31 days in a 366-day year
  and 31 days in a 365-day year, so the basis is 365.5.

INCLUSIVE PARTITIONING:
  Each sub-year interval is counted with the same inclusive rule as
  daycount.go, so the partition day total equals the full-range day count.

FALLBACK:
  An inverted range or a zero-day partition resolves to 365. Unreachable in
  practice once the engine's clipping guard has run, kept as a defensive
  last-resort denominator.

SEE ALSO:
  - daycount.go: The inclusive counting rule reused per sub-year
  - engine.go: 30/360 positions bypass this entirely (fixed basis of 360)
*/
package accrual

import "github.com/shopspring/decimal"

// =============================================================================
// LEAP YEARS
// =============================================================================

// IsLeapYear implements the Gregorian rule: divisible by 4, except
// centuries, except every fourth century.
func IsLeapYear(year int) bool {
	switch {
	case year%400 == 0:
		return true
	case year%100 == 0:
		return false
	default:
		return year%4 == 0
	}
}

// yearLength returns the number of days in the calendar year.
func yearLength(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// =============================================================================
// YEAR BASIS RESOLVER
// =============================================================================

// defaultBasis is the last-resort denominator for degenerate ranges.
var defaultBasis = decimal.NewFromInt(365)

// YearBasis resolves the annualization denominator for [start, end] under
// the actual/actual convention.
func YearBasis(start, end Date) decimal.Decimal {
	if end.Before(start) {
		return defaultBasis
	}

	if start.Year() == end.Year() {
		return decimal.NewFromInt(int64(yearLength(start.Year())))
	}

	// Partition [start, end] by calendar year and weight each year's
	// length by the inclusive days spent inside it.
	var weighted, total int64
	for year := start.Year(); year <= end.Year(); year++ {
		from := maxDate(start, StartOfYear(year))
		to := minDate(end, EndOfYear(year))
		days := int64(DaysBetween(from, to) + 1)
		if days <= 0 {
			continue
		}
		weighted += days * int64(yearLength(year))
		total += days
	}

	if total == 0 {
		return defaultBasis
	}
	return decimal.NewFromInt(weighted).Div(decimal.NewFromInt(total))
}
