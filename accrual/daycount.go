/*
daycount.go - Day counting under the supported conventions

PURPOSE:
  Counts the number of days between two dates under a day-count convention.
  This is the numerator of the accrual fraction days/basis.

CONVENTIONS:
  ActualActual:
    Real calendar days, counted INCLUSIVELY at both ends: a deposit running
    Jan 1 - Dec 31 earns interest for all 365 (or 366) days, and a one-day
    window (start == end) earns exactly 1 day. This inclusive rule is a
    deliberate convention choice: the interval is a span of value dates,
    both of which earn interest.

  Thirty360:
    Classic 30/360: every date's day-of-month is capped at 30 (31 -> 30,
    on both dates, unconditionally), then
      (dY*360 + dM*30 + dD) + 1
    The trailing +1 keeps 30/360 inclusive and therefore consistent with
    the actual/actual mode above.

PRECONDITIONS:
  end >= start. A caller passing an inverted range receives days <= 0; the
  engine treats that as a zero-interest boundary case rather than failing.

SEE ALSO:
  - yearbasis.go: The denominator side of the fraction
  - engine.go: Combines both into a monetary amount
*/
package accrual

import (
	"fmt"
	"strings"
)

// =============================================================================
// CONVENTION
// =============================================================================

// Convention selects the day-count rule for a position.
type Convention string

const (
	// ActualActual counts real calendar days against the true year length
	// (365/366, day-weighted across year boundaries). The default.
	ActualActual Convention = "actual_actual"

	// Thirty360 treats every month as 30 days and every year as 360.
	Thirty360 Convention = "thirty_360"
)

// ParseConvention resolves a convention name; the empty string resolves to
// the ActualActual default.
func ParseConvention(s string) (Convention, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(ActualActual), "act/act", "actual/actual":
		return ActualActual, nil
	case string(Thirty360), "30/360", "30e/360":
		return Thirty360, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownConvention, s)
	}
}

func (c Convention) String() string { return string(c) }

// =============================================================================
// DAY COUNT CALCULATOR
// =============================================================================

// Days returns the inclusive day count of [start, end] under the convention.
// start == end yields 1; end < start yields a result <= 0.
func Days(start, end Date, convention Convention) int {
	switch convention {
	case Thirty360:
		return days360(start, end)
	default:
		return DaysBetween(start, end) + 1
	}
}

// days360 implements the capped-day 30/360 count, inclusive at both ends.
func days360(start, end Date) int {
	d1 := start.Day()
	if d1 > 30 {
		d1 = 30
	}
	d2 := end.Day()
	if d2 > 30 {
		d2 = 30
	}
	years := end.Year() - start.Year()
	months := int(end.Month()) - int(start.Month())
	return years*360 + months*30 + (d2 - d1) + 1
}
