/*
Package accrual provides the deposit interest accrual engine.

PURPOSE:
  This package contains the day-count and interest-accrual algorithms for
  fixed-term deposits. Given a principal, an annual rate, and a date range,
  it answers "how much interest accrued over this range" under a selected
  day-count convention.

KEY CONCEPTS IN THIS FILE (date.go):
  - Date: A day-granularity calendar date (time-of-day is always discarded)
  - DaysBetween: Exclusive calendar-day difference between two dates
  - ParseDate: ISO-8601 parsing with time-of-day truncation

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal for all monetary math, never float64
  2. Purity: Every function is a side-effect-free expression over its inputs
  3. Permissiveness: Inverted or empty ranges resolve to defined zeros,
     never errors (callers validate at the form/API boundary)

USAGE:
  start := accrual.NewDate(2024, time.January, 1)
  end := accrual.NewDate(2024, time.December, 31)
  result := accrual.Accrue(terms, accrual.Window{From: start, To: end})

SEE ALSO:
  - daycount.go: Day counting under both conventions
  - yearbasis.go: Annualization denominator (365/366/weighted)
  - engine.go: The interest formula and derived queries
*/
package accrual

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Day-granularity calendar date
// =============================================================================

// Date is a calendar date pinned to UTC midnight. The zero value is "no date"
// and is treated as an unbounded window edge by the engine.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current date in UTC.
func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// FromTime truncates a time.Time to its calendar date.
func FromTime(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// dateLayouts are tried in order by ParseDate. Positions arrive from the
// form/persistence layer as ISO-8601 strings, sometimes with a time-of-day
// component that must be discarded.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDate parses an ISO-8601 date or datetime string, truncating any
// time-of-day component to the calendar date.
func ParseDate(s string) (Date, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return FromTime(t), nil
		}
	}
	return Date{}, fmt.Errorf("%w: %q", ErrUnparseableDate, s)
}

// MustParseDate is a test/fixture helper; it panics on malformed input.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Comparison
func (d Date) Before(other Date) bool        { return d.t.Before(other.t) }
func (d Date) After(other Date) bool         { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool         { return d.t.Equal(other.t) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.t.After(other.t) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.t.Before(other.t) }
func (d Date) IsZero() bool                  { return d.t.IsZero() }

// Arithmetic
func (d Date) AddDays(n int) Date  { return Date{t: d.t.AddDate(0, 0, n)} }
func (d Date) AddYears(n int) Date { return Date{t: d.t.AddDate(n, 0, 0)} }

// Properties
func (d Date) Year() int         { return d.t.Year() }
func (d Date) Month() time.Month { return d.t.Month() }
func (d Date) Day() int          { return d.t.Day() }
func (d Date) Time() time.Time   { return d.t }

func (d Date) String() string {
	return d.t.Format("2006-01-02")
}

// MarshalJSON serializes the date as "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts any ISO-8601 date/datetime string.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// =============================================================================
// DATE UTILITIES
// =============================================================================

// DaysBetween returns the exclusive calendar-day difference (to - from).
// Negative when to precedes from.
func DaysBetween(from, to Date) int {
	return int(to.t.Sub(from.t).Hours() / 24)
}

func StartOfYear(year int) Date { return NewDate(year, time.January, 1) }
func EndOfYear(year int) Date   { return NewDate(year, time.December, 31) }

func minDate(a, b Date) Date {
	if a.Before(b) {
		return a
	}
	return b
}

func maxDate(a, b Date) Date {
	if a.After(b) {
		return a
	}
	return b
}
