package accrual

import "errors"

// The engine itself never fails on range or rate edge cases: inverted ranges
// resolve to zero-interest results and negative inputs propagate
// algebraically. The only fatal condition is malformed date input, which
// belongs to the parsing boundary.
var (
	// ErrUnparseableDate is returned when a date string is not ISO-8601.
	ErrUnparseableDate = errors.New("unparseable date")

	// ErrUnknownConvention is returned when parsing an unrecognized
	// day-count convention name.
	ErrUnknownConvention = errors.New("unknown day-count convention")
)
