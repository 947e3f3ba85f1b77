/*
errors.go - Centralized error types for the deposit domain

PURPOSE:
  All domain and store error values in one place. Store implementations
  return these sentinels so callers can branch with errors.Is regardless
  of the backing store.

USAGE:
  if errors.Is(err, deposit.ErrPositionNotFound) {
      // 404
  }

SEE ALSO:
  - store.go: Interface whose implementations return the store errors
  - types.go: Validate returns the validation errors
*/
package deposit

import "errors"

// =============================================================================
// STORE ERRORS
// =============================================================================

var (
	// ErrPositionNotFound is returned when the referenced position does
	// not exist in the store.
	ErrPositionNotFound = errors.New("position not found")

	// ErrDuplicateID is returned when saving a new position under an ID
	// that already exists.
	ErrDuplicateID = errors.New("duplicate position id")
)

// =============================================================================
// VALIDATION ERRORS - Boundary checks, never raised by the engine itself
// =============================================================================

var (
	ErrMissingBankName  = errors.New("bank name is required")
	ErrMissingTermDates = errors.New("start and end dates are required")
	ErrInvertedTerm     = errors.New("end date before start date")
	ErrNegativeNominal  = errors.New("nominal must not be negative")
	ErrNegativeRate     = errors.New("annual rate must not be negative")
	ErrNegativeBooked   = errors.New("booked interest must not be negative")
)
