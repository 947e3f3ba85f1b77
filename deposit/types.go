/*
Package deposit defines the position record and portfolio aggregation.

PURPOSE:
  The accrual package knows nothing about banks or accounts; this package
  binds its arithmetic to the domain: fixed-term deposit positions held at
  banks, with per-bank grouping and portfolio totals.

KEY CONCEPTS IN THIS FILE (types.go):
  - Position: A single fixed-term deposit (bank, account, term, principal,
    rate, booked interest)
  - Terms(): Projection of a position onto the engine's calculation inputs

MUTABILITY:
  Positions are created and mutated by the form/persistence boundary; the
  engine and aggregator only ever read them. BookedInterest in particular
  is maintained externally and consumed by the reserve figure.

SEE ALSO:
  - portfolio.go: Aggregation across a position collection
  - store.go: Persistence interface
*/
package deposit

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/deposit-engine/accrual"
)

// =============================================================================
// POSITION - A fixed-term deposit
// =============================================================================

// Position is a single fixed-term deposit. StartDate and EndDate are the
// inclusive boundaries of the accrual term.
type Position struct {
	ID            string
	BankName      string
	AccountNumber string

	StartDate accrual.Date
	EndDate   accrual.Date

	// Nominal is the principal.
	Nominal decimal.Decimal

	// AnnualRatePercent is the nominal annual rate in percent (5 means 5%).
	AnnualRatePercent decimal.Decimal

	Convention accrual.Convention

	// BookedInterest is interest already recognized/paid, maintained by the
	// external booking flow and used only by the reserve figure.
	BookedInterest decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Terms projects the position onto the engine's calculation inputs.
func (p Position) Terms() accrual.Terms {
	conv := p.Convention
	if conv == "" {
		conv = accrual.ActualActual
	}
	return accrual.Terms{
		Start:             p.StartDate,
		End:               p.EndDate,
		Nominal:           p.Nominal,
		AnnualRatePercent: p.AnnualRatePercent,
		Convention:        conv,
	}
}

// Validate flags malformed positions for the API/form boundary. The engine
// itself stays permissive: an invalid position still computes, resolving to
// defined zeros or algebraic propagation per the accrual contract.
func (p Position) Validate() error {
	switch {
	case p.BankName == "":
		return ErrMissingBankName
	case p.StartDate.IsZero() || p.EndDate.IsZero():
		return ErrMissingTermDates
	case p.EndDate.Before(p.StartDate):
		return ErrInvertedTerm
	case p.Nominal.IsNegative():
		return ErrNegativeNominal
	case p.AnnualRatePercent.IsNegative():
		return ErrNegativeRate
	case p.BookedInterest.IsNegative():
		return ErrNegativeBooked
	}
	if p.Convention != "" {
		if _, err := accrual.ParseConvention(string(p.Convention)); err != nil {
			return err
		}
	}
	return nil
}
