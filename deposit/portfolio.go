/*
portfolio.go - Aggregation across a position collection

PURPOSE:
  Computes the full report the results table consumes: one row per
  position (full-term, in-window, accrued-to-cutoff, reserve), subtotals
  per issuing bank, and grand totals.

AGGREGATION RULE:
  Totals sum the ALREADY-ROUNDED per-position amounts and are re-rounded
  after summing. They are never re-derived from raw principal and day
  counts. This keeps the portfolio total equal to the visible sum of the
  displayed rows - a table whose footer disagrees with its rows by a cent
  is a support ticket, not a rounding nicety.

ORDERING:
  Per-position rows keep input order. Bank groups are sorted by name
  (stable, case-sensitive); the ordering carries no meaning beyond
  determinism for presentation.

SEE ALSO:
  - accrual/engine.go: The per-position primitive called here
*/
package deposit

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/warp/deposit-engine/accrual"
)

// =============================================================================
// REPORT TYPES
// =============================================================================

// PositionReport carries every figure the table shows for one position.
type PositionReport struct {
	Position        Position
	FullTerm        accrual.AccrualResult
	InWindow        accrual.AccrualResult
	AccruedToCutoff accrual.AccrualResult

	// Reserve is accrued-to-cutoff minus booked interest; negative when
	// the position is over-booked.
	Reserve decimal.Decimal
}

// Totals is a sum of per-position figures (pre-rounded line items).
type Totals struct {
	Positions        int
	Nominal          decimal.Decimal
	FullTermInterest decimal.Decimal
	InWindowInterest decimal.Decimal
	AccruedInterest  decimal.Decimal
	BookedInterest   decimal.Decimal
	Reserve          decimal.Decimal
}

// BankTotals is the subtotal for one issuing bank.
type BankTotals struct {
	BankName string
	Totals
}

// PortfolioReport is the aggregate output for one reporting window/cutoff.
type PortfolioReport struct {
	Window accrual.Window
	Cutoff accrual.Date

	PerPosition []PositionReport
	PerBank     []BankTotals
	GrandTotal  Totals
}

// =============================================================================
// PORTFOLIO AGGREGATOR
// =============================================================================

// Report computes the per-position figures for one position.
func Report(p Position, window accrual.Window, cutoff accrual.Date) PositionReport {
	terms := p.Terms()
	toCutoff := accrual.ToCutoff(terms, cutoff)
	return PositionReport{
		Position:        p,
		FullTerm:        accrual.FullTerm(terms),
		InWindow:        accrual.Accrue(terms, window),
		AccruedToCutoff: toCutoff,
		Reserve:         toCutoff.Interest.Sub(p.BookedInterest),
	}
}

// Aggregate computes per-position reports, per-bank subtotals, and grand
// totals. A zero cutoff defaults to today; a zero window spans each
// position's full term.
func Aggregate(positions []Position, window accrual.Window, cutoff accrual.Date) PortfolioReport {
	if cutoff.IsZero() {
		cutoff = accrual.Today()
	}

	report := PortfolioReport{
		Window:      window,
		Cutoff:      cutoff,
		PerPosition: make([]PositionReport, 0, len(positions)),
	}

	byBank := make(map[string]*Totals)
	for _, p := range positions {
		row := Report(p, window, cutoff)
		report.PerPosition = append(report.PerPosition, row)

		group, ok := byBank[p.BankName]
		if !ok {
			group = &Totals{}
			byBank[p.BankName] = group
		}
		group.add(row)
		report.GrandTotal.add(row)
	}

	report.PerBank = make([]BankTotals, 0, len(byBank))
	for bank, totals := range byBank {
		report.PerBank = append(report.PerBank, BankTotals{BankName: bank, Totals: totals.rounded()})
	}
	sort.SliceStable(report.PerBank, func(i, j int) bool {
		return report.PerBank[i].BankName < report.PerBank[j].BankName
	})

	report.GrandTotal = report.GrandTotal.rounded()
	return report
}

// add folds one row's already-rounded figures into the running totals.
func (t *Totals) add(row PositionReport) {
	t.Positions++
	t.Nominal = t.Nominal.Add(row.Position.Nominal)
	t.FullTermInterest = t.FullTermInterest.Add(row.FullTerm.Interest)
	t.InWindowInterest = t.InWindowInterest.Add(row.InWindow.Interest)
	t.AccruedInterest = t.AccruedInterest.Add(row.AccruedToCutoff.Interest)
	t.BookedInterest = t.BookedInterest.Add(row.Position.BookedInterest)
	t.Reserve = t.Reserve.Add(row.Reserve)
}

// rounded re-rounds every total to 2 decimals after summing.
func (t Totals) rounded() Totals {
	t.Nominal = accrual.RoundMoney(t.Nominal)
	t.FullTermInterest = accrual.RoundMoney(t.FullTermInterest)
	t.InWindowInterest = accrual.RoundMoney(t.InWindowInterest)
	t.AccruedInterest = accrual.RoundMoney(t.AccruedInterest)
	t.BookedInterest = accrual.RoundMoney(t.BookedInterest)
	t.Reserve = accrual.RoundMoney(t.Reserve)
	return t
}
