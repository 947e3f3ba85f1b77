/*
engine.go - Interest accrual over a clipped window

PURPOSE:
  Combines principal, annual rate, day count, and year basis into a rounded
  monetary amount. This is the single primitive behind every figure the
  system reports: full-term interest, accrued-to-cutoff, in-window
  ("quarterly") interest, and the outstanding reserve.

FORMULA:
  interest = nominal * (annualRatePercent / 100) * (days / basis)

  rounded half-away-from-zero to 2 decimals. All arithmetic runs on
  decimal.Decimal; float64 never touches a monetary value, so exact .005
  boundaries round predictably.

WINDOW CLIPPING:
  Every query window is clipped to the position term [Start, End] first.
  An empty or inverted clipped window is a DEFINED ZERO, not an error:
  days 0, interest 0.00. This keeps the engine safe to call from a UI
  mid-edit; strict validation belongs to the caller.

DERIVED QUERIES:
  FullTerm:  Accrue over [Start, End]
  ToCutoff:  Accrue over [Start, cutoff] - "interest earned so far"
  InWindow:  Accrue over an arbitrary reporting window
  Reserve:   ToCutoff minus already-booked interest (may be negative)

STATE:
  None. Results are recomputed on every query; inputs are cheap and mutable
  upstream, so caching would only invite staleness.

SEE ALSO:
  - daycount.go, yearbasis.go: The two sub-calculations
  - deposit/portfolio.go: Folds results across a position collection
*/
package accrual

import "github.com/shopspring/decimal"

// =============================================================================
// TERMS AND WINDOWS
// =============================================================================

// Terms carries the calculation-relevant fields of a deposit position.
type Terms struct {
	Start             Date
	End               Date
	Nominal           decimal.Decimal
	AnnualRatePercent decimal.Decimal
	Convention        Convention
}

// Window is an ephemeral date pair asking "how much interest accrues in
// this sub-range of the term". A zero From or To means unbounded on that
// side; the window is always clipped to the term before calculation.
type Window struct {
	From Date
	To   Date
}

// FullWindow spans the entire term.
func FullWindow() Window { return Window{} }

// =============================================================================
// ACCRUAL RESULT
// =============================================================================

// AccrualResult is the output value object of a single accrual query.
type AccrualResult struct {
	Days      int
	YearBasis decimal.Decimal
	Interest  decimal.Decimal // rounded to 2 fractional digits
}

var (
	hundred  = decimal.NewFromInt(100)
	basis360 = decimal.NewFromInt(360)
)

// RoundMoney rounds to 2 decimals, half away from zero (0.125 -> 0.13).
// Banker's rounding would disagree at exact half-cent boundaries.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func zeroResult(basis decimal.Decimal) AccrualResult {
	return AccrualResult{Days: 0, YearBasis: basis, Interest: decimal.Zero.Round(2)}
}

// =============================================================================
// INTEREST ACCRUAL ENGINE
// =============================================================================

// Accrue computes the interest accrued within the window, clipped to the
// term. Empty and inverted ranges yield a defined zero result.
func Accrue(t Terms, w Window) AccrualResult {
	from := t.Start
	if !w.From.IsZero() {
		from = maxDate(from, w.From)
	}
	to := t.End
	if !w.To.IsZero() {
		to = minDate(to, w.To)
	}

	if to.Before(from) {
		return zeroResult(defaultBasis)
	}

	days := Days(from, to, t.Convention)
	if days <= 0 {
		return zeroResult(defaultBasis)
	}

	basis := basis360
	if t.Convention != Thirty360 {
		basis = YearBasis(from, to)
	}

	raw := t.Nominal.
		Mul(t.AnnualRatePercent).Div(hundred).
		Mul(decimal.NewFromInt(int64(days))).Div(basis)

	return AccrualResult{
		Days:      days,
		YearBasis: basis,
		Interest:  RoundMoney(raw),
	}
}

// FullTerm returns the interest over the whole term [Start, End].
func FullTerm(t Terms) AccrualResult {
	return Accrue(t, FullWindow())
}

// ToCutoff returns the interest earned from the term start up to the
// cutoff date, inclusive.
func ToCutoff(t Terms, cutoff Date) AccrualResult {
	return Accrue(t, Window{To: cutoff})
}

// InWindow returns the interest accrued inside an arbitrary reporting
// window. A window entirely outside the term yields zero.
func InWindow(t Terms, from, to Date) AccrualResult {
	return Accrue(t, Window{From: from, To: to})
}

// Reserve returns accrued-to-cutoff interest minus the interest already
// booked. Deliberately not clamped: a negative reserve means the position
// is over-booked, which the caller may want to surface.
func Reserve(t Terms, booked decimal.Decimal, cutoff Date) decimal.Decimal {
	return ToCutoff(t, cutoff).Interest.Sub(booked)
}
