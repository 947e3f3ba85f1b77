package deposit_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/deposit-engine/accrual"
	"github.com/warp/deposit-engine/deposit"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func date(year int, month time.Month, day int) accrual.Date {
	return accrual.NewDate(year, month, day)
}

func position(bank string, nominal, rate float64, start, end accrual.Date) deposit.Position {
	return deposit.Position{
		BankName:          bank,
		AccountNumber:     "000-1",
		StartDate:         start,
		EndDate:           end,
		Nominal:           decimal.NewFromFloat(nominal),
		AnnualRatePercent: decimal.NewFromFloat(rate),
		Convention:        accrual.ActualActual,
	}
}

func testPortfolio() []deposit.Position {
	return []deposit.Position{
		position("Sparkasse", 1000, 5, date(2023, time.January, 1), date(2023, time.December, 31)),
		position("Volksbank", 2500, 3, date(2023, time.January, 1), date(2023, time.December, 31)),
		position("Sparkasse", 1000, 5, date(2024, time.January, 1), date(2024, time.December, 31)),
	}
}

// =============================================================================
// AGGREGATION
// =============================================================================

func TestAggregate_GroupsByBank(t *testing.T) {
	// GIVEN: two Sparkasse positions and one Volksbank position
	// WHEN: aggregating at end of 2024
	// THEN: two bank groups, sorted by name, with per-bank sums
	report := deposit.Aggregate(testPortfolio(), accrual.FullWindow(), date(2024, time.December, 31))

	if len(report.PerPosition) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(report.PerPosition))
	}
	if len(report.PerBank) != 2 {
		t.Fatalf("expected 2 bank groups, got %d", len(report.PerBank))
	}
	if report.PerBank[0].BankName != "Sparkasse" || report.PerBank[1].BankName != "Volksbank" {
		t.Errorf("bank groups out of order: %q, %q", report.PerBank[0].BankName, report.PerBank[1].BankName)
	}

	sparkasse := report.PerBank[0]
	if sparkasse.Positions != 2 {
		t.Errorf("Sparkasse positions = %d, want 2", sparkasse.Positions)
	}
	// Each full-year 1000 @ 5% position yields 50.00.
	if !sparkasse.FullTermInterest.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Sparkasse full-term interest = %s, want 100", sparkasse.FullTermInterest)
	}
	if !sparkasse.Nominal.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("Sparkasse nominal = %s, want 2000", sparkasse.Nominal)
	}
}

func TestAggregate_GrandTotalSumsRoundedRows(t *testing.T) {
	// The grand total must equal the sum of the already-rounded per-row
	// amounts, not a re-derivation from raw principal and days.
	report := deposit.Aggregate(testPortfolio(), accrual.FullWindow(), date(2024, time.December, 31))

	var rowSum decimal.Decimal
	for _, row := range report.PerPosition {
		rowSum = rowSum.Add(row.FullTerm.Interest)
	}

	if !report.GrandTotal.FullTermInterest.Equal(accrual.RoundMoney(rowSum)) {
		t.Errorf("grand total = %s, want round(sum of rows) = %s",
			report.GrandTotal.FullTermInterest, accrual.RoundMoney(rowSum))
	}

	var bankSum decimal.Decimal
	for _, group := range report.PerBank {
		bankSum = bankSum.Add(group.FullTermInterest)
	}
	if !report.GrandTotal.FullTermInterest.Equal(accrual.RoundMoney(bankSum)) {
		t.Errorf("grand total = %s disagrees with bank group sum %s",
			report.GrandTotal.FullTermInterest, bankSum)
	}
}

func TestAggregate_InWindowFigures(t *testing.T) {
	// GIVEN: a window covering only the first quarter of 2023
	// THEN: the 2024 position contributes zero to the in-window column
	window := accrual.Window{From: date(2023, time.January, 1), To: date(2023, time.March, 31)}
	report := deposit.Aggregate(testPortfolio(), window, date(2024, time.December, 31))

	row2024 := report.PerPosition[2]
	if !row2024.InWindow.Interest.IsZero() {
		t.Errorf("2024 position in-window interest = %s, want 0", row2024.InWindow.Interest)
	}

	// 1000 @ 5%: Jan 1 - Mar 31 2023 is 90 inclusive days over basis 365.
	row2023 := report.PerPosition[0]
	if row2023.InWindow.Days != 90 {
		t.Errorf("in-window days = %d, want 90", row2023.InWindow.Days)
	}
	want := decimal.RequireFromString("12.33") // 1000*0.05*90/365 = 12.328...
	if !row2023.InWindow.Interest.Equal(want) {
		t.Errorf("in-window interest = %s, want %s", row2023.InWindow.Interest, want)
	}
}

func TestAggregate_CutoffBetweenTerms(t *testing.T) {
	// A cutoff in mid-2023 accrues nothing on the 2024 position.
	report := deposit.Aggregate(testPortfolio(), accrual.FullWindow(), date(2023, time.June, 30))

	if !report.PerPosition[2].AccruedToCutoff.Interest.IsZero() {
		t.Errorf("2024 position accrued before its start = %s, want 0",
			report.PerPosition[2].AccruedToCutoff.Interest)
	}
	if report.PerPosition[0].AccruedToCutoff.Days != 181 {
		t.Errorf("accrued days to Jun 30 = %d, want 181", report.PerPosition[0].AccruedToCutoff.Days)
	}
}

// =============================================================================
// RESERVE
// =============================================================================

func TestAggregate_ReserveIsAccruedMinusBooked(t *testing.T) {
	p := position("Sparkasse", 1000, 5, date(2023, time.January, 1), date(2023, time.December, 31))
	p.BookedInterest = decimal.NewFromInt(30)

	report := deposit.Aggregate([]deposit.Position{p}, accrual.FullWindow(), date(2023, time.December, 31))
	row := report.PerPosition[0]

	want := row.AccruedToCutoff.Interest.Sub(p.BookedInterest) // 50 - 30
	if !row.Reserve.Equal(want) {
		t.Errorf("reserve = %s, want %s", row.Reserve, want)
	}
	if !report.GrandTotal.Reserve.Equal(decimal.NewFromInt(20)) {
		t.Errorf("grand total reserve = %s, want 20", report.GrandTotal.Reserve)
	}
}

func TestAggregate_OverBookedReserveGoesNegative(t *testing.T) {
	p := position("Sparkasse", 1000, 5, date(2023, time.January, 1), date(2023, time.December, 31))
	p.BookedInterest = decimal.NewFromInt(80)

	report := deposit.Aggregate([]deposit.Position{p}, accrual.FullWindow(), date(2023, time.December, 31))

	if !report.PerPosition[0].Reserve.Equal(decimal.NewFromInt(-30)) {
		t.Errorf("reserve = %s, want -30 (not clamped)", report.PerPosition[0].Reserve)
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestPositionValidate(t *testing.T) {
	valid := position("Sparkasse", 1000, 5, date(2023, time.January, 1), date(2023, time.December, 31))
	if err := valid.Validate(); err != nil {
		t.Errorf("valid position rejected: %v", err)
	}

	inverted := valid
	inverted.StartDate, inverted.EndDate = inverted.EndDate, inverted.StartDate
	if err := inverted.Validate(); err != deposit.ErrInvertedTerm {
		t.Errorf("inverted term: got %v, want ErrInvertedTerm", err)
	}

	noBank := valid
	noBank.BankName = ""
	if err := noBank.Validate(); err != deposit.ErrMissingBankName {
		t.Errorf("missing bank: got %v, want ErrMissingBankName", err)
	}

	negative := valid
	negative.Nominal = decimal.NewFromInt(-1)
	if err := negative.Validate(); err != deposit.ErrNegativeNominal {
		t.Errorf("negative nominal: got %v, want ErrNegativeNominal", err)
	}
}

func TestInvalidPositionStillComputesDefinedZero(t *testing.T) {
	// Validation is a boundary concern; the engine itself resolves an
	// inverted term to a zero-interest row rather than failing.
	inverted := position("Sparkasse", 1000, 5, date(2023, time.December, 31), date(2023, time.January, 1))
	report := deposit.Aggregate([]deposit.Position{inverted}, accrual.FullWindow(), date(2023, time.December, 31))

	row := report.PerPosition[0]
	if row.FullTerm.Days != 0 || !row.FullTerm.Interest.IsZero() {
		t.Errorf("inverted term row = %d days, %s interest; want defined zero",
			row.FullTerm.Days, row.FullTerm.Interest)
	}
}
