/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

AMOUNT SERIALIZATION:
  Monetary amounts are serialized as JSON strings ("50.00"), not numbers.
  A JSON number travels through most clients as a float64 and the exact
  2-decimal results the engine guarantees would stop being exact.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

SEE ALSO:
  - handlers.go: Uses these types
  - deposit/portfolio.go: The domain types mapped here
*/
package api

import (
	"encoding/json"
	"time"

	"github.com/warp/deposit-engine/accrual"
	"github.com/warp/deposit-engine/deposit"
)

// =============================================================================
// POSITION TYPES
// =============================================================================

// PositionDTO represents a deposit position in API responses.
type PositionDTO struct {
	ID                string `json:"id"`
	BankName          string `json:"bank_name"`
	AccountNumber     string `json:"account_number"`
	StartDate         string `json:"start_date"`
	EndDate           string `json:"end_date"`
	Nominal           string `json:"nominal"`
	AnnualRatePercent string `json:"annual_rate_percent"`
	Convention        string `json:"convention"`
	BookedInterest    string `json:"booked_interest"`
	CreatedAt         string `json:"created_at,omitempty"`
	UpdatedAt         string `json:"updated_at,omitempty"`
}

// SavePositionRequest is the request body for creating/updating a position.
// Amounts accept both JSON numbers and strings.
type SavePositionRequest struct {
	BankName          string      `json:"bank_name"`
	AccountNumber     string      `json:"account_number"`
	StartDate         string      `json:"start_date"`
	EndDate           string      `json:"end_date"`
	Nominal           json.Number `json:"nominal"`
	AnnualRatePercent json.Number `json:"annual_rate_percent"`
	Convention        string      `json:"convention,omitempty"`
	BookedInterest    json.Number `json:"booked_interest,omitempty"`
}

// =============================================================================
// ACCRUAL / REPORT TYPES
// =============================================================================

// AccrualResultDTO is one computed accrual figure.
type AccrualResultDTO struct {
	Days      int    `json:"days"`
	YearBasis string `json:"year_basis"`
	Interest  string `json:"interest"`
}

// PositionReportDTO is one row of the portfolio report.
type PositionReportDTO struct {
	Position        PositionDTO      `json:"position"`
	FullTerm        AccrualResultDTO `json:"full_term"`
	InWindow        AccrualResultDTO `json:"in_window"`
	AccruedToCutoff AccrualResultDTO `json:"accrued_to_cutoff"`
	Reserve         string           `json:"reserve"`
}

// TotalsDTO is a sum of per-position figures.
type TotalsDTO struct {
	Positions        int    `json:"positions"`
	Nominal          string `json:"nominal"`
	FullTermInterest string `json:"full_term_interest"`
	InWindowInterest string `json:"in_window_interest"`
	AccruedInterest  string `json:"accrued_interest"`
	BookedInterest   string `json:"booked_interest"`
	Reserve          string `json:"reserve"`
}

// BankTotalsDTO is the subtotal for one issuing bank.
type BankTotalsDTO struct {
	BankName string `json:"bank_name"`
	TotalsDTO
}

// ReportDTO is the full portfolio report for one window/cutoff.
type ReportDTO struct {
	WindowFrom  string              `json:"window_from,omitempty"`
	WindowTo    string              `json:"window_to,omitempty"`
	Cutoff      string              `json:"cutoff"`
	PerPosition []PositionReportDTO `json:"per_position"`
	PerBank     []BankTotalsDTO     `json:"per_bank"`
	GrandTotal  TotalsDTO           `json:"grand_total"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// MAPPING
// =============================================================================

func toPositionDTO(p deposit.Position) PositionDTO {
	dto := PositionDTO{
		ID:                p.ID,
		BankName:          p.BankName,
		AccountNumber:     p.AccountNumber,
		StartDate:         p.StartDate.String(),
		EndDate:           p.EndDate.String(),
		Nominal:           p.Nominal.String(),
		AnnualRatePercent: p.AnnualRatePercent.String(),
		Convention:        string(p.Convention),
		BookedInterest:    p.BookedInterest.String(),
	}
	if !p.CreatedAt.IsZero() {
		dto.CreatedAt = p.CreatedAt.UTC().Format(time.RFC3339)
	}
	if !p.UpdatedAt.IsZero() {
		dto.UpdatedAt = p.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return dto
}

func toAccrualResultDTO(r accrual.AccrualResult) AccrualResultDTO {
	return AccrualResultDTO{
		Days:      r.Days,
		YearBasis: r.YearBasis.Round(4).String(),
		Interest:  r.Interest.StringFixed(2),
	}
}

func toPositionReportDTO(row deposit.PositionReport) PositionReportDTO {
	return PositionReportDTO{
		Position:        toPositionDTO(row.Position),
		FullTerm:        toAccrualResultDTO(row.FullTerm),
		InWindow:        toAccrualResultDTO(row.InWindow),
		AccruedToCutoff: toAccrualResultDTO(row.AccruedToCutoff),
		Reserve:         row.Reserve.StringFixed(2),
	}
}

func toTotalsDTO(t deposit.Totals) TotalsDTO {
	return TotalsDTO{
		Positions:        t.Positions,
		Nominal:          t.Nominal.StringFixed(2),
		FullTermInterest: t.FullTermInterest.StringFixed(2),
		InWindowInterest: t.InWindowInterest.StringFixed(2),
		AccruedInterest:  t.AccruedInterest.StringFixed(2),
		BookedInterest:   t.BookedInterest.StringFixed(2),
		Reserve:          t.Reserve.StringFixed(2),
	}
}

func toReportDTO(report deposit.PortfolioReport) ReportDTO {
	dto := ReportDTO{
		Cutoff:      report.Cutoff.String(),
		PerPosition: make([]PositionReportDTO, 0, len(report.PerPosition)),
		PerBank:     make([]BankTotalsDTO, 0, len(report.PerBank)),
		GrandTotal:  toTotalsDTO(report.GrandTotal),
	}
	if !report.Window.From.IsZero() {
		dto.WindowFrom = report.Window.From.String()
	}
	if !report.Window.To.IsZero() {
		dto.WindowTo = report.Window.To.String()
	}
	for _, row := range report.PerPosition {
		dto.PerPosition = append(dto.PerPosition, toPositionReportDTO(row))
	}
	for _, group := range report.PerBank {
		dto.PerBank = append(dto.PerBank, BankTotalsDTO{
			BankName:  group.BankName,
			TotalsDTO: toTotalsDTO(group.Totals),
		})
	}
	return dto
}
