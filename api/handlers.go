/*
handlers.go - HTTP API handlers for the deposit tracker

PURPOSE:
  Exposes the accrual engine and position store via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Positions:
    GET    /api/positions               List all positions
    POST   /api/positions               Create position
    GET    /api/positions/{id}          Get position
    PUT    /api/positions/{id}          Update position
    DELETE /api/positions/{id}          Delete position
    GET    /api/positions/{id}/accrual  Accrual figures for one position

  Reporting:
    GET    /api/report                  Portfolio report (rows, bank
                                        groups, grand totals)

  Query parameters (accrual and report):
    from, to  Reporting window (ISO dates); omitted = full term
    cutoff    Accrued-to-date cutoff; omitted = today

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input at this boundary (the engine itself is permissive)
  3. Call domain logic (store, engine, aggregator)
  4. Serialize response

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input, bad dates
  - 404: Position not found
  - 500: Store failures

SECURITY NOTE:
  No authentication middleware. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/warp/deposit-engine/accrual"
	"github.com/warp/deposit-engine/deposit"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store deposit.Store
	Log   zerolog.Logger
}

// NewHandler creates a new handler with the given store.
func NewHandler(store deposit.Store, log zerolog.Logger) *Handler {
	return &Handler{Store: store, Log: log}
}

// =============================================================================
// POSITION HANDLERS
// =============================================================================

// ListPositions returns all positions.
// GET /api/positions
func (h *Handler) ListPositions(w http.ResponseWriter, r *http.Request) {
	positions, err := h.Store.List(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to list positions", err)
		return
	}

	dtos := make([]PositionDTO, 0, len(positions))
	for _, p := range positions {
		dtos = append(dtos, toPositionDTO(p))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreatePosition creates a new position.
// POST /api/positions
func (h *Handler) CreatePosition(w http.ResponseWriter, r *http.Request) {
	position, ok := h.decodePosition(w, r, "")
	if !ok {
		return
	}

	saved, err := h.Store.Save(r.Context(), position)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to save position", err)
		return
	}
	writeJSON(w, http.StatusCreated, toPositionDTO(saved))
}

// GetPosition returns a single position.
// GET /api/positions/{id}
func (h *Handler) GetPosition(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	position, err := h.Store.Get(r.Context(), id)
	if errors.Is(err, deposit.ErrPositionNotFound) {
		h.writeError(w, http.StatusNotFound, "Position not found", nil)
		return
	}
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to load position", err)
		return
	}
	writeJSON(w, http.StatusOK, toPositionDTO(position))
}

// UpdatePosition replaces a position.
// PUT /api/positions/{id}
func (h *Handler) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, err := h.Store.Get(r.Context(), id)
	if errors.Is(err, deposit.ErrPositionNotFound) {
		h.writeError(w, http.StatusNotFound, "Position not found", nil)
		return
	}
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to load position", err)
		return
	}

	position, ok := h.decodePosition(w, r, id)
	if !ok {
		return
	}
	position.CreatedAt = existing.CreatedAt

	saved, err := h.Store.Save(r.Context(), position)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to save position", err)
		return
	}
	writeJSON(w, http.StatusOK, toPositionDTO(saved))
}

// DeletePosition removes a position.
// DELETE /api/positions/{id}
func (h *Handler) DeletePosition(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := h.Store.Delete(r.Context(), id)
	if errors.Is(err, deposit.ErrPositionNotFound) {
		h.writeError(w, http.StatusNotFound, "Position not found", nil)
		return
	}
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to delete position", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// ACCRUAL / REPORT HANDLERS
// =============================================================================

// GetPositionAccrual returns the accrual figures for one position.
// GET /api/positions/{id}/accrual?from=&to=&cutoff=
func (h *Handler) GetPositionAccrual(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	position, err := h.Store.Get(r.Context(), id)
	if errors.Is(err, deposit.ErrPositionNotFound) {
		h.writeError(w, http.StatusNotFound, "Position not found", nil)
		return
	}
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to load position", err)
		return
	}

	window, cutoff, ok := h.reportParams(w, r)
	if !ok {
		return
	}

	row := deposit.Report(position, window, cutoff)
	writeJSON(w, http.StatusOK, toPositionReportDTO(row))
}

// GetReport returns the aggregated portfolio report.
// GET /api/report?from=&to=&cutoff=
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	positions, err := h.Store.List(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to list positions", err)
		return
	}

	window, cutoff, ok := h.reportParams(w, r)
	if !ok {
		return
	}

	report := deposit.Aggregate(positions, window, cutoff)
	writeJSON(w, http.StatusOK, toReportDTO(report))
}

// Healthz reports liveness.
// GET /api/healthz
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// PARSING HELPERS
// =============================================================================

// reportParams parses the window/cutoff query parameters shared by the
// accrual and report endpoints. A missing cutoff defaults to today; a
// missing window edge stays unbounded (clipped to each term).
func (h *Handler) reportParams(w http.ResponseWriter, r *http.Request) (accrual.Window, accrual.Date, bool) {
	var window accrual.Window
	q := r.URL.Query()

	if from := q.Get("from"); from != "" {
		d, err := accrual.ParseDate(from)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "Invalid 'from' date", err)
			return accrual.Window{}, accrual.Date{}, false
		}
		window.From = d
	}
	if to := q.Get("to"); to != "" {
		d, err := accrual.ParseDate(to)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "Invalid 'to' date", err)
			return accrual.Window{}, accrual.Date{}, false
		}
		window.To = d
	}

	cutoff := accrual.Today()
	if c := q.Get("cutoff"); c != "" {
		d, err := accrual.ParseDate(c)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "Invalid 'cutoff' date", err)
			return accrual.Window{}, accrual.Date{}, false
		}
		cutoff = d
	}

	return window, cutoff, true
}

// decodePosition parses and validates a position request body.
func (h *Handler) decodePosition(w http.ResponseWriter, r *http.Request, id string) (deposit.Position, bool) {
	var req SavePositionRequest
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return deposit.Position{}, false
	}

	position := deposit.Position{
		ID:            id,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
	}

	var err error
	if position.StartDate, err = accrual.ParseDate(req.StartDate); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid start date", err)
		return deposit.Position{}, false
	}
	if position.EndDate, err = accrual.ParseDate(req.EndDate); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid end date", err)
		return deposit.Position{}, false
	}
	if position.Nominal, err = parseAmount(req.Nominal); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid nominal", err)
		return deposit.Position{}, false
	}
	if position.AnnualRatePercent, err = parseAmount(req.AnnualRatePercent); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid annual rate", err)
		return deposit.Position{}, false
	}
	if position.BookedInterest, err = parseAmount(req.BookedInterest); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid booked interest", err)
		return deposit.Position{}, false
	}
	if position.Convention, err = accrual.ParseConvention(req.Convention); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid day-count convention", err)
		return deposit.Position{}, false
	}

	if err := position.Validate(); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid position", err)
		return deposit.Position{}, false
	}
	return position, true
}

func parseAmount(n json.Number) (decimal.Decimal, error) {
	if n == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("not a decimal amount: %q", n)
	}
	return d, nil
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	if status >= http.StatusInternalServerError {
		h.Log.Error().Err(err).Msg(message)
	}
	writeJSON(w, status, resp)
}
