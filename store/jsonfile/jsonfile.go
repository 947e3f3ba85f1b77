/*
Package jsonfile persists positions as a JSON array on disk.

PURPOSE:
  The original tracker kept its positions in a single JSON file written by
  the data-entry form. This store reads and writes that format so existing
  files keep working, while presenting the same deposit.Store interface as
  the SQLite backend.

FILE FORMAT:
  A JSON array of position records with ISO date strings and decimal
  amounts serialized as JSON numbers or strings (both are accepted on
  read; strings are written to preserve exactness).

WRITE SEMANTICS:
  Every mutation rewrites the whole file atomically: marshal to a temp
  file in the same directory, fsync, then rename over the original. A
  crash mid-write leaves the previous file intact.

CONCURRENCY:
  A single mutex serializes all access. The file is the source of truth;
  the in-memory copy is reloaded on New and kept in sync on writes.

SEE ALSO:
  - deposit/store.go: Interface definition
  - store/sqlite: Production database backend
*/
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/warp/deposit-engine/accrual"
	"github.com/warp/deposit-engine/deposit"
)

// =============================================================================
// STORE
// =============================================================================

type Store struct {
	mu        sync.Mutex
	path      string
	positions []deposit.Position
}

// New opens (or creates) a JSON position file.
func New(path string) (*Store, error) {
	s := &Store{path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Save(_ context.Context, p deposit.Position) (deposit.Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if p.ID == "" {
		p.ID = uuid.NewString()
		p.CreatedAt = now
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	replaced := false
	for i, existing := range s.positions {
		if existing.ID == p.ID {
			s.positions[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		s.positions = append(s.positions, p)
	}

	if err := s.flush(); err != nil {
		return deposit.Position{}, err
	}
	return p, nil
}

func (s *Store) Get(_ context.Context, id string) (deposit.Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.positions {
		if p.ID == id {
			return p, nil
		}
	}
	return deposit.Position{}, deposit.ErrPositionNotFound
}

func (s *Store) List(_ context.Context) ([]deposit.Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]deposit.Position, len(s.positions))
	copy(result, s.positions)
	return result, nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.positions {
		if p.ID == id {
			s.positions = append(s.positions[:i], s.positions[i+1:]...)
			return s.flush()
		}
	}
	return deposit.ErrPositionNotFound
}

func (s *Store) Replace(_ context.Context, positions []deposit.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	s.positions = make([]deposit.Position, 0, len(positions))
	for _, p := range positions {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		p.UpdatedAt = now
		s.positions = append(s.positions, p)
	}
	return s.flush()
}

func (s *Store) Close() error { return nil }

// =============================================================================
// FILE FORMAT
// =============================================================================

// record is the on-disk shape of a position. Decimal fields use
// json.Number so files written with bare numbers still load.
type record struct {
	ID             string      `json:"id,omitempty"`
	BankName       string      `json:"bank_name"`
	AccountNumber  string      `json:"account_number"`
	StartDate      string      `json:"start_date"`
	EndDate        string      `json:"end_date"`
	Nominal        json.Number `json:"nominal"`
	AnnualRate     json.Number `json:"annual_rate_percent"`
	Convention     string      `json:"convention,omitempty"`
	BookedInterest json.Number `json:"booked_interest"`
	CreatedAt      string      `json:"created_at,omitempty"`
	UpdatedAt      string      `json:"updated_at,omitempty"`
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.positions = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read position file: %w", err)
	}
	if len(data) == 0 {
		s.positions = nil
		return nil
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("malformed position file %s: %w", s.path, err)
	}

	s.positions = make([]deposit.Position, 0, len(records))
	for i, r := range records {
		p, err := r.toPosition()
		if err != nil {
			return fmt.Errorf("position %d in %s: %w", i, s.path, err)
		}
		s.positions = append(s.positions, p)
	}
	return nil
}

// flush atomically rewrites the file: temp file + rename.
func (s *Store) flush() error {
	records := make([]record, 0, len(s.positions))
	for _, p := range s.positions {
		records = append(records, toRecord(p))
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal positions: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".positions-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write positions: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

func toRecord(p deposit.Position) record {
	r := record{
		ID:             p.ID,
		BankName:       p.BankName,
		AccountNumber:  p.AccountNumber,
		StartDate:      p.StartDate.String(),
		EndDate:        p.EndDate.String(),
		Nominal:        json.Number(p.Nominal.String()),
		AnnualRate:     json.Number(p.AnnualRatePercent.String()),
		Convention:     string(p.Convention),
		BookedInterest: json.Number(p.BookedInterest.String()),
	}
	if !p.CreatedAt.IsZero() {
		r.CreatedAt = p.CreatedAt.Format(time.RFC3339)
	}
	if !p.UpdatedAt.IsZero() {
		r.UpdatedAt = p.UpdatedAt.Format(time.RFC3339)
	}
	return r
}

func (r record) toPosition() (deposit.Position, error) {
	var (
		p   deposit.Position
		err error
	)
	p.ID = r.ID
	p.BankName = r.BankName
	p.AccountNumber = r.AccountNumber

	if p.StartDate, err = accrual.ParseDate(r.StartDate); err != nil {
		return deposit.Position{}, err
	}
	if p.EndDate, err = accrual.ParseDate(r.EndDate); err != nil {
		return deposit.Position{}, err
	}
	if p.Nominal, err = parseDecimal(r.Nominal); err != nil {
		return deposit.Position{}, fmt.Errorf("bad nominal: %w", err)
	}
	if p.AnnualRatePercent, err = parseDecimal(r.AnnualRate); err != nil {
		return deposit.Position{}, fmt.Errorf("bad annual rate: %w", err)
	}
	if p.BookedInterest, err = parseDecimal(r.BookedInterest); err != nil {
		return deposit.Position{}, fmt.Errorf("bad booked interest: %w", err)
	}
	if p.Convention, err = accrual.ParseConvention(r.Convention); err != nil {
		return deposit.Position{}, err
	}
	if r.CreatedAt != "" {
		if p.CreatedAt, err = time.Parse(time.RFC3339, r.CreatedAt); err != nil {
			return deposit.Position{}, err
		}
	}
	if r.UpdatedAt != "" {
		if p.UpdatedAt, err = time.Parse(time.RFC3339, r.UpdatedAt); err != nil {
			return deposit.Position{}, err
		}
	}
	return p, nil
}

func parseDecimal(n json.Number) (decimal.Decimal, error) {
	if n == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(n.String())
}
