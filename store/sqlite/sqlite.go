/*
Package sqlite provides a SQLite-backed implementation of deposit.Store.

PURPOSE:
  Persists position records in SQLite. In production the same patterns
  apply to PostgreSQL - only minor SQL dialect differences.

STORAGE FORMAT:
  Monetary fields (nominal, rate, booked interest) are stored as TEXT and
  round-tripped through decimal.Decimal; REAL columns would reintroduce
  the binary floating-point drift the engine is built to avoid. Dates are
  stored as ISO "YYYY-MM-DD" strings.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/deposits.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - deposit/store.go: Interface definition
  - deposit/store/memory.go: In-memory implementation for testing
  - store/jsonfile: The legacy JSON-array position file
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/deposit-engine/accrual"
	"github.com/warp/deposit-engine/deposit"
)

// Store implements deposit.Store using SQLite.
type Store struct {
	db *sql.DB
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS positions (
		id TEXT PRIMARY KEY,
		bank_name TEXT NOT NULL,
		account_number TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		nominal TEXT NOT NULL,
		annual_rate_percent TEXT NOT NULL,
		convention TEXT NOT NULL,
		booked_interest TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_positions_bank_name
		ON positions(bank_name);
	CREATE INDEX IF NOT EXISTS idx_positions_created_at
		ON positions(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// STORE IMPLEMENTATION
// =============================================================================

const positionColumns = `id, bank_name, account_number, start_date, end_date,
	nominal, annual_rate_percent, convention, booked_interest, created_at, updated_at`

func (s *Store) Save(ctx context.Context, p deposit.Position) (deposit.Position, error) {
	now := time.Now().UTC()
	if p.ID == "" {
		p.ID = uuid.NewString()
		p.CreatedAt = now
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO positions (`+positionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			bank_name = excluded.bank_name,
			account_number = excluded.account_number,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			nominal = excluded.nominal,
			annual_rate_percent = excluded.annual_rate_percent,
			convention = excluded.convention,
			booked_interest = excluded.booked_interest,
			updated_at = excluded.updated_at`,
		p.ID, p.BankName, p.AccountNumber,
		p.StartDate.String(), p.EndDate.String(),
		p.Nominal.String(), p.AnnualRatePercent.String(),
		string(p.Convention), p.BookedInterest.String(),
		p.CreatedAt.Format(time.RFC3339), p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return deposit.Position{}, fmt.Errorf("failed to save position: %w", err)
	}
	return p, nil
}

func (s *Store) Get(ctx context.Context, id string) (deposit.Position, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+positionColumns+` FROM positions WHERE id = ?`, id)

	p, err := scanPosition(row)
	if err == sql.ErrNoRows {
		return deposit.Position{}, deposit.ErrPositionNotFound
	}
	if err != nil {
		return deposit.Position{}, fmt.Errorf("failed to load position: %w", err)
	}
	return p, nil
}

func (s *Store) List(ctx context.Context) ([]deposit.Position, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+positionColumns+` FROM positions ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}
	defer rows.Close()

	var positions []deposit.Position
	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

func (s *Store) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM positions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return deposit.ErrPositionNotFound
	}
	return nil
}

func (s *Store) Replace(ctx context.Context, positions []deposit.Position) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM positions`); err != nil {
		return fmt.Errorf("failed to clear positions: %w", err)
	}

	now := time.Now().UTC()
	for _, p := range positions {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		p.UpdatedAt = now

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO positions (`+positionColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.BankName, p.AccountNumber,
			p.StartDate.String(), p.EndDate.String(),
			p.Nominal.String(), p.AnnualRatePercent.String(),
			string(p.Convention), p.BookedInterest.String(),
			p.CreatedAt.Format(time.RFC3339), p.UpdatedAt.Format(time.RFC3339),
		); err != nil {
			return fmt.Errorf("failed to insert position %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

// =============================================================================
// ROW SCANNING
// =============================================================================

type scannable interface {
	Scan(dest ...any) error
}

func scanPosition(row scannable) (deposit.Position, error) {
	var (
		p                                deposit.Position
		startDate, endDate               string
		nominal, ratePercent, booked     string
		convention, createdAt, updatedAt string
	)
	err := row.Scan(&p.ID, &p.BankName, &p.AccountNumber,
		&startDate, &endDate, &nominal, &ratePercent,
		&convention, &booked, &createdAt, &updatedAt)
	if err != nil {
		return deposit.Position{}, err
	}

	if p.StartDate, err = accrual.ParseDate(startDate); err != nil {
		return deposit.Position{}, err
	}
	if p.EndDate, err = accrual.ParseDate(endDate); err != nil {
		return deposit.Position{}, err
	}
	if p.Nominal, err = decimal.NewFromString(nominal); err != nil {
		return deposit.Position{}, fmt.Errorf("bad nominal %q: %w", nominal, err)
	}
	if p.AnnualRatePercent, err = decimal.NewFromString(ratePercent); err != nil {
		return deposit.Position{}, fmt.Errorf("bad rate %q: %w", ratePercent, err)
	}
	if p.BookedInterest, err = decimal.NewFromString(booked); err != nil {
		return deposit.Position{}, fmt.Errorf("bad booked interest %q: %w", booked, err)
	}
	if p.Convention, err = accrual.ParseConvention(convention); err != nil {
		return deposit.Position{}, err
	}
	if p.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return deposit.Position{}, err
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return deposit.Position{}, err
	}
	return p, nil
}
