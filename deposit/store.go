/*
store.go - Persistence interface for positions

PURPOSE:
  Defines the interface between the engine/API and whatever holds the
  position records. The engine recomputes everything from the stored
  records on each query, so the store only needs plain CRUD plus a bulk
  Replace for file-based round trips.

IMPLEMENTATIONS:
  - deposit/store/memory: In-memory, for tests
  - store/sqlite:         Production SQLite
  - store/jsonfile:       The original JSON-array position file

ID ASSIGNMENT:
  Save assigns a fresh ID when the position has none and stamps
  CreatedAt/UpdatedAt. Saving with an existing ID replaces that record.

SEE ALSO:
  - errors.go: Sentinel errors implementations must return
*/
package deposit

import "context"

// Store persists position records.
type Store interface {
	// Save inserts or replaces a position. An empty ID is assigned by the
	// store; the stored record (with ID and timestamps) is returned.
	Save(ctx context.Context, p Position) (Position, error)

	// Get returns the position with the given ID or ErrPositionNotFound.
	Get(ctx context.Context, id string) (Position, error)

	// List returns all positions in stable insertion order.
	List(ctx context.Context) ([]Position, error)

	// Delete removes a position or returns ErrPositionNotFound.
	Delete(ctx context.Context, id string) error

	// Replace swaps the full position set atomically (bulk import).
	Replace(ctx context.Context, positions []Position) error

	// Close releases any underlying resources.
	Close() error
}
