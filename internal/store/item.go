package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/dpshade/remindful/internal/domain"
)

// ItemStore defines the interface for review item persistence.
//
// Every write is a full-record replace keyed by id; there is no
// partial-field merge. Callers mutating an item must therefore fetch the
// current record, compute the new one, and Put the complete replacement,
// ideally inside a transaction via WithTxItemStore and RunInTransaction.
type ItemStore interface {
	// Put inserts the item or fully overwrites an existing record with the
	// same ID. The item must be valid according to domain validation rules;
	// returns ErrInvalidEntity wrapping the specific validation error otherwise.
	Put(ctx context.Context, item *domain.ReviewItem) error

	// GetByID retrieves an item by its unique ID.
	// Returns ErrItemNotFound if the item does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ReviewItem, error)

	// GetAll retrieves every stored item. Order is unspecified; callers
	// sort if they need an ordering.
	GetAll(ctx context.Context) ([]*domain.ReviewItem, error)

	// GetDue retrieves the items whose next review date is at or before the
	// given time, in ascending due-date order. Served by the date-ordered
	// index rather than a full scan.
	GetDue(ctx context.Context, now time.Time) ([]*domain.ReviewItem, error)

	// Delete removes an item by ID. Deleting an absent ID is not an error.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTxItemStore returns a new ItemStore instance that uses the
	// provided transaction. The transaction is created and managed by the
	// caller, typically through RunInTransaction.
	WithTxItemStore(tx *sql.Tx) ItemStore
}

// SettingsStore defines the interface for the single process-wide settings
// record, stored at one fixed key.
type SettingsStore interface {
	// Get retrieves the settings record.
	// Returns ErrSettingsNotFound if it has never been written.
	Get(ctx context.Context) (*domain.AppSettings, error)

	// Put fully replaces the settings record.
	Put(ctx context.Context, settings *domain.AppSettings) error

	// InitializeDefaults writes the default settings record if none exists
	// and is a no-op otherwise. Safe to call concurrently with other
	// operations: racing initializers produce exactly one write.
	InitializeDefaults(ctx context.Context, now time.Time) error

	// WithTxSettingsStore returns a new SettingsStore instance that uses
	// the provided transaction.
	WithTxSettingsStore(tx *sql.Tx) SettingsStore
}
