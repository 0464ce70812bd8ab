package review

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/dpshade/remindful/internal/domain"
	"github.com/dpshade/remindful/internal/store"
)

// ItemRepository defines the interface for repositories that can provide
// review item data and support transactions.
type ItemRepository interface {
	// Put inserts or fully overwrites an item by ID.
	Put(ctx context.Context, item *domain.ReviewItem) error

	// GetByID retrieves an item by its unique ID.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ReviewItem, error)

	// GetAll retrieves every stored item.
	GetAll(ctx context.Context) ([]*domain.ReviewItem, error)

	// GetDue retrieves items due at or before the given time.
	GetDue(ctx context.Context, now time.Time) ([]*domain.ReviewItem, error)

	// Delete removes an item by ID, idempotently.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new repository instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ItemRepository

	// DB returns the underlying database connection, or nil for repositories
	// without one (memory-backed test doubles), in which case operations run
	// untransacted.
	DB() *sql.DB
}

// SettingsRepository defines the interface for repositories that can provide
// the settings record and support transactions.
type SettingsRepository interface {
	// Get retrieves the settings record.
	Get(ctx context.Context) (*domain.AppSettings, error)

	// Put fully replaces the settings record.
	Put(ctx context.Context, settings *domain.AppSettings) error

	// WithTx returns a new repository instance that uses the provided transaction.
	WithTx(tx *sql.Tx) SettingsRepository
}

// NewItemRepositoryAdapter creates an adapter that allows a store.ItemStore
// to be used where an ItemRepository is expected.
func NewItemRepositoryAdapter(itemStore store.ItemStore, db *sql.DB) ItemRepository {
	return &itemRepositoryAdapter{
		itemStore: itemStore,
		db:        db,
	}
}

// itemRepositoryAdapter adapts a store.ItemStore to the ItemRepository interface.
type itemRepositoryAdapter struct {
	itemStore store.ItemStore
	db        *sql.DB
}

func (a *itemRepositoryAdapter) Put(ctx context.Context, item *domain.ReviewItem) error {
	return a.itemStore.Put(ctx, item)
}

func (a *itemRepositoryAdapter) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReviewItem, error) {
	return a.itemStore.GetByID(ctx, id)
}

func (a *itemRepositoryAdapter) GetAll(ctx context.Context) ([]*domain.ReviewItem, error) {
	return a.itemStore.GetAll(ctx)
}

func (a *itemRepositoryAdapter) GetDue(ctx context.Context, now time.Time) ([]*domain.ReviewItem, error) {
	return a.itemStore.GetDue(ctx, now)
}

func (a *itemRepositoryAdapter) Delete(ctx context.Context, id uuid.UUID) error {
	return a.itemStore.Delete(ctx, id)
}

func (a *itemRepositoryAdapter) WithTx(tx *sql.Tx) ItemRepository {
	return &itemRepositoryAdapter{
		itemStore: a.itemStore.WithTxItemStore(tx),
		db:        a.db,
	}
}

func (a *itemRepositoryAdapter) DB() *sql.DB {
	return a.db
}

// NewSettingsRepositoryAdapter creates an adapter that allows a
// store.SettingsStore to be used where a SettingsRepository is expected.
func NewSettingsRepositoryAdapter(settingsStore store.SettingsStore) SettingsRepository {
	return &settingsRepositoryAdapter{
		settingsStore: settingsStore,
	}
}

// settingsRepositoryAdapter adapts a store.SettingsStore to the
// SettingsRepository interface.
type settingsRepositoryAdapter struct {
	settingsStore store.SettingsStore
}

func (a *settingsRepositoryAdapter) Get(ctx context.Context) (*domain.AppSettings, error) {
	return a.settingsStore.Get(ctx)
}

func (a *settingsRepositoryAdapter) Put(ctx context.Context, settings *domain.AppSettings) error {
	return a.settingsStore.Put(ctx, settings)
}

func (a *settingsRepositoryAdapter) WithTx(tx *sql.Tx) SettingsRepository {
	return &settingsRepositoryAdapter{
		settingsStore: a.settingsStore.WithTxSettingsStore(tx),
	}
}
