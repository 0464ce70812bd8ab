package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/dpshade/remindful/internal/domain"
	"github.com/dpshade/remindful/internal/service/review"
	"github.com/dpshade/remindful/internal/store"
)

// MemorySettingsRepository implements review.SettingsRepository with a single
// in-memory record. A nil record reports store.ErrSettingsNotFound.
type MemorySettingsRepository struct {
	mu       sync.Mutex
	settings *domain.AppSettings

	GetErr error
	PutErr error
}

// NewMemorySettingsRepository creates a repository holding the given record,
// which may be nil to model an uninitialized store.
func NewMemorySettingsRepository(settings *domain.AppSettings) *MemorySettingsRepository {
	return &MemorySettingsRepository{settings: settings}
}

func (r *MemorySettingsRepository) Get(ctx context.Context) (*domain.AppSettings, error) {
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.settings == nil {
		return nil, store.ErrSettingsNotFound
	}
	copied := *r.settings
	return &copied, nil
}

func (r *MemorySettingsRepository) Put(ctx context.Context, settings *domain.AppSettings) error {
	if r.PutErr != nil {
		return r.PutErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *settings
	r.settings = &copied
	return nil
}

func (r *MemorySettingsRepository) WithTx(tx *sql.Tx) review.SettingsRepository {
	return r
}
