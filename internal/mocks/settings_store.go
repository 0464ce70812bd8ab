package mocks

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/dpshade/remindful/internal/domain"
	"github.com/dpshade/remindful/internal/store"
)

// MemorySettingsStore implements store.SettingsStore with a single in-memory
// record. InitializeDefaults mirrors the postgres insert-if-absent semantics:
// an existing record is never overwritten, and racing initializers converge
// on exactly one write.
type MemorySettingsStore struct {
	mu       sync.Mutex
	settings *domain.AppSettings

	// InitCount records how many InitializeDefaults calls performed a write.
	InitCount int

	GetErr  error
	PutErr  error
	InitErr error
}

// NewMemorySettingsStore creates a store holding the given record, which may
// be nil to model a database before first-run initialization.
func NewMemorySettingsStore(settings *domain.AppSettings) *MemorySettingsStore {
	return &MemorySettingsStore{settings: settings}
}

func (s *MemorySettingsStore) Get(ctx context.Context) (*domain.AppSettings, error) {
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settings == nil {
		return nil, store.ErrSettingsNotFound
	}
	copied := *s.settings
	return &copied, nil
}

func (s *MemorySettingsStore) Put(ctx context.Context, settings *domain.AppSettings) error {
	if s.PutErr != nil {
		return s.PutErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *settings
	s.settings = &copied
	return nil
}

func (s *MemorySettingsStore) InitializeDefaults(ctx context.Context, now time.Time) error {
	if s.InitErr != nil {
		return s.InitErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settings != nil {
		return nil
	}
	s.settings = domain.DefaultSettings(now)
	s.InitCount++
	return nil
}

func (s *MemorySettingsStore) WithTxSettingsStore(tx *sql.Tx) store.SettingsStore {
	return s
}
