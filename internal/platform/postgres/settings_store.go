package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dpshade/remindful/internal/domain"
	"github.com/dpshade/remindful/internal/platform/logger"
	"github.com/dpshade/remindful/internal/store"
)

// settingsKey is the fixed key the single settings record lives under.
const settingsKey = "default"

// PostgresSettingsStore implements the store.SettingsStore interface
// using a PostgreSQL database as the storage backend.
type PostgresSettingsStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSettingsStore creates a new PostgreSQL implementation of the
// SettingsStore interface. If logger is nil, a default logger will be used.
func NewPostgresSettingsStore(db *sql.DB, logger *slog.Logger) *PostgresSettingsStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSettingsStore{
		db:     db,
		logger: logger.With(slog.String("component", "settings_store")),
	}
}

// Ensure PostgresSettingsStore implements store.SettingsStore
var _ store.SettingsStore = (*PostgresSettingsStore)(nil)

// WithTxSettingsStore implements store.SettingsStore.WithTxSettingsStore
func (s *PostgresSettingsStore) WithTxSettingsStore(tx *sql.Tx) store.SettingsStore {
	return &PostgresSettingsStore{
		db:     tx,
		logger: s.logger,
	}
}

// Get implements store.SettingsStore.Get
// Returns store.ErrSettingsNotFound if the record has never been written.
func (s *PostgresSettingsStore) Get(ctx context.Context) (*domain.AppSettings, error) {
	query := `
		SELECT max_reviews_per_session, initial_review_days, created_at, updated_at
		FROM app_settings
		WHERE id = $1
	`

	var settings domain.AppSettings
	err := s.db.QueryRowContext(ctx, query, settingsKey).Scan(
		&settings.MaxReviewsPerSession,
		&settings.InitialReviewDays,
		&settings.CreatedAt,
		&settings.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrSettingsNotFound
		}
		return nil, store.NewStoreError("settings", "get", "query failed", MapError(err))
	}

	settings.CreatedAt = settings.CreatedAt.UTC()
	settings.UpdatedAt = settings.UpdatedAt.UTC()

	return &settings, nil
}

// Put implements store.SettingsStore.Put
// It fully replaces the settings record at the fixed key.
func (s *PostgresSettingsStore) Put(ctx context.Context, settings *domain.AppSettings) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := settings.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO app_settings (id, max_reviews_per_session, initial_review_days, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			max_reviews_per_session = EXCLUDED.max_reviews_per_session,
			initial_review_days = EXCLUDED.initial_review_days,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		settingsKey,
		settings.MaxReviewsPerSession,
		settings.InitialReviewDays,
		settings.CreatedAt.UTC(),
		settings.UpdatedAt.UTC(),
	)
	if err != nil {
		log.Error("failed to put settings",
			slog.String("error", err.Error()))
		return store.NewStoreError("settings", "put", "exec failed", MapError(err))
	}

	return nil
}

// InitializeDefaults implements store.SettingsStore.InitializeDefaults
// ON CONFLICT DO NOTHING makes racing first-run initializers converge on a
// single write; existing settings are never overwritten.
func (s *PostgresSettingsStore) InitializeDefaults(ctx context.Context, now time.Time) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	defaults := domain.DefaultSettings(now)

	query := `
		INSERT INTO app_settings (id, max_reviews_per_session, initial_review_days, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`

	result, err := s.db.ExecContext(ctx, query,
		settingsKey,
		defaults.MaxReviewsPerSession,
		defaults.InitialReviewDays,
		defaults.CreatedAt,
		defaults.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to initialize default settings",
			slog.String("error", err.Error()))
		return store.NewStoreError("settings", "initialize", "exec failed", MapError(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return store.NewStoreError("settings", "initialize", "rows affected", MapError(err))
	}

	if rowsAffected > 0 {
		log.Info("initialized default settings",
			slog.Int("max_reviews_per_session", defaults.MaxReviewsPerSession),
			slog.Int("initial_review_days", defaults.InitialReviewDays))
	}

	return nil
}
