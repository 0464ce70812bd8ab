package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dpshade/remindful/internal/domain"
	"github.com/dpshade/remindful/internal/platform/logger"
	"github.com/dpshade/remindful/internal/store"
)

// itemColumns is the column list shared by every review item query.
const itemColumns = `id, item_type, content, file_name, tags, added_date,
	next_review_date, last_reviewed_date, review_state, interval_days,
	ease_factor, priority, created_at, updated_at`

// PostgresItemStore implements the store.ItemStore interface
// using a PostgreSQL database as the storage backend.
type PostgresItemStore struct {
	db     store.DBTX
	pool   *sql.DB
	logger *slog.Logger
}

// NewPostgresItemStore creates a new PostgreSQL implementation of the
// ItemStore interface. It accepts a database connection that should be
// initialized and managed by the caller. If logger is nil, a default
// logger will be used.
func NewPostgresItemStore(db *sql.DB, logger *slog.Logger) *PostgresItemStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresItemStore{
		db:     db,
		pool:   db,
		logger: logger.With(slog.String("component", "item_store")),
	}
}

// Ensure PostgresItemStore implements store.ItemStore
var _ store.ItemStore = (*PostgresItemStore)(nil)

// DB returns the underlying connection pool, for callers that open
// transactions around multiple store operations.
func (s *PostgresItemStore) DB() *sql.DB {
	return s.pool
}

// WithTxItemStore implements store.ItemStore.WithTxItemStore
func (s *PostgresItemStore) WithTxItemStore(tx *sql.Tx) store.ItemStore {
	return &PostgresItemStore{
		db:     tx,
		pool:   s.pool,
		logger: s.logger,
	}
}

// Put implements store.ItemStore.Put
// It inserts the item or fully overwrites an existing record with the same
// ID. No partial-field merge: every column is written from the given record.
func (s *PostgresItemStore) Put(ctx context.Context, item *domain.ReviewItem) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := item.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	tags, err := marshalTags(item.Tags)
	if err != nil {
		return fmt.Errorf("%w: tags: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO review_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			item_type = EXCLUDED.item_type,
			content = EXCLUDED.content,
			file_name = EXCLUDED.file_name,
			tags = EXCLUDED.tags,
			added_date = EXCLUDED.added_date,
			next_review_date = EXCLUDED.next_review_date,
			last_reviewed_date = EXCLUDED.last_reviewed_date,
			review_state = EXCLUDED.review_state,
			interval_days = EXCLUDED.interval_days,
			ease_factor = EXCLUDED.ease_factor,
			priority = EXCLUDED.priority,
			updated_at = EXCLUDED.updated_at
	`

	_, err = s.db.ExecContext(ctx, query,
		item.ID,
		string(item.Type),
		item.Content,
		item.FileName,
		tags,
		item.AddedDate.UTC(),
		item.NextReviewDate.UTC(),
		nullableTime(item.LastReviewedDate),
		string(item.ReviewState),
		item.Interval,
		item.EaseFactor,
		item.Priority,
		item.CreatedAt.UTC(),
		item.UpdatedAt.UTC(),
	)
	if err != nil {
		log.Error("failed to put review item",
			slog.String("item_id", item.ID.String()),
			slog.String("error", err.Error()))
		return store.NewStoreError("review_item", "put", "exec failed", MapError(err))
	}

	return nil
}

// GetByID implements store.ItemStore.GetByID
// Returns store.ErrItemNotFound if the item does not exist.
func (s *PostgresItemStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReviewItem, error) {
	query := `SELECT ` + itemColumns + ` FROM review_items WHERE id = $1`

	item, err := scanItem(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrItemNotFound
		}
		return nil, store.NewStoreError("review_item", "get", "query failed", MapError(err))
	}

	return item, nil
}

// GetAll implements store.ItemStore.GetAll
// Order is unspecified; callers sort if they need an ordering.
func (s *PostgresItemStore) GetAll(ctx context.Context) ([]*domain.ReviewItem, error) {
	query := `SELECT ` + itemColumns + ` FROM review_items`

	return s.queryItems(ctx, query)
}

// GetDue implements store.ItemStore.GetDue
// The query is served by the btree index on next_review_date; boundary
// equality counts as due.
func (s *PostgresItemStore) GetDue(ctx context.Context, now time.Time) ([]*domain.ReviewItem, error) {
	query := `SELECT ` + itemColumns + `
		FROM review_items
		WHERE next_review_date <= $1
		ORDER BY next_review_date ASC`

	return s.queryItems(ctx, query, now.UTC())
}

// Delete implements store.ItemStore.Delete
// Deleting an absent ID is a no-op, not an error.
func (s *PostgresItemStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM review_items WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete review item",
			slog.String("item_id", id.String()),
			slog.String("error", err.Error()))
		return store.NewStoreError("review_item", "delete", "exec failed", MapError(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return store.NewStoreError("review_item", "delete", "rows affected", MapError(err))
	}

	if rowsAffected == 0 {
		log.Debug("delete of absent review item was a no-op",
			slog.String("item_id", id.String()))
	}

	return nil
}

// queryItems runs a multi-row item query and scans the results.
func (s *PostgresItemStore) queryItems(
	ctx context.Context,
	query string,
	args ...any,
) ([]*domain.ReviewItem, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, store.NewStoreError("review_item", "query", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	var items []*domain.ReviewItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, store.NewStoreError("review_item", "query", "scan failed", MapError(err))
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("review_item", "query", "rows iteration", MapError(err))
	}

	return items, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanItem.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanItem maps one database row onto a domain.ReviewItem.
func scanItem(row rowScanner) (*domain.ReviewItem, error) {
	var (
		item         domain.ReviewItem
		itemType     string
		reviewState  string
		tags         sql.NullString
		fileName     sql.NullString
		lastReviewed sql.NullTime
	)

	err := row.Scan(
		&item.ID,
		&itemType,
		&item.Content,
		&fileName,
		&tags,
		&item.AddedDate,
		&item.NextReviewDate,
		&lastReviewed,
		&reviewState,
		&item.Interval,
		&item.EaseFactor,
		&item.Priority,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.Type = domain.ItemType(itemType)
	item.ReviewState = domain.ReviewState(reviewState)
	item.FileName = fileName.String
	if lastReviewed.Valid {
		item.LastReviewedDate = lastReviewed.Time.UTC()
	}
	if tags.Valid && tags.String != "" {
		if err := json.Unmarshal([]byte(tags.String), &item.Tags); err != nil {
			return nil, fmt.Errorf("unmarshal tags: %w", err)
		}
	}

	item.AddedDate = item.AddedDate.UTC()
	item.NextReviewDate = item.NextReviewDate.UTC()
	item.CreatedAt = item.CreatedAt.UTC()
	item.UpdatedAt = item.UpdatedAt.UTC()

	return &item, nil
}

// marshalTags encodes a tag set as JSONB, with NULL for an absent set.
func marshalTags(tags []string) (any, error) {
	if tags == nil {
		return nil, nil
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// nullableTime converts a zero time to NULL for storage.
func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC()
}
