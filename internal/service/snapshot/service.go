package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dpshade/remindful/internal/domain"
	"github.com/dpshade/remindful/internal/platform/clock"
	"github.com/dpshade/remindful/internal/platform/logger"
	"github.com/dpshade/remindful/internal/service/review"
	"github.com/dpshade/remindful/internal/store"
)

// ImportResult reports what a successful import replaced.
type ImportResult struct {
	ItemsImported int `json:"items_imported"`
}

// Service exports and restores full application snapshots.
type Service interface {
	// Export captures the settings and every item into a snapshot document.
	Export(ctx context.Context) (*Snapshot, error)

	// Import restores a snapshot: settings are replaced and every item in the
	// document is written by ID, overwriting existing records. Items absent
	// from the document are left untouched. A malformed document is rejected
	// wholesale before any write.
	Import(ctx context.Context, snap *Snapshot) (*ImportResult, error)
}

type serviceImpl struct {
	itemRepo     review.ItemRepository
	settingsRepo review.SettingsRepository
	clock        clock.Clock
	logger       *slog.Logger
}

// NewService creates a snapshot service over the given repositories.
func NewService(
	itemRepo review.ItemRepository,
	settingsRepo review.SettingsRepository,
	clk clock.Clock,
	logger *slog.Logger,
) Service {
	if itemRepo == nil {
		panic("itemRepo cannot be nil")
	}
	if settingsRepo == nil {
		panic("settingsRepo cannot be nil")
	}
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &serviceImpl{
		itemRepo:     itemRepo,
		settingsRepo: settingsRepo,
		clock:        clk,
		logger:       logger.With(slog.String("component", "snapshot_service")),
	}
}

// Export implements Service.Export.
func (s *serviceImpl) Export(ctx context.Context) (*Snapshot, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	items, err := s.itemRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}

	snap := &Snapshot{
		Version:     Version,
		ExportedAt:  toMillis(s.clock.Now()),
		Settings:    settingsToData(settings),
		ReviewItems: make([]ItemData, 0, len(items)),
	}
	for _, item := range items {
		snap.ReviewItems = append(snap.ReviewItems, itemToData(item))
	}

	log.Debug("exported snapshot", slog.Int("item_count", len(snap.ReviewItems)))
	return snap, nil
}

// Import implements Service.Import. Every item is converted and validated
// before the first write, so a bad record rejects the whole document.
func (s *serviceImpl) Import(ctx context.Context, snap *Snapshot) (*ImportResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if snap == nil {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidFormat)
	}
	if err := snap.validate(); err != nil {
		return nil, err
	}

	now := s.clock.Now()

	items := make([]*domain.ReviewItem, 0, len(snap.ReviewItems))
	for i, data := range snap.ReviewItems {
		item, err := s.itemFromData(data, now)
		if err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", ErrInvalidFormat, i, err)
		}
		items = append(items, item)
	}

	settings, err := s.settingsFromData(snap.Settings, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	err = s.runInTransaction(ctx, func(ctx context.Context, itemRepo review.ItemRepository, settingsRepo review.SettingsRepository) error {
		if err := settingsRepo.Put(ctx, settings); err != nil {
			return fmt.Errorf("failed to put settings: %w", err)
		}
		for _, item := range items {
			if err := itemRepo.Put(ctx, item); err != nil {
				return fmt.Errorf("failed to put item %s: %w", item.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to import snapshot", slog.String("error", err.Error()))
		return nil, err
	}

	log.Info("imported snapshot", slog.Int("item_count", len(items)))
	return &ImportResult{ItemsImported: len(items)}, nil
}

// itemFromData converts a snapshot record to a domain item, backfilling the
// scheduling fields older exports omit with the standard defaults.
func (s *serviceImpl) itemFromData(data ItemData, now time.Time) (*domain.ReviewItem, error) {
	id := uuid.New()
	if data.ID != "" {
		parsed, err := uuid.Parse(data.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", data.ID)
		}
		id = parsed
	}

	interval := domain.DefaultInterval
	if data.Interval != nil {
		interval = *data.Interval
	}
	ease := domain.DefaultEaseFactor
	if data.EaseFactor != nil {
		ease = *data.EaseFactor
	}
	priority := domain.DefaultPriority
	if data.Priority != nil {
		priority = *data.Priority
	}

	added := now
	if data.AddedDate != nil {
		added = fromMillis(*data.AddedDate)
	}
	next := now
	if data.NextReviewDate != nil {
		next = fromMillis(*data.NextReviewDate)
	}
	var lastReviewed time.Time
	if data.LastReviewedDate != nil {
		lastReviewed = fromMillis(*data.LastReviewedDate)
	}

	state := domain.ReviewState(data.ReviewState)
	if data.ReviewState == "" {
		state = domain.ReviewStateNeverReviewed
		if !lastReviewed.IsZero() {
			state = domain.ReviewStateReviewed
		}
	}

	item := &domain.ReviewItem{
		ID:               id,
		Type:             domain.ItemType(data.Type),
		Content:          data.Content,
		FileName:         data.FileName,
		Tags:             data.Tags,
		AddedDate:        added,
		NextReviewDate:   next,
		LastReviewedDate: lastReviewed,
		ReviewState:      state,
		Interval:         interval,
		EaseFactor:       ease,
		Priority:         priority,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

// settingsFromData converts snapshot settings, defaulting absent values.
func (s *serviceImpl) settingsFromData(data *SettingsData, now time.Time) (*domain.AppSettings, error) {
	settings := &domain.AppSettings{
		MaxReviewsPerSession: data.MaxReviewsPerSession,
		InitialReviewDays:    data.InitialReviewDays,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if settings.MaxReviewsPerSession == 0 {
		settings.MaxReviewsPerSession = domain.DefaultMaxReviewsPerSession
	}
	if settings.InitialReviewDays == 0 {
		settings.InitialReviewDays = domain.DefaultInitialReviewDays
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// runInTransaction mirrors the review service's transaction helper, with the
// same direct-run fallback for repositories lacking a connection.
func (s *serviceImpl) runInTransaction(
	ctx context.Context,
	fn func(context.Context, review.ItemRepository, review.SettingsRepository) error,
) error {
	db := s.itemRepo.DB()
	if db == nil {
		return fn(ctx, s.itemRepo, s.settingsRepo)
	}

	return store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, s.itemRepo.WithTx(tx), s.settingsRepo.WithTx(tx))
	})
}
