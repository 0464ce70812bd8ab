package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dpshade/remindful/internal/domain"
	"github.com/dpshade/remindful/internal/domain/srs"
	"github.com/dpshade/remindful/internal/platform/clock"
	"github.com/dpshade/remindful/internal/platform/logger"
	"github.com/dpshade/remindful/internal/store"
)

// postponeDays is how far Postpone pushes the next review out, from now.
const postponeDays = 1

// Verify interface compliance at compile time
var _ ReviewService = (*reviewServiceImpl)(nil)

// reviewServiceImpl implements the ReviewService interface.
type reviewServiceImpl struct {
	itemRepo     ItemRepository
	settingsRepo SettingsRepository
	scheduler    srs.Service
	clock        clock.Clock
	logger       *slog.Logger
}

// NewReviewService creates a new ReviewService implementation.
func NewReviewService(
	itemRepo ItemRepository,
	settingsRepo SettingsRepository,
	scheduler srs.Service,
	clk clock.Clock,
	logger *slog.Logger,
) ReviewService {
	if itemRepo == nil {
		panic("itemRepo cannot be nil")
	}
	if settingsRepo == nil {
		panic("settingsRepo cannot be nil")
	}
	if scheduler == nil {
		panic("scheduler cannot be nil")
	}
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &reviewServiceImpl{
		itemRepo:     itemRepo,
		settingsRepo: settingsRepo,
		scheduler:    scheduler,
		clock:        clk,
		logger:       logger.With(slog.String("component", "review_service")),
	}
}

// CreateItem implements ReviewService.CreateItem.
func (s *reviewServiceImpl) CreateItem(
	ctx context.Context,
	req CreateItemRequest,
) (*domain.ReviewItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.clock.Now()

	item, err := domain.NewReviewItem(req.Type, req.Content, req.FileName, req.Tags, req.Priority, now)
	if err != nil {
		return nil, err
	}

	settings, err := s.getSettings(ctx)
	if err != nil {
		return nil, err
	}

	// The initial schedule must be applied before first persistence.
	schedule, err := s.scheduler.CalculateInitialState(settings, item.Priority, now)
	if err != nil {
		return nil, newServiceError("create_item", "failed to calculate initial state", err)
	}
	applySchedule(item, schedule)

	if err := s.itemRepo.Put(ctx, item); err != nil {
		log.Error("failed to persist new item",
			slog.String("item_id", item.ID.String()),
			slog.String("error", err.Error()))
		return nil, newServiceError("create_item", "failed to persist item", err)
	}

	log.Debug("captured new item",
		slog.String("item_id", item.ID.String()),
		slog.String("type", string(item.Type)),
		slog.Int("priority", item.Priority),
		slog.Time("next_review_date", item.NextReviewDate))
	return item, nil
}

// GetItem implements ReviewService.GetItem.
func (s *reviewServiceImpl) GetItem(ctx context.Context, id uuid.UUID) (*domain.ReviewItem, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapItemNotFound(err)
	}
	return item, nil
}

// ListItems implements ReviewService.ListItems.
func (s *reviewServiceImpl) ListItems(ctx context.Context) ([]*domain.ReviewItem, error) {
	items, err := s.itemRepo.GetAll(ctx)
	if err != nil {
		return nil, newServiceError("list_items", "failed to list items", err)
	}
	return items, nil
}

// ListDueItems implements ReviewService.ListDueItems.
func (s *reviewServiceImpl) ListDueItems(ctx context.Context) ([]*domain.ReviewItem, error) {
	items, err := s.itemRepo.GetDue(ctx, s.clock.Now())
	if err != nil {
		return nil, newServiceError("list_due_items", "failed to list due items", err)
	}
	return items, nil
}

// Postpone implements ReviewService.Postpone.
// The next review moves one day out from now; interval and ease are untouched.
func (s *reviewServiceImpl) Postpone(ctx context.Context, id uuid.UUID) (*domain.ReviewItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.clock.Now()

	updated, err := s.mutateItem(ctx, id, "postpone", func(item *domain.ReviewItem) error {
		next, err := s.scheduler.PostponeReview(item, postponeDays, now)
		if err != nil {
			return err
		}
		item.NextReviewDate = next
		item.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Debug("postponed item",
		slog.String("item_id", id.String()),
		slog.Time("next_review_date", updated.NextReviewDate))
	return updated, nil
}

// MarkRead implements ReviewService.MarkRead.
// It records the review time, flips the item's review state to reviewed, and
// applies the scheduler's next state for the given recall quality.
func (s *reviewServiceImpl) MarkRead(
	ctx context.Context,
	id uuid.UUID,
	quality float64,
) (*domain.ReviewItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.clock.Now()

	if quality < 0 || quality > 5 {
		return nil, domain.ErrInvalidQuality
	}

	var updated *domain.ReviewItem
	err := s.runInTransaction(ctx, func(ctx context.Context, itemRepo ItemRepository, settingsRepo SettingsRepository) error {
		item, err := itemRepo.GetByID(ctx, id)
		if err != nil {
			return mapItemNotFound(err)
		}

		settings, err := settingsRepo.Get(ctx)
		if err != nil {
			if errors.Is(err, store.ErrSettingsNotFound) {
				return ErrSettingsUnavailable
			}
			return fmt.Errorf("failed to get settings: %w", err)
		}

		schedule, err := s.scheduler.CalculateNextState(item, settings, quality, now)
		if err != nil {
			return err
		}

		next := item.Clone()
		next.LastReviewedDate = now
		next.ReviewState = domain.ReviewStateReviewed
		next.UpdatedAt = now
		applySchedule(next, schedule)

		if err := itemRepo.Put(ctx, next); err != nil {
			return fmt.Errorf("failed to put item: %w", err)
		}

		updated = next
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrItemNotFound) ||
			errors.Is(err, ErrSettingsUnavailable) ||
			errors.Is(err, domain.ErrInvalidQuality) {
			return nil, err
		}
		log.Error("failed to mark item as read",
			slog.String("item_id", id.String()),
			slog.String("error", err.Error()))
		return nil, newServiceError("mark_read", "failed to mark item as read", err)
	}

	log.Debug("marked item as read",
		slog.String("item_id", id.String()),
		slog.Float64("quality", quality),
		slog.Int("interval", updated.Interval),
		slog.Float64("ease_factor", updated.EaseFactor),
		slog.Time("next_review_date", updated.NextReviewDate))
	return updated, nil
}

// ScheduleForDate implements ReviewService.ScheduleForDate.
// Manual override: only the next review date changes.
func (s *reviewServiceImpl) ScheduleForDate(
	ctx context.Context,
	id uuid.UUID,
	at time.Time,
) (*domain.ReviewItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if at.IsZero() {
		return nil, ErrInvalidScheduleDate
	}

	now := s.clock.Now()
	updated, err := s.mutateItem(ctx, id, "schedule_for_date", func(item *domain.ReviewItem) error {
		item.NextReviewDate = at.UTC().Round(time.Millisecond)
		item.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Debug("scheduled item for date",
		slog.String("item_id", id.String()),
		slog.Time("next_review_date", updated.NextReviewDate))
	return updated, nil
}

// UpdatePriority implements ReviewService.UpdatePriority.
func (s *reviewServiceImpl) UpdatePriority(
	ctx context.Context,
	id uuid.UUID,
	priority int,
) (*domain.ReviewItem, error) {
	if priority < 1 || priority > 5 {
		return nil, domain.ErrInvalidPriority
	}

	now := s.clock.Now()
	return s.mutateItem(ctx, id, "update_priority", func(item *domain.ReviewItem) error {
		item.Priority = priority
		item.UpdatedAt = now
		return nil
	})
}

// DeleteItem implements ReviewService.DeleteItem.
// Deletion is idempotent: an absent ID is not an error.
func (s *reviewServiceImpl) DeleteItem(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.itemRepo.Delete(ctx, id); err != nil {
		log.Error("failed to delete item",
			slog.String("item_id", id.String()),
			slog.String("error", err.Error()))
		return newServiceError("delete_item", "failed to delete item", err)
	}

	log.Debug("deleted item", slog.String("item_id", id.String()))
	return nil
}

// GetSettings implements ReviewService.GetSettings.
func (s *reviewServiceImpl) GetSettings(ctx context.Context) (*domain.AppSettings, error) {
	return s.getSettings(ctx)
}

// UpdateSettings implements ReviewService.UpdateSettings.
func (s *reviewServiceImpl) UpdateSettings(
	ctx context.Context,
	maxReviewsPerSession, initialReviewDays int,
) (*domain.AppSettings, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.clock.Now()

	settings := &domain.AppSettings{
		MaxReviewsPerSession: maxReviewsPerSession,
		InitialReviewDays:    initialReviewDays,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if current, err := s.settingsRepo.Get(ctx); err == nil {
		settings.CreatedAt = current.CreatedAt
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	if err := s.settingsRepo.Put(ctx, settings); err != nil {
		log.Error("failed to update settings", slog.String("error", err.Error()))
		return nil, newServiceError("update_settings", "failed to update settings", err)
	}

	log.Info("updated settings",
		slog.Int("max_reviews_per_session", settings.MaxReviewsPerSession),
		slog.Int("initial_review_days", settings.InitialReviewDays))
	return settings, nil
}

// mutateItem runs a single-item read-modify-write inside a transaction.
// The mutation updates the fetched copy in place; the full record is then
// written back, never a partial merge.
func (s *reviewServiceImpl) mutateItem(
	ctx context.Context,
	id uuid.UUID,
	operation string,
	mutate func(item *domain.ReviewItem) error,
) (*domain.ReviewItem, error) {
	var updated *domain.ReviewItem
	err := s.runInTransaction(ctx, func(ctx context.Context, itemRepo ItemRepository, _ SettingsRepository) error {
		item, err := itemRepo.GetByID(ctx, id)
		if err != nil {
			return mapItemNotFound(err)
		}

		next := item.Clone()
		if err := mutate(next); err != nil {
			return err
		}

		if err := itemRepo.Put(ctx, next); err != nil {
			return fmt.Errorf("failed to put item: %w", err)
		}

		updated = next
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrItemNotFound) ||
			errors.Is(err, domain.ErrInvalidPriority) ||
			errors.Is(err, srs.ErrInvalidDays) {
			return nil, err
		}
		return nil, newServiceError(operation, "transaction failed", err)
	}

	return updated, nil
}

// runInTransaction runs the given function against transactional repositories.
// Repositories without an underlying connection (memory-backed test doubles)
// run the function directly; their single-threaded use keeps that safe.
func (s *reviewServiceImpl) runInTransaction(
	ctx context.Context,
	fn func(context.Context, ItemRepository, SettingsRepository) error,
) error {
	db := s.itemRepo.DB()
	if db == nil {
		return fn(ctx, s.itemRepo, s.settingsRepo)
	}

	return store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, s.itemRepo.WithTx(tx), s.settingsRepo.WithTx(tx))
	})
}

// getSettings fetches the settings record, mapping absence to
// ErrSettingsUnavailable.
func (s *reviewServiceImpl) getSettings(ctx context.Context) (*domain.AppSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, store.ErrSettingsNotFound) {
			return nil, ErrSettingsUnavailable
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

// applySchedule writes a scheduler result onto an item.
func applySchedule(item *domain.ReviewItem, schedule srs.Schedule) {
	item.NextReviewDate = schedule.NextReviewDate
	item.Interval = schedule.Interval
	item.EaseFactor = schedule.EaseFactor
}

// mapItemNotFound converts the store's not-found error to the service-level one.
func mapItemNotFound(err error) error {
	if errors.Is(err, store.ErrItemNotFound) {
		return ErrItemNotFound
	}
	return fmt.Errorf("failed to get item: %w", err)
}
