package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dpshade/remindful/internal/domain"
	"github.com/dpshade/remindful/internal/service/review"
)

// MockReviewService implements review.ReviewService for handler tests.
// Each Fn field, when set, supplies the behavior of the matching method;
// unset methods return the Item/Items/Settings and Err defaults.
type MockReviewService struct {
	CreateItemFn     func(ctx context.Context, req review.CreateItemRequest) (*domain.ReviewItem, error)
	GetItemFn        func(ctx context.Context, id uuid.UUID) (*domain.ReviewItem, error)
	ListItemsFn      func(ctx context.Context) ([]*domain.ReviewItem, error)
	ListDueItemsFn   func(ctx context.Context) ([]*domain.ReviewItem, error)
	PostponeFn       func(ctx context.Context, id uuid.UUID) (*domain.ReviewItem, error)
	MarkReadFn       func(ctx context.Context, id uuid.UUID, quality float64) (*domain.ReviewItem, error)
	ScheduleFn       func(ctx context.Context, id uuid.UUID, at time.Time) (*domain.ReviewItem, error)
	UpdatePriorityFn func(ctx context.Context, id uuid.UUID, priority int) (*domain.ReviewItem, error)
	DeleteItemFn     func(ctx context.Context, id uuid.UUID) error
	GetSettingsFn    func(ctx context.Context) (*domain.AppSettings, error)
	UpdateSettingsFn func(ctx context.Context, maxReviews, initialDays int) (*domain.AppSettings, error)

	Item     *domain.ReviewItem
	Items    []*domain.ReviewItem
	Settings *domain.AppSettings
	Err      error
}

var _ review.ReviewService = (*MockReviewService)(nil)

func (m *MockReviewService) CreateItem(
	ctx context.Context,
	req review.CreateItemRequest,
) (*domain.ReviewItem, error) {
	if m.CreateItemFn != nil {
		return m.CreateItemFn(ctx, req)
	}
	return m.Item, m.Err
}

func (m *MockReviewService) GetItem(ctx context.Context, id uuid.UUID) (*domain.ReviewItem, error) {
	if m.GetItemFn != nil {
		return m.GetItemFn(ctx, id)
	}
	return m.Item, m.Err
}

func (m *MockReviewService) ListItems(ctx context.Context) ([]*domain.ReviewItem, error) {
	if m.ListItemsFn != nil {
		return m.ListItemsFn(ctx)
	}
	return m.Items, m.Err
}

func (m *MockReviewService) ListDueItems(ctx context.Context) ([]*domain.ReviewItem, error) {
	if m.ListDueItemsFn != nil {
		return m.ListDueItemsFn(ctx)
	}
	return m.Items, m.Err
}

func (m *MockReviewService) Postpone(ctx context.Context, id uuid.UUID) (*domain.ReviewItem, error) {
	if m.PostponeFn != nil {
		return m.PostponeFn(ctx, id)
	}
	return m.Item, m.Err
}

func (m *MockReviewService) MarkRead(
	ctx context.Context,
	id uuid.UUID,
	quality float64,
) (*domain.ReviewItem, error) {
	if m.MarkReadFn != nil {
		return m.MarkReadFn(ctx, id, quality)
	}
	return m.Item, m.Err
}

func (m *MockReviewService) ScheduleForDate(
	ctx context.Context,
	id uuid.UUID,
	at time.Time,
) (*domain.ReviewItem, error) {
	if m.ScheduleFn != nil {
		return m.ScheduleFn(ctx, id, at)
	}
	return m.Item, m.Err
}

func (m *MockReviewService) UpdatePriority(
	ctx context.Context,
	id uuid.UUID,
	priority int,
) (*domain.ReviewItem, error) {
	if m.UpdatePriorityFn != nil {
		return m.UpdatePriorityFn(ctx, id, priority)
	}
	return m.Item, m.Err
}

func (m *MockReviewService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if m.DeleteItemFn != nil {
		return m.DeleteItemFn(ctx, id)
	}
	return m.Err
}

func (m *MockReviewService) GetSettings(ctx context.Context) (*domain.AppSettings, error) {
	if m.GetSettingsFn != nil {
		return m.GetSettingsFn(ctx)
	}
	return m.Settings, m.Err
}

func (m *MockReviewService) UpdateSettings(
	ctx context.Context,
	maxReviews, initialDays int,
) (*domain.AppSettings, error) {
	if m.UpdateSettingsFn != nil {
		return m.UpdateSettingsFn(ctx, maxReviews, initialDays)
	}
	return m.Settings, m.Err
}
