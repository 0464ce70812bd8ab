package review_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpshade/remindful/internal/domain"
	"github.com/dpshade/remindful/internal/domain/srs"
	"github.com/dpshade/remindful/internal/mocks"
	"github.com/dpshade/remindful/internal/platform/clock"
	"github.com/dpshade/remindful/internal/service/review"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	service  review.ReviewService
	items    *mocks.MemoryItemRepository
	settings *mocks.MemorySettingsRepository
	clock    *clock.FrozenClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	items := mocks.NewMemoryItemRepository()
	settings := mocks.NewMemorySettingsRepository(domain.DefaultSettings(testNow))
	clk := clock.NewFrozen(testNow)

	return &fixture{
		service:  review.NewReviewService(items, settings, srs.NewDefaultService(), clk, nil),
		items:    items,
		settings: settings,
		clock:    clk,
	}
}

func (f *fixture) seedItem(t *testing.T) *domain.ReviewItem {
	t.Helper()
	item, err := domain.NewReviewItem(domain.ItemTypeNote, "seeded content", "", nil, 0, testNow)
	require.NoError(t, err)
	f.items.Seed(item)
	return item
}

func TestCreateItem(t *testing.T) {
	t.Parallel()

	t.Run("applies the initial schedule before persisting", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		item, err := f.service.CreateItem(context.Background(), review.CreateItemRequest{
			Type:    domain.ItemTypeLink,
			Content: "https://example.com/article",
			Tags:    []string{"to-read"},
		})
		require.NoError(t, err)

		assert.Equal(t, domain.ReviewStateNeverReviewed, item.ReviewState)
		assert.Equal(t, 1, item.Interval)
		assert.Equal(t, 2.5, item.EaseFactor)
		assert.Equal(t, domain.DefaultPriority, item.Priority)
		assert.Equal(t, testNow.Add(24*time.Hour), item.NextReviewDate)

		stored, err := f.service.GetItem(context.Background(), item.ID)
		require.NoError(t, err)
		assert.Equal(t, item.ID, stored.ID)
	})

	t.Run("respects a larger initial review baseline", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		_, err := f.service.UpdateSettings(context.Background(), 10, 3)
		require.NoError(t, err)

		item, err := f.service.CreateItem(context.Background(), review.CreateItemRequest{
			Type:    domain.ItemTypeNote,
			Content: "content",
		})
		require.NoError(t, err)
		assert.Equal(t, 3, item.Interval)
	})

	t.Run("rejects invalid item data", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		_, err := f.service.CreateItem(context.Background(), review.CreateItemRequest{
			Type:    domain.ItemTypeNote,
			Content: "",
		})
		assert.ErrorIs(t, err, domain.ErrItemContentEmpty)
	})

	t.Run("fails when settings are missing", func(t *testing.T) {
		t.Parallel()
		items := mocks.NewMemoryItemRepository()
		settings := mocks.NewMemorySettingsRepository(nil)
		service := review.NewReviewService(
			items, settings, srs.NewDefaultService(), clock.NewFrozen(testNow), nil)

		_, err := service.CreateItem(context.Background(), review.CreateItemRequest{
			Type:    domain.ItemTypeNote,
			Content: "content",
		})
		assert.ErrorIs(t, err, review.ErrSettingsUnavailable)
	})
}

func TestMarkRead(t *testing.T) {
	t.Parallel()

	t.Run("flips state and applies the scheduler", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		item := f.seedItem(t)

		updated, err := f.service.MarkRead(context.Background(), item.ID, 4)
		require.NoError(t, err)

		assert.Equal(t, domain.ReviewStateReviewed, updated.ReviewState)
		assert.Equal(t, testNow, updated.LastReviewedDate)
		// First successful review jumps from the one-day baseline.
		assert.Equal(t, 3, updated.Interval)
		assert.Equal(t, testNow.Add(3*24*time.Hour), updated.NextReviewDate)
	})

	t.Run("perfect first review gets the larger jump", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		item := f.seedItem(t)

		updated, err := f.service.MarkRead(context.Background(), item.ID, 5)
		require.NoError(t, err)
		assert.Equal(t, 4, updated.Interval)
	})

	t.Run("second review uses the growth formula", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		item := f.seedItem(t)

		first, err := f.service.MarkRead(context.Background(), item.ID, 4)
		require.NoError(t, err)

		second, err := f.service.MarkRead(context.Background(), item.ID, 4)
		require.NoError(t, err)
		// 3 * 2.5 = 7.5, rounded half up.
		assert.Equal(t, 8, second.Interval)
		assert.Equal(t, domain.ReviewStateReviewed, second.ReviewState)
		assert.Greater(t, second.Interval, first.Interval)
	})

	t.Run("failed recall resets the interval and penalizes ease", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		item := f.seedItem(t)

		_, err := f.service.MarkRead(context.Background(), item.ID, 4)
		require.NoError(t, err)

		updated, err := f.service.MarkRead(context.Background(), item.ID, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, updated.Interval)
		assert.InDelta(t, 2.3, updated.EaseFactor, 0.0001)
	})

	t.Run("out of range quality rejected", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		item := f.seedItem(t)

		_, err := f.service.MarkRead(context.Background(), item.ID, 6)
		assert.ErrorIs(t, err, domain.ErrInvalidQuality)

		stored, err := f.service.GetItem(context.Background(), item.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ReviewStateNeverReviewed, stored.ReviewState)
	})

	t.Run("unknown item", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		_, err := f.service.MarkRead(context.Background(), uuid.New(), 4)
		assert.ErrorIs(t, err, review.ErrItemNotFound)
	})

	t.Run("missing settings surface as unavailable", func(t *testing.T) {
		t.Parallel()
		items := mocks.NewMemoryItemRepository()
		settings := mocks.NewMemorySettingsRepository(nil)
		service := review.NewReviewService(
			items, settings, srs.NewDefaultService(), clock.NewFrozen(testNow), nil)

		item, err := domain.NewReviewItem(domain.ItemTypeNote, "content", "", nil, 0, testNow)
		require.NoError(t, err)
		items.Seed(item)

		_, err = service.MarkRead(context.Background(), item.ID, 4)
		assert.ErrorIs(t, err, review.ErrSettingsUnavailable)
	})
}

func TestPostpone(t *testing.T) {
	t.Parallel()

	t.Run("moves the date one day out without touching state", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		item := f.seedItem(t)

		updated, err := f.service.Postpone(context.Background(), item.ID)
		require.NoError(t, err)

		assert.Equal(t, testNow.Add(24*time.Hour), updated.NextReviewDate)
		assert.Equal(t, item.Interval, updated.Interval)
		assert.Equal(t, item.EaseFactor, updated.EaseFactor)
		assert.Equal(t, domain.ReviewStateNeverReviewed, updated.ReviewState)
		assert.True(t, updated.LastReviewedDate.IsZero())
	})

	t.Run("unknown item", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		_, err := f.service.Postpone(context.Background(), uuid.New())
		assert.ErrorIs(t, err, review.ErrItemNotFound)
	})
}

func TestScheduleForDate(t *testing.T) {
	t.Parallel()

	t.Run("sets the date directly", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		item := f.seedItem(t)
		target := testNow.Add(14 * 24 * time.Hour)

		updated, err := f.service.ScheduleForDate(context.Background(), item.ID, target)
		require.NoError(t, err)

		assert.Equal(t, target, updated.NextReviewDate)
		assert.Equal(t, item.Interval, updated.Interval)
		assert.Equal(t, domain.ReviewStateNeverReviewed, updated.ReviewState,
			"manual reschedule never flips the review state")
	})

	t.Run("a past date makes the item immediately due", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		item := f.seedItem(t)

		updated, err := f.service.ScheduleForDate(context.Background(), item.ID, testNow.Add(-time.Hour))
		require.NoError(t, err)
		assert.True(t, updated.IsDue(testNow))

		due, err := f.service.ListDueItems(context.Background())
		require.NoError(t, err)
		require.Len(t, due, 1)
		assert.Equal(t, item.ID, due[0].ID)
	})

	t.Run("zero date rejected", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		item := f.seedItem(t)

		_, err := f.service.ScheduleForDate(context.Background(), item.ID, time.Time{})
		assert.ErrorIs(t, err, review.ErrInvalidScheduleDate)
	})
}

func TestUpdatePriority(t *testing.T) {
	t.Parallel()

	t.Run("updates within range", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		item := f.seedItem(t)

		updated, err := f.service.UpdatePriority(context.Background(), item.ID, 5)
		require.NoError(t, err)
		assert.Equal(t, 5, updated.Priority)
	})

	t.Run("out of range rejected", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		item := f.seedItem(t)

		for _, priority := range []int{0, 6, -1} {
			_, err := f.service.UpdatePriority(context.Background(), item.ID, priority)
			assert.ErrorIs(t, err, domain.ErrInvalidPriority, "priority %d", priority)
		}
	})
}

func TestDeleteItem(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	item := f.seedItem(t)

	require.NoError(t, f.service.DeleteItem(context.Background(), item.ID))
	assert.Equal(t, 0, f.items.Len())

	// Idempotent: deleting again succeeds.
	assert.NoError(t, f.service.DeleteItem(context.Background(), item.ID))

	_, err := f.service.GetItem(context.Background(), item.ID)
	assert.ErrorIs(t, err, review.ErrItemNotFound)
}

func TestListDueItems(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	overdue := f.seedItem(t)
	_, err := f.service.ScheduleForDate(context.Background(), overdue.ID, testNow.Add(-48*time.Hour))
	require.NoError(t, err)

	boundary := f.seedItem(t)
	_, err = f.service.ScheduleForDate(context.Background(), boundary.ID, testNow)
	require.NoError(t, err)

	future := f.seedItem(t)
	_, err = f.service.ScheduleForDate(context.Background(), future.ID, testNow.Add(time.Hour))
	require.NoError(t, err)

	due, err := f.service.ListDueItems(context.Background())
	require.NoError(t, err)

	require.Len(t, due, 2)
	assert.Equal(t, overdue.ID, due[0].ID, "soonest first")
	assert.Equal(t, boundary.ID, due[1].ID, "boundary equality counts as due")
}

func TestUpdateSettings(t *testing.T) {
	t.Parallel()

	t.Run("replaces the record", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		updated, err := f.service.UpdateSettings(context.Background(), 25, 2)
		require.NoError(t, err)
		assert.Equal(t, 25, updated.MaxReviewsPerSession)
		assert.Equal(t, 2, updated.InitialReviewDays)

		stored, err := f.service.GetSettings(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 25, stored.MaxReviewsPerSession)
	})

	t.Run("invalid values rejected", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		_, err := f.service.UpdateSettings(context.Background(), 0, 1)
		assert.ErrorIs(t, err, domain.ErrInvalidMaxReviews)

		_, err = f.service.UpdateSettings(context.Background(), 10, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidInitialReviewDays)
	})
}

func TestStorageFailuresWrapped(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	item := f.seedItem(t)

	storageErr := errors.New("connection reset")
	f.items.PutErr = storageErr

	_, err := f.service.MarkRead(context.Background(), item.ID, 4)
	require.Error(t, err)

	var serviceErr *review.ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, "mark_read", serviceErr.Operation)
	assert.ErrorIs(t, err, storageErr)
}
