package snapshot_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpshade/remindful/internal/domain"
	"github.com/dpshade/remindful/internal/mocks"
	"github.com/dpshade/remindful/internal/platform/clock"
	"github.com/dpshade/remindful/internal/service/snapshot"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newService(t *testing.T) (snapshot.Service, *mocks.MemoryItemRepository, *mocks.MemorySettingsRepository) {
	t.Helper()
	items := mocks.NewMemoryItemRepository()
	settings := mocks.NewMemorySettingsRepository(domain.DefaultSettings(testNow))
	service := snapshot.NewService(items, settings, clock.NewFrozen(testNow), nil)
	return service, items, settings
}

func seedItem(t *testing.T, items *mocks.MemoryItemRepository) *domain.ReviewItem {
	t.Helper()
	item, err := domain.NewReviewItem(
		domain.ItemTypeLink, "https://example.com", "", []string{"to-read"}, 2, testNow)
	require.NoError(t, err)
	items.Seed(item)
	return item
}

func TestExport(t *testing.T) {
	t.Parallel()
	service, items, _ := newService(t)
	item := seedItem(t, items)

	snap, err := service.Export(context.Background())
	require.NoError(t, err)

	assert.Equal(t, snapshot.Version, snap.Version)
	assert.Equal(t, testNow.UnixMilli(), snap.ExportedAt)
	require.NotNil(t, snap.Settings)
	assert.Equal(t, domain.DefaultMaxReviewsPerSession, snap.Settings.MaxReviewsPerSession)

	require.Len(t, snap.ReviewItems, 1)
	data := snap.ReviewItems[0]
	assert.Equal(t, item.ID.String(), data.ID)
	assert.Equal(t, "link", data.Type)
	assert.Equal(t, []string{"to-read"}, data.Tags)
	require.NotNil(t, data.NextReviewDate)
	assert.Equal(t, item.NextReviewDate.UnixMilli(), *data.NextReviewDate)
	assert.Nil(t, data.LastReviewedDate, "never-reviewed items export no review date")
	require.NotNil(t, data.Priority)
	assert.Equal(t, 2, *data.Priority)
}

func TestImportExportRoundTrip(t *testing.T) {
	t.Parallel()
	source, sourceItems, _ := newService(t)
	item := seedItem(t, sourceItems)

	snap, err := source.Export(context.Background())
	require.NoError(t, err)

	target, targetItems, targetSettings := newService(t)
	result, err := target.Import(context.Background(), snap)
	require.NoError(t, err)
	assert.Equal(t, 1, result.ItemsImported)

	restored, err := targetItems.GetByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.Content, restored.Content)
	assert.Equal(t, item.Tags, restored.Tags)
	assert.Equal(t, item.Priority, restored.Priority)
	assert.Equal(t, item.Interval, restored.Interval)
	assert.Equal(t, item.EaseFactor, restored.EaseFactor)
	assert.Equal(t, item.ReviewState, restored.ReviewState)
	assert.Equal(t, item.NextReviewDate.UnixMilli(), restored.NextReviewDate.UnixMilli())

	settings, err := targetSettings.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultMaxReviewsPerSession, settings.MaxReviewsPerSession)
}

func TestImportBackfillsMissingFields(t *testing.T) {
	t.Parallel()
	service, items, _ := newService(t)

	snap := &snapshot.Snapshot{
		Version:  snapshot.Version,
		Settings: &snapshot.SettingsData{MaxReviewsPerSession: 10, InitialReviewDays: 1},
		ReviewItems: []snapshot.ItemData{
			{Type: "note", Content: "bare minimum record"},
		},
	}

	result, err := service.Import(context.Background(), snap)
	require.NoError(t, err)
	assert.Equal(t, 1, result.ItemsImported)

	all, err := items.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)

	restored := all[0]
	assert.NotEqual(t, uuid.Nil, restored.ID, "missing ID gets a fresh UUID")
	assert.Equal(t, domain.DefaultInterval, restored.Interval)
	assert.Equal(t, domain.DefaultEaseFactor, restored.EaseFactor)
	assert.Equal(t, domain.DefaultPriority, restored.Priority)
	assert.Equal(t, testNow, restored.AddedDate)
	assert.Equal(t, testNow, restored.NextReviewDate)
	assert.Equal(t, domain.ReviewStateNeverReviewed, restored.ReviewState)
}

func TestImportDerivesStateFromReviewDate(t *testing.T) {
	t.Parallel()
	service, items, _ := newService(t)
	reviewed := testNow.Add(-48 * time.Hour).UnixMilli()

	snap := &snapshot.Snapshot{
		Version:  snapshot.Version,
		Settings: &snapshot.SettingsData{MaxReviewsPerSession: 10, InitialReviewDays: 1},
		ReviewItems: []snapshot.ItemData{
			{Type: "note", Content: "previously reviewed", LastReviewedDate: &reviewed},
		},
	}

	_, err := service.Import(context.Background(), snap)
	require.NoError(t, err)

	all, err := items.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, domain.ReviewStateReviewed, all[0].ReviewState)
}

func TestImportOverwritesByID(t *testing.T) {
	t.Parallel()
	service, items, _ := newService(t)
	existing := seedItem(t, items)
	priority := 5

	snap := &snapshot.Snapshot{
		Version:  snapshot.Version,
		Settings: &snapshot.SettingsData{MaxReviewsPerSession: 10, InitialReviewDays: 1},
		ReviewItems: []snapshot.ItemData{
			{ID: existing.ID.String(), Type: "link", Content: "replacement", Priority: &priority},
		},
	}

	_, err := service.Import(context.Background(), snap)
	require.NoError(t, err)

	restored, err := items.GetByID(context.Background(), existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "replacement", restored.Content)
	assert.Equal(t, 5, restored.Priority)
	assert.Equal(t, 1, items.Len())
}

func TestImportRejectsMalformedDocuments(t *testing.T) {
	t.Parallel()
	service, items, _ := newService(t)

	testCases := []struct {
		name string
		snap *snapshot.Snapshot
	}{
		{name: "nil document", snap: nil},
		{
			name: "missing item list",
			snap: &snapshot.Snapshot{
				Version:  snapshot.Version,
				Settings: &snapshot.SettingsData{MaxReviewsPerSession: 10, InitialReviewDays: 1},
			},
		},
		{
			name: "missing settings",
			snap: &snapshot.Snapshot{
				Version:     snapshot.Version,
				ReviewItems: []snapshot.ItemData{},
			},
		},
		{
			name: "invalid item id",
			snap: &snapshot.Snapshot{
				Version:     snapshot.Version,
				Settings:    &snapshot.SettingsData{MaxReviewsPerSession: 10, InitialReviewDays: 1},
				ReviewItems: []snapshot.ItemData{{ID: "not-a-uuid", Type: "note", Content: "x"}},
			},
		},
		{
			name: "invalid item type",
			snap: &snapshot.Snapshot{
				Version:     snapshot.Version,
				Settings:    &snapshot.SettingsData{MaxReviewsPerSession: 10, InitialReviewDays: 1},
				ReviewItems: []snapshot.ItemData{{Type: "video", Content: "x"}},
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := service.Import(context.Background(), tc.snap)
			assert.ErrorIs(t, err, snapshot.ErrInvalidFormat)
		})
	}

	assert.Equal(t, 0, items.Len(), "rejected documents import nothing")
}

func TestImportRejectsNewerVersions(t *testing.T) {
	t.Parallel()
	service, _, _ := newService(t)

	snap := &snapshot.Snapshot{
		Version:     snapshot.Version + 1,
		Settings:    &snapshot.SettingsData{MaxReviewsPerSession: 10, InitialReviewDays: 1},
		ReviewItems: []snapshot.ItemData{},
	}

	_, err := service.Import(context.Background(), snap)
	assert.ErrorIs(t, err, snapshot.ErrUnsupportedVersion)
}

func TestImportValidatesAllItemsBeforeWriting(t *testing.T) {
	t.Parallel()
	service, items, _ := newService(t)

	snap := &snapshot.Snapshot{
		Version:  snapshot.Version,
		Settings: &snapshot.SettingsData{MaxReviewsPerSession: 10, InitialReviewDays: 1},
		ReviewItems: []snapshot.ItemData{
			{Type: "note", Content: "fine"},
			{Type: "note", Content: ""},
		},
	}

	_, err := service.Import(context.Background(), snap)
	assert.ErrorIs(t, err, snapshot.ErrInvalidFormat)
	assert.Equal(t, 0, items.Len(), "no partial import")
}
