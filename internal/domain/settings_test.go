package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	settings := DefaultSettings(now)
	require.NoError(t, settings.Validate())

	assert.Equal(t, DefaultMaxReviewsPerSession, settings.MaxReviewsPerSession)
	assert.Equal(t, DefaultInitialReviewDays, settings.InitialReviewDays)
	assert.Equal(t, now, settings.CreatedAt)
	assert.Equal(t, now, settings.UpdatedAt)
}

func TestAppSettingsValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		maxReviews  int
		initialDays int
		expected    error
	}{
		{name: "valid settings", maxReviews: 10, initialDays: 1, expected: nil},
		{name: "zero max reviews", maxReviews: 0, initialDays: 1, expected: ErrInvalidMaxReviews},
		{name: "negative max reviews", maxReviews: -1, initialDays: 1, expected: ErrInvalidMaxReviews},
		{name: "zero initial days", maxReviews: 10, initialDays: 0, expected: ErrInvalidInitialReviewDays},
		{name: "negative initial days", maxReviews: 10, initialDays: -3, expected: ErrInvalidInitialReviewDays},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			settings := &AppSettings{
				MaxReviewsPerSession: tc.maxReviews,
				InitialReviewDays:    tc.initialDays,
			}

			err := settings.Validate()
			if tc.expected == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.expected)
			}
		})
	}
}
