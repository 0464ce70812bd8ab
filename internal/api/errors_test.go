package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dpshade/remindful/internal/domain"
	"github.com/dpshade/remindful/internal/service/review"
	"github.com/dpshade/remindful/internal/service/snapshot"
	"github.com/dpshade/remindful/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "service item not found", err: review.ErrItemNotFound, expected: http.StatusNotFound},
		{name: "store item not found", err: store.ErrItemNotFound, expected: http.StatusNotFound},
		{name: "invalid quality", err: domain.ErrInvalidQuality, expected: http.StatusBadRequest},
		{name: "invalid priority", err: domain.ErrInvalidPriority, expected: http.StatusBadRequest},
		{name: "invalid schedule date", err: review.ErrInvalidScheduleDate, expected: http.StatusBadRequest},
		{name: "invalid snapshot", err: snapshot.ErrInvalidFormat, expected: http.StatusBadRequest},
		{name: "unsupported snapshot version", err: snapshot.ErrUnsupportedVersion, expected: http.StatusBadRequest},
		{name: "empty content", err: domain.ErrItemContentEmpty, expected: http.StatusBadRequest},
		{name: "storage unavailable", err: store.ErrStorageUnavailable, expected: http.StatusServiceUnavailable},
		{name: "unknown error", err: errors.New("boom"), expected: http.StatusInternalServerError},
		{
			name:     "wrapped errors unwrap",
			err:      fmt.Errorf("context: %w", review.ErrItemNotFound),
			expected: http.StatusNotFound,
		},
		{
			name:     "wrapped storage outage",
			err:      fmt.Errorf("%w: connection refused", store.ErrStorageUnavailable),
			expected: http.StatusServiceUnavailable,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil error", err: nil, expected: "An unexpected error occurred"},
		{name: "item not found", err: review.ErrItemNotFound, expected: "Item not found"},
		{name: "invalid quality", err: domain.ErrInvalidQuality, expected: "Quality must be between 0 and 5"},
		{name: "invalid snapshot", err: snapshot.ErrInvalidFormat, expected: "Invalid snapshot format"},
		{name: "storage unavailable", err: store.ErrStorageUnavailable, expected: "Storage is temporarily unavailable"},
		{
			name:     "internal details never leak",
			err:      errors.New("pq: connection to 10.0.0.3:5432 refused"),
			expected: "An unexpected error occurred",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, GetSafeErrorMessage(tc.err))
		})
	}
}
