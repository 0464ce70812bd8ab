// Package review composes the scheduler and the item store into the stateful
// operations the UI needs: capture, postpone, mark-read, reschedule-to-date,
// priority edit, and delete. Every mutation is an atomic read-modify-write:
// fetch the current record, compute the new one, put the full replacement.
package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dpshade/remindful/internal/domain"
)

// CreateItemRequest carries the fields a capture flow provides for a new item.
type CreateItemRequest struct {
	Type     domain.ItemType
	Content  string
	FileName string
	Tags     []string
	Priority int // 0 means unspecified, defaults to 3
}

// ReviewService provides the stateful review operations over captured items.
type ReviewService interface {
	// CreateItem builds a new item from the request, applies the scheduler's
	// initial state, and persists it. Capture flows (manual entry, share
	// target, file upload, bookmarklet) all enter through here.
	CreateItem(ctx context.Context, req CreateItemRequest) (*domain.ReviewItem, error)

	// GetItem retrieves a single item.
	// Returns ErrItemNotFound if the item does not exist.
	GetItem(ctx context.Context, id uuid.UUID) (*domain.ReviewItem, error)

	// ListItems retrieves every stored item, order unspecified.
	ListItems(ctx context.Context) ([]*domain.ReviewItem, error)

	// ListDueItems retrieves the items due at the current time, soonest first.
	ListDueItems(ctx context.Context) ([]*domain.ReviewItem, error)

	// Postpone pushes the item's next review one day out from now.
	// Interval and ease factor are untouched.
	Postpone(ctx context.Context, id uuid.UUID) (*domain.ReviewItem, error)

	// MarkRead completes a review with the given recall quality in [0,5],
	// recording the review time and applying the scheduler's next state.
	MarkRead(ctx context.Context, id uuid.UUID, quality float64) (*domain.ReviewItem, error)

	// ScheduleForDate sets the next review date directly, bypassing the
	// scheduling algorithm entirely. Interval and ease factor are untouched.
	ScheduleForDate(ctx context.Context, id uuid.UUID, at time.Time) (*domain.ReviewItem, error)

	// UpdatePriority changes the item's priority (1 highest to 5 lowest).
	UpdatePriority(ctx context.Context, id uuid.UUID, priority int) (*domain.ReviewItem, error)

	// DeleteItem removes the item. Deleting an absent ID is not an error.
	DeleteItem(ctx context.Context, id uuid.UUID) error

	// GetSettings retrieves the process-wide settings record.
	GetSettings(ctx context.Context) (*domain.AppSettings, error)

	// UpdateSettings replaces the settings record after validation.
	UpdateSettings(ctx context.Context, maxReviewsPerSession, initialReviewDays int) (*domain.AppSettings, error)
}

// Common error types for ReviewService
var (
	// ErrItemNotFound indicates that the referenced item is absent from the store.
	ErrItemNotFound = errors.New("item not found")

	// ErrSettingsUnavailable indicates the settings record is missing when a
	// scheduling computation requires it. Startup initialization makes this
	// practically unreachable.
	ErrSettingsUnavailable = errors.New("settings not available for scheduling")

	// ErrInvalidScheduleDate indicates a manual reschedule with no date.
	ErrInvalidScheduleDate = errors.New("schedule date must be set")
)

// ServiceError wraps errors from the review service with the operation that
// failed, so consumers can differentiate failures with errors.As instead of
// string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "mark_read", "postpone")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// newServiceError creates a ServiceError for the given operation.
func newServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
