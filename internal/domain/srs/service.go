package srs

import (
	"errors"
	"time"

	"github.com/dpshade/remindful/internal/domain"
)

// Common errors
var (
	ErrNilItem     = errors.New("review item cannot be nil")
	ErrNilSettings = errors.New("settings cannot be nil")
	ErrInvalidDays = errors.New("postpone days must be at least 1")
)

// Service defines the interface for scheduling operations. All methods are
// pure: they never mutate their inputs and have no side effects.
type Service interface {
	// CalculateInitialState computes the review state for a newly captured
	// item with the given priority. Priority is validated but does not
	// affect the first interval; capture flows must apply the result before
	// first persistence.
	CalculateInitialState(settings *domain.AppSettings, priority int, now time.Time) (Schedule, error)

	// CalculateNextState computes new review state from a completed review
	// with recall quality in [0,5].
	CalculateNextState(
		item *domain.ReviewItem,
		settings *domain.AppSettings,
		quality float64,
		now time.Time,
	) (Schedule, error)

	// PostponeReview returns the review date for an item pushed forward by
	// the given number of days from now. Interval and ease are unaffected.
	PostponeReview(item *domain.ReviewItem, days int, now time.Time) (time.Time, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new scheduling service with default parameters.
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new scheduling service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// CalculateInitialState implements the Service interface.
func (s *defaultService) CalculateInitialState(
	settings *domain.AppSettings,
	priority int,
	now time.Time,
) (Schedule, error) {
	if settings == nil {
		return Schedule{}, ErrNilSettings
	}

	if priority < 1 || priority > 5 {
		return Schedule{}, domain.ErrInvalidPriority
	}

	return calculateInitialState(settings, now, s.params), nil
}

// CalculateNextState implements the Service interface.
func (s *defaultService) CalculateNextState(
	item *domain.ReviewItem,
	settings *domain.AppSettings,
	quality float64,
	now time.Time,
) (Schedule, error) {
	if item == nil {
		return Schedule{}, ErrNilItem
	}

	if settings == nil {
		return Schedule{}, ErrNilSettings
	}

	if quality < 0 || quality > 5 {
		return Schedule{}, domain.ErrInvalidQuality
	}

	return calculateNextState(item, settings, quality, now, s.params), nil
}

// PostponeReview implements the Service interface.
func (s *defaultService) PostponeReview(
	item *domain.ReviewItem,
	days int,
	now time.Time,
) (time.Time, error) {
	if item == nil {
		return time.Time{}, ErrNilItem
	}

	if days < 1 {
		return time.Time{}, ErrInvalidDays
	}

	return addDays(now, days), nil
}
