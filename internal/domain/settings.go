package domain

import (
	"errors"
	"time"
)

// Settings-specific validation errors.
var (
	// ErrInvalidMaxReviews is returned when the per-session review cap is below one.
	ErrInvalidMaxReviews = errors.New("max reviews per session must be at least 1")

	// ErrInvalidInitialReviewDays is returned when the initial interval is below one day.
	ErrInvalidInitialReviewDays = errors.New("initial review days must be at least 1")
)

// Default settings values, written once at first run.
const (
	DefaultMaxReviewsPerSession = 10
	DefaultInitialReviewDays    = 1
)

// AppSettings is the single process-wide settings record. MaxReviewsPerSession
// is a display-only cap for review sessions and is not enforced by the core;
// InitialReviewDays feeds every scheduling calculation.
type AppSettings struct {
	MaxReviewsPerSession int       `json:"max_reviews_per_session"`
	InitialReviewDays    int       `json:"initial_review_days"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// DefaultSettings returns the settings record written on first run.
func DefaultSettings(now time.Time) *AppSettings {
	now = now.UTC()
	return &AppSettings{
		MaxReviewsPerSession: DefaultMaxReviewsPerSession,
		InitialReviewDays:    DefaultInitialReviewDays,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// Validate checks if the AppSettings has valid data.
func (s *AppSettings) Validate() error {
	if s.MaxReviewsPerSession < 1 {
		return ErrInvalidMaxReviews
	}

	if s.InitialReviewDays < 1 {
		return ErrInvalidInitialReviewDays
	}

	return nil
}
