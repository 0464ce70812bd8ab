package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidItemType is returned when an item type is not one of
	// note, link, image, or pdf.
	ErrInvalidItemType = errors.New("invalid item type")

	// ErrInvalidReviewState is returned when a review state tag is not valid.
	ErrInvalidReviewState = errors.New("invalid review state")

	// ErrInvalidQuality is returned when a recall quality signal is outside [0,5].
	ErrInvalidQuality = errors.New("quality must be between 0 and 5")

	// ErrInvalidPriority is returned when a priority is outside [1,5].
	ErrInvalidPriority = errors.New("priority must be between 1 and 5")
)
