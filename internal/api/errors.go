package api

import (
	"errors"
	"net/http"

	"github.com/dpshade/remindful/internal/domain"
	"github.com/dpshade/remindful/internal/service/review"
	"github.com/dpshade/remindful/internal/service/snapshot"
	"github.com/dpshade/remindful/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, store.ErrItemNotFound),
		errors.Is(err, review.ErrItemNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, domain.ErrInvalidQuality),
		errors.Is(err, domain.ErrInvalidPriority),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidItemType),
		errors.Is(err, domain.ErrItemContentEmpty),
		errors.Is(err, domain.ErrItemFileNameNotAllowed),
		errors.Is(err, review.ErrInvalidScheduleDate),
		errors.Is(err, snapshot.ErrInvalidFormat),
		errors.Is(err, snapshot.ErrUnsupportedVersion),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Storage outage
	case errors.Is(err, store.ErrStorageUnavailable):
		return http.StatusServiceUnavailable

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, store.ErrItemNotFound),
		errors.Is(err, review.ErrItemNotFound):
		return "Item not found"

	case errors.Is(err, domain.ErrInvalidQuality):
		return "Quality must be between 0 and 5"

	case errors.Is(err, domain.ErrInvalidPriority):
		return "Priority must be between 1 and 5"

	case errors.Is(err, review.ErrInvalidScheduleDate):
		return "Schedule date is required"

	case errors.Is(err, snapshot.ErrUnsupportedVersion):
		return "Unsupported snapshot version"

	case errors.Is(err, snapshot.ErrInvalidFormat):
		return "Invalid snapshot format"

	case errors.Is(err, domain.ErrInvalidItemType):
		return "Item type must be note, link, image, or pdf"

	case errors.Is(err, domain.ErrItemContentEmpty):
		return "Item content is required"

	case errors.Is(err, domain.ErrItemFileNameNotAllowed):
		return "File name is only valid for image and pdf items"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid item data"

	case errors.Is(err, review.ErrSettingsUnavailable):
		return "Settings are not available"

	case errors.Is(err, store.ErrStorageUnavailable):
		return "Storage is temporarily unavailable"

	default:
		return "An unexpected error occurred"
	}
}
