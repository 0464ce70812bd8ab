package api

import (
	"time"

	"github.com/dpshade/remindful/internal/domain"
)

// Common request/response structures

// CreateItemRequest defines the payload for capturing a new item.
type CreateItemRequest struct {
	Type     string   `json:"type"      validate:"required,oneof=note link image pdf"`
	Content  string   `json:"content"   validate:"required"`
	FileName string   `json:"file_name" validate:"omitempty,max=255"`
	Tags     []string `json:"tags"      validate:"omitempty,dive,min=1"`
	Priority int      `json:"priority"  validate:"omitempty,min=1,max=5"`
}

// ReviewRequest defines the payload for completing a review.
// Quality is the recall signal: 0-2 failed, 3-5 successful.
type ReviewRequest struct {
	Quality *float64 `json:"quality" validate:"required,min=0,max=5"`
}

// ScheduleRequest defines the payload for a manual reschedule.
// Timestamp is epoch milliseconds, matching the snapshot format.
type ScheduleRequest struct {
	Timestamp int64 `json:"timestamp" validate:"required,gt=0"`
}

// PriorityRequest defines the payload for a priority change.
type PriorityRequest struct {
	Priority int `json:"priority" validate:"required,min=1,max=5"`
}

// UpdateSettingsRequest defines the payload for replacing the settings.
type UpdateSettingsRequest struct {
	MaxReviewsPerSession int `json:"max_reviews_per_session" validate:"required,min=1"`
	InitialReviewDays    int `json:"initial_review_days"     validate:"required,min=1"`
}

// ItemResponse represents the response data for a review item.
type ItemResponse struct {
	ID               string     `json:"id"`
	Type             string     `json:"type"`
	Content          string     `json:"content"`
	FileName         string     `json:"file_name,omitempty"`
	Tags             []string   `json:"tags,omitempty"`
	AddedDate        time.Time  `json:"added_date"`
	NextReviewDate   time.Time  `json:"next_review_date"`
	LastReviewedDate *time.Time `json:"last_reviewed_date,omitempty"`
	ReviewState      string     `json:"review_state"`
	Interval         int        `json:"interval"`
	EaseFactor       float64    `json:"ease_factor"`
	Priority         int        `json:"priority"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// SettingsResponse represents the response data for the application settings.
type SettingsResponse struct {
	MaxReviewsPerSession int       `json:"max_reviews_per_session"`
	InitialReviewDays    int       `json:"initial_review_days"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// itemToResponse transforms a domain item into its response form.
func itemToResponse(item *domain.ReviewItem) ItemResponse {
	resp := ItemResponse{
		ID:             item.ID.String(),
		Type:           string(item.Type),
		Content:        item.Content,
		FileName:       item.FileName,
		Tags:           item.Tags,
		AddedDate:      item.AddedDate,
		NextReviewDate: item.NextReviewDate,
		ReviewState:    string(item.ReviewState),
		Interval:       item.Interval,
		EaseFactor:     item.EaseFactor,
		Priority:       item.Priority,
		CreatedAt:      item.CreatedAt,
		UpdatedAt:      item.UpdatedAt,
	}
	if !item.LastReviewedDate.IsZero() {
		last := item.LastReviewedDate
		resp.LastReviewedDate = &last
	}
	return resp
}

// itemsToResponse transforms a slice of domain items, never returning nil so
// the JSON encoding is always an array.
func itemsToResponse(items []*domain.ReviewItem) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, itemToResponse(item))
	}
	return out
}

// settingsToResponse transforms domain settings into their response form.
func settingsToResponse(settings *domain.AppSettings) SettingsResponse {
	return SettingsResponse{
		MaxReviewsPerSession: settings.MaxReviewsPerSession,
		InitialReviewDays:    settings.InitialReviewDays,
		UpdatedAt:            settings.UpdatedAt,
	}
}
