// Package snapshot serializes the full application state to a portable JSON
// document and restores it wholesale. Snapshots move data between devices and
// back it up; all timestamps travel as Unix epoch milliseconds.
package snapshot

import (
	"errors"
	"fmt"
	"time"

	"github.com/dpshade/remindful/internal/domain"
)

// Version is the snapshot document version this package reads and writes.
const Version = 1

// Common errors
var (
	// ErrInvalidFormat indicates a document that is not a snapshot: wrong
	// shape, missing the item list, or missing the settings object.
	ErrInvalidFormat = errors.New("invalid snapshot format")

	// ErrUnsupportedVersion indicates a snapshot from a newer format.
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")
)

// Snapshot is the portable document: settings plus every review item.
type Snapshot struct {
	Version     int           `json:"version"`
	ExportedAt  int64         `json:"exported_at"`
	Settings    *SettingsData `json:"settings"`
	ReviewItems []ItemData    `json:"review_items"`
}

// SettingsData is the snapshot form of the application settings.
type SettingsData struct {
	MaxReviewsPerSession int `json:"max_reviews_per_session"`
	InitialReviewDays    int `json:"initial_review_days"`
}

// ItemData is the snapshot form of a review item. Pointer fields distinguish
// absent from zero during import; absent fields are backfilled with defaults.
type ItemData struct {
	ID               string   `json:"id"`
	Type             string   `json:"type"`
	Content          string   `json:"content"`
	FileName         string   `json:"file_name,omitempty"`
	Tags             []string `json:"tags,omitempty"`
	AddedDate        *int64   `json:"added_date,omitempty"`
	NextReviewDate   *int64   `json:"next_review_date,omitempty"`
	LastReviewedDate *int64   `json:"last_reviewed_date,omitempty"`
	ReviewState      string   `json:"review_state,omitempty"`
	Interval         *int     `json:"interval,omitempty"`
	EaseFactor       *float64 `json:"ease_factor,omitempty"`
	Priority         *int     `json:"priority,omitempty"`
}

// toMillis converts a time to epoch milliseconds.
func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// fromMillis converts epoch milliseconds back to a UTC time.
func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// itemToData converts a domain item to its snapshot form.
func itemToData(item *domain.ReviewItem) ItemData {
	added := toMillis(item.AddedDate)
	next := toMillis(item.NextReviewDate)
	interval := item.Interval
	ease := item.EaseFactor
	priority := item.Priority

	data := ItemData{
		ID:             item.ID.String(),
		Type:           string(item.Type),
		Content:        item.Content,
		FileName:       item.FileName,
		Tags:           item.Tags,
		AddedDate:      &added,
		NextReviewDate: &next,
		ReviewState:    string(item.ReviewState),
		Interval:       &interval,
		EaseFactor:     &ease,
		Priority:       &priority,
	}
	if !item.LastReviewedDate.IsZero() {
		last := toMillis(item.LastReviewedDate)
		data.LastReviewedDate = &last
	}
	return data
}

// settingsToData converts domain settings to their snapshot form.
func settingsToData(settings *domain.AppSettings) *SettingsData {
	return &SettingsData{
		MaxReviewsPerSession: settings.MaxReviewsPerSession,
		InitialReviewDays:    settings.InitialReviewDays,
	}
}

// validate checks the document's structural invariants. Per-item field
// validation happens during conversion; this guards only the envelope.
func (s *Snapshot) validate() error {
	if s.Version > Version {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, s.Version)
	}
	if s.ReviewItems == nil {
		return fmt.Errorf("%w: missing review items", ErrInvalidFormat)
	}
	if s.Settings == nil {
		return fmt.Errorf("%w: missing settings", ErrInvalidFormat)
	}
	return nil
}
