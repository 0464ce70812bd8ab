package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ItemType identifies the kind of content a review item carries.
// The type is fixed at creation and never mutated.
type ItemType string

// Possible item type values.
const (
	ItemTypeNote  ItemType = "note"
	ItemTypeLink  ItemType = "link"
	ItemTypeImage ItemType = "image"
	ItemTypePDF   ItemType = "pdf"
)

// ReviewState tags whether an item has ever completed a successful review.
// It replaces structural detection (interval at baseline plus an unset
// last-reviewed date) with an explicit two-state variant, so that manually
// rescheduling an item below the baseline interval cannot re-enter the
// first-review scheduling formula.
type ReviewState string

// Possible review state values.
const (
	ReviewStateNeverReviewed ReviewState = "never_reviewed"
	ReviewStateReviewed      ReviewState = "reviewed"
)

// Item-specific validation errors.
var (
	// ErrItemIDEmpty is returned when an item ID is empty or nil.
	ErrItemIDEmpty = errors.New("item ID cannot be empty")

	// ErrItemContentEmpty is returned when an item's content is empty.
	ErrItemContentEmpty = errors.New("item content cannot be empty")

	// ErrItemFileNameNotAllowed is returned when a file name is set on an
	// item type that does not carry a file.
	ErrItemFileNameNotAllowed = errors.New("file name is only valid for image and pdf items")

	// ErrInvalidInterval is returned when an interval is below one day.
	ErrInvalidInterval = errors.New("interval must be at least 1 day")

	// ErrInvalidEaseFactor is returned when an ease factor is below the 1.3 floor.
	ErrInvalidEaseFactor = errors.New("ease factor must be at least 1.3")

	// ErrNextReviewDateZero is returned when an item has no scheduled review date.
	ErrNextReviewDateZero = errors.New("next review date must be set")
)

// Defaults applied when a capture or import flow does not specify a value.
const (
	// DefaultPriority is assigned when a capture flow does not specify one.
	DefaultPriority = 3

	// DefaultInterval is the provisional interval before the first review.
	DefaultInterval = 1

	// DefaultEaseFactor is the starting ease for newly captured items.
	DefaultEaseFactor = 2.5
)

// ReviewItem is one piece of captured content under spaced review.
//
// Content semantics depend on Type (raw text, URL, or an embedded
// binary-as-text encoding); the scheduler never inspects it. A zero
// LastReviewedDate means the item has never completed a review, which the
// ReviewState tag records explicitly.
type ReviewItem struct {
	ID               uuid.UUID   `json:"id"`
	Type             ItemType    `json:"type"`
	Content          string      `json:"content"`
	FileName         string      `json:"file_name,omitempty"`
	Tags             []string    `json:"tags,omitempty"`
	AddedDate        time.Time   `json:"added_date"`
	NextReviewDate   time.Time   `json:"next_review_date"`
	LastReviewedDate time.Time   `json:"last_reviewed_date,omitempty"`
	ReviewState      ReviewState `json:"review_state"`
	Interval         int         `json:"interval"`
	EaseFactor       float64     `json:"ease_factor"`
	Priority         int         `json:"priority"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// NewReviewItem creates a new ReviewItem of the given type with a fresh UUID.
// Priority 0 is treated as unspecified and defaults to 3. The scheduling
// fields are provisional (one day out at the default ease); the caller must
// apply the scheduler's initial state before first persistence.
// Returns an error if validation fails.
func NewReviewItem(
	itemType ItemType,
	content string,
	fileName string,
	tags []string,
	priority int,
	now time.Time,
) (*ReviewItem, error) {
	if priority == 0 {
		priority = DefaultPriority
	}

	now = now.UTC()
	item := &ReviewItem{
		ID:             uuid.New(),
		Type:           itemType,
		Content:        content,
		FileName:       fileName,
		Tags:           tags,
		AddedDate:      now,
		NextReviewDate: now.AddDate(0, 0, 1),
		ReviewState:    ReviewStateNeverReviewed,
		Interval:       DefaultInterval,
		EaseFactor:     DefaultEaseFactor,
		Priority:       priority,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate checks if the ReviewItem has valid data.
// Returns an error if any field fails validation.
func (i *ReviewItem) Validate() error {
	if i.ID == uuid.Nil {
		return ErrItemIDEmpty
	}

	switch i.Type {
	case ItemTypeNote, ItemTypeLink, ItemTypeImage, ItemTypePDF:
	default:
		return ErrInvalidItemType
	}

	if i.Content == "" {
		return ErrItemContentEmpty
	}

	if i.FileName != "" && i.Type != ItemTypeImage && i.Type != ItemTypePDF {
		return ErrItemFileNameNotAllowed
	}

	switch i.ReviewState {
	case ReviewStateNeverReviewed, ReviewStateReviewed:
	default:
		return ErrInvalidReviewState
	}

	if i.Interval < 1 {
		return ErrInvalidInterval
	}

	if i.EaseFactor < 1.3 {
		return ErrInvalidEaseFactor
	}

	if i.Priority < 1 || i.Priority > 5 {
		return ErrInvalidPriority
	}

	if i.NextReviewDate.IsZero() {
		return ErrNextReviewDateZero
	}

	return nil
}

// Clone returns a deep copy of the item. Mutating operations work on copies
// so that a failed write never leaves a half-updated record in memory.
func (i *ReviewItem) Clone() *ReviewItem {
	clone := *i
	if i.Tags != nil {
		clone.Tags = append([]string(nil), i.Tags...)
	}
	return &clone
}

// IsDue reports whether the item's next review date has passed at the given
// time. Boundary equality counts as due.
func (i *ReviewItem) IsDue(now time.Time) bool {
	return !i.NextReviewDate.After(now)
}
