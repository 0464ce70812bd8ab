package srs

import (
	"math"
	"time"

	"github.com/dpshade/remindful/internal/domain"
)

// Schedule is the scheduler's output: the fields a scheduling operation
// writes back onto an item.
type Schedule struct {
	NextReviewDate time.Time
	Interval       int
	EaseFactor     float64
}

// resolveBaseline returns the settings baseline interval in days, falling
// back to one day when settings carry a malformed value. Malformed numeric
// input is always defaulted, never surfaced as an error.
func resolveBaseline(settings *domain.AppSettings) int {
	if settings == nil || settings.InitialReviewDays < 1 {
		return 1
	}
	return settings.InitialReviewDays
}

// resolveCurrent returns the item's effective interval, ease factor, and
// priority, substituting defaults for missing or malformed values.
func resolveCurrent(item *domain.ReviewItem, baseline int, params *Params) (int, float64, int) {
	interval := item.Interval
	if interval < 1 {
		interval = baseline
	}

	ease := item.EaseFactor
	if ease <= 0 {
		ease = params.DefaultEaseFactor
	}

	priority := item.Priority
	if priority < 1 || priority > 5 {
		priority = domain.DefaultPriority
	}

	return interval, ease, priority
}

// calculateInitialState computes the review state for a newly captured item.
// Priority does not affect the first interval: the very first review is fixed
// by the settings baseline.
func calculateInitialState(settings *domain.AppSettings, now time.Time, params *Params) Schedule {
	interval := resolveBaseline(settings)

	return Schedule{
		NextReviewDate: addDays(now, interval),
		Interval:       interval,
		EaseFactor:     params.DefaultEaseFactor,
	}
}

// calculateNextState computes the review state following a completed review
// with the given recall quality in [0,5]. Quality below 3 signals failed
// recall; 5 is a perfect recall.
func calculateNextState(
	item *domain.ReviewItem,
	settings *domain.AppSettings,
	quality float64,
	now time.Time,
	params *Params,
) Schedule {
	baseline := resolveBaseline(settings)
	currentInterval, currentEase, priority := resolveCurrent(item, baseline, params)

	priorityMultiplier := 1 + float64(priority-3)*params.PriorityStep

	var nextInterval int
	nextEase := currentEase

	if quality < 3 {
		// Failed recall: reset to the baseline interval and penalize ease.
		nextInterval = baseline
		nextEase = math.Max(params.MinEaseFactor, currentEase-params.FailedEasePenalty)
	} else {
		if item.ReviewState == domain.ReviewStateNeverReviewed {
			// First successful review: jump from the baseline rather than
			// growing the current interval.
			multiplier := params.FirstReviewMultiplier
			if quality == 5 {
				multiplier = params.FirstReviewEasyMultiplier
			}
			nextInterval = roundHalfUp(float64(baseline) * multiplier)
		} else {
			nextInterval = roundHalfUp(float64(currentInterval) * currentEase * priorityMultiplier)
		}

		// SM-2 ease adjustment.
		nextEase = currentEase + (0.1 - (5-quality)*(0.08+(5-quality)*0.02))
		nextEase = math.Max(params.MinEaseFactor, nextEase)
	}

	if nextInterval < 1 {
		nextInterval = 1
	}

	return Schedule{
		NextReviewDate: addDays(now, nextInterval),
		Interval:       nextInterval,
		EaseFactor:     roundEase(nextEase),
	}
}

// addDays returns now shifted forward by a whole number of 24-hour days,
// rounded to integer milliseconds for storage stability.
func addDays(now time.Time, days int) time.Time {
	return now.UTC().Add(time.Duration(days) * 24 * time.Hour).Round(time.Millisecond)
}

// roundHalfUp rounds to the nearest integer, halves away from zero.
func roundHalfUp(v float64) int {
	return int(math.Round(v))
}

// roundEase rounds an ease factor to two decimal places for storage stability.
func roundEase(v float64) float64 {
	return math.Round(v*100) / 100
}
