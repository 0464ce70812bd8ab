// Package srs implements the spaced-repetition scheduling algorithm: a pure
// function module computing initial and subsequent review state from an item's
// history, a recall-quality signal, and the global settings.
package srs

// Params defines all configurable parameters for the scheduling algorithm.
type Params struct {
	// Core limits
	MinEaseFactor     float64
	DefaultEaseFactor float64

	// FailedEasePenalty is subtracted from the ease factor on failed recall.
	FailedEasePenalty float64

	// PriorityStep is the per-level interval growth adjustment. Priority P
	// multiplies interval growth by 1 + (P-3)*PriorityStep, so with the
	// default step P1 grows at 0.9x and P5 at 1.1x. The inversion is
	// deliberate: important items grow their interval more slowly and are
	// therefore reviewed more often.
	PriorityStep float64

	// First successful review interval multipliers, applied to the settings
	// baseline. A perfect recall gets the larger jump.
	FirstReviewMultiplier     float64
	FirstReviewEasyMultiplier float64
}

// ParamsConfig allows overriding the default parameters when creating a new
// Params instance. Zero values leave the corresponding default in place.
type ParamsConfig struct {
	MinEaseFactor             float64
	DefaultEaseFactor         float64
	FailedEasePenalty         float64
	PriorityStep              float64
	FirstReviewMultiplier     float64
	FirstReviewEasyMultiplier float64
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		MinEaseFactor:     1.3,
		DefaultEaseFactor: 2.5,
		FailedEasePenalty: 0.20,
		PriorityStep:      0.05,

		// First-review jumps: 2.5x the baseline, 4x for a perfect recall.
		FirstReviewMultiplier:     2.5,
		FirstReviewEasyMultiplier: 4.0,
	}
}

// NewParams creates a new Params instance with custom configuration.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.MinEaseFactor > 0 {
		params.MinEaseFactor = config.MinEaseFactor
	}
	if config.DefaultEaseFactor > 0 {
		params.DefaultEaseFactor = config.DefaultEaseFactor
	}
	if config.FailedEasePenalty > 0 {
		params.FailedEasePenalty = config.FailedEasePenalty
	}
	if config.PriorityStep > 0 {
		params.PriorityStep = config.PriorityStep
	}
	if config.FirstReviewMultiplier > 0 {
		params.FirstReviewMultiplier = config.FirstReviewMultiplier
	}
	if config.FirstReviewEasyMultiplier > 0 {
		params.FirstReviewEasyMultiplier = config.FirstReviewEasyMultiplier
	}

	return params
}
