package api

import (
	"log/slog"
	"net/http"

	"github.com/dpshade/remindful/internal/api/shared"
	"github.com/dpshade/remindful/internal/platform/logger"
	"github.com/dpshade/remindful/internal/service/review"
)

// SettingsHandler handles settings-related HTTP requests
type SettingsHandler struct {
	reviewService review.ReviewService
	logger        *slog.Logger
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(reviewService review.ReviewService, logger *slog.Logger) *SettingsHandler {
	if reviewService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("reviewService cannot be nil for SettingsHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SettingsHandler")
	}

	return &SettingsHandler{
		reviewService: reviewService,
		logger:        logger.With(slog.String("component", "settings_handler")),
	}
}

// GetSettings handles GET /settings requests.
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.reviewService.GetSettings(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), "Failed to get settings", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, settingsToResponse(settings))
}

// UpdateSettings handles PUT /settings requests.
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req UpdateSettingsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request body", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		log.Warn("request validation failed", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Settings values must be at least 1")
		return
	}

	settings, err := h.reviewService.UpdateSettings(
		r.Context(),
		req.MaxReviewsPerSession,
		req.InitialReviewDays,
	)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), "Failed to update settings", err)
		return
	}

	log.Debug("settings updated",
		slog.Int("max_reviews_per_session", settings.MaxReviewsPerSession),
		slog.Int("initial_review_days", settings.InitialReviewDays))
	shared.RespondWithJSON(w, r, http.StatusOK, settingsToResponse(settings))
}
