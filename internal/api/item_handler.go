// Package api provides HTTP handlers for the API.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dpshade/remindful/internal/api/shared"
	"github.com/dpshade/remindful/internal/domain"
	"github.com/dpshade/remindful/internal/platform/logger"
	"github.com/dpshade/remindful/internal/service/review"
)

// ItemHandler handles item-related HTTP requests
type ItemHandler struct {
	reviewService review.ReviewService
	logger        *slog.Logger
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(reviewService review.ReviewService, logger *slog.Logger) *ItemHandler {
	if reviewService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("reviewService cannot be nil for ItemHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ItemHandler")
	}

	return &ItemHandler{
		reviewService: reviewService,
		logger:        logger.With(slog.String("component", "item_handler")),
	}
}

// CreateItem handles POST /items requests.
// It captures a new piece of content and schedules its first review.
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateItemRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request body", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		log.Warn("request validation failed", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid item data")
		return
	}

	item, err := h.reviewService.CreateItem(r.Context(), review.CreateItemRequest{
		Type:     domain.ItemType(req.Type),
		Content:  req.Content,
		FileName: req.FileName,
		Tags:     req.Tags,
		Priority: req.Priority,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("item created",
		slog.String("item_id", item.ID.String()),
		slog.String("type", string(item.Type)))
	shared.RespondWithJSON(w, r, http.StatusCreated, itemToResponse(item))
}

// ListItems handles GET /items requests.
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.reviewService.ListItems(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), "Failed to list items", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, itemsToResponse(items))
}

// ListDueItems handles GET /items/due requests.
// It returns the items whose next review date has passed, soonest first.
func (h *ItemHandler) ListDueItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.reviewService.ListDueItems(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), "Failed to list due items", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, itemsToResponse(items))
}

// GetItem handles GET /items/{id} requests.
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemIDFromPath(w, r)
	if !ok {
		return
	}

	item, err := h.reviewService.GetItem(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, itemToResponse(item))
}

// DeleteItem handles DELETE /items/{id} requests.
// Deletion is idempotent: deleting an absent item also returns 204.
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemIDFromPath(w, r)
	if !ok {
		return
	}

	if err := h.reviewService.DeleteItem(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), "Failed to delete item", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// PostponeItem handles POST /items/{id}/postpone requests.
// The next review moves one day out; interval and ease are untouched.
func (h *ItemHandler) PostponeItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemIDFromPath(w, r)
	if !ok {
		return
	}

	item, err := h.reviewService.Postpone(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, itemToResponse(item))
}

// ReviewItem handles POST /items/{id}/review requests.
// It completes a review with the submitted recall quality and applies the
// scheduler's next state.
func (h *ItemHandler) ReviewItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := h.itemIDFromPath(w, r)
	if !ok {
		return
	}

	var req ReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request body", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		log.Warn("request validation failed", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Quality must be between 0 and 5")
		return
	}

	item, err := h.reviewService.MarkRead(r.Context(), id, *req.Quality)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("review recorded",
		slog.String("item_id", id.String()),
		slog.Float64("quality", *req.Quality),
		slog.Time("next_review_date", item.NextReviewDate))
	shared.RespondWithJSON(w, r, http.StatusOK, itemToResponse(item))
}

// ScheduleItem handles POST /items/{id}/schedule requests.
// It sets the next review date directly, bypassing the scheduling algorithm.
func (h *ItemHandler) ScheduleItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := h.itemIDFromPath(w, r)
	if !ok {
		return
	}

	var req ScheduleRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request body", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		log.Warn("request validation failed", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "A positive timestamp is required")
		return
	}

	item, err := h.reviewService.ScheduleForDate(r.Context(), id, time.UnixMilli(req.Timestamp))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, itemToResponse(item))
}

// UpdatePriority handles PUT /items/{id}/priority requests.
func (h *ItemHandler) UpdatePriority(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := h.itemIDFromPath(w, r)
	if !ok {
		return
	}

	var req PriorityRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request body", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		log.Warn("request validation failed", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Priority must be between 1 and 5")
		return
	}

	item, err := h.reviewService.UpdatePriority(r.Context(), id, req.Priority)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, itemToResponse(item))
}

// itemIDFromPath extracts and parses the item ID from the URL path, writing
// the error response itself when the ID is missing or malformed.
func (h *ItemHandler) itemIDFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	pathID := chi.URLParam(r, "id")
	if pathID == "" {
		log.Warn("item ID not found in URL path")
		shared.RespondWithError(w, r, http.StatusBadRequest, "Item ID is required")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(pathID)
	if err != nil {
		log.Warn("invalid item ID format", slog.String("item_id", pathID))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid item ID format")
		return uuid.Nil, false
	}

	return id, true
}
