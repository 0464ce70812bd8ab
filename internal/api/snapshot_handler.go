package api

import (
	"log/slog"
	"net/http"

	"github.com/dpshade/remindful/internal/api/shared"
	"github.com/dpshade/remindful/internal/platform/logger"
	"github.com/dpshade/remindful/internal/service/snapshot"
)

// SnapshotHandler handles snapshot export and import HTTP requests
type SnapshotHandler struct {
	snapshotService snapshot.Service
	logger          *slog.Logger
}

// NewSnapshotHandler creates a new SnapshotHandler
func NewSnapshotHandler(snapshotService snapshot.Service, logger *slog.Logger) *SnapshotHandler {
	if snapshotService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("snapshotService cannot be nil for SnapshotHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SnapshotHandler")
	}

	return &SnapshotHandler{
		snapshotService: snapshotService,
		logger:          logger.With(slog.String("component", "snapshot_handler")),
	}
}

// ExportSnapshot handles GET /snapshot requests.
// The response body is the portable snapshot document itself.
func (h *SnapshotHandler) ExportSnapshot(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	snap, err := h.snapshotService.Export(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), "Failed to export snapshot", err)
		return
	}

	log.Debug("snapshot exported", slog.Int("item_count", len(snap.ReviewItems)))
	shared.RespondWithJSON(w, r, http.StatusOK, snap)
}

// ImportSnapshot handles POST /snapshot/import requests.
// The request body is a snapshot document; a malformed one is rejected
// wholesale before any write.
func (h *SnapshotHandler) ImportSnapshot(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var snap snapshot.Snapshot
	if err := shared.DecodeJSON(r, &snap); err != nil {
		log.Warn("invalid request body", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := h.snapshotService.Import(r.Context(), &snap)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Info("snapshot imported", slog.Int("item_count", result.ItemsImported))
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}
