package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dpshade/remindful/internal/api"
	apiMiddleware "github.com/dpshade/remindful/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	itemHandler := api.NewItemHandler(app.reviewService, app.logger)
	settingsHandler := api.NewSettingsHandler(app.reviewService, app.logger)
	snapshotHandler := api.NewSnapshotHandler(app.snapshotService, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Item capture and retrieval
		r.Post("/items", itemHandler.CreateItem)
		r.Get("/items", itemHandler.ListItems)
		r.Get("/items/due", itemHandler.ListDueItems)
		r.Get("/items/{id}", itemHandler.GetItem)
		r.Delete("/items/{id}", itemHandler.DeleteItem)

		// Review actions
		r.Post("/items/{id}/postpone", itemHandler.PostponeItem)
		r.Post("/items/{id}/review", itemHandler.ReviewItem)
		r.Post("/items/{id}/schedule", itemHandler.ScheduleItem)
		r.Put("/items/{id}/priority", itemHandler.UpdatePriority)

		// Settings
		r.Get("/settings", settingsHandler.GetSettings)
		r.Put("/settings", settingsHandler.UpdateSettings)

		// Snapshot export/import
		r.Get("/snapshot", snapshotHandler.ExportSnapshot)
		r.Post("/snapshot/import", snapshotHandler.ImportSnapshot)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
