// Package main implements the entry point for the remindful server, which
// stores read-it-later items and schedules them for spaced re-exposure.
package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/dpshade/remindful/internal/config"
	"github.com/dpshade/remindful/internal/platform/logger"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.cleanup()

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		app.logger.Error("server exited with error", "error", err)
		app.cleanup()
		log.Fatalf("Server failed: %v", err)
	}
}

// initializeApp loads configuration, sets up logging, connects to the
// database, runs migrations, and wires the application dependencies.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, err
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	return newApplication(cfg, appLogger)
}
