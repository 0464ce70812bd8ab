package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/dpshade/remindful/internal/config"
	"github.com/dpshade/remindful/internal/domain/srs"
	"github.com/dpshade/remindful/internal/platform/clock"
	"github.com/dpshade/remindful/internal/platform/postgres"
	"github.com/dpshade/remindful/internal/service/review"
	"github.com/dpshade/remindful/internal/service/snapshot"
)

// application holds the shared dependencies wired at startup.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	reviewService   review.ReviewService
	snapshotService snapshot.Service
}

// newApplication connects to the database, applies migrations, seeds the
// settings record, and wires the service graph.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := setupDatabase(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, logger); err != nil {
		closeQuietly(db, logger)
		return nil, err
	}

	clk := clock.New()
	itemStore := postgres.NewPostgresItemStore(db, logger)
	settingsStore := postgres.NewPostgresSettingsStore(db, logger)

	// Settings must exist before any scheduling computation happens.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := settingsStore.InitializeDefaults(ctx, clk.Now()); err != nil {
		closeQuietly(db, logger)
		return nil, fmt.Errorf("failed to initialize default settings: %w", err)
	}

	itemRepo := review.NewItemRepositoryAdapter(itemStore, db)
	settingsRepo := review.NewSettingsRepositoryAdapter(settingsStore)
	scheduler := srs.NewDefaultService()

	app := &application{
		config:          cfg,
		logger:          logger,
		db:              db,
		reviewService:   review.NewReviewService(itemRepo, settingsRepo, scheduler, clk, logger),
		snapshotService: snapshot.NewService(itemRepo, settingsRepo, clk, logger),
	}

	logger.Info("application initialized")
	return app, nil
}

// cleanup releases application resources. Safe to call more than once.
func (app *application) cleanup() {
	if app.db != nil {
		closeQuietly(app.db, app.logger)
		app.db = nil
	}
}

// setupDatabase establishes a connection to the database and configures the
// connection pool.
func setupDatabase(cfg *config.Config, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		closeQuietly(db, logger)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connection established")
	return db, nil
}

func closeQuietly(db *sql.DB, logger *slog.Logger) {
	if err := db.Close(); err != nil {
		logger.Error("failed to close database connection", "error", err)
	}
}
