package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"

	"github.com/dpshade/remindful/migrations"
)

// runMigrations applies the embedded goose migrations to the database.
// Every log line carries a correlation ID so a single migration run can be
// traced end to end.
func runMigrations(db *sql.DB, logger *slog.Logger) error {
	correlationID := uuid.New().String()
	migrationLogger := logger.With(
		"correlation_id", correlationID,
		"component", "migrations",
	)

	startTime := time.Now()
	migrationLogger.Info("Starting migration operation", "operation", "goose up")

	goose.SetLogger(&slogGooseLogger{logger: migrationLogger})
	goose.SetBaseFS(migrations.FS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		migrationLogger.Error("Migration failed",
			"error", err,
			"duration_ms", time.Since(startTime).Milliseconds())
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	migrationLogger.Info("Migrations applied",
		"duration_ms", time.Since(startTime).Milliseconds())
	return nil
}

// slogGooseLogger adapts goose's logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}
