package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/powerdealer-api/internal/config"
	"github.com/phrazzld/powerdealer-api/migrations"
)

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf forwards goose progress messages at INFO.
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf forwards goose failures at ERROR. It does not exit; the error is
// returned to main, which owns the process exit.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

// runMigrations executes a goose command with the embedded migrations for the
// configured driver.
func runMigrations(ctx context.Context, cfg *config.Config, db *sql.DB, command string, logger *slog.Logger) error {
	migrationLogger := logger.With("component", "migrations", "command", command)
	migrationLogger.Info("Executing migrations", "driver", cfg.Database.Driver)

	if err := migrations.Run(ctx, db, cfg.Database.Driver, command, &slogGooseLogger{logger: migrationLogger}); err != nil {
		return err
	}

	migrationLogger.Info("Migrations completed")
	return nil
}
