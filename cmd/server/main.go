// Package main implements the entry point for the powerdealer API server,
// which manages user accounts and the business each user owns.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/phrazzld/powerdealer-api/internal/config"
	"github.com/phrazzld/powerdealer-api/internal/platform/logger"
	"github.com/phrazzld/powerdealer-api/migrations"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"Run a database migration command (up, down, reset, status, version) and exit")
	migrateOnStart := flag.Bool("auto-migrate", false, "Apply pending migrations before serving")
	flag.Parse()

	if err := run(context.Background(), *migrateCmd, *migrateOnStart); err != nil {
		slog.Error("powerdealer-api exited with error", "error", err)
		os.Exit(1)
	}
}

// run loads configuration, connects to the database and either executes a
// migration command or serves HTTP until a shutdown signal arrives.
func run(ctx context.Context, migrateCmd string, migrateOnStart bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	log.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_driver", cfg.Database.Driver,
		"cache_enabled", cfg.Cache.RedisURL != "")

	db, err := setupAppDatabase(ctx, cfg, log)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		defer func() { _ = db.Close() }()
		return runMigrations(ctx, cfg, db, migrateCmd, log)
	}
	if migrateOnStart {
		if err := runMigrations(ctx, cfg, db, migrations.CommandUp, log); err != nil {
			_ = db.Close()
			return err
		}
	}

	app, err := newApplication(ctx, cfg, log, db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run(ctx)
}
