package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for PostgreSQL
	"github.com/phrazzld/powerdealer-api/internal/config"
	"github.com/phrazzld/powerdealer-api/internal/platform/sqlite"
)

// setupAppDatabase opens the configured database, applies pool settings and
// verifies the connection.
func setupAppDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sql.DB, error) {
	var (
		db  *sql.DB
		err error
	)

	switch cfg.Database.Driver {
	case config.DriverSQLite:
		db, err = sqlite.Open(cfg.Database.URL)
	case config.DriverPostgres:
		db, err = sql.Open("pgx", cfg.Database.URL)
		if err == nil {
			db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
			db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
			db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetimeMinutes) * time.Minute)
		}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connection established", "driver", cfg.Database.Driver)
	return db, nil
}
