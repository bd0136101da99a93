package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/powerdealer-api/internal/api/middleware"
	"github.com/phrazzld/powerdealer-api/internal/config"
	"github.com/phrazzld/powerdealer-api/internal/platform/postgres"
	"github.com/phrazzld/powerdealer-api/internal/platform/redis"
	"github.com/phrazzld/powerdealer-api/internal/platform/sqlite"
	"github.com/phrazzld/powerdealer-api/internal/service"
	"github.com/phrazzld/powerdealer-api/internal/service/auth"
	"github.com/phrazzld/powerdealer-api/internal/store"
	goredis "github.com/redis/go-redis/v9"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config

	logger *slog.Logger
	db     *sql.DB
	cache  *goredis.Client

	accountStore store.AccountStore

	jwtService      auth.JWTService
	accountService  service.AccountService
	businessService service.BusinessService

	metrics *middleware.Metrics
}

// newApplication creates a new application instance with all dependencies initialized.
// The database connection must already be established.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config:  cfg,
		logger:  logger,
		db:      db,
		metrics: middleware.NewMetrics(),
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes,
		"refresh_token_lifetime_minutes", cfg.Auth.RefreshTokenLifetimeMinutes)

	app.accountStore, err = newAccountStore(cfg.Database.Driver, db, logger)
	if err != nil {
		return nil, err
	}

	if cfg.Cache.RedisURL != "" {
		app.cache, err = redis.NewClient(ctx, cfg.Cache.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
		app.accountStore = redis.NewCachedAccountStore(app.accountStore, app.cache, ttl, logger)
		logger.Info("Business cache enabled", "ttl", ttl)
	}

	app.accountService, err = service.NewAccountService(
		app.accountStore,
		auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		app.jwtService,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create account service: %w", err)
	}

	app.businessService, err = service.NewBusinessService(app.accountStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create business service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// newAccountStore returns the AccountStore implementation for driver.
func newAccountStore(driver string, db *sql.DB, logger *slog.Logger) (store.AccountStore, error) {
	switch driver {
	case config.DriverPostgres:
		return postgres.NewPostgresAccountStore(db, logger), nil
	case config.DriverSQLite:
		return sqlite.NewAccountStore(db, logger), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.cache != nil {
		if err := app.cache.Close(); err != nil {
			app.logger.Error("Error closing redis connection", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
