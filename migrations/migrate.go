package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

// TableName is the goose version table.
const TableName = "schema_migrations"

// Commands accepted by Run.
const (
	CommandUp      = "up"
	CommandDown    = "down"
	CommandReset   = "reset"
	CommandStatus  = "status"
	CommandVersion = "version"
)

// goose keeps its dialect, base FS and logger in package state.
var gooseMu sync.Mutex

// Dialect returns the goose dialect and migration directory for a database
// driver name ("postgres" or "sqlite").
func Dialect(driver string) (dialect, dir string, err error) {
	switch driver {
	case "postgres":
		return "postgres", "postgres", nil
	case "sqlite":
		return "sqlite3", "sqlite", nil
	default:
		return "", "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Run executes a goose command against db using the embedded migrations for
// driver. A nil logger discards goose output.
func Run(ctx context.Context, db *sql.DB, driver, command string, logger goose.Logger) error {
	dialect, dir, err := Dialect(driver)
	if err != nil {
		return err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(FS)
	defer goose.SetBaseFS(nil)
	if logger == nil {
		logger = goose.NopLogger()
	}
	goose.SetLogger(logger)
	goose.SetTableName(TableName)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	switch command {
	case CommandUp:
		err = goose.UpContext(ctx, db, dir)
	case CommandDown:
		err = goose.DownContext(ctx, db, dir)
	case CommandReset:
		err = goose.ResetContext(ctx, db, dir)
	case CommandStatus:
		err = goose.StatusContext(ctx, db, dir)
	case CommandVersion:
		err = goose.VersionContext(ctx, db, dir)
	default:
		return fmt.Errorf(
			"unknown migration command: %s (expected up, down, reset, status or version)",
			command,
		)
	}
	if err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}
	return nil
}
