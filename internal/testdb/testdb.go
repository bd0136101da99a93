package testdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/powerdealer-api/internal/platform/sqlite"
	"github.com/phrazzld/powerdealer-api/migrations"
	"github.com/stretchr/testify/require"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 5 * time.Second

// PostgresURLEnv names the variable holding the integration database URL.
const PostgresURLEnv = "POWERDEALER_TEST_DATABASE_URL"

// OpenSQLite returns a migrated SQLite database that is closed when the test ends.
func OpenSQLite(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "Failed to open sqlite database")
	t.Cleanup(func() { _ = db.Close() })

	migrate(t, db, "sqlite")
	return db
}

// OpenPostgres returns a migrated PostgreSQL database and empties its tables
// when the test ends. The test is skipped when no database is configured.
func OpenPostgres(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := os.Getenv(PostgresURLEnv)
	if dbURL == "" {
		t.Skipf("%s not set; skipping PostgreSQL test", PostgresURLEnv)
	}

	db, err := sql.Open("pgx", dbURL)
	require.NoError(t, err, "Failed to open postgres database")

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "Failed to ping postgres database")

	migrate(t, db, "postgres")
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
		defer cancel()
		if _, err := db.ExecContext(ctx, "TRUNCATE businesses, users CASCADE"); err != nil {
			t.Logf("Warning: failed to truncate tables: %v", err)
		}
		_ = db.Close()
	})
	return db
}

func migrate(t *testing.T, db *sql.DB, driver string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	err := migrations.Run(ctx, db, driver, migrations.CommandUp, &testGooseLogger{t: t})
	require.NoError(t, err, "Failed to run migrations")
}

// testGooseLogger implements a minimal logger interface for goose
type testGooseLogger struct {
	t *testing.T
}

// Printf implements the required logging method for goose's SetLogger
func (l *testGooseLogger) Printf(format string, v ...interface{}) {
	l.t.Log("Goose: " + strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Fatalf implements the required logging method for goose's SetLogger
func (l *testGooseLogger) Fatalf(format string, v ...interface{}) {
	l.t.Fatal("Goose fatal error: " + strings.TrimSpace(fmt.Sprintf(format, v...)))
}
