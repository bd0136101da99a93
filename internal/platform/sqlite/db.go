package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

const defaultPragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// Open opens the SQLite database at dsn with foreign keys enforced. A
// "sqlite://" prefix is accepted and stripped. The pool is limited to a
// single connection because SQLite serializes writers.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, DSN(dsn))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	return db, nil
}

// DSN normalizes a path or URL into a modernc DSN with the default pragmas.
func DSN(dsn string) string {
	dsn = strings.TrimPrefix(dsn, "sqlite://")
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&" + defaultPragmas
	}
	return dsn + "?" + defaultPragmas
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// timestamp scans a DATETIME column that the driver may return either as a
// time.Time or as text.
type timestamp struct {
	t *time.Time
}

func (ts timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*ts.t = v.UTC()
		return nil
	case string:
		return ts.parse(v)
	case []byte:
		return ts.parse(string(v))
	default:
		return fmt.Errorf("cannot scan %T into timestamp", src)
	}
}

func (ts timestamp) parse(s string) error {
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			*ts.t = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

// formatTime renders t the way timestamps are written to the database.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
