package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/phrazzld/powerdealer-api/internal/store"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var uniqueColumnPattern = regexp.MustCompile(`UNIQUE constraint failed: ([A-Za-z_]+\.[A-Za-z_]+)`)

// MapError maps a database error to the matching store error. SQLite names
// the violated column as "table.column", which is converted to the shared
// constraint name.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}

	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}

	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return store.UniqueViolation(constraintName(sqliteErr.Error()))
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return fmt.Errorf("%w: foreign key violation", store.ErrInvalidEntity)
	case sqlite3.SQLITE_CONSTRAINT_CHECK:
		return fmt.Errorf("%w: check constraint violation", store.ErrInvalidEntity)
	case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
		return fmt.Errorf("%w: not null violation", store.ErrInvalidEntity)
	}
	return err
}

// constraintName turns "UNIQUE constraint failed: users.username" into
// "users_username_key".
func constraintName(msg string) string {
	m := uniqueColumnPattern.FindStringSubmatch(msg)
	if m == nil {
		return ""
	}
	return strings.ReplaceAll(m[1], ".", "_") + "_key"
}
