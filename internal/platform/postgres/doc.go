// Package postgres implements store.AccountStore on PostgreSQL through the
// pgx database/sql driver, and translates PostgreSQL constraint violations
// into store errors.
package postgres
