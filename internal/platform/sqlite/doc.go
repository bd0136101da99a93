// Package sqlite implements store.AccountStore on SQLite using the pure-Go
// modernc.org/sqlite driver. It is intended for local development and tests;
// the schema mirrors the PostgreSQL one, including constraint names.
package sqlite
