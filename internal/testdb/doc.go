// Package testdb provides migrated databases for tests.
//
// OpenSQLite always works: it creates a throwaway database file under the
// test's temp directory. OpenPostgres needs a server and skips the test
// unless POWERDEALER_TEST_DATABASE_URL is set; integration tests that use it
// are guarded by the "integration" build tag.
package testdb
