// Package store defines the persistence contract for accounts and their
// businesses, the sentinel errors implementations must return, and a
// transaction helper shared by the SQL backends.
package store
