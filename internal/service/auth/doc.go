// Package auth issues and validates the signed tokens that carry a user's
// identity between requests, and hashes and verifies passwords.
package auth
