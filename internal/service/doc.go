// Package service contains the application use cases: account signup, login,
// token refresh and the owner-only business profile operations. It
// orchestrates domain objects, the account store and the auth package, and
// translates storage conflicts into field-level validation errors.
//
// Services never read identity from the context: callers pass the
// authenticated user ID explicitly.
package service
