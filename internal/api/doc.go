// Package api implements the HTTP handlers for the account and business
// endpoints. Handlers decode and validate requests, read the authenticated
// user ID placed in the context by middleware.AuthMiddleware, call the
// service layer and write the standard success or error envelope.
package api
