package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/powerdealer-api/internal/api/shared"
	"github.com/phrazzld/powerdealer-api/internal/domain"
	"github.com/phrazzld/powerdealer-api/internal/service/auth"
	"github.com/phrazzld/powerdealer-api/internal/store"
)

// Client messages for specific errors. They take precedence over the
// per-status defaults in shared.StatusMessage.
const (
	MsgInvalidCredentials  = "Invalid username or password"
	MsgBusinessNotFound    = "Business not found"
	MsgNotAuthenticated    = "Authentication credentials were not provided."
	MsgInvalidToken        = "Given token not valid for any token type"
	MsgInvalidRefreshToken = "Token is invalid or expired"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, shared.ErrMalformedBody),
		errors.Is(err, store.ErrDuplicate),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the client message for err. Errors without a
// specific message get the default message of their status code.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return shared.StatusMessage(http.StatusInternalServerError)
	case errors.Is(err, auth.ErrInvalidCredentials):
		return MsgInvalidCredentials
	case errors.Is(err, auth.ErrMissingToken), errors.Is(err, domain.ErrUnauthorized):
		return MsgNotAuthenticated
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrExpiredToken):
		return MsgInvalidToken
	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return MsgInvalidRefreshToken
	case errors.Is(err, store.ErrBusinessNotFound):
		return MsgBusinessNotFound
	default:
		return shared.StatusMessage(MapErrorToStatusCode(err))
	}
}

// FieldErrors returns the per-field messages carried by err. Malformed
// bodies and unconverted conflicts are reported under non_field_errors.
func FieldErrors(err error) map[string][]string {
	if verr, ok := domain.AsValidationError(err); ok && verr.HasErrors() {
		return verr.Fields
	}
	switch {
	case errors.Is(err, shared.ErrMalformedBody):
		return map[string][]string{domain.NonFieldErrorsKey: {"Malformed JSON request body."}}
	case errors.Is(err, store.ErrDuplicate):
		return map[string][]string{domain.NonFieldErrorsKey: {"A record with these values already exists."}}
	}
	return map[string][]string{}
}

// HandleAPIError writes the error envelope for err with its mapped status,
// safe message and field errors.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), FieldErrors(err), err)
}
