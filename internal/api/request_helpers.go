package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/powerdealer-api/internal/api/shared"
	"github.com/phrazzld/powerdealer-api/internal/domain"
	"github.com/phrazzld/powerdealer-api/internal/platform/logger"
)

// requireUserID extracts the authenticated user's ID placed in the context
// by the auth middleware. It writes a 401 and returns false when missing.
func requireUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		logger.FromContext(r.Context()).Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized)
		return uuid.Nil, false
	}
	return userID, true
}

// decodeAndValidate decodes the body into req and validates it. It writes
// the 400 response and returns false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := shared.DecodeJSON(w, r, req); err != nil {
		HandleAPIError(w, r, err)
		return false
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err)
		return false
	}
	return true
}

func requestLogger(r *http.Request, component string) *slog.Logger {
	return logger.FromContext(r.Context()).With(slog.String("handler", component))
}
