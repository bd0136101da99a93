package api_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/powerdealer-api/internal/api"
	"github.com/phrazzld/powerdealer-api/internal/api/shared"
	"github.com/phrazzld/powerdealer-api/internal/domain"
	"github.com/phrazzld/powerdealer-api/internal/service/auth"
	"github.com/phrazzld/powerdealer-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", domain.NewValidationError("name", "bad"), http.StatusBadRequest},
		{"malformed body", fmt.Errorf("%w: eof", shared.ErrMalformedBody), http.StatusBadRequest},
		{"duplicate", store.ErrBusinessNameExists, http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"wrong token type", fmt.Errorf("validate: %w", auth.ErrWrongTokenType), http.StatusUnauthorized},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"business not found", store.ErrBusinessNotFound, http.StatusNotFound},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, api.MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "Something went wrong. Please try again later."},
		{"invalid credentials", auth.ErrInvalidCredentials, api.MsgInvalidCredentials},
		{"missing token", auth.ErrMissingToken, api.MsgNotAuthenticated},
		{"expired access token", auth.ErrExpiredToken, api.MsgInvalidToken},
		{"expired refresh token", auth.ErrExpiredRefreshToken, api.MsgInvalidRefreshToken},
		{"business not found", fmt.Errorf("get: %w", store.ErrBusinessNotFound), api.MsgBusinessNotFound},
		{"generic not found", store.ErrUserNotFound, "The requested resource was not found."},
		{"validation", domain.NewValidationError("x", "y"), "Please check your input."},
		{"internal", errors.New("pq: password authentication failed for user admin"),
			"Something went wrong. Please try again later."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, api.GetSafeErrorMessage(tc.err))
		})
	}
}

func TestFieldErrors(t *testing.T) {
	verr := domain.NewValidationError("username", domain.MsgUsernameTaken)
	assert.Equal(t, map[string][]string{"username": {domain.MsgUsernameTaken}}, api.FieldErrors(verr))

	assert.Contains(t, api.FieldErrors(shared.ErrMalformedBody), domain.NonFieldErrorsKey)
	assert.Contains(t, api.FieldErrors(store.ErrDuplicate), domain.NonFieldErrorsKey)
	assert.Empty(t, api.FieldErrors(errors.New("boom")))
}

func TestHandleAPIError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/business", nil)
	req = req.WithContext(shared.SetTraceID(req.Context()))

	api.HandleAPIError(rec, req, errors.New("dial tcp 10.1.2.3:5432: connection refused"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotContains(t, rec.Body.String(), "10.1.2.3")
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.NotNil(t, env.Errors)
}
