package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/powerdealer-api/internal/api/shared"
	"github.com/phrazzld/powerdealer-api/internal/domain"
	"github.com/phrazzld/powerdealer-api/internal/service"
	"github.com/phrazzld/powerdealer-api/internal/store"
)

// MsgLoginBusinessNotFound is returned by login for a user with no business.
const MsgLoginBusinessNotFound = "Business not found for this user"

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	accounts service.AccountService
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(accounts service.AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// Signup handles POST /auth/signup. Format errors and taken unique fields
// are reported together.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		verr, _ := domain.AsValidationError(err)
		if availErr := h.accounts.CheckAvailability(r.Context(), req.toInput()); availErr != nil {
			taken, ok := domain.AsValidationError(availErr)
			if !ok {
				HandleAPIError(w, r, availErr)
				return
			}
			verr.Merge(taken)
		}
		HandleAPIError(w, r, verr)
		return
	}

	session, err := h.accounts.Signup(r.Context(), req.toInput())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	requestLogger(r, "auth").Info("signup succeeded", slog.String("user_id", session.User.ID.String()))
	shared.RespondSuccess(w, r, http.StatusCreated, "Signup successful", newSessionResponse(session))
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	session, err := h.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrBusinessNotFound) {
			shared.RespondWithErrorAndLog(w, r, http.StatusNotFound, MsgLoginBusinessNotFound, nil, err)
			return
		}
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, "Login successful", newSessionResponse(session))
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	session, err := h.accounts.Me(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, "User profile", newSessionResponse(session))
}

// RefreshToken handles POST /auth/refresh.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	tokens, err := h.accounts.Refresh(r.Context(), req.Refresh)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, "Token refreshed", tokens)
}
