package api

import (
	"github.com/phrazzld/powerdealer-api/internal/domain"
	"github.com/phrazzld/powerdealer-api/internal/service"
	"github.com/phrazzld/powerdealer-api/internal/service/auth"
)

// SignupRequest defines the request payload for the signup endpoint.
type SignupRequest struct {
	Username      string `json:"username"       validate:"required,max=150"`
	Email         string `json:"email"          validate:"required,email"`
	Password      string `json:"password"       validate:"required,min=6,max=72"`
	BusinessName  string `json:"business_name"  validate:"required,max=255"`
	BusinessEmail string `json:"business_email" validate:"required,email"`
	BusinessPhone string `json:"business_phone" validate:"omitempty,max=20"`
	Description   string `json:"description"`
}

func (r SignupRequest) toInput() service.SignupInput {
	return service.SignupInput{
		Username:      r.Username,
		Email:         r.Email,
		Password:      r.Password,
		BusinessName:  r.BusinessName,
		BusinessEmail: r.BusinessEmail,
		BusinessPhone: r.BusinessPhone,
		Description:   r.Description,
	}
}

// LoginRequest defines the request payload for the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest defines the request payload for the refresh endpoint.
type RefreshTokenRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// UpdateBusinessRequest is a partial update. Absent fields are left as they
// are; read-only fields such as id, owner and timestamps are not decoded.
type UpdateBusinessRequest struct {
	Name        *string `json:"name"        validate:"omitempty,max=255"`
	Description *string `json:"description"`
	Email       *string `json:"email"       validate:"omitempty,email"`
	Phone       *string `json:"phone"       validate:"omitempty,max=20"`
	Address     *string `json:"address"`
}

func (r UpdateBusinessRequest) toPatch() domain.BusinessPatch {
	return domain.BusinessPatch{
		Name:        r.Name,
		Description: r.Description,
		Email:       r.Email,
		Phone:       r.Phone,
		Address:     r.Address,
	}
}

// SessionResponse is the payload of signup, login and me.
type SessionResponse struct {
	User     domain.UserSummary `json:"user"`
	Business *domain.Business   `json:"business"`
	Tokens   *auth.TokenPair    `json:"tokens,omitempty"`
}

func newSessionResponse(s *service.Session) SessionResponse {
	return SessionResponse{
		User:     s.User.Summary(),
		Business: s.Business,
		Tokens:   s.Tokens,
	}
}
