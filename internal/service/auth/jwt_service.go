package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Token types carried in the "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// ValidateToken validates an access token and returns its claims.
	// Returns ErrExpiredToken, ErrInvalidToken or ErrWrongTokenType on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)

	// ValidateRefreshToken validates a refresh token and returns its claims.
	// Returns ErrExpiredRefreshToken, ErrInvalidRefreshToken or ErrWrongTokenType on failure.
	ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error)

	// IssueTokenPair generates a signed, short-lived access token and a
	// longer-lived refresh token for userID.
	IssueTokenPair(ctx context.Context, userID uuid.UUID) (*TokenPair, error)
}

// TokenPair is the pair of tokens handed to a client after signup, login or refresh.
type TokenPair struct {
	Access          string    `json:"access"`
	Refresh         string    `json:"refresh"`
	AccessExpiresAt time.Time `json:"-"`
}

// Claims represents the validated contents of a token.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID
	// TokenType is TokenTypeAccess or TokenTypeRefresh.
	TokenType string
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}
