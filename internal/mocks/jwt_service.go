package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/powerdealer-api/internal/service/auth"
)

// MockJWTService implements auth.JWTService for testing
type MockJWTService struct {
	// ValidateTokenFn allows test cases to mock the ValidateToken behavior
	ValidateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	// ValidateRefreshTokenFn allows test cases to mock the ValidateRefreshToken behavior
	ValidateRefreshTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	// IssueTokenPairFn allows test cases to mock the IssueTokenPair behavior
	IssueTokenPairFn func(ctx context.Context, userID uuid.UUID) (*auth.TokenPair, error)

	// Default values used when functions aren't explicitly defined
	Token        string
	RefreshToken string
	Err          error
	ValidateErr  error
	Claims       *auth.Claims
}

var _ auth.JWTService = (*MockJWTService)(nil)

// ValidateToken implements the auth.JWTService interface
func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	return m.Claims, m.ValidateErr
}

// ValidateRefreshToken implements the auth.JWTService interface
func (m *MockJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateRefreshTokenFn != nil {
		return m.ValidateRefreshTokenFn(ctx, tokenString)
	}
	return m.Claims, m.ValidateErr
}

// IssueTokenPair implements the auth.JWTService interface
func (m *MockJWTService) IssueTokenPair(ctx context.Context, userID uuid.UUID) (*auth.TokenPair, error) {
	if m.IssueTokenPairFn != nil {
		return m.IssueTokenPairFn(ctx, userID)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return &auth.TokenPair{Access: m.Token, Refresh: m.RefreshToken}, nil
}
