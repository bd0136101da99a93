package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/powerdealer-api/internal/domain"
	"github.com/phrazzld/powerdealer-api/internal/service"
	"github.com/phrazzld/powerdealer-api/internal/service/auth"
)

// MockAccountService implements service.AccountService for handler tests.
// Unset functions return zero values.
type MockAccountService struct {
	SignupFn       func(ctx context.Context, in service.SignupInput) (*service.Session, error)
	CheckFn        func(ctx context.Context, in service.SignupInput) error
	AuthenticateFn func(ctx context.Context, username, password string) (*domain.User, error)
	LoginFn        func(ctx context.Context, username, password string) (*service.Session, error)
	MeFn           func(ctx context.Context, userID uuid.UUID) (*service.Session, error)
	RefreshFn      func(ctx context.Context, refreshToken string) (*auth.TokenPair, error)
}

var _ service.AccountService = (*MockAccountService)(nil)

// Signup implements service.AccountService
func (m *MockAccountService) Signup(ctx context.Context, in service.SignupInput) (*service.Session, error) {
	if m.SignupFn != nil {
		return m.SignupFn(ctx, in)
	}
	return nil, nil
}

// CheckAvailability implements service.AccountService
func (m *MockAccountService) CheckAvailability(ctx context.Context, in service.SignupInput) error {
	if m.CheckFn != nil {
		return m.CheckFn(ctx, in)
	}
	return nil
}

// Authenticate implements service.AccountService
func (m *MockAccountService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	if m.AuthenticateFn != nil {
		return m.AuthenticateFn(ctx, username, password)
	}
	return nil, nil
}

// Login implements service.AccountService
func (m *MockAccountService) Login(ctx context.Context, username, password string) (*service.Session, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, username, password)
	}
	return nil, nil
}

// Me implements service.AccountService
func (m *MockAccountService) Me(ctx context.Context, userID uuid.UUID) (*service.Session, error) {
	if m.MeFn != nil {
		return m.MeFn(ctx, userID)
	}
	return nil, nil
}

// Refresh implements service.AccountService
func (m *MockAccountService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	if m.RefreshFn != nil {
		return m.RefreshFn(ctx, refreshToken)
	}
	return nil, nil
}

// MockBusinessService implements service.BusinessService for handler tests.
type MockBusinessService struct {
	GetBusinessFn    func(ctx context.Context, ownerID uuid.UUID) (*domain.Business, error)
	UpdateBusinessFn func(ctx context.Context, ownerID uuid.UUID, patch domain.BusinessPatch) (*domain.Business, error)

	// LastPatch records the patch passed to UpdateBusiness.
	LastPatch *domain.BusinessPatch
}

var _ service.BusinessService = (*MockBusinessService)(nil)

// GetBusiness implements service.BusinessService
func (m *MockBusinessService) GetBusiness(ctx context.Context, ownerID uuid.UUID) (*domain.Business, error) {
	if m.GetBusinessFn != nil {
		return m.GetBusinessFn(ctx, ownerID)
	}
	return nil, nil
}

// UpdateBusiness implements service.BusinessService
func (m *MockBusinessService) UpdateBusiness(
	ctx context.Context,
	ownerID uuid.UUID,
	patch domain.BusinessPatch,
) (*domain.Business, error) {
	m.LastPatch = &patch
	if m.UpdateBusinessFn != nil {
		return m.UpdateBusinessFn(ctx, ownerID, patch)
	}
	return nil, nil
}
