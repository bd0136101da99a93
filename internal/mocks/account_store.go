package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/powerdealer-api/internal/domain"
	"github.com/phrazzld/powerdealer-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// AccountStore is a mock of store.AccountStore interface for use with testify/mock
type AccountStore struct {
	mock.Mock
}

var _ store.AccountStore = (*AccountStore)(nil)

// FindUserByID is a mock implementation of store.AccountStore.FindUserByID
func (m *AccountStore) FindUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// FindUserByUsername is a mock implementation of store.AccountStore.FindUserByUsername
func (m *AccountStore) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// UsernameExists is a mock implementation of store.AccountStore.UsernameExists
func (m *AccountStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

// UserEmailExists is a mock implementation of store.AccountStore.UserEmailExists
func (m *AccountStore) UserEmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// BusinessNameExists is a mock implementation of store.AccountStore.BusinessNameExists
func (m *AccountStore) BusinessNameExists(ctx context.Context, name string, exceptID uuid.UUID) (bool, error) {
	args := m.Called(ctx, name, exceptID)
	return args.Bool(0), args.Error(1)
}

// BusinessEmailExists is a mock implementation of store.AccountStore.BusinessEmailExists
func (m *AccountStore) BusinessEmailExists(ctx context.Context, email string, exceptID uuid.UUID) (bool, error) {
	args := m.Called(ctx, email, exceptID)
	return args.Bool(0), args.Error(1)
}

// FindBusinessByOwner is a mock implementation of store.AccountStore.FindBusinessByOwner
func (m *AccountStore) FindBusinessByOwner(ctx context.Context, ownerID uuid.UUID) (*domain.Business, error) {
	args := m.Called(ctx, ownerID)
	if b, ok := args.Get(0).(*domain.Business); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

// InsertUserAndBusiness is a mock implementation of store.AccountStore.InsertUserAndBusiness
func (m *AccountStore) InsertUserAndBusiness(ctx context.Context, user *domain.User, business *domain.Business) error {
	args := m.Called(ctx, user, business)
	return args.Error(0)
}

// UpdateBusiness is a mock implementation of store.AccountStore.UpdateBusiness
func (m *AccountStore) UpdateBusiness(ctx context.Context, business *domain.Business) error {
	args := m.Called(ctx, business)
	return args.Error(0)
}
