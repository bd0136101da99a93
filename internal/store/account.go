package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/powerdealer-api/internal/domain"
)

// AccountStore defines persistence for users and the business each one owns.
// Implementations must enforce uniqueness of username, user email, business
// name, business email and business owner at the storage layer.
type AccountStore interface {
	// FindUserByID retrieves a user by ID.
	// Returns ErrUserNotFound if the user does not exist.
	FindUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// FindUserByUsername retrieves a user by exact username.
	// Returns ErrUserNotFound if the user does not exist.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// UsernameExists reports whether a user with the username exists.
	UsernameExists(ctx context.Context, username string) (bool, error)

	// UserEmailExists reports whether a user with the email exists.
	UserEmailExists(ctx context.Context, email string) (bool, error)

	// BusinessNameExists reports whether a business other than exceptID has
	// the name. uuid.Nil excludes nothing.
	BusinessNameExists(ctx context.Context, name string, exceptID uuid.UUID) (bool, error)

	// BusinessEmailExists reports whether a business other than exceptID has
	// the email. uuid.Nil excludes nothing.
	BusinessEmailExists(ctx context.Context, email string, exceptID uuid.UUID) (bool, error)

	// FindBusinessByOwner retrieves the business owned by ownerID, with its
	// Owner summary populated.
	// Returns ErrBusinessNotFound if the user owns no business.
	FindBusinessByOwner(ctx context.Context, ownerID uuid.UUID) (*domain.Business, error)

	// InsertUserAndBusiness stores a new user and its business in a single
	// transaction. Either both rows are written or neither is.
	// Returns ErrUsernameExists, ErrUserEmailExists, ErrBusinessNameExists or
	// ErrBusinessEmailExists when a unique constraint is violated.
	InsertUserAndBusiness(ctx context.Context, user *domain.User, business *domain.Business) error

	// UpdateBusiness writes the mutable fields and updated_at of an existing business.
	// Returns ErrBusinessNotFound if no row matches, or ErrBusinessNameExists /
	// ErrBusinessEmailExists on a uniqueness conflict.
	UpdateBusiness(ctx context.Context, business *domain.Business) error
}
