package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/powerdealer-api/internal/domain"
	"github.com/phrazzld/powerdealer-api/internal/platform/logger"
	"github.com/phrazzld/powerdealer-api/internal/store"
)

// BusinessService provides owner-only access to the caller's business.
type BusinessService interface {
	// GetBusiness returns the business owned by ownerID.
	// Returns store.ErrBusinessNotFound if there is none.
	GetBusiness(ctx context.Context, ownerID uuid.UUID) (*domain.Business, error)

	// UpdateBusiness applies patch to the business owned by ownerID and sets
	// updated_at. Invalid or conflicting values are reported as a
	// *domain.ValidationError and nothing is written.
	UpdateBusiness(ctx context.Context, ownerID uuid.UUID, patch domain.BusinessPatch) (*domain.Business, error)
}

var businessConflicts = map[error]fieldConflict{
	store.ErrBusinessNameExists:  {"name", domain.MsgBusinessTaken},
	store.ErrBusinessEmailExists: {"email", domain.MsgBusinessEmail},
}

// BusinessServiceImpl implements the BusinessService interface
type BusinessServiceImpl struct {
	accounts store.AccountStore
	logger   *slog.Logger
	now      func() time.Time
}

var _ BusinessService = (*BusinessServiceImpl)(nil)

// NewBusinessService creates a new BusinessService
func NewBusinessService(accounts store.AccountStore, logger *slog.Logger) (*BusinessServiceImpl, error) {
	if accounts == nil {
		return nil, errors.New("account store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &BusinessServiceImpl{
		accounts: accounts,
		logger:   logger.With(slog.String("component", "business_service")),
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// GetBusiness implements BusinessService.GetBusiness
func (s *BusinessServiceImpl) GetBusiness(ctx context.Context, ownerID uuid.UUID) (*domain.Business, error) {
	business, err := s.accounts.FindBusinessByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve business: %w", err)
	}
	return business, nil
}

// UpdateBusiness implements BusinessService.UpdateBusiness
func (s *BusinessServiceImpl) UpdateBusiness(
	ctx context.Context,
	ownerID uuid.UUID,
	patch domain.BusinessPatch,
) (*domain.Business, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	current, err := s.accounts.FindBusinessByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve business: %w", err)
	}

	verr := &domain.ValidationError{}
	updated, err := current.Apply(patch, s.now())
	if err != nil {
		if _, ok := domain.AsValidationError(err); !ok {
			return nil, err
		}
		mergeRenamed(verr, err, nil)
	}

	if err := s.checkAvailability(ctx, current.ID, patch); err != nil {
		if _, ok := domain.AsValidationError(err); !ok {
			return nil, err
		}
		mergeRenamed(verr, err, nil)
	}
	if verr.HasErrors() {
		log.Debug("business update rejected", slog.Any("fields", fieldNames(verr)))
		return nil, verr
	}

	if err := s.accounts.UpdateBusiness(ctx, updated); err != nil {
		if store.IsDuplicateError(err) {
			log.Debug("business update lost uniqueness race", slog.String("error", err.Error()))
			return nil, conflictAsValidation(err, businessConflicts)
		}
		log.Error("failed to update business",
			slog.String("business_id", current.ID.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update business: %w", err)
	}

	log.Info("business updated", slog.String("business_id", updated.ID.String()))
	return updated, nil
}

// checkAvailability reports a supplied name or email that another business
// already uses. Unchanged fields are not checked.
func (s *BusinessServiceImpl) checkAvailability(ctx context.Context, businessID uuid.UUID, patch domain.BusinessPatch) error {
	var checks []availabilityCheck
	if patch.Name != nil {
		checks = append(checks, availabilityCheck{"name", *patch.Name, domain.MsgBusinessTaken,
			func(ctx context.Context, v string) (bool, error) {
				return s.accounts.BusinessNameExists(ctx, v, businessID)
			}})
	}
	if patch.Email != nil {
		checks = append(checks, availabilityCheck{"email", *patch.Email, domain.MsgBusinessEmail,
			func(ctx context.Context, v string) (bool, error) {
				return s.accounts.BusinessEmailExists(ctx, v, businessID)
			}})
	}
	return runAvailabilityChecks(ctx, checks)
}
