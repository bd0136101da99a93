package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/powerdealer-api/internal/domain"
	"github.com/phrazzld/powerdealer-api/internal/platform/logger"
	"github.com/phrazzld/powerdealer-api/internal/service/auth"
	"github.com/phrazzld/powerdealer-api/internal/store"
)

// SignupInput holds the fields of a signup request.
type SignupInput struct {
	Username      string
	Email         string
	Password      string
	BusinessName  string
	BusinessEmail string
	BusinessPhone string
	Description   string
}

// Session is the result of signup, login and me. Business is nil when the
// user owns none; Tokens is nil for me.
type Session struct {
	User     *domain.User
	Business *domain.Business
	Tokens   *auth.TokenPair
}

// AccountService provides account operations: signup, login, the current
// user's profile and token refresh.
type AccountService interface {
	// Signup creates a user and its business in one transaction and issues a
	// token pair. All field problems, including taken usernames and business
	// names, are reported together as a *domain.ValidationError.
	Signup(ctx context.Context, in SignupInput) (*Session, error)

	// CheckAvailability reports every taken username, user email, business
	// name and business email in one *domain.ValidationError keyed by the
	// signup field names. Blank values are not checked.
	CheckAvailability(ctx context.Context, in SignupInput) error

	// Authenticate verifies a username and password.
	// Returns auth.ErrInvalidCredentials for an unknown user or a wrong password.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)

	// Login authenticates the user and issues a token pair.
	// Returns store.ErrBusinessNotFound if the user owns no business.
	Login(ctx context.Context, username, password string) (*Session, error)

	// Me returns the user and, if any, their business.
	Me(ctx context.Context, userID uuid.UUID) (*Session, error)

	// Refresh exchanges a valid refresh token for a new token pair.
	Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error)
}

// signupFieldNames maps business entity fields to signup input fields.
var signupFieldNames = map[string]string{
	"name":  "business_name",
	"email": "business_email",
	"phone": "business_phone",
}

var signupConflicts = map[error]fieldConflict{
	store.ErrUsernameExists:      {"username", domain.MsgUsernameTaken},
	store.ErrUserEmailExists:     {"email", domain.MsgUserEmailTaken},
	store.ErrBusinessNameExists:  {"business_name", domain.MsgBusinessTaken},
	store.ErrBusinessEmailExists: {"business_email", domain.MsgBusinessEmail},
}

// fallbackDummyHash is a well-formed bcrypt hash compared against when the
// per-process dummy hash cannot be generated, so unknown usernames still cost
// a full bcrypt comparison.
const fallbackDummyHash = "$2a$10$dXJ3SW6G7P50lGmMkkmwe.20cQQubK3.HZWzG3YB1tlRy.fqvM/BG"

// pendingHash stands in for the password hash while the rest of the input is
// validated, so bcrypt only runs for requests that can succeed.
const pendingHash = "!"

// AccountServiceImpl implements the AccountService interface
type AccountServiceImpl struct {
	accounts   store.AccountStore
	hasher     auth.PasswordHasher
	jwtService auth.JWTService
	logger     *slog.Logger

	dummyOnce sync.Once
	dummyHash string
}

var _ AccountService = (*AccountServiceImpl)(nil)

// NewAccountService creates a new AccountService
func NewAccountService(
	accounts store.AccountStore,
	hasher auth.PasswordHasher,
	jwtService auth.JWTService,
	logger *slog.Logger,
) (*AccountServiceImpl, error) {
	if accounts == nil {
		return nil, errors.New("account store cannot be nil")
	}
	if hasher == nil {
		return nil, errors.New("password hasher cannot be nil")
	}
	if jwtService == nil {
		return nil, errors.New("jwt service cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &AccountServiceImpl{
		accounts:   accounts,
		hasher:     hasher,
		jwtService: jwtService,
		logger:     logger.With(slog.String("component", "account_service")),
	}, nil
}

// Signup implements AccountService.Signup
func (s *AccountServiceImpl) Signup(ctx context.Context, in SignupInput) (*Session, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	verr := &domain.ValidationError{}

	user, err := domain.NewUser(in.Username, in.Email, pendingHash)
	mergeRenamed(verr, err, nil)
	owner := user
	if owner == nil {
		// Placeholder owner so business fields are still validated.
		owner = &domain.User{ID: uuid.New()}
	}

	business, err := domain.NewBusiness(owner, in.BusinessName, in.BusinessEmail, in.BusinessPhone, in.Description)
	mergeRenamed(verr, err, signupFieldNames)

	validatePassword(verr, in.Password)

	if err := s.CheckAvailability(ctx, in); err != nil {
		if _, ok := domain.AsValidationError(err); !ok {
			return nil, err
		}
		mergeRenamed(verr, err, nil)
	}
	if verr.HasErrors() {
		log.Debug("signup rejected", slog.Any("fields", fieldNames(verr)))
		return nil, verr
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hash

	if err := s.accounts.InsertUserAndBusiness(ctx, user, business); err != nil {
		if store.IsDuplicateError(err) {
			log.Debug("signup lost uniqueness race", slog.String("error", err.Error()))
			return nil, conflictAsValidation(err, signupConflicts)
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	tokens, err := s.jwtService.IssueTokenPair(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	log.Info("account created",
		slog.String("user_id", user.ID.String()),
		slog.String("business_id", business.ID.String()))

	return &Session{User: user, Business: business, Tokens: tokens}, nil
}

// CheckAvailability implements AccountService.CheckAvailability
func (s *AccountServiceImpl) CheckAvailability(ctx context.Context, in SignupInput) error {
	checks := []availabilityCheck{
		{"username", in.Username, domain.MsgUsernameTaken, s.accounts.UsernameExists},
		{"email", in.Email, domain.MsgUserEmailTaken, s.accounts.UserEmailExists},
		{"business_name", in.BusinessName, domain.MsgBusinessTaken, func(ctx context.Context, v string) (bool, error) {
			return s.accounts.BusinessNameExists(ctx, v, uuid.Nil)
		}},
		{"business_email", in.BusinessEmail, domain.MsgBusinessEmail, func(ctx context.Context, v string) (bool, error) {
			return s.accounts.BusinessEmailExists(ctx, v, uuid.Nil)
		}},
	}
	return runAvailabilityChecks(ctx, checks)
}

func validatePassword(verr *domain.ValidationError, password string) {
	if msg := domain.PasswordProblem(password); msg != "" {
		verr.Add("password", msg)
	}
}

// Authenticate implements AccountService.Authenticate
func (s *AccountServiceImpl) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.accounts.FindUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// Same bcrypt work as a real comparison so timing does not reveal
			// whether the username exists.
			_ = s.hasher.Compare(s.dummy(), password)
			log.Debug("login for unknown username")
			return nil, auth.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login with wrong password", slog.String("user_id", user.ID.String()))
		return nil, auth.ErrInvalidCredentials
	}
	return user, nil
}

func (s *AccountServiceImpl) dummy() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash(uuid.NewString())
		if err != nil || hash == "" {
			s.logger.Error("failed to prepare dummy password hash, using fallback",
				slog.Any("error", err))
			hash = fallbackDummyHash
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

// Login implements AccountService.Login
func (s *AccountServiceImpl) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	business, err := s.accounts.FindBusinessByOwner(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load business: %w", err)
	}

	tokens, err := s.jwtService.IssueTokenPair(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("user logged in", slog.String("user_id", user.ID.String()))
	return &Session{User: user, Business: business, Tokens: tokens}, nil
}

// Me implements AccountService.Me. A token whose user no longer exists is
// reported as auth.ErrInvalidToken.
func (s *AccountServiceImpl) Me(ctx context.Context, userID uuid.UUID) (*Session, error) {
	user, err := s.accounts.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, auth.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	business, err := s.accounts.FindBusinessByOwner(ctx, userID)
	if err != nil && !errors.Is(err, store.ErrBusinessNotFound) {
		return nil, fmt.Errorf("failed to load business: %w", err)
	}

	return &Session{User: user, Business: business}, nil
}

// Refresh implements AccountService.Refresh
func (s *AccountServiceImpl) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	claims, err := s.jwtService.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	if _, err := s.accounts.FindUserByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, auth.ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	tokens, err := s.jwtService.IssueTokenPair(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}
	return tokens, nil
}

func fieldNames(verr *domain.ValidationError) []string {
	names := make([]string, 0, len(verr.Fields))
	for f := range verr.Fields {
		names = append(names, f)
	}
	return names
}
