package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/powerdealer-api/internal/domain"
	"github.com/phrazzld/powerdealer-api/internal/platform/logger"
	"github.com/phrazzld/powerdealer-api/internal/store"
)

const (
	userColumns = `id, username, email, hashed_password, created_at, updated_at`

	businessSelect = `
		SELECT b.id, b.owner_id, b.name, b.description, b.email, b.phone, b.address,
		       b.created_at, b.updated_at, u.username, u.email
		FROM businesses b
		JOIN users u ON u.id = b.owner_id`
)

// PostgresAccountStore implements the store.AccountStore interface
// using a PostgreSQL database as the storage backend.
type PostgresAccountStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresAccountStore creates a new PostgreSQL implementation of the AccountStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresAccountStore(db *sql.DB, logger *slog.Logger) *PostgresAccountStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAccountStore{
		db:     db,
		logger: logger.With(slog.String("component", "account_store")),
	}
}

// Ensure PostgresAccountStore implements store.AccountStore interface
var _ store.AccountStore = (*PostgresAccountStore)(nil)

// FindUserByID implements store.AccountStore.FindUserByID
func (s *PostgresAccountStore) FindUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return s.scanUser(ctx, row)
}

// FindUserByUsername implements store.AccountStore.FindUserByUsername
func (s *PostgresAccountStore) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	return s.scanUser(ctx, row)
}

func (s *PostgresAccountStore) scanUser(ctx context.Context, row *sql.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.HashedPassword, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrUserNotFound
	}
	if err != nil {
		s.log(ctx).Error("failed to query user", slog.String("error", err.Error()))
		return nil, store.NewStoreError("user", "get", "query failed", MapError(err))
	}
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return &u, nil
}

// UsernameExists implements store.AccountStore.UsernameExists
func (s *PostgresAccountStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	return s.exists(ctx, "user", `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username)
}

// UserEmailExists implements store.AccountStore.UserEmailExists
func (s *PostgresAccountStore) UserEmailExists(ctx context.Context, email string) (bool, error) {
	return s.exists(ctx, "user", `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
}

// BusinessNameExists implements store.AccountStore.BusinessNameExists
func (s *PostgresAccountStore) BusinessNameExists(ctx context.Context, name string, exceptID uuid.UUID) (bool, error) {
	return s.exists(ctx, "business",
		`SELECT EXISTS(SELECT 1 FROM businesses WHERE name = $1 AND id <> $2)`, name, exceptID)
}

// BusinessEmailExists implements store.AccountStore.BusinessEmailExists
func (s *PostgresAccountStore) BusinessEmailExists(ctx context.Context, email string, exceptID uuid.UUID) (bool, error) {
	return s.exists(ctx, "business",
		`SELECT EXISTS(SELECT 1 FROM businesses WHERE email = $1 AND id <> $2)`, email, exceptID)
}

func (s *PostgresAccountStore) exists(ctx context.Context, entity, query string, args ...any) (bool, error) {
	var found bool
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&found); err != nil {
		s.log(ctx).Error("failed to check existence",
			slog.String("entity", entity),
			slog.String("error", err.Error()))
		return false, store.NewStoreError(entity, "exists", "query failed", MapError(err))
	}
	return found, nil
}

// FindBusinessByOwner implements store.AccountStore.FindBusinessByOwner
func (s *PostgresAccountStore) FindBusinessByOwner(ctx context.Context, ownerID uuid.UUID) (*domain.Business, error) {
	var b domain.Business
	err := s.db.QueryRowContext(ctx, businessSelect+` WHERE b.owner_id = $1`, ownerID).Scan(
		&b.ID, &b.OwnerID, &b.Name, &b.Description, &b.Email, &b.Phone, &b.Address,
		&b.CreatedAt, &b.UpdatedAt, &b.Owner.Username, &b.Owner.Email,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrBusinessNotFound
	}
	if err != nil {
		s.log(ctx).Error("failed to query business",
			slog.String("owner_id", ownerID.String()),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("business", "get", "query failed", MapError(err))
	}

	b.Owner.ID = b.OwnerID
	b.CreatedAt = b.CreatedAt.UTC()
	b.UpdatedAt = b.UpdatedAt.UTC()
	return &b, nil
}

// InsertUserAndBusiness implements store.AccountStore.InsertUserAndBusiness
func (s *PostgresAccountStore) InsertUserAndBusiness(
	ctx context.Context,
	user *domain.User,
	business *domain.Business,
) error {
	if err := user.Validate(); err != nil {
		return store.NewStoreError("user", "insert", "invalid user", errors.Join(store.ErrInvalidEntity, err))
	}
	if err := business.Validate(); err != nil {
		return store.NewStoreError("business", "insert", "invalid business", errors.Join(store.ErrInvalidEntity, err))
	}

	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := insertUser(ctx, tx, user); err != nil {
			return err
		}
		if err := insertBusiness(ctx, tx, business); err != nil {
			return err
		}

		s.log(ctx).Debug("inserted user and business",
			slog.String("user_id", user.ID.String()),
			slog.String("business_id", business.ID.String()))
		return nil
	})
}

func insertUser(ctx context.Context, q store.DBTX, user *domain.User) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO users (id, username, email, hashed_password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Username, user.Email, user.HashedPassword, user.CreatedAt, user.UpdatedAt)
	return MapError(err)
}

func insertBusiness(ctx context.Context, q store.DBTX, business *domain.Business) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO businesses (id, owner_id, name, description, email, phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		business.ID, business.OwnerID, business.Name, business.Description, business.Email,
		business.Phone, business.Address, business.CreatedAt, business.UpdatedAt)
	return MapError(err)
}

// UpdateBusiness implements store.AccountStore.UpdateBusiness
func (s *PostgresAccountStore) UpdateBusiness(ctx context.Context, business *domain.Business) error {
	if err := business.Validate(); err != nil {
		return store.NewStoreError("business", "update", "invalid business", errors.Join(store.ErrInvalidEntity, err))
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE businesses
		SET name = $1, description = $2, email = $3, phone = $4, address = $5, updated_at = $6
		WHERE id = $7`,
		business.Name, business.Description, business.Email, business.Phone, business.Address,
		business.UpdatedAt, business.ID)
	if err != nil {
		return MapError(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return store.NewStoreError("business", "update", "rows affected", err)
	}
	if n == 0 {
		return store.ErrBusinessNotFound
	}
	return nil
}

func (s *PostgresAccountStore) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}
