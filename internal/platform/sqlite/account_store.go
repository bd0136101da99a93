package sqlite

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

// AccountStore implements store.AccountStore on SQLite.
type AccountStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewAccountStore creates a SQLite account store. If logger is nil, a
// default logger will be used.
func NewAccountStore(db *sql.DB, logger *slog.Logger) *AccountStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &AccountStore{
		db:     db,
		logger: logger.With(slog.String("component", "account_store")),
	}
}

var _ store.AccountStore = (*AccountStore)(nil)

func (s *AccountStore) FindUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id.String())
	return s.scanUser(ctx, row)
}

func (s *AccountStore) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return s.scanUser(ctx, row)
}

func (s *AccountStore) scanUser(ctx context.Context, row *sql.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.HashedPassword,
		timestamp{&u.CreatedAt}, timestamp{&u.UpdatedAt})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrUserNotFound
	}
	if err != nil {
		s.log(ctx).Error("failed to query user", slog.String("error", err.Error()))
		return nil, store.NewStoreError("user", "get", "query failed", MapError(err))
	}
	return &u, nil
}

func (s *AccountStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	return s.exists(ctx, "user", `SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)`, username)
}

func (s *AccountStore) UserEmailExists(ctx context.Context, email string) (bool, error) {
	return s.exists(ctx, "user", `SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`, email)
}

func (s *AccountStore) BusinessNameExists(ctx context.Context, name string, exceptID uuid.UUID) (bool, error) {
	return s.exists(ctx, "business",
		`SELECT EXISTS(SELECT 1 FROM businesses WHERE name = ? AND id <> ?)`, name, exceptID.String())
}

func (s *AccountStore) BusinessEmailExists(ctx context.Context, email string, exceptID uuid.UUID) (bool, error) {
	return s.exists(ctx, "business",
		`SELECT EXISTS(SELECT 1 FROM businesses WHERE email = ? AND id <> ?)`, email, exceptID.String())
}

func (s *AccountStore) exists(ctx context.Context, entity, query string, args ...any) (bool, error) {
	var found bool
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&found); err != nil {
		s.log(ctx).Error("failed to check existence",
			slog.String("entity", entity),
			slog.String("error", err.Error()))
		return false, store.NewStoreError(entity, "exists", "query failed", MapError(err))
	}
	return found, nil
}

func (s *AccountStore) FindBusinessByOwner(ctx context.Context, ownerID uuid.UUID) (*domain.Business, error) {
	var b domain.Business
	err := s.db.QueryRowContext(ctx, businessSelect+` WHERE b.owner_id = ?`, ownerID.String()).Scan(
		&b.ID, &b.OwnerID, &b.Name, &b.Description, &b.Email, &b.Phone, &b.Address,
		timestamp{&b.CreatedAt}, timestamp{&b.UpdatedAt}, &b.Owner.Username, &b.Owner.Email,
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
	return &b, nil
}

func (s *AccountStore) InsertUserAndBusiness(ctx context.Context, user *domain.User, business *domain.Business) error {
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
		return insertBusiness(ctx, tx, business)
	})
}

func insertUser(ctx context.Context, q store.DBTX, user *domain.User) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO users (id, username, email, hashed_password, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID.String(), user.Username, user.Email, user.HashedPassword,
		formatTime(user.CreatedAt), formatTime(user.UpdatedAt))
	return MapError(err)
}

func insertBusiness(ctx context.Context, q store.DBTX, business *domain.Business) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO businesses (id, owner_id, name, description, email, phone, address, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		business.ID.String(), business.OwnerID.String(), business.Name, business.Description,
		business.Email, business.Phone, business.Address,
		formatTime(business.CreatedAt), formatTime(business.UpdatedAt))
	return MapError(err)
}

func (s *AccountStore) UpdateBusiness(ctx context.Context, business *domain.Business) error {
	if err := business.Validate(); err != nil {
		return store.NewStoreError("business", "update", "invalid business", errors.Join(store.ErrInvalidEntity, err))
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE businesses
		SET name = ?, description = ?, email = ?, phone = ?, address = ?, updated_at = ?
		WHERE id = ?`,
		business.Name, business.Description, business.Email, business.Phone, business.Address,
		formatTime(business.UpdatedAt), business.ID.String())
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

func (s *AccountStore) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}
