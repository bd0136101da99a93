//go:build integration

package postgres_test

import (
	"context"
	"testing"

	"github.com/phrazzld/powerdealer-api/internal/domain"
	"github.com/phrazzld/powerdealer-api/internal/platform/postgres"
	"github.com/phrazzld/powerdealer-api/internal/store"
	"github.com/phrazzld/powerdealer-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresAccountStoreIntegration(t *testing.T) {
	ctx := context.Background()
	s := postgres.NewPostgresAccountStore(testdb.OpenPostgres(t), nil)

	u, err := domain.NewUser("alice", "a@x.com", "$2a$10$hash")
	require.NoError(t, err)
	b, err := domain.NewBusiness(u, "Alice Co", "b@x.com", "555", "")
	require.NoError(t, err)
	require.NoError(t, s.InsertUserAndBusiness(ctx, u, b))

	got, err := s.FindBusinessByOwner(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Summary(), got.Owner)

	u2, err := domain.NewUser("bob", "c@x.com", "$2a$10$hash")
	require.NoError(t, err)
	b2, err := domain.NewBusiness(u2, "Alice Co", "d@x.com", "", "")
	require.NoError(t, err)
	assert.ErrorIs(t, s.InsertUserAndBusiness(ctx, u2, b2), store.ErrBusinessNameExists)

	_, err = s.FindUserByID(ctx, u2.ID)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}
