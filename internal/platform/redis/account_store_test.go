package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/phrazzld/powerdealer-api/internal/domain"
	"github.com/phrazzld/powerdealer-api/internal/store"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubStore counts business lookups and keeps one business in memory.
type stubStore struct {
	store.AccountStore
	business *domain.Business
	finds    int
	updates  int
}

func (s *stubStore) FindBusinessByOwner(_ context.Context, ownerID uuid.UUID) (*domain.Business, error) {
	s.finds++
	if s.business == nil || s.business.OwnerID != ownerID {
		return nil, store.ErrBusinessNotFound
	}
	cp := *s.business
	return &cp, nil
}

func (s *stubStore) UpdateBusiness(_ context.Context, b *domain.Business) error {
	s.updates++
	cp := *b
	s.business = &cp
	return nil
}

func setup(t *testing.T) (*miniredis.Miniredis, *stubStore, *CachedAccountStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	owner, err := domain.NewUser("alice", "a@x.com", "hash")
	require.NoError(t, err)
	b, err := domain.NewBusiness(owner, "Alice Co", "b@x.com", "555", "")
	require.NoError(t, err)

	stub := &stubStore{business: b}
	return mr, stub, NewCachedAccountStore(stub, client, time.Minute, nil)
}

func TestCachedFindBusinessByOwner(t *testing.T) {
	ctx := context.Background()
	mr, stub, cached := setup(t)
	ownerID := stub.business.OwnerID

	first, err := cached.FindBusinessByOwner(ctx, ownerID)
	require.NoError(t, err)
	second, err := cached.FindBusinessByOwner(ctx, ownerID)
	require.NoError(t, err)

	assert.Equal(t, 1, stub.finds, "second lookup must be served from cache")
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, ownerID, second.OwnerID)
	assert.True(t, first.UpdatedAt.Equal(second.UpdatedAt))
	assert.True(t, mr.Exists(BusinessKey(ownerID)))

	mr.FastForward(2 * time.Minute)
	_, err = cached.FindBusinessByOwner(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, 2, stub.finds, "expired entry must be reloaded")
}

func TestCachedFindBusinessMissIsNotCached(t *testing.T) {
	ctx := context.Background()
	mr, stub, cached := setup(t)
	ghost := uuid.New()

	_, err := cached.FindBusinessByOwner(ctx, ghost)
	assert.ErrorIs(t, err, store.ErrBusinessNotFound)
	assert.False(t, mr.Exists(BusinessKey(ghost)))
	assert.Equal(t, 1, stub.finds)
}

func TestCachedUpdateBusinessInvalidates(t *testing.T) {
	ctx := context.Background()
	mr, stub, cached := setup(t)
	ownerID := stub.business.OwnerID

	b, err := cached.FindBusinessByOwner(ctx, ownerID)
	require.NoError(t, err)
	require.True(t, mr.Exists(BusinessKey(ownerID)))

	name := "Alice Widgets"
	updated, err := b.Apply(domain.BusinessPatch{Name: &name}, time.Now())
	require.NoError(t, err)
	require.NoError(t, cached.UpdateBusiness(ctx, updated))
	assert.False(t, mr.Exists(BusinessKey(ownerID)))

	got, err := cached.FindBusinessByOwner(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Widgets", got.Name)
	assert.Equal(t, 1, stub.updates)
}

func TestCachedUpdateBusinessFailedInvalidationIsNotServed(t *testing.T) {
	ctx := context.Background()
	mr, stub, cached := setup(t)
	ownerID := stub.business.OwnerID

	b, err := cached.FindBusinessByOwner(ctx, ownerID)
	require.NoError(t, err)
	require.True(t, mr.Exists(BusinessKey(ownerID)))

	mr.SetError("ERR cache unavailable")
	name := "Renamed"
	updated, err := b.Apply(domain.BusinessPatch{Name: &name}, time.Now())
	require.NoError(t, err)
	require.NoError(t, cached.UpdateBusiness(ctx, updated), "a cache failure must not fail the write")

	got, err := cached.FindBusinessByOwner(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name, "read during the outage goes to the store")

	mr.SetError("")
	assert.True(t, mr.Exists(BusinessKey(ownerID)), "old entry is still in redis")

	got, err = cached.FindBusinessByOwner(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)

	got, err = cached.FindBusinessByOwner(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name, "refilled entry carries the new name")
	assert.Equal(t, 3, stub.finds)
}

func TestCachedFindBusinessSurvivesRedisOutage(t *testing.T) {
	ctx := context.Background()
	mr, stub, cached := setup(t)
	mr.Close()

	b, err := cached.FindBusinessByOwner(ctx, stub.business.OwnerID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Co", b.Name)
}

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	assert.NoError(t, client.Close())

	_, err = NewClient(context.Background(), "not-a-url")
	assert.Error(t, err)
}
