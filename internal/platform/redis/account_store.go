package redis

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/powerdealer-api/internal/domain"
	"github.com/phrazzld/powerdealer-api/internal/platform/logger"
	"github.com/phrazzld/powerdealer-api/internal/store"
	goredis "github.com/redis/go-redis/v9"
)

const businessKeyPrefix = "business:owner:"

// CachedAccountStore decorates a store.AccountStore with a read-through
// cache for FindBusinessByOwner. All other methods go straight to the
// wrapped store.
//
// An owner whose cache entry could not be deleted after an update is marked
// stale in this process; reads for that owner bypass the cache until a
// retried delete succeeds.
type CachedAccountStore struct {
	store.AccountStore
	businesses *ViewCache[domain.Business]
	logger     *slog.Logger

	mu    sync.Mutex
	stale map[uuid.UUID]struct{}
}

// NewCachedAccountStore wraps next with a business cache in client.
func NewCachedAccountStore(
	next store.AccountStore,
	client *goredis.Client,
	ttl time.Duration,
	logger *slog.Logger,
) *CachedAccountStore {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "business_cache"))
	return &CachedAccountStore{
		AccountStore: next,
		businesses:   NewViewCache[domain.Business](client, ttl, logger),
		logger:       logger,
		stale:        make(map[uuid.UUID]struct{}),
	}
}

var _ store.AccountStore = (*CachedAccountStore)(nil)

// BusinessKey returns the cache key for the business owned by ownerID.
func BusinessKey(ownerID uuid.UUID) string {
	return businessKeyPrefix + ownerID.String()
}

// FindBusinessByOwner serves from the cache and fills it on a miss.
func (s *CachedAccountStore) FindBusinessByOwner(ctx context.Context, ownerID uuid.UUID) (*domain.Business, error) {
	if !s.cacheUsable(ctx, ownerID) {
		return s.AccountStore.FindBusinessByOwner(ctx, ownerID)
	}

	key := BusinessKey(ownerID)
	if b, ok := s.businesses.Get(ctx, key); ok {
		// OwnerID is not serialized.
		b.OwnerID = b.Owner.ID
		return b, nil
	}

	b, err := s.AccountStore.FindBusinessByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	s.businesses.Set(ctx, key, b)
	return b, nil
}

// UpdateBusiness drops the cached copy, writes through to the store and drops
// the copy again, so a read that refilled the cache during the write is not
// served afterwards.
func (s *CachedAccountStore) UpdateBusiness(ctx context.Context, business *domain.Business) error {
	s.invalidate(ctx, business.OwnerID)
	if err := s.AccountStore.UpdateBusiness(ctx, business); err != nil {
		return err
	}
	s.invalidate(ctx, business.OwnerID)
	return nil
}

// invalidate deletes the cached business of ownerID. On failure the owner is
// marked stale instead.
func (s *CachedAccountStore) invalidate(ctx context.Context, ownerID uuid.UUID) {
	if err := s.businesses.Delete(ctx, BusinessKey(ownerID)); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("business cache invalidation failed",
			slog.String("owner_id", ownerID.String()),
			slog.String("error", err.Error()))
		s.setStale(ownerID, true)
		return
	}
	s.setStale(ownerID, false)
}

// cacheUsable reports whether the cache may serve ownerID, first retrying a
// pending invalidation.
func (s *CachedAccountStore) cacheUsable(ctx context.Context, ownerID uuid.UUID) bool {
	s.mu.Lock()
	_, pending := s.stale[ownerID]
	s.mu.Unlock()
	if !pending {
		return true
	}
	if err := s.businesses.Delete(ctx, BusinessKey(ownerID)); err != nil {
		return false
	}
	s.setStale(ownerID, false)
	return true
}

func (s *CachedAccountStore) setStale(ownerID uuid.UUID, stale bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if stale {
		s.stale[ownerID] = struct{}{}
	} else {
		delete(s.stale, ownerID)
	}
}
