package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/phrazzld/powerdealer-api/internal/platform/logger"
	goredis "github.com/redis/go-redis/v9"
)

// ViewCache is a JSON-backed Redis cache for values of type T. A zero TTL
// stores keys without expiry.
type ViewCache[T any] struct {
	client *goredis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewViewCache creates a ViewCache backed by client.
func NewViewCache[T any](client *goredis.Client, ttl time.Duration, logger *slog.Logger) *ViewCache[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &ViewCache[T]{client: client, ttl: ttl, logger: logger}
}

// Get retrieves and unmarshals a value.
// Returns (nil, false) on a miss, a Redis failure or undecodable data.
func (c *ViewCache[T]) Get(ctx context.Context, key string) (*T, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			c.log(ctx).Warn("cache read failed", slog.String("key", key), slog.String("error", err.Error()))
		}
		return nil, false
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		c.log(ctx).Warn("cache entry undecodable", slog.String("key", key), slog.String("error", err.Error()))
		return nil, false
	}
	return &v, true
}

// Set marshals value and stores it under key. Failures are logged, not
// returned: a failed cache write only costs a later miss.
func (c *ViewCache[T]) Set(ctx context.Context, key string, value *T) {
	data, err := json.Marshal(value)
	if err != nil {
		c.log(ctx).Warn("cache marshal failed", slog.String("key", key), slog.String("error", err.Error()))
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log(ctx).Warn("cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}

// Delete removes key. Unlike Get and Set it does not log: the error is
// returned so callers that must not serve stale data can react.
func (c *ViewCache[T]) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

func (c *ViewCache[T]) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, c.logger)
}
