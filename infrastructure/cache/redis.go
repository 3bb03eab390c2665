package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ahrav/go-hackq/internal/ports"
)

// RedisStore is a CacheStore backed by Redis so several solver instances
// share fetched pages. Keys are used as given; Clear only removes keys
// under the store's prefix.
type RedisStore struct {
	client     redis.UniversalClient
	prefix     string
	defaultTTL time.Duration
}

var _ ports.CacheStore = (*RedisStore)(nil)

// NewRedisStore creates a RedisStore. prefix scopes Clear, and defaultTTL
// applies when Set is given a zero expiration.
func NewRedisStore(client redis.UniversalClient, prefix string, defaultTTL time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, defaultTTL: defaultTTL}
}

// Get implements ports.CacheStore.
func (r *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, ports.NewCacheError(key, "Get", err)
	}
	return v, true, nil
}

// Set implements ports.CacheStore.
func (r *RedisStore) Set(ctx context.Context, key, value string, expiration time.Duration) error {
	if expiration <= 0 {
		expiration = r.defaultTTL
	}
	if err := r.client.Set(ctx, key, value, expiration).Err(); err != nil {
		return ports.NewCacheError(key, "Set", err)
	}
	return nil
}

// Delete implements ports.CacheStore.
func (r *RedisStore) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return ports.NewCacheError(key, "Delete", err)
	}
	return nil
}

// Clear deletes every key under the store's prefix.
func (r *RedisStore) Clear(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 500).Iterator()
	var batch []string
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == 500 {
			if err := r.client.Del(ctx, batch...).Err(); err != nil {
				return ports.NewCacheError(r.prefix+"*", "Clear", err)
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return ports.NewCacheError(r.prefix+"*", "Clear", err)
	}
	if len(batch) > 0 {
		if err := r.client.Del(ctx, batch...).Err(); err != nil {
			return ports.NewCacheError(r.prefix+"*", "Clear", err)
		}
	}
	return nil
}

// Ping checks connectivity.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the underlying client.
func (r *RedisStore) Close() error { return r.client.Close() }
