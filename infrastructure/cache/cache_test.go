package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-hackq/internal/ports"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Minute, time.Minute)

	_, ok, err := s.Get(ctx, "hackq:page:a")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "hackq:page:a", "<p>a</p>", 0))
	v, ok, err := s.Get(ctx, "hackq:page:a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "<p>a</p>", v)

	require.NoError(t, s.Set(ctx, "hackq:page:b", "", time.Minute))
	v, ok, _ = s.Get(ctx, "hackq:page:b")
	assert.True(t, ok, "empty bodies are still cache hits")
	assert.Empty(t, v)
	assert.Equal(t, 2, s.Len())

	require.NoError(t, s.Delete(ctx, "hackq:page:a"))
	require.NoError(t, s.Delete(ctx, "missing"))
	_, ok, _ = s.Get(ctx, "hackq:page:a")
	assert.False(t, ok)

	require.NoError(t, s.Clear(ctx))
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStore_Expiration(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Hour, time.Hour)

	require.NoError(t, s.Set(ctx, "short", "v", 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	_, ok, err := s.Get(ctx, "short")
	require.NoError(t, err)
	assert.False(t, ok)
}

func unreachableRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestRedisStore_WrapsErrors(t *testing.T) {
	ctx := context.Background()
	client := unreachableRedis()
	s := NewRedisStore(client, "hackq:page:", time.Hour)
	defer s.Close()

	var ce *ports.CacheError

	_, ok, err := s.Get(ctx, "hackq:page:x")
	assert.False(t, ok)
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "Get", ce.Operation)
	assert.Equal(t, "hackq:page:x", ce.Key)

	err = s.Set(ctx, "hackq:page:x", "v", 0)
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "Set", ce.Operation)

	err = s.Delete(ctx, "hackq:page:x")
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "Delete", ce.Operation)

	err = s.Clear(ctx)
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "Clear", ce.Operation)
	assert.Equal(t, "hackq:page:*", ce.Key)

	assert.Error(t, s.Ping(ctx))
}
