package evidence

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/ahrav/go-hackq/internal/ports"
)

// PageCacheKeyPrefix namespaces cached page bodies.
const PageCacheKeyPrefix = "hackq:page:"

// PageCacheKey returns the cache key for url.
func PageCacheKey(url string) string {
	// #nosec G401 - the hash only shortens the key
	sum := sha1.Sum([]byte(url))
	return PageCacheKeyPrefix + hex.EncodeToString(sum[:])
}

type cachedFetcher struct {
	next   ports.Fetcher
	store  ports.CacheStore
	ttl    time.Duration
	logger *slog.Logger
}

// FetchCacheMiddleware serves page bodies from store and stores successful
// fetches for ttl. Cache failures are logged and the fetch proceeds
// without the cache; failed fetches are never stored.
func FetchCacheMiddleware(store ports.CacheStore, ttl time.Duration, logger *slog.Logger) FetchMiddleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next ports.Fetcher) ports.Fetcher {
		return &cachedFetcher{next: next, store: store, ttl: ttl, logger: logger}
	}
}

func (c *cachedFetcher) Fetch(ctx context.Context, url string) (string, error) {
	key := PageCacheKey(url)

	body, ok, err := c.store.Get(ctx, key)
	switch {
	case err != nil:
		c.logger.Warn("page cache read failed", "url", url, "error", err)
	case ok:
		return body, nil
	}

	body, err = c.next.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	if err := c.store.Set(ctx, key, body, c.ttl); err != nil {
		c.logger.Warn("page cache write failed", "url", url, "error", err)
	}
	return body, nil
}
