package evidence

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/ahrav/go-hackq/internal/ports"
)

// rateLimitedSearcher paces calls to a search provider with a token bucket.
type rateLimitedSearcher struct {
	next    ports.Searcher
	limiter *rate.Limiter
}

// SearchRateLimitMiddleware limits searches to limit per second with the
// given burst. Provider quotas are per key, so the limiter is shared by
// every searcher the middleware wraps.
func SearchRateLimitMiddleware(limit rate.Limit, burst int) SearchMiddleware {
	limiter := rate.NewLimiter(limit, burst)
	return func(next ports.Searcher) ports.Searcher {
		return &rateLimitedSearcher{next: next, limiter: limiter}
	}
}

func (r *rateLimitedSearcher) Search(ctx context.Context, query string, n int) ([]string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}
	return r.next.Search(ctx, query, n)
}

func (r *rateLimitedSearcher) Name() string { return r.next.Name() }

type rateLimitedFetcher struct {
	next    ports.Fetcher
	limiter *rate.Limiter
}

// FetchRateLimitMiddleware limits page fetches to limit per second with the
// given burst. The wait counts against the fetch's own timeout.
func FetchRateLimitMiddleware(limit rate.Limit, burst int) FetchMiddleware {
	limiter := rate.NewLimiter(limit, burst)
	return func(next ports.Fetcher) ports.Fetcher {
		return &rateLimitedFetcher{next: next, limiter: limiter}
	}
}

func (r *rateLimitedFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", ports.NewFetchError(url, 0, fmt.Errorf("rate limit: %w", err))
	}
	return r.next.Fetch(ctx, url)
}
