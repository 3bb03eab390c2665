package evidence

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/ahrav/go-hackq/internal/ports"
)

// retrySearcher retries transient search failures with exponential
// backoff. Page fetches are never retried.
type retrySearcher struct {
	next       ports.Searcher
	maxRetries int
	baseDelay  time.Duration
	maxDelay   time.Duration
}

// SearchRetryMiddleware retries a failed search up to maxRetries times.
// Non-retryable errors, such as rejected credentials or an open circuit,
// return immediately.
func SearchRetryMiddleware(maxRetries int, baseDelay, maxDelay time.Duration) SearchMiddleware {
	return func(next ports.Searcher) ports.Searcher {
		return &retrySearcher{
			next:       next,
			maxRetries: maxRetries,
			baseDelay:  baseDelay,
			maxDelay:   maxDelay,
		}
	}
}

func (r *retrySearcher) Search(ctx context.Context, query string, n int) ([]string, error) {
	var lastErr error
	attempts := 0

	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		attempts++
		urls, err := r.next.Search(ctx, query, n)
		if err == nil {
			return urls, nil
		}
		lastErr = err

		if !retryable(err) || ctx.Err() != nil || attempt == r.maxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.delay(attempt)):
		}
	}

	return nil, fmt.Errorf("search failed after %d attempts: %w", attempts, lastErr)
}

func (r *retrySearcher) Name() string { return r.next.Name() }

// delay returns the backoff before attempt+1, with ±25% jitter.
func (r *retrySearcher) delay(attempt int) time.Duration {
	attempt = max(0, min(attempt, 30))
	d := r.baseDelay * time.Duration(1<<uint(attempt))

	// #nosec G404 - jitter does not need a strong RNG
	jitter := time.Duration(rand.Float64() * float64(d) * 0.5)
	d = d + jitter - d/4

	if d > r.maxDelay {
		d = r.maxDelay
	}
	return d
}
