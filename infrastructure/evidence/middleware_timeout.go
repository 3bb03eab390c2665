package evidence

import (
	"context"
	"time"

	"github.com/ahrav/go-hackq/internal/ports"
)

// timeoutSearcher bounds each search call.
type timeoutSearcher struct {
	next    ports.Searcher
	timeout time.Duration
}

// SearchTimeoutMiddleware bounds every search with timeout. Placed outside
// the retry middleware it bounds all attempts together.
func SearchTimeoutMiddleware(timeout time.Duration) SearchMiddleware {
	return func(next ports.Searcher) ports.Searcher {
		return &timeoutSearcher{next: next, timeout: timeout}
	}
}

func (t *timeoutSearcher) Search(ctx context.Context, query string, n int) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.Search(ctx, query, n)
}

func (t *timeoutSearcher) Name() string { return t.next.Name() }
