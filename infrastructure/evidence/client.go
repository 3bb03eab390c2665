// Package evidence acquires the web text that answers are scored against.
//
// Search providers and page fetchers sit behind the ports.Searcher and
// ports.Fetcher interfaces and are decorated with middleware for caching,
// rate limiting, circuit breaking, metrics and tracing. The Gatherer runs
// a search and fans the page fetches out concurrently.
//
// Basic usage:
//
//	searcher, err := evidence.NewSearcher(evidence.SearchConfig{
//	    Provider: "google_cse",
//	    APIKey:   os.Getenv("GOOGLE_API_KEY"),
//	    EngineID: os.Getenv("GOOGLE_CSE_ID"),
//	})
//	fetcher := evidence.ChainFetcher(evidence.NewHTTPFetcher(evidence.FetcherConfig{}),
//	    evidence.FetchCacheMiddleware(store, time.Hour, logger),
//	    evidence.FetchMetricsMiddleware(collector),
//	)
//	gatherer, err := evidence.NewGatherer(searcher, fetcher, evidence.GathererConfig{
//	    FetchTimeout: 1500 * time.Millisecond,
//	}, logger)
//	docs := gatherer.Gather(ctx, "games played court", 5)
package evidence

import (
	"context"

	"github.com/ahrav/go-hackq/internal/ports"
)

// SearchMiddleware wraps a Searcher to add cross-cutting behavior.
type SearchMiddleware func(ports.Searcher) ports.Searcher

// FetchMiddleware wraps a Fetcher to add cross-cutting behavior.
type FetchMiddleware func(ports.Fetcher) ports.Fetcher

// ChainSearcher applies middleware in reverse order so the first
// middleware is the outermost.
func ChainSearcher(core ports.Searcher, mws ...SearchMiddleware) ports.Searcher {
	for i := len(mws) - 1; i >= 0; i-- {
		core = mws[i](core)
	}
	return core
}

// ChainFetcher applies middleware in reverse order so the first
// middleware is the outermost.
func ChainFetcher(core ports.Fetcher, mws ...FetchMiddleware) ports.Fetcher {
	for i := len(mws) - 1; i >= 0; i-- {
		core = mws[i](core)
	}
	return core
}

// FetcherFunc adapts a function to ports.Fetcher.
type FetcherFunc func(ctx context.Context, url string) (string, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, url string) (string, error) { return f(ctx, url) }
