package ports

import (
	"context"
	"time"
)

// Searcher turns a query into ranked page URLs.
// Implementations must return at most n de-duplicated URLs in rank order.
type Searcher interface {
	// Search returns up to n URLs for query. A provider failure is returned
	// as an error; callers degrade it to an empty list.
	Search(ctx context.Context, query string, n int) ([]string, error)

	// Name identifies the provider for logs and metrics.
	Name() string
}

// Fetcher downloads the raw body of one page.
type Fetcher interface {
	// Fetch returns the raw response body of url. It must honor ctx
	// cancellation so a per-fetch timeout bounds the call.
	Fetch(ctx context.Context, url string) (string, error)
}

// CacheStore defines the interface for caching fetched pages.
// Implementations could use Redis or in-memory storage.
type CacheStore interface {
	// Get retrieves a cached value by key.
	// Returns the value and true if found, or "" and false if not found.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores a value in the cache with an expiration time.
	// A zero duration uses the store's default expiration.
	Set(ctx context.Context, key string, value string, expiration time.Duration) error

	// Delete removes a value from the cache.
	// Returns nil if the key doesn't exist.
	Delete(ctx context.Context, key string) error

	// Clear removes all values owned by this store.
	Clear(ctx context.Context) error
}

// MetricsCollector defines the interface for collecting operational metrics.
// Implementations should integrate with observability platforms like
// Prometheus.
type MetricsCollector interface {
	// RecordLatency records the execution time of an operation.
	// The labels map provides additional context for the metric.
	RecordLatency(operation string, duration time.Duration, labels map[string]string)

	// RecordCounter increments a counter metric.
	RecordCounter(metric string, value float64, labels map[string]string)

	// RecordGauge sets the current value of a gauge metric.
	RecordGauge(metric string, value float64, labels map[string]string)

	// RecordHistogram records a value in a histogram, such as page sizes.
	RecordHistogram(metric string, value float64, labels map[string]string)
}
