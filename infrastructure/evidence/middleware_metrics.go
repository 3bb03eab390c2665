package evidence

import (
	"context"
	"errors"
	"time"

	"github.com/ahrav/go-hackq/internal/ports"
)

// outcome labels a finished call for metrics.
func outcome(ctx context.Context, err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrCircuitOpen):
		return "circuit_open"
	case errors.Is(err, ports.ErrTimeout), errors.Is(ctx.Err(), context.DeadlineExceeded):
		return "timeout"
	default:
		return "error"
	}
}

type metricsSearcher struct {
	next      ports.Searcher
	collector ports.MetricsCollector
}

// SearchMetricsMiddleware records search latency, outcome and result
// counts.
func SearchMetricsMiddleware(collector ports.MetricsCollector) SearchMiddleware {
	return func(next ports.Searcher) ports.Searcher {
		return &metricsSearcher{next: next, collector: collector}
	}
}

func (m *metricsSearcher) Search(ctx context.Context, query string, n int) ([]string, error) {
	start := time.Now()
	urls, err := m.next.Search(ctx, query, n)
	if m.collector == nil {
		return urls, err
	}

	labels := map[string]string{
		"provider": m.next.Name(),
		"status":   outcome(ctx, err),
	}
	m.collector.RecordHistogram(ports.MetricSearchDuration, time.Since(start).Seconds(), labels)
	m.collector.RecordCounter(ports.MetricSearchTotal, 1, labels)
	if err == nil {
		m.collector.RecordHistogram(ports.MetricSearchResults, float64(len(urls)), labels)
	}
	return urls, err
}

func (m *metricsSearcher) Name() string { return m.next.Name() }

type metricsFetcher struct {
	next      ports.Fetcher
	collector ports.MetricsCollector
}

// FetchMetricsMiddleware records fetch latency, outcome and page size.
func FetchMetricsMiddleware(collector ports.MetricsCollector) FetchMiddleware {
	return func(next ports.Fetcher) ports.Fetcher {
		return &metricsFetcher{next: next, collector: collector}
	}
}

func (m *metricsFetcher) Fetch(ctx context.Context, url string) (string, error) {
	start := time.Now()
	body, err := m.next.Fetch(ctx, url)
	if m.collector == nil {
		return body, err
	}

	labels := map[string]string{"status": outcome(ctx, err)}
	m.collector.RecordHistogram(ports.MetricFetchDuration, time.Since(start).Seconds(), labels)
	m.collector.RecordCounter(ports.MetricFetchTotal, 1, labels)
	if err == nil {
		m.collector.RecordHistogram(ports.MetricPageBytes, float64(len(body)), labels)
	}
	return body, err
}
