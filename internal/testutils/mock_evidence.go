package testutils

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ahrav/go-hackq/internal/ports"
)

// ErrMockFailure is returned by mocks configured to fail.
var ErrMockFailure = errors.New("mock failure")

// MockSearcher returns a fixed ranked URL list and records every query.
type MockSearcher struct {
	// URLs is returned, truncated to n, for every query.
	URLs []string
	// Err, when set, is returned instead of URLs.
	Err error
	// Fail makes the first Fail calls return ErrMockFailure.
	Fail int

	mu      sync.Mutex
	queries []string
}

var _ ports.Searcher = (*MockSearcher)(nil)

// Search implements ports.Searcher.
func (m *MockSearcher) Search(ctx context.Context, query string, n int) ([]string, error) {
	m.mu.Lock()
	m.queries = append(m.queries, query)
	calls := len(m.queries)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if calls <= m.Fail {
		return nil, ErrMockFailure
	}
	if m.Err != nil {
		return nil, m.Err
	}
	urls := m.URLs
	if n < len(urls) {
		urls = urls[:n]
	}
	return append([]string(nil), urls...), nil
}

// Name implements ports.Searcher.
func (m *MockSearcher) Name() string { return "mock" }

// Queries returns the queries seen so far.
func (m *MockSearcher) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.queries...)
}

// MockPage configures the response of MockFetcher for one URL.
type MockPage struct {
	Body  string
	Err   error
	Delay time.Duration
}

// MockFetcher serves pages from memory. Unknown URLs fail.
// A configured Delay is interrupted by context cancellation, so it can
// stand in for a hung server.
type MockFetcher struct {
	Pages map[string]MockPage

	mu    sync.Mutex
	calls map[string]int
}

var _ ports.Fetcher = (*MockFetcher)(nil)

// NewMockFetcher creates a MockFetcher serving bodies.
func NewMockFetcher(bodies map[string]string) *MockFetcher {
	pages := make(map[string]MockPage, len(bodies))
	for url, body := range bodies {
		pages[url] = MockPage{Body: body}
	}
	return &MockFetcher{Pages: pages}
}

// Fetch implements ports.Fetcher.
func (m *MockFetcher) Fetch(ctx context.Context, url string) (string, error) {
	m.mu.Lock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[url]++
	page, ok := m.Pages[url]
	m.mu.Unlock()

	if !ok {
		return "", ports.NewFetchError(url, 404, ErrMockFailure)
	}
	if page.Delay > 0 {
		select {
		case <-ctx.Done():
			return "", ports.NewFetchError(url, 0, ctx.Err())
		case <-time.After(page.Delay):
		}
	}
	if page.Err != nil {
		return "", page.Err
	}
	return page.Body, nil
}

// Calls returns how many times url was fetched.
func (m *MockFetcher) Calls(url string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[url]
}

// MetricCall is one call recorded by MockMetrics.
type MetricCall struct {
	Kind   string
	Name   string
	Value  float64
	Labels map[string]string
}

// MockMetrics records every metric call.
type MockMetrics struct {
	mu    sync.Mutex
	calls []MetricCall
}

var _ ports.MetricsCollector = (*MockMetrics)(nil)

func (m *MockMetrics) record(kind, name string, value float64, labels map[string]string) {
	copied := make(map[string]string, len(labels))
	for k, v := range labels {
		copied[k] = v
	}
	m.mu.Lock()
	m.calls = append(m.calls, MetricCall{Kind: kind, Name: name, Value: value, Labels: copied})
	m.mu.Unlock()
}

// RecordLatency implements ports.MetricsCollector.
func (m *MockMetrics) RecordLatency(op string, d time.Duration, labels map[string]string) {
	m.record("latency", op, d.Seconds(), labels)
}

// RecordCounter implements ports.MetricsCollector.
func (m *MockMetrics) RecordCounter(name string, v float64, labels map[string]string) {
	m.record("counter", name, v, labels)
}

// RecordGauge implements ports.MetricsCollector.
func (m *MockMetrics) RecordGauge(name string, v float64, labels map[string]string) {
	m.record("gauge", name, v, labels)
}

// RecordHistogram implements ports.MetricsCollector.
func (m *MockMetrics) RecordHistogram(name string, v float64, labels map[string]string) {
	m.record("histogram", name, v, labels)
}

// Calls returns the recorded calls named name.
func (m *MockMetrics) Calls(name string) []MetricCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []MetricCall
	for _, c := range m.calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}
