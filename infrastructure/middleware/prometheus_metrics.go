// Package middleware provides cross-cutting concerns for the answer
// pipeline.
package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ahrav/go-hackq/internal/ports"
)

// PrometheusMetrics implements the MetricsCollector interface using
// Prometheus. It tracks search and fetch latency, page sizes, and how
// often each scoring method answers or declines.
type PrometheusMetrics struct {
	requestLatency *prometheus.HistogramVec
	requestCounter *prometheus.CounterVec
	pageBytes      prometheus.Histogram
	searchResults  prometheus.Histogram
	answerCounter  *prometheus.CounterVec
	stateGauges    *prometheus.GaugeVec
}

// NewPrometheusMetrics creates a PrometheusMetrics instance and registers
// its metrics with reg. A nil reg uses the global default registerer.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		requestLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hackq_request_duration_seconds",
				Help:    "Duration of searches, page fetches and whole questions.",
				Buckets: []float64{.025, .05, .1, .25, .5, 1, 1.5, 2.5, 5, 10},
			},
			[]string{"operation", "status"},
		),
		requestCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hackq_requests_total",
				Help: "Searches and page fetches by outcome.",
			},
			[]string{"operation", "status"},
		),
		pageBytes: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "hackq_page_bytes",
				Help:    "Size of fetched page bodies.",
				Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
			},
		),
		searchResults: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "hackq_search_results",
				Help:    "URLs returned per search.",
				Buckets: prometheus.LinearBuckets(0, 2, 11),
			},
		),
		answerCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hackq_answers_total",
				Help: "Scoring method outcomes: answered, or the reason for declining.",
			},
			[]string{"method", "outcome"},
		),
		stateGauges: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "hackq_state",
				Help: "Current state values such as the search circuit breaker.",
			},
			[]string{"metric", "provider"},
		),
	}
}

func status(labels map[string]string) string {
	if s := labels["status"]; s != "" {
		return s
	}
	return "unknown"
}

// RecordLatency implements the MetricsCollector interface by recording
// execution latency in a Prometheus histogram.
func (pm *PrometheusMetrics) RecordLatency(
	operation string,
	duration time.Duration,
	labels map[string]string,
) {
	pm.requestLatency.WithLabelValues(operation, status(labels)).Observe(duration.Seconds())
}

// RecordCounter implements the MetricsCollector interface by incrementing
// Prometheus counters.
func (pm *PrometheusMetrics) RecordCounter(
	metric string, value float64, labels map[string]string,
) {
	switch metric {
	case ports.MetricAnswerTotal:
		pm.answerCounter.WithLabelValues(labels["method"], labels["outcome"]).Add(value)
	case ports.MetricFetchTotal:
		pm.requestCounter.WithLabelValues("fetch", status(labels)).Add(value)
	case ports.MetricSearchTotal:
		pm.requestCounter.WithLabelValues("search", status(labels)).Add(value)
	default:
		pm.requestCounter.WithLabelValues(metric, status(labels)).Add(value)
	}
}

// RecordGauge implements the MetricsCollector interface by setting
// Prometheus gauge values.
func (pm *PrometheusMetrics) RecordGauge(
	metric string, value float64, labels map[string]string,
) {
	pm.stateGauges.WithLabelValues(metric, labels["provider"]).Set(value)
}

// RecordHistogram implements the MetricsCollector interface by recording
// values in the histogram that matches metric.
func (pm *PrometheusMetrics) RecordHistogram(
	metric string, value float64, labels map[string]string,
) {
	switch metric {
	case ports.MetricPageBytes:
		pm.pageBytes.Observe(value)
	case ports.MetricSearchResults:
		pm.searchResults.Observe(value)
	case ports.MetricFetchDuration:
		pm.requestLatency.WithLabelValues("fetch", status(labels)).Observe(value)
	case ports.MetricSearchDuration:
		pm.requestLatency.WithLabelValues("search", status(labels)).Observe(value)
	case ports.MetricQuestionDuration:
		pm.requestLatency.WithLabelValues("question", status(labels)).Observe(value)
	default:
		pm.requestLatency.WithLabelValues(metric, status(labels)).Observe(value)
	}
}

// Compile-time verification that PrometheusMetrics implements MetricsCollector.
var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)
