package evidence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/ahrav/go-hackq/infrastructure/text"
	"github.com/ahrav/go-hackq/internal/domain"
	"github.com/ahrav/go-hackq/internal/ports"
)

var validate = validator.New()

// GathererConfig configures a Gatherer.
type GathererConfig struct {
	// FetchTimeout bounds each page fetch independently.
	FetchTimeout time.Duration `yaml:"fetch_timeout" json:"fetch_timeout" validate:"required,gt=0"`

	// MaxConcurrency limits in-flight fetches. Zero fetches every URL at
	// once, which keeps total latency bounded by a single FetchTimeout.
	MaxConcurrency int `yaml:"max_concurrency" json:"max_concurrency" validate:"gte=0"`
}

// Gatherer turns a query into evidence documents. Failures never escape:
// a failed search yields no documents and a failed fetch yields an empty
// document in its slot.
//
// Concurrency: Gatherer is safe for concurrent use; the fetcher it wraps
// must be too.
type Gatherer struct {
	searcher ports.Searcher
	fetcher  ports.Fetcher
	config   GathererConfig
	logger   *slog.Logger
	tracer   trace.Tracer
}

// NewGatherer creates a Gatherer. A nil logger uses slog.Default().
func NewGatherer(searcher ports.Searcher, fetcher ports.Fetcher, cfg GathererConfig, logger *slog.Logger) (*Gatherer, error) {
	if searcher == nil {
		return nil, errors.New("searcher is required")
	}
	if fetcher == nil {
		return nil, errors.New("fetcher is required")
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("gatherer configuration validation failed: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Gatherer{
		searcher: searcher,
		fetcher:  fetcher,
		config:   cfg,
		logger:   logger,
		tracer:   otel.Tracer("evidence-gatherer"),
	}, nil
}

// Gather searches for query and fetches up to n of the results.
// Documents are returned in search-rank order.
func (g *Gatherer) Gather(ctx context.Context, query string, n int) []domain.Document {
	ctx, span := g.tracer.Start(ctx, "Gatherer.Gather",
		trace.WithAttributes(
			attribute.String("search.provider", g.searcher.Name()),
			attribute.Int("search.num_sources", n),
		),
	)
	defer span.End()

	if n <= 0 {
		return []domain.Document{}
	}

	urls, err := g.searcher.Search(ctx, query, n)
	if err != nil {
		span.RecordError(err)
		g.logger.Error("search failed", "provider", g.searcher.Name(), "query", query, "error", err)
		return []domain.Document{}
	}
	urls = dedupe(urls, n)
	span.SetAttributes(attribute.Int("search.results", len(urls)))

	return g.FetchAll(ctx, urls)
}

// FetchAll fetches every URL concurrently and returns one document per
// URL in input order. Each fetch is bounded by FetchTimeout; a fetch that
// fails or times out yields an empty document. FetchAll returns once
// every fetch has settled.
func (g *Gatherer) FetchAll(ctx context.Context, urls []string) []domain.Document {
	ctx, span := g.tracer.Start(ctx, "Gatherer.FetchAll",
		trace.WithAttributes(attribute.Int("fetch.urls", len(urls))),
	)
	defer span.End()

	docs := make([]domain.Document, len(urls))
	var eg errgroup.Group
	if g.config.MaxConcurrency > 0 {
		eg.SetLimit(g.config.MaxConcurrency)
	}

	for i, url := range urls {
		eg.Go(func() error {
			docs[i] = g.fetchOne(ctx, url)
			return nil
		})
	}
	_ = eg.Wait()

	failed := 0
	for _, d := range docs {
		if d.Empty() {
			failed++
		}
	}
	span.SetAttributes(attribute.Int("fetch.empty", failed))
	return docs
}

func (g *Gatherer) fetchOne(ctx context.Context, url string) domain.Document {
	ctx, cancel := context.WithTimeout(ctx, g.config.FetchTimeout)
	defer cancel()

	raw, err := g.fetcher.Fetch(ctx, url)
	if err != nil {
		g.logger.Warn("fetch failed", "url", url, "error", err)
		return domain.Document{URL: url}
	}
	return domain.Document{URL: url, Text: text.CleanHTML(raw)}
}

// dedupe drops repeated and empty URLs, keeping rank order, and truncates
// to n.
func dedupe(urls []string, n int) []string {
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, min(len(urls), n))
	for _, u := range urls {
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
		if len(out) == n {
			break
		}
	}
	return out
}
