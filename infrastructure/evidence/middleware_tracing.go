package evidence

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ahrav/go-hackq/internal/ports"
)

type tracedSearcher struct {
	next   ports.Searcher
	tracer trace.Tracer
}

// SearchTracingMiddleware wraps each search in a span.
func SearchTracingMiddleware() SearchMiddleware {
	return func(next ports.Searcher) ports.Searcher {
		return &tracedSearcher{next: next, tracer: otel.Tracer("evidence-search")}
	}
}

func (t *tracedSearcher) Search(ctx context.Context, query string, n int) ([]string, error) {
	ctx, span := t.tracer.Start(ctx, "search.request",
		trace.WithAttributes(
			attribute.String("search.provider", t.next.Name()),
			attribute.String("search.query", query),
			attribute.Int("search.num", n),
		),
	)
	defer span.End()

	urls, err := t.next.Search(ctx, query, n)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return urls, err
	}
	span.SetAttributes(attribute.Int("search.results", len(urls)))
	return urls, nil
}

func (t *tracedSearcher) Name() string { return t.next.Name() }

type tracedFetcher struct {
	next   ports.Fetcher
	tracer trace.Tracer
}

// FetchTracingMiddleware wraps each page fetch in a span.
func FetchTracingMiddleware() FetchMiddleware {
	return func(next ports.Fetcher) ports.Fetcher {
		return &tracedFetcher{next: next, tracer: otel.Tracer("evidence-fetch")}
	}
}

func (t *tracedFetcher) Fetch(ctx context.Context, url string) (string, error) {
	ctx, span := t.tracer.Start(ctx, "fetch.page",
		trace.WithAttributes(attribute.String("http.url", url)),
	)
	defer span.End()

	body, err := t.next.Fetch(ctx, url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return body, err
	}
	span.SetAttributes(attribute.Int("http.response_size", len(body)))
	return body, nil
}
