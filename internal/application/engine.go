package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/ahrav/go-hackq/infrastructure/cache"
	"github.com/ahrav/go-hackq/infrastructure/evidence"
	"github.com/ahrav/go-hackq/infrastructure/middleware"
	"github.com/ahrav/go-hackq/infrastructure/units"
	"github.com/ahrav/go-hackq/internal/domain"
	"github.com/ahrav/go-hackq/internal/ports"
)

// Engine owns the long-lived collaborators behind a Solver: the shared
// HTTP client, the page cache and the metrics.
type Engine struct {
	Solver  *Solver
	Metrics ports.MetricsCollector
	Cache   ports.CacheStore

	redis  *cache.RedisStore
	client *http.Client
}

// NewEngine builds the evidence chain and the Solver described by cfg.
// Metrics are registered with reg; a nil reg uses the default registerer.
func NewEngine(ctx context.Context, cfg Config, reg prometheus.Registerer, logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	e := &Engine{
		Metrics: middleware.NewPrometheusMetrics(reg),
		client:  &http.Client{Transport: http.DefaultTransport.(*http.Transport).Clone()},
	}

	store, err := e.newCache(ctx, cfg.Cache, logger)
	if err != nil {
		return nil, err
	}
	e.Cache = store

	fetcher := e.newFetcher(cfg, logger)
	searcher, err := e.newSearcher(cfg)
	if err != nil {
		return nil, err
	}

	gatherer, err := evidence.NewGatherer(searcher, fetcher, cfg.Gatherer, logger)
	if err != nil {
		return nil, err
	}

	solver, err := NewSolver(cfg, &sharedGatherer{next: gatherer}, e.Metrics, logger)
	if err != nil {
		return nil, err
	}
	e.Solver = solver

	logger.Info("engine ready",
		"provider", searcher.Name(),
		"methods", solver.Methods(),
		"cache", cfg.Cache.Backend,
	)
	return e, nil
}

// newCache returns nil when caching is disabled. An unreachable Redis is
// logged and kept; a cache error only costs a refetch. Redis commands
// are not retried and must finish well inside the fetch timeout.
func (e *Engine) newCache(ctx context.Context, cfg CacheConfig, logger *slog.Logger) (ports.CacheStore, error) {
	switch cfg.Backend {
	case CacheNone, "":
		return nil, nil
	case CacheMemory:
		return cache.NewMemoryStore(cfg.TTL, max(cfg.TTL, time.Minute)), nil
	case CacheRedis:
		client := redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs:        []string{cfg.RedisAddr},
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			MaxRetries:   -1,
			DialTimeout:  500 * time.Millisecond,
			ReadTimeout:  500 * time.Millisecond,
			WriteTimeout: 500 * time.Millisecond,
		})
		store := cache.NewRedisStore(client, cfg.Prefix, cfg.TTL)
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := store.Ping(pingCtx); err != nil {
			logger.Warn("redis unavailable, pages will be refetched", "addr", cfg.RedisAddr, "error", err)
		}
		e.redis = store
		return store, nil
	default:
		return nil, fmt.Errorf("%w: unknown cache backend %q", domain.ErrInvalidConfiguration, cfg.Backend)
	}
}

func (e *Engine) newFetcher(cfg Config, logger *slog.Logger) ports.Fetcher {
	fc := cfg.Fetcher
	fc.Client = e.client

	mws := []evidence.FetchMiddleware{evidence.FetchTracingMiddleware()}
	if e.Cache != nil {
		mws = append(mws, evidence.FetchCacheMiddleware(e.Cache, cfg.Cache.TTL, logger))
	}
	mws = append(mws, evidence.FetchMetricsMiddleware(e.Metrics))
	if cfg.FetchLimit.RatePerSecond > 0 {
		mws = append(mws, evidence.FetchRateLimitMiddleware(rate.Limit(cfg.FetchLimit.RatePerSecond), max(cfg.FetchLimit.Burst, 1)))
	}
	return evidence.ChainFetcher(evidence.NewHTTPFetcher(fc), mws...)
}

// newSearcher wraps the provider so that the breaker sees one outcome per
// search and every retry attempt is rate limited and individually timed.
func (e *Engine) newSearcher(cfg Config) (ports.Searcher, error) {
	sc := cfg.Search.SearchConfig
	sc.Client = e.client
	if sc.UserAgent == "" {
		sc.UserAgent = cfg.Fetcher.UserAgent
	}

	mws := []evidence.SearchMiddleware{
		evidence.SearchTracingMiddleware(),
		evidence.SearchMetricsMiddleware(e.Metrics),
	}
	if cfg.Search.BreakerFailures > 0 {
		cb := evidence.NewCircuitBreaker(cfg.Search.BreakerFailures, cfg.Search.BreakerCooldown)
		mws = append(mws, evidence.SearchCircuitBreakerMiddleware(cb, e.Metrics))
	}
	if cfg.Search.MaxRetries > 0 {
		mws = append(mws, evidence.SearchRetryMiddleware(cfg.Search.MaxRetries, cfg.Search.RetryBaseDelay, cfg.Search.RetryMaxDelay))
	}
	if cfg.Search.RatePerSecond > 0 {
		mws = append(mws, evidence.SearchRateLimitMiddleware(rate.Limit(cfg.Search.RatePerSecond), cfg.Search.Burst))
	}
	mws = append(mws, evidence.SearchTimeoutMiddleware(cfg.Search.Timeout))

	return evidence.NewSearcher(sc, mws...)
}

// Ping reports whether the page cache backend is reachable. Only Redis
// can fail.
func (e *Engine) Ping(ctx context.Context) error {
	if e.redis == nil {
		return nil
	}
	return e.redis.Ping(ctx)
}

// Close releases the Redis connection and idle HTTP connections.
func (e *Engine) Close() error {
	e.client.CloseIdleConnections()
	if e.redis != nil {
		if err := e.redis.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
			return fmt.Errorf("failed to close redis: %w", err)
		}
	}
	return nil
}

// sharedGatherer collapses concurrent gathers of the same query into one
// search and one round of fetches. The shared gather ignores cancellation
// of whichever caller started it and stays bounded by the per-fetch
// timeout; each caller stops waiting when its own context is done.
type sharedGatherer struct {
	next  units.Gatherer
	group singleflight.Group
}

func (g *sharedGatherer) Gather(ctx context.Context, query string, n int) []domain.Document {
	detached := context.WithoutCancel(ctx)
	ch := g.group.DoChan(query+"\x00"+strconv.Itoa(n), func() (any, error) {
		return g.next.Gather(detached, query, n), nil
	})

	select {
	case res := <-ch:
		return res.Val.([]domain.Document)
	case <-ctx.Done():
		return nil
	}
}
