package evidence

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ahrav/go-hackq/internal/ports"
)

// CircuitState is the state of a CircuitBreaker.
type CircuitState int

// Circuit breaker states.
const (
	// StateClosed lets every call through.
	StateClosed CircuitState = iota

	// StateOpen rejects calls until the cooldown expires.
	StateOpen

	// StateHalfOpen lets one probe through; its outcome closes or reopens
	// the circuit.
	StateHalfOpen
)

// String returns the state name used in logs and metric labels.
func (s CircuitState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half_open"
	default:
		return "unknown"
	}
}

// CircuitBreaker stops calling a search provider after maxFailures
// consecutive failures and probes it again after cooldown.
type CircuitBreaker struct {
	mu          sync.Mutex
	state       CircuitState
	failures    int
	maxFailures int
	cooldown    time.Duration
	lastFailure time.Time
	now         func() time.Time
}

// NewCircuitBreaker creates a closed circuit breaker.
func NewCircuitBreaker(maxFailures int, cooldown time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		state:       StateClosed,
		maxFailures: max(1, maxFailures),
		cooldown:    cooldown,
		now:         time.Now,
	}
}

// Call runs fn unless the circuit is open, in which case it returns
// ErrCircuitOpen without calling fn. A canceled context does not count as
// a provider failure.
func (cb *CircuitBreaker) Call(fn func() error) error {
	cb.mu.Lock()
	if cb.state == StateOpen {
		if cb.now().Sub(cb.lastFailure) < cb.cooldown {
			cb.mu.Unlock()
			return ErrCircuitOpen
		}
		cb.state = StateHalfOpen
	}
	cb.mu.Unlock()

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	switch {
	case err == nil:
		cb.failures = 0
		cb.state = StateClosed
	case errors.Is(err, context.Canceled):
	default:
		cb.failures++
		cb.lastFailure = cb.now()
		if cb.state == StateHalfOpen || cb.failures >= cb.maxFailures {
			cb.state = StateOpen
		}
	}
	return err
}

// State returns the current state.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

type circuitSearcher struct {
	next    ports.Searcher
	cb      *CircuitBreaker
	metrics ports.MetricsCollector
}

// SearchCircuitBreakerMiddleware wraps searches in cb. When metrics is not
// nil the circuit state is reported after every call.
func SearchCircuitBreakerMiddleware(cb *CircuitBreaker, metrics ports.MetricsCollector) SearchMiddleware {
	return func(next ports.Searcher) ports.Searcher {
		return &circuitSearcher{next: next, cb: cb, metrics: metrics}
	}
}

func (c *circuitSearcher) Search(ctx context.Context, query string, n int) ([]string, error) {
	var urls []string
	err := c.cb.Call(func() error {
		var err error
		urls, err = c.next.Search(ctx, query, n)
		return err
	})

	if c.metrics != nil {
		c.metrics.RecordGauge(ports.MetricCircuitState, float64(c.cb.State()), map[string]string{
			"provider": c.next.Name(),
		})
	}
	if err != nil {
		return nil, err
	}
	return urls, nil
}

func (c *circuitSearcher) Name() string { return c.next.Name() }
