package evidence

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ahrav/go-hackq/internal/ports"
)

// Errors returned by evidence components.
var (
	// ErrCircuitOpen indicates that the circuit breaker rejected a search.
	ErrCircuitOpen = errors.New("circuit breaker is open")

	// ErrUnknownProvider indicates a search provider name with no factory.
	ErrUnknownProvider = errors.New("unknown search provider")

	// ErrMissingCredentials indicates a provider configured without its key.
	ErrMissingCredentials = errors.New("missing search credentials")

	// ErrBadStatus indicates a non-2xx response.
	ErrBadStatus = errors.New("unexpected HTTP status")
)

// classifyStatus maps an HTTP status onto the shared infrastructure
// sentinels so retry middleware can tell transient failures apart.
func classifyStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ports.ErrAuthenticationFailed
	case status == http.StatusTooManyRequests:
		return ports.ErrRateLimited
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return ports.ErrTimeout
	case status >= 500:
		return ports.ErrServiceUnavailable
	default:
		return fmt.Errorf("%w: %d", ErrBadStatus, status)
	}
}

// classifyContext converts context errors into ports.ErrTimeout while
// keeping the original in the chain.
func classifyContext(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ports.ErrTimeout, err)
	}
	return err
}

// retryable reports whether err is worth another attempt.
func retryable(err error) bool {
	var r interface{ IsRetryable() bool }
	if errors.As(err, &r) {
		return r.IsRetryable()
	}
	return !errors.Is(err, ErrCircuitOpen) && !errors.Is(err, context.Canceled)
}
