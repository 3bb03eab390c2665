package ports

import (
	"errors"
	"fmt"
)

// Common infrastructure errors that can occur during external service
// interactions.
var (
	// ErrRateLimited indicates that a request was throttled.
	ErrRateLimited = errors.New("rate limited")

	// ErrServiceUnavailable indicates that the external service is unavailable.
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrTimeout indicates that an operation timed out.
	ErrTimeout = errors.New("operation timed out")

	// ErrInvalidResponse indicates that the service returned an invalid
	// response.
	ErrInvalidResponse = errors.New("invalid response")

	// ErrAuthenticationFailed indicates that the search provider rejected
	// the credentials.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrConfigNotFound indicates that required configuration is missing.
	ErrConfigNotFound = errors.New("configuration not found")
)

// FetchError represents a failed page download.
type FetchError struct {
	// URL is the page that could not be fetched.
	URL string

	// Status is the HTTP status code, zero when no response was received.
	Status int

	// Err is the underlying error.
	Err error
}

// Error implements the error interface for FetchError.
func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch error: url=%s, status=%d, err=%v", e.URL, e.Status, e.Err)
	}
	return fmt.Sprintf("fetch error: url=%s, err=%v", e.URL, e.Err)
}

// Unwrap returns the underlying error.
func (e *FetchError) Unwrap() error { return e.Err }

// IsRetryable reports whether a later attempt could succeed.
func (e *FetchError) IsRetryable() bool {
	return errors.Is(e.Err, ErrRateLimited) ||
		errors.Is(e.Err, ErrServiceUnavailable) ||
		errors.Is(e.Err, ErrTimeout)
}

// NewFetchError creates a new FetchError with the given details.
func NewFetchError(url string, status int, err error) *FetchError {
	return &FetchError{URL: url, Status: status, Err: err}
}

// SearchError represents a failed search provider call.
type SearchError struct {
	// Provider is the name of the search provider.
	Provider string

	// Query is the query that failed.
	Query string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface for SearchError.
func (e *SearchError) Error() string {
	return fmt.Sprintf("search error: provider=%s, query=%q, err=%v", e.Provider, e.Query, e.Err)
}

// Unwrap returns the underlying error.
func (e *SearchError) Unwrap() error { return e.Err }

// IsRetryable reports whether the search may succeed on a later attempt.
func (e *SearchError) IsRetryable() bool {
	return errors.Is(e.Err, ErrRateLimited) ||
		errors.Is(e.Err, ErrServiceUnavailable) ||
		errors.Is(e.Err, ErrTimeout)
}

// NewSearchError creates a new SearchError with the given details.
func NewSearchError(provider, query string, err error) *SearchError {
	return &SearchError{Provider: provider, Query: query, Err: err}
}

// CacheError represents an error from cache operations.
type CacheError struct {
	// Key is the cache key that was involved in the failed operation.
	Key string

	// Operation is the name of the cache operation that failed.
	Operation string

	// Err is the underlying error that caused the cache operation to fail.
	Err error
}

// Error implements the error interface for CacheError.
func (e *CacheError) Error() string {
	return fmt.Sprintf("cache error: operation=%s, key=%s, err=%v", e.Operation, e.Key, e.Err)
}

// Unwrap returns the underlying error.
func (e *CacheError) Unwrap() error { return e.Err }

// NewCacheError creates a new CacheError with the given details.
func NewCacheError(key, operation string, err error) *CacheError {
	return &CacheError{Key: key, Operation: operation, Err: err}
}

// ConfigError represents an error from configuration operations.
type ConfigError struct {
	// ConfigKey is the configuration key that was involved in the failed
	// operation.
	ConfigKey string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface for ConfigError.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: key=%s, err=%v", e.ConfigKey, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError creates a new ConfigError with the given details.
func NewConfigError(key string, err error) *ConfigError {
	return &ConfigError{ConfigKey: key, Err: err}
}
