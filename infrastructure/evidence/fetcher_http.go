package evidence

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ahrav/go-hackq/internal/ports"
)

// DefaultUserAgent identifies as a desktop browser; many sites serve
// stripped or blocked pages to unknown clients.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:128.0) Gecko/20100101 Firefox/128.0"

// DefaultMaxBodyBytes caps how much of one page is read.
const DefaultMaxBodyBytes int64 = 4 << 20

// FetcherConfig configures an HTTPFetcher.
type FetcherConfig struct {
	// UserAgent is sent with every request. Empty uses DefaultUserAgent.
	UserAgent string `yaml:"user_agent" json:"user_agent"`

	// Headers are added to every request.
	Headers map[string]string `yaml:"headers" json:"headers"`

	// MaxBodyBytes caps the body read per page. Zero uses
	// DefaultMaxBodyBytes.
	MaxBodyBytes int64 `yaml:"max_body_bytes" json:"max_body_bytes" validate:"gte=0"`

	// Client overrides the HTTP client. It is shared by every fetch so
	// connections are reused across questions.
	Client *http.Client `yaml:"-" json:"-"`
}

// HTTPFetcher downloads pages over HTTP. It is safe for concurrent use.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	headers   map[string]string
	maxBytes  int64
}

var _ ports.Fetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher creates an HTTPFetcher. Timeouts are left to the caller's
// context so one slow page cannot hold the shared client.
func NewHTTPFetcher(cfg FetcherConfig) *HTTPFetcher {
	client := cfg.Client
	if client == nil {
		client = &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				ForceAttemptHTTP2:   true,
			},
		}
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	maxBytes := cfg.MaxBodyBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	headers := make(map[string]string, len(cfg.Headers))
	for k, v := range cfg.Headers {
		headers[k] = v
	}
	return &HTTPFetcher{client: client, userAgent: ua, headers: headers, maxBytes: maxBytes}
}

// Fetch returns the body of url. Non-2xx responses and transport failures
// are returned as *ports.FetchError.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", ports.NewFetchError(url, 0, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", ports.NewFetchError(url, 0, classifyContext(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", ports.NewFetchError(url, resp.StatusCode, classifyStatus(resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", ports.NewFetchError(url, resp.StatusCode, classifyContext(err))
	}
	return string(body), nil
}
