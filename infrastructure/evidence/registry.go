package evidence

import (
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/ahrav/go-hackq/internal/ports"
)

// SearchConfig selects and configures a search provider.
type SearchConfig struct {
	// Provider names a registered factory: "google_cse" or "html".
	Provider string `yaml:"provider" json:"provider" validate:"required"`

	// APIKey authenticates google_cse. Usually loaded from GOOGLE_API_KEY.
	APIKey string `yaml:"-" json:"-"`

	// EngineID is the Programmable Search Engine ID for google_cse.
	// Usually loaded from GOOGLE_CSE_ID.
	EngineID string `yaml:"-" json:"-"`

	// Endpoint overrides the google_cse API base URL.
	Endpoint string `yaml:"endpoint" json:"endpoint"`

	// URLTemplate is the results-page URL for html; {query} is replaced by
	// the escaped query.
	URLTemplate string `yaml:"url_template" json:"url_template"`

	// ResultSelector is the CSS selector of result links for html.
	ResultSelector string `yaml:"result_selector" json:"result_selector"`

	// UserAgent is sent by the html provider.
	UserAgent string `yaml:"user_agent" json:"user_agent"`

	// Client overrides the HTTP client.
	Client *http.Client `yaml:"-" json:"-"`
}

// ProviderFactory builds a Searcher from configuration.
type ProviderFactory func(SearchConfig) (ports.Searcher, error)

var (
	factoriesMu sync.RWMutex
	factories   = make(map[string]ProviderFactory)
)

// RegisterProviderFactory registers a search provider under name,
// replacing any previous registration.
func RegisterProviderFactory(name string, factory ProviderFactory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	factories[name] = factory
}

// Providers lists the registered provider names in sorted order.
func Providers() []string {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewSearcher builds the configured provider and wraps it in mws, the
// first being outermost.
func NewSearcher(cfg SearchConfig, mws ...SearchMiddleware) (ports.Searcher, error) {
	factoriesMu.RLock()
	factory, ok := factories[cfg.Provider]
	factoriesMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownProvider, cfg.Provider, Providers())
	}

	core, err := factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s searcher: %w", cfg.Provider, err)
	}
	return ChainSearcher(core, mws...), nil
}
