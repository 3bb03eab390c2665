package evidence

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/ahrav/go-hackq/internal/ports"
)

// GoogleCSEMaxPerRequest is the most results one Custom Search request
// returns.
const GoogleCSEMaxPerRequest = 10

func init() {
	RegisterProviderFactory("google_cse", newGoogleCSESearcher)
}

// googleCSESearcher queries the Google Custom Search JSON API.
type googleCSESearcher struct {
	service  *customsearch.Service
	engineID string
}

func newGoogleCSESearcher(cfg SearchConfig) (ports.Searcher, error) {
	if cfg.APIKey == "" || cfg.EngineID == "" {
		return nil, fmt.Errorf("google_cse: %w: api key and engine id are required", ErrMissingCredentials)
	}

	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}
	if cfg.Client != nil {
		opts = append(opts, option.WithHTTPClient(cfg.Client))
	}

	svc, err := customsearch.NewService(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create custom search client: %w", err)
	}
	return &googleCSESearcher{service: svc, engineID: cfg.EngineID}, nil
}

func (g *googleCSESearcher) Name() string { return "google_cse" }

// Search pages through results ten at a time until n unique links are
// collected or the engine runs out.
func (g *googleCSESearcher) Search(ctx context.Context, query string, n int) ([]string, error) {
	var links []string
	for start := 1; len(links) < n; start += GoogleCSEMaxPerRequest {
		num := min(GoogleCSEMaxPerRequest, n-len(links))
		res, err := g.service.Cse.List().
			Cx(g.engineID).
			Q(query).
			Num(int64(num)).
			Start(int64(start)).
			Context(ctx).
			Do()
		if err != nil {
			return nil, ports.NewSearchError(g.Name(), query, g.classify(err))
		}

		for _, item := range res.Items {
			links = append(links, item.Link)
		}
		if len(res.Items) < num {
			break
		}
	}
	return dedupe(links, n), nil
}

func (g *googleCSESearcher) classify(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return fmt.Errorf("%w: %s", classifyStatus(gerr.Code), gerr.Message)
	}
	return classifyContext(err)
}
