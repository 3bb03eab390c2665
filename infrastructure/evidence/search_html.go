package evidence

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ahrav/go-hackq/internal/ports"
)

// Defaults for the HTML results-page provider.
const (
	DefaultHTMLSearchURL      = "https://html.duckduckgo.com/html/?q={query}"
	DefaultHTMLResultSelector = "a.result__a"
)

func init() {
	RegisterProviderFactory("html", newHTMLSearcher)
}

// htmlSearcher scrapes result links from a search engine's HTML results
// page.
type htmlSearcher struct {
	client    *http.Client
	template  string
	selector  string
	userAgent string
}

func newHTMLSearcher(cfg SearchConfig) (ports.Searcher, error) {
	tmpl := cfg.URLTemplate
	if tmpl == "" {
		tmpl = DefaultHTMLSearchURL
	}
	if !strings.Contains(tmpl, "{query}") {
		return nil, fmt.Errorf("html search: url template %q has no {query} placeholder", tmpl)
	}
	sel := cfg.ResultSelector
	if sel == "" {
		sel = DefaultHTMLResultSelector
	}
	client := cfg.Client
	if client == nil {
		client = http.DefaultClient
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	return &htmlSearcher{client: client, template: tmpl, selector: sel, userAgent: ua}, nil
}

func (h *htmlSearcher) Name() string { return "html" }

func (h *htmlSearcher) Search(ctx context.Context, query string, n int) ([]string, error) {
	pageURL := strings.ReplaceAll(h.template, "{query}", url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, ports.NewSearchError(h.Name(), query, err)
	}
	req.Header.Set("User-Agent", h.userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, ports.NewSearchError(h.Name(), query, classifyContext(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, ports.NewSearchError(h.Name(), query, classifyStatus(resp.StatusCode))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, ports.NewSearchError(h.Name(), query, fmt.Errorf("%w: %w", ports.ErrInvalidResponse, err))
	}

	base := resp.Request.URL
	var links []string
	doc.Find(h.selector).Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		if link := resolveResultLink(base, href); link != "" {
			links = append(links, link)
		}
	})
	return dedupe(links, n), nil
}

// resolveResultLink turns a result href into an absolute http(s) URL,
// unwrapping redirect links that carry the target in a uddg or q
// parameter. It returns "" for anything else.
func resolveResultLink(base *url.URL, href string) string {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	if base != nil {
		u = base.ResolveReference(u)
	}

	q := u.Query()
	for _, param := range []string{"uddg", "q"} {
		target := q.Get(param)
		if target == "" {
			continue
		}
		if t, err := url.Parse(target); err == nil && isWebURL(t) && t.Host != u.Host {
			return t.String()
		}
	}

	if !isWebURL(u) {
		return ""
	}
	return u.String()
}

func isWebURL(u *url.URL) bool {
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
