package http

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/lexcrawl/lexcrawl"
)

// searchBase is the no-JavaScript DuckDuckGo results endpoint.
const searchBase = "https://html.duckduckgo.com/html/?q="

var _ lexcrawl.SearchProvider = (*DuckDuckGo)(nil)

// DuckDuckGo discovers seed URLs by scraping DuckDuckGo's HTML results
// page. Result links are redirect wrappers; the destination is carried in
// the "uddg" query parameter.
type DuckDuckGo struct {
	fetcher lexcrawl.Fetcher
	logger  *slog.Logger
}

// DuckDuckGoOption configures a DuckDuckGo provider.
type DuckDuckGoOption func(*DuckDuckGo)

// WithSearchLogger sets the logger for per-term progress reporting.
func WithSearchLogger(logger *slog.Logger) DuckDuckGoOption {
	return func(d *DuckDuckGo) { d.logger = logger }
}

// NewDuckDuckGo creates a search provider fetching through the given
// fetcher.
func NewDuckDuckGo(fetcher lexcrawl.Fetcher, opts ...DuckDuckGoOption) *DuckDuckGo {
	d := &DuckDuckGo{
		fetcher: fetcher,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Name returns the provider identifier.
func (d *DuckDuckGo) Name() string {
	return "duckduckgo"
}

// Discover runs one query per term, in order, and collects deduplicated
// result URLs up to maxURLs across all terms. A failed query logs and
// moves on to the next term rather than failing the discovery run.
func (d *DuckDuckGo) Discover(ctx context.Context, terms []string, maxURLs int) ([]lexcrawl.SearchResult, error) {
	seen := make(map[string]bool)
	var results []lexcrawl.SearchResult

	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		if len(results) >= maxURLs {
			break
		}

		pageHTML, err := d.fetcher.Fetch(ctx, searchBase+url.QueryEscape(term))
		if err != nil {
			d.logger.Warn("search query failed", "term", term, "error", err)
			continue
		}

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
		if err != nil {
			d.logger.Warn("search results unparseable", "term", term, "error", err)
			continue
		}

		doc.Find(".result").EachWithBreak(func(i int, s *goquery.Selection) bool {
			if len(results) >= maxURLs {
				return false
			}

			raw, ok := s.Find(".result__url").Attr("href")
			if !ok || raw == "" {
				return true
			}
			target := unwrapRedirect(raw)
			if target == "" || seen[target] {
				return true
			}
			seen[target] = true

			results = append(results, lexcrawl.SearchResult{
				Keyword:      term,
				URL:          target,
				Title:        strings.TrimSpace(s.Find(".result__title").Text()),
				Snippet:      strings.TrimSpace(s.Find(".result__snippet").Text()),
				Rank:         i + 1,
				SearchEngine: d.Name(),
			})
			return true
		})

		d.logger.Info("search term processed", "term", term, "total_urls", len(results))
	}

	return results, nil
}

// unwrapRedirect extracts the destination URL from a DuckDuckGo redirect
// link. Returns "" when the link carries no destination.
func unwrapRedirect(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Query().Get("uddg")
}
