package lexcrawl

import "context"

// SearchResult is one seed candidate scraped from a search engine.
type SearchResult struct {
	Keyword      string `json:"keyword"`
	URL          string `json:"url"`
	Title        string `json:"title,omitempty"`
	Snippet      string `json:"snippet,omitempty"`
	Rank         int    `json:"rank"`
	SearchEngine string `json:"searchEngine"`
}

// SearchProvider discovers seed URLs for a set of search terms.
type SearchProvider interface {
	// Discover runs one query per term and returns deduplicated results,
	// capped at maxURLs across all terms.
	Discover(ctx context.Context, terms []string, maxURLs int) ([]SearchResult, error)

	// Name returns the provider's identifier (e.g. "duckduckgo").
	Name() string
}
