package lexcrawl

import "context"

// Fetcher retrieves page markup from URLs.
// Implementations decide transport details; the context controls timeout
// and cancellation.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (html string, err error)
}

// Downloader retrieves raw bytes from URLs, for binary payloads such as
// PDF files where string conversion would be wasteful.
type Downloader interface {
	Download(ctx context.Context, url string) ([]byte, error)
}

// Prober inspects page markup for rendering requirements.
type Prober interface {
	// NeedsJS reports whether the page's content is likely rendered
	// client-side. This is a heuristic; false positives and negatives
	// are acceptable.
	NeedsJS(html string) bool
}

// Extractor extracts main content from HTML pages, removing boilerplate.
// The article driver uses it as a fallback when configured selectors
// yield nothing.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// ExtractResult holds boilerplate-free content extracted from a page.
type ExtractResult struct {
	Title string
	Text  string
}
