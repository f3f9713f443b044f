// Package trafilatura provides boilerplate-stripping content extraction
// using the go-trafilatura library.
package trafilatura

import (
	"strings"

	"github.com/markusmobius/go-trafilatura"

	"github.com/lexcrawl/lexcrawl"
)

// Ensure Extractor implements lexcrawl.Extractor at compile time.
var _ lexcrawl.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML. The
// article crawl driver uses it as a fallback when a site's configured
// selectors yield nothing.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the page title and main text.
func (e *Extractor) Extract(rawHTML string) (*lexcrawl.ExtractResult, error) {
	if rawHTML == "" {
		return nil, lexcrawl.Errorf(lexcrawl.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	return &lexcrawl.ExtractResult{
		Title: strings.TrimSpace(result.Metadata.Title),
		Text:  strings.TrimSpace(result.ContentText),
	}, nil
}
