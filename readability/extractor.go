// Package readability provides boilerplate-stripping content extraction
// using the go-readability library.
package readability

import (
	"strings"

	"github.com/go-shiori/go-readability"

	"github.com/lexcrawl/lexcrawl"
)

// Ensure Extractor implements lexcrawl.Extractor at compile time.
var _ lexcrawl.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML. It is
// an alternative to the trafilatura extractor for pages where Mozilla's
// readability heuristics work better.
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

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &lexcrawl.ExtractResult{
		Title: strings.TrimSpace(article.Title),
		Text:  strings.TrimSpace(article.TextContent),
	}, nil
}
