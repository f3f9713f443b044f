// Package pdf provides plain-text extraction from PDF payloads.
package pdf

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/lexcrawl/lexcrawl"
)

// Ensure Extractor implements lexcrawl.TextExtractor at compile time.
var _ lexcrawl.TextExtractor = (*Extractor)(nil)

// DefaultMaxPages bounds how many pages are read per document. Language
// identification needs a sample, not the whole text.
const DefaultMaxPages = 10

// Extractor reads text from PDF payloads using the ledongthuc/pdf parser.
type Extractor struct {
	maxPages int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMaxPages overrides the page cap.
func WithMaxPages(n int) Option {
	return func(e *Extractor) { e.maxPages = n }
}

// NewExtractor creates an Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractText returns the plain text of the document's first pages.
func (e *Extractor) ExtractText(data []byte) (text string, err error) {
	// The underlying parser panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = lexcrawl.Errorf(lexcrawl.EINTERNAL, "pdf parse failure: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", lexcrawl.Errorf(lexcrawl.EINVALID, "cannot read pdf: %v", err)
	}

	var b strings.Builder
	pages := reader.NumPage()
	if pages > e.maxPages {
		pages = e.maxPages
	}
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(pageText)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String()), nil
}
