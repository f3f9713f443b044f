// Package goquery implements CMS-aware selector evaluation on top of
// github.com/PuerkitoBio/goquery, with structural path queries handled by
// github.com/antchfx/htmlquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/lexcrawl/lexcrawl"
)

// Script sources containing any of these markers indicate a client-side
// rendering framework.
var jsFrameworkMarkers = []string{"react", "vue", "angular", "next"}

// Pages whose stripped visible text is shorter than this are assumed to
// render their content client-side.
const minVisibleTextLength = 500

// Prober inspects static markup for signs that a page needs a JavaScript
// runtime to render its content.
type Prober struct{}

var _ lexcrawl.Prober = (*Prober)(nil)

// NewProber returns a new Prober.
func NewProber() *Prober {
	return &Prober{}
}

// NeedsJS reports whether the page likely requires client-side rendering:
// either an external script references a known framework, or the visible
// text is too short to be a server-rendered page. Unparseable markup counts
// as needing rendering since its content cannot be inspected.
func (p *Prober) NeedsJS(pageHTML string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return true
	}

	framework := false
	doc.Find("script[src]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		src, _ := s.Attr("src")
		src = strings.ToLower(src)
		for _, marker := range jsFrameworkMarkers {
			if strings.Contains(src, marker) {
				framework = true
				return false
			}
		}
		return true
	})
	if framework {
		return true
	}

	text := strings.Join(strings.Fields(doc.Text()), " ")
	return len(text) < minVisibleTextLength
}
