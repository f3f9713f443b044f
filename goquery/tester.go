package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"github.com/lexcrawl/lexcrawl"
)

// Per-kind caps on collected samples. Evaluation stops looking at matches
// beyond the cap, so counts are capped too.
const (
	maxTextSamples = 5
	maxAttrSamples = 5
	maxHrefSamples = 10
	maxPathSamples = 20
	minPathTextLen = 10
)

// Tester evaluates a single selector candidate against page markup. Any
// evaluation failure, including malformed expressions, yields a zero
// TestResult rather than an error so callers can treat a broken candidate
// the same as one that matched nothing.
type Tester struct{}

var _ lexcrawl.SelectorTester = (*Tester)(nil)

// NewTester returns a new Tester.
func NewTester() *Tester {
	return &Tester{}
}

// Test executes the candidate against the page. For href extraction,
// relative values are resolved against baseURL when one is given.
func (t *Tester) Test(candidate lexcrawl.SelectorCandidate, pageHTML string, baseURL string) lexcrawl.TestResult {
	if candidate.Kind == lexcrawl.KindXPathText {
		root, err := htmlquery.Parse(strings.NewReader(pageHTML))
		if err != nil {
			return lexcrawl.TestResult{}
		}
		return testPath(root, candidate.Expr)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return lexcrawl.TestResult{}
	}
	return testCSS(doc, candidate, baseURL)
}

// testCSS evaluates a CSS-kind candidate against an already-parsed document.
// Expressions cascadia cannot compile match nothing, so malformed candidates
// fall out as failed results.
func testCSS(doc *goquery.Document, candidate lexcrawl.SelectorCandidate, baseURL string) lexcrawl.TestResult {
	sel := doc.Find(candidate.Expr)
	if sel.Length() == 0 {
		return lexcrawl.TestResult{}
	}

	var samples []string
	switch candidate.Kind {
	case lexcrawl.KindCSSHref:
		sel.Slice(0, min(sel.Length(), maxHrefSamples)).Each(func(_ int, s *goquery.Selection) {
			href, ok := s.Attr("href")
			if !ok || href == "" {
				return
			}
			samples = append(samples, resolveHref(href, baseURL))
		})
	case lexcrawl.KindCSSAttr:
		sel.Slice(0, min(sel.Length(), maxAttrSamples)).Each(func(_ int, s *goquery.Selection) {
			if v, ok := s.Attr(candidate.Attr); ok && v != "" {
				samples = append(samples, v)
			}
		})
	case lexcrawl.KindCSSText:
		sel.Slice(0, min(sel.Length(), maxTextSamples)).Each(func(_ int, s *goquery.Selection) {
			if text := strings.TrimSpace(s.Text()); text != "" {
				samples = append(samples, text)
			}
		})
	default:
		// Bare CSS reports that elements matched without extracting values.
		return lexcrawl.TestResult{OK: true, Count: sel.Length()}
	}

	if len(samples) == 0 {
		return lexcrawl.TestResult{}
	}
	return lexcrawl.TestResult{OK: true, Count: len(samples), Samples: samples}
}

// testPath evaluates a structural path query, collecting text nodes long
// enough to be meaningful content rather than markup noise.
func testPath(root *html.Node, expr string) lexcrawl.TestResult {
	nodes, err := htmlquery.QueryAll(root, expr)
	if err != nil {
		return lexcrawl.TestResult{}
	}

	var samples []string
	for i, n := range nodes {
		if i >= maxPathSamples {
			break
		}
		if n.Type != html.TextNode {
			continue
		}
		text := strings.TrimSpace(n.Data)
		if len(text) > minPathTextLen {
			samples = append(samples, text)
		}
	}
	if len(samples) == 0 {
		return lexcrawl.TestResult{}
	}
	return lexcrawl.TestResult{OK: true, Count: len(samples), Samples: samples}
}

// resolveHref resolves a relative href against the page URL. Absolute
// values and unparseable bases pass through unchanged.
func resolveHref(href, baseURL string) string {
	if baseURL == "" || strings.HasPrefix(href, "http") {
		return href
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
