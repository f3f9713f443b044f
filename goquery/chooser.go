package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"github.com/lexcrawl/lexcrawl"
)

// Default validation thresholds. A link selector must yield this many
// on-site article URLs and a body selector this much text before either is
// considered working.
const (
	DefaultMinLinks      = 3
	DefaultMinBodyLength = 100
)

// A candidate this good ends the search early; later candidates cannot be
// meaningfully better.
const (
	earlyExitLinkCount  = 10
	earlyExitBodyLength = 500
)

// Chooser picks the best working candidate from a ranked list by executing
// each against the page and keeping the one with the most results.
type Chooser struct {
	minLinks      int
	minBodyLength int
}

var _ lexcrawl.SelectorChooser = (*Chooser)(nil)

// NewChooser returns a Chooser with the given validation thresholds.
// Non-positive values fall back to the defaults.
func NewChooser(minLinks, minBodyLength int) *Chooser {
	if minLinks <= 0 {
		minLinks = DefaultMinLinks
	}
	if minBodyLength <= 0 {
		minBodyLength = DefaultMinBodyLength
	}
	return &Chooser{minLinks: minLinks, minBodyLength: minBodyLength}
}

// ChooseBest evaluates candidates in order and returns the one yielding the
// most results, with its result count and samples. Link candidates only
// count URLs that look like on-site articles; body candidates must clear
// the minimum text length. When nothing passes, the first candidate is
// returned with a zero count so the field still gets a selector recorded.
func (c *Chooser) ChooseBest(pageHTML string, candidates []lexcrawl.SelectorCandidate, field lexcrawl.SelectorField, baseURL, baseDomain string) (lexcrawl.SelectorCandidate, int, []string) {
	if len(candidates) == 0 {
		return lexcrawl.SelectorCandidate{}, 0, nil
	}

	doc, docErr := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))

	// Parsed lazily since most candidate lists are CSS-only.
	var root *html.Node
	var rootErr error
	pathRoot := func() *html.Node {
		if root == nil && rootErr == nil {
			root, rootErr = htmlquery.Parse(strings.NewReader(pageHTML))
		}
		return root
	}

	var best lexcrawl.SelectorCandidate
	bestCount := 0
	var bestSamples []string
	found := false

	for _, candidate := range candidates {
		var res lexcrawl.TestResult
		if candidate.Kind == lexcrawl.KindXPathText {
			if r := pathRoot(); r != nil {
				res = testPath(r, candidate.Expr)
			}
		} else if docErr == nil {
			res = testCSS(doc, candidate, baseURL)
		}
		if !res.OK {
			continue
		}

		count, samples := res.Count, res.Samples

		if field == lexcrawl.FieldArticleLinks {
			samples = filterArticleLinks(samples, baseDomain)
			count = len(samples)
			if count < c.minLinks {
				continue
			}
		}
		if field == lexcrawl.FieldArticleBody && totalLength(samples) < c.minBodyLength {
			continue
		}

		if count > bestCount {
			best, bestCount, bestSamples = candidate, count, samples
			found = true
		}

		if field == lexcrawl.FieldArticleLinks && count >= earlyExitLinkCount {
			break
		}
		if field == lexcrawl.FieldArticleBody && totalLength(samples) >= earlyExitBodyLength {
			break
		}
	}

	if !found {
		return candidates[0], 0, nil
	}
	return best, bestCount, bestSamples
}

func filterArticleLinks(urls []string, baseDomain string) []string {
	var valid []string
	for _, u := range urls {
		if lexcrawl.IsArticleURL(u, baseDomain) {
			valid = append(valid, u)
		}
	}
	return valid
}

func totalLength(samples []string) int {
	n := 0
	for _, s := range samples {
		n += len(s)
	}
	return n
}
