package crawl

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"github.com/lexcrawl/lexcrawl"
)

// extractValues evaluates a persisted selector against page markup and
// returns every value it yields, uncapped. Unlike selector testing during
// config generation, crawling wants the full result set: every article
// link on the page, every body text node.
func extractValues(pageHTML string, candidate lexcrawl.SelectorCandidate, baseURL string) []string {
	if candidate.Kind == lexcrawl.KindXPathText {
		root, err := htmlquery.Parse(strings.NewReader(pageHTML))
		if err != nil {
			return nil
		}
		nodes, err := htmlquery.QueryAll(root, candidate.Expr)
		if err != nil {
			return nil
		}
		var values []string
		for _, n := range nodes {
			if n.Type != html.TextNode {
				continue
			}
			if text := strings.TrimSpace(n.Data); text != "" {
				values = append(values, text)
			}
		}
		return values
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil
	}

	var values []string
	doc.Find(candidate.Expr).Each(func(_ int, s *goquery.Selection) {
		switch candidate.Kind {
		case lexcrawl.KindCSSHref:
			if href, ok := s.Attr("href"); ok && href != "" {
				values = append(values, resolveURL(href, baseURL))
			}
		case lexcrawl.KindCSSAttr:
			if v, ok := s.Attr(candidate.Attr); ok && v != "" {
				values = append(values, v)
			}
		default:
			if text := strings.TrimSpace(s.Text()); text != "" {
				values = append(values, text)
			}
		}
	})
	return values
}

// extractFirst returns the first value the selector yields, or "".
func extractFirst(pageHTML string, candidate lexcrawl.SelectorCandidate, baseURL string) string {
	values := extractValues(pageHTML, candidate, baseURL)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// resolveURL resolves a possibly-relative href against the page URL.
func resolveURL(href, baseURL string) string {
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

// skippableLink reports whether a link target cannot be fetched over HTTP.
func skippableLink(href string) bool {
	lower := strings.ToLower(href)
	return strings.HasPrefix(lower, "javascript:") || strings.HasPrefix(lower, "mailto:")
}
