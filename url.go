package lexcrawl

import (
	"net/url"
	"strings"
)

// articlePathExclusions lists path segments that mark listing, taxonomy,
// or utility pages rather than articles.
var articlePathExclusions = []string{
	"/category/",
	"/tag/",
	"/author/",
	"/page/",
	"/archive/",
	"/search/",
	"/feed/",
	"/wp-json/",
	"/wp-admin/",
	"/wp-content/",
	"/login",
	"/register",
	"/about",
	"/contact",
	"/privacy",
	"/terms",
}

// IsArticleURL reports whether a URL plausibly points at an article on the
// given site: the host contains baseDomain, the path is not empty or root,
// and no excluded segment appears in the path.
//
// The domain check is deliberately permissive substring containment; see
// DESIGN.md for why it is not tightened to exact registrable-domain
// matching.
func IsArticleURL(rawURL, baseDomain string) bool {
	if rawURL == "" {
		return false
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	if !strings.Contains(u.Host, baseDomain) {
		return false
	}

	path := strings.ToLower(u.Path)
	for _, pattern := range articlePathExclusions {
		if strings.Contains(path, pattern) {
			return false
		}
	}

	if path == "" || path == "/" {
		return false
	}

	return true
}
