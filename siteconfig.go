package lexcrawl

import (
	"net/url"
	"strings"
)

// SiteConfig is the persisted extraction recipe for one target site.
// It is created by the config generator from a single seed URL, immutable
// once persisted, and a read-only input to crawl drivers.
type SiteConfig struct {
	Name          string     `json:"name"`
	AllowedDomain string     `json:"allowedDomain"`
	StartURL      string     `json:"startUrl"`
	NeedsJS       bool       `json:"needsJs"`
	Selectors     Selectors  `json:"selectors"`
	Validation    Validation `json:"validation"`

	// Failed marks a per-seed error record in a batch output. When set,
	// URL and Message carry the failure detail and the rest of the
	// record is zero.
	Failed  bool   `json:"error,omitempty"`
	URL     string `json:"url,omitempty"`
	Message string `json:"message,omitempty"`
}

// Selectors maps config fields to persisted selector expressions.
// A nil field means "not found" and is serialized as an explicit null.
type Selectors struct {
	ArticleLinks *string `json:"articleLinks"`
	Pagination   *string `json:"pagination"`
	WaitFor      *string `json:"waitFor"`
	ArticleTitle *string `json:"articleTitle"`
	ArticleBody  *string `json:"articleBody"`
	ArticleDate  *string `json:"articleDate"`
}

// Validation records per-field diagnostics from config generation.
// Informational only; crawl drivers never read it.
type Validation struct {
	ArticleLinksFound int    `json:"articleLinksFound,omitempty"`
	PaginationFound   bool   `json:"paginationFound,omitempty"`
	TitleWorks        bool   `json:"titleWorks,omitempty"`
	TitleSample       string `json:"titleSample,omitempty"`
	BodyWorks         bool   `json:"bodyWorks,omitempty"`
	BodyParagraphs    int    `json:"bodyParagraphs,omitempty"`
	BodyLength        int    `json:"bodyLength,omitempty"`
	DateWorks         bool   `json:"dateWorks,omitempty"`
	DateSample        string `json:"dateSample,omitempty"`
	TestURL           string `json:"testUrl,omitempty"`
}

// Validate returns an error if the config is not usable by a crawl driver.
func (c *SiteConfig) Validate() error {
	if c.Failed {
		return nil
	}
	if c.StartURL == "" {
		return Errorf(EINVALID, "site config start URL required")
	}
	if c.AllowedDomain == "" {
		return Errorf(EINVALID, "site config allowed domain required")
	}
	return nil
}

// DomainOf extracts the registrable site domain from a URL, with any
// leading "www." stripped.
func DomainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Host, "www.")
}

// SiteNameFor derives a short site name from a domain
// (e.g. "example.com" → "example").
func SiteNameFor(domain string) string {
	if i := strings.Index(domain, "."); i > 0 {
		return domain[:i]
	}
	return domain
}
