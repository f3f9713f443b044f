package lexcrawl

import (
	"context"
	"time"
)

// Article is one accepted article emitted by the article crawl driver.
type Article struct {
	ID          string    `json:"id,omitempty"`
	SiteName    string    `json:"siteName"`
	URL         string    `json:"url"`
	Language    string    `json:"language"`
	Confidence  float64   `json:"confidence"`
	Title       string    `json:"title,omitempty"`
	BodyText    string    `json:"bodyText"`
	Text        string    `json:"text"`
	PublishedAt string    `json:"publishedAt,omitempty"`
	ScrapedAt   time.Time `json:"scrapedAt"`
}

// Validate returns an error if the article contains invalid fields.
func (a *Article) Validate() error {
	if a.URL == "" {
		return Errorf(EINVALID, "article URL required")
	}
	if a.Text == "" {
		return Errorf(EINVALID, "article text required")
	}
	return nil
}

// ArticleWriter persists accepted articles.
type ArticleWriter interface {
	WriteArticle(ctx context.Context, article *Article) error
}

// ArticleService manages stored articles.
type ArticleService interface {
	ArticleWriter

	// FindArticles retrieves articles matching the filter.
	FindArticles(ctx context.Context, filter ArticleFilter) ([]*Article, error)
}

// ArticleFilter selects stored articles.
type ArticleFilter struct {
	SiteName *string
	Language *string

	Offset int
	Limit  int
}

// PDFDocument is one accepted PDF emitted by the PDF crawl driver.
type PDFDocument struct {
	URL        string  `json:"url"`
	SourcePage string  `json:"sourcePage,omitempty"`
	Filename   string  `json:"filename"`
	SavedTo    string  `json:"savedTo"`
	SizeBytes  int     `json:"sizeBytes"`
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
	TextLength int     `json:"textLength"`
}

// PDFStore saves accepted PDF payloads and returns where they landed.
type PDFStore interface {
	// SavePDF writes the payload under a collision-safe filename derived
	// from the URL and returns (filename, full path).
	SavePDF(ctx context.Context, url string, data []byte) (string, string, error)
}

// TextExtractor pulls best-effort plain text out of a PDF payload.
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}
