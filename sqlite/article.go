package sqlite

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/lexcrawl/lexcrawl"
)

// Compile-time interface verification.
var _ lexcrawl.ArticleService = (*ArticleService)(nil)

// ArticleService implements lexcrawl.ArticleService using SQLite.
type ArticleService struct {
	db *DB
}

// NewArticleService creates a new ArticleService.
func NewArticleService(db *DB) *ArticleService {
	return &ArticleService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64String(content))
	return hex.EncodeToString(b)
}

// WriteArticle stores an accepted article. Re-crawled URLs are ignored;
// the crawl frontier already deduplicates within a run, this covers
// repeated runs against the same database.
func (s *ArticleService) WriteArticle(ctx context.Context, article *lexcrawl.Article) error {
	if err := article.Validate(); err != nil {
		return err
	}

	article.ID = uuid.New().String()
	if article.ScrapedAt.IsZero() {
		article.ScrapedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO articles (id, site_name, url, language, confidence, title, body_text, text, content_hash, published_at, scraped_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO NOTHING
	`, article.ID, article.SiteName, article.URL, article.Language, article.Confidence,
		article.Title, article.BodyText, article.Text, hashContent(article.Text),
		article.PublishedAt, article.ScrapedAt.Format(time.RFC3339))

	return err
}

// FindArticles retrieves articles matching the filter, most recently
// scraped first.
func (s *ArticleService) FindArticles(ctx context.Context, filter lexcrawl.ArticleFilter) ([]*lexcrawl.Article, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, site_name, url, language, confidence, title, body_text, text, published_at, scraped_at FROM articles WHERE 1=1")

	if filter.SiteName != nil {
		query.WriteString(" AND site_name = ?")
		args = append(args, *filter.SiteName)
	}
	if filter.Language != nil {
		query.WriteString(" AND language = ?")
		args = append(args, *filter.Language)
	}

	query.WriteString(" ORDER BY scraped_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*lexcrawl.Article
	for rows.Next() {
		var article lexcrawl.Article
		var scrapedAt string

		if err := rows.Scan(&article.ID, &article.SiteName, &article.URL, &article.Language,
			&article.Confidence, &article.Title, &article.BodyText, &article.Text,
			&article.PublishedAt, &scrapedAt); err != nil {
			return nil, err
		}

		article.ScrapedAt, err = parseRFC3339(scrapedAt, "scraped_at")
		if err != nil {
			return nil, err
		}

		articles = append(articles, &article)
	}

	return articles, rows.Err()
}
