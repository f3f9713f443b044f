package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexcrawl/lexcrawl"
	"github.com/lexcrawl/lexcrawl/sqlite"
)

func openDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func testArticle(site, url string, scrapedAt time.Time) *lexcrawl.Article {
	return &lexcrawl.Article{
		SiteName:   site,
		URL:        url,
		Language:   "tl",
		Confidence: 0.9,
		Title:      "Balita",
		BodyText:   "Nilalaman ng balita.",
		Text:       "Balita\n\nNilalaman ng balita.",
		ScrapedAt:  scrapedAt,
	}
}

func TestArticleService_WriteArticle(t *testing.T) {
	t.Parallel()

	t.Run("stores article with generated ID", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewArticleService(openDB(t))
		ctx := context.Background()

		article := testArticle("example", "https://example.com/a1", time.Now().UTC())
		require.NoError(t, svc.WriteArticle(ctx, article))
		assert.NotEmpty(t, article.ID)

		got, err := svc.FindArticles(ctx, lexcrawl.ArticleFilter{})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, article.URL, got[0].URL)
		assert.Equal(t, article.Text, got[0].Text)
		assert.Equal(t, "tl", got[0].Language)
	})

	t.Run("repeated URL does not duplicate", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewArticleService(openDB(t))
		ctx := context.Background()

		require.NoError(t, svc.WriteArticle(ctx, testArticle("example", "https://example.com/a1", time.Now().UTC())))
		require.NoError(t, svc.WriteArticle(ctx, testArticle("example", "https://example.com/a1", time.Now().UTC())))

		got, err := svc.FindArticles(ctx, lexcrawl.ArticleFilter{})
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("rejects article without text", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewArticleService(openDB(t))

		err := svc.WriteArticle(context.Background(), &lexcrawl.Article{URL: "https://example.com/x"})
		require.Error(t, err)
		assert.Equal(t, lexcrawl.EINVALID, lexcrawl.ErrorCode(err))
	})
}

func TestArticleService_FindArticles(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T) *sqlite.ArticleService {
		t.Helper()
		svc := sqlite.NewArticleService(openDB(t))
		ctx := context.Background()
		base := time.Date(2024, 5, 17, 12, 0, 0, 0, time.UTC)

		a := testArticle("example", "https://example.com/a1", base)
		require.NoError(t, svc.WriteArticle(ctx, a))
		b := testArticle("example", "https://example.com/a2", base.Add(time.Hour))
		require.NoError(t, svc.WriteArticle(ctx, b))
		c := testArticle("balita", "https://balita.example.org/b1", base.Add(2*time.Hour))
		c.Language = "ceb"
		require.NoError(t, svc.WriteArticle(ctx, c))
		return svc
	}

	t.Run("filters by site name", func(t *testing.T) {
		t.Parallel()

		svc := seed(t)
		site := "example"
		got, err := svc.FindArticles(context.Background(), lexcrawl.ArticleFilter{SiteName: &site})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("filters by language", func(t *testing.T) {
		t.Parallel()

		svc := seed(t)
		lang := "ceb"
		got, err := svc.FindArticles(context.Background(), lexcrawl.ArticleFilter{Language: &lang})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "https://balita.example.org/b1", got[0].URL)
	})

	t.Run("orders newest first and paginates", func(t *testing.T) {
		t.Parallel()

		svc := seed(t)
		got, err := svc.FindArticles(context.Background(), lexcrawl.ArticleFilter{Limit: 2})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "https://balita.example.org/b1", got[0].URL)
		assert.Equal(t, "https://example.com/a2", got[1].URL)

		rest, err := svc.FindArticles(context.Background(), lexcrawl.ArticleFilter{Limit: 2, Offset: 2})
		require.NoError(t, err)
		require.Len(t, rest, 1)
		assert.Equal(t, "https://example.com/a1", rest[0].URL)
	})
}
