package fs_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexcrawl/lexcrawl"
	"github.com/lexcrawl/lexcrawl/fs"
)

func TestSeeds(t *testing.T) {
	t.Parallel()

	t.Run("round trip skips blanks and comments", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "seeds", "urls.txt")
		require.NoError(t, fs.WriteSeeds(path, []string{
			"https://example.com/news",
			"",
			"https://balita.example.org",
		}))

		// Hand-edited files carry comments and stray whitespace.
		f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
		require.NoError(t, err)
		_, err = f.WriteString("# disabled site\n  https://spaced.example.net  \n\n")
		require.NoError(t, err)
		require.NoError(t, f.Close())

		seeds, err := fs.ReadSeeds(path)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://example.com/news",
			"https://balita.example.org",
			"https://spaced.example.net",
		}, seeds)
	})

	t.Run("missing file is an internal error", func(t *testing.T) {
		t.Parallel()

		_, err := fs.ReadSeeds(filepath.Join(t.TempDir(), "nope.txt"))
		require.Error(t, err)
		assert.Equal(t, lexcrawl.EINTERNAL, lexcrawl.ErrorCode(err))
	})
}

func TestSiteConfigs(t *testing.T) {
	t.Parallel()

	t.Run("round trip preserves configs and error records", func(t *testing.T) {
		t.Parallel()

		links := "h2 a::attr(href)"
		configs := []lexcrawl.SiteConfig{
			{
				Name:          "example",
				AllowedDomain: "example.com",
				StartURL:      "https://example.com/news",
				Selectors:     lexcrawl.Selectors{ArticleLinks: &links},
			},
			{Failed: true, URL: "https://down.example.org", Message: "fetch failed"},
		}

		path := filepath.Join(t.TempDir(), "configs", "sites.json")
		require.NoError(t, fs.WriteSiteConfigs(path, configs))

		got, err := fs.ReadSiteConfigs(path)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "example", got[0].Name)
		require.NotNil(t, got[0].Selectors.ArticleLinks)
		assert.Equal(t, links, *got[0].Selectors.ArticleLinks)
		assert.True(t, got[1].Failed)
		assert.Equal(t, "fetch failed", got[1].Message)
	})

	t.Run("malformed file is an invalid error", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "sites.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

		_, err := fs.ReadSiteConfigs(path)
		require.Error(t, err)
		assert.Equal(t, lexcrawl.EINVALID, lexcrawl.ErrorCode(err))
	})
}

func TestArticleFile(t *testing.T) {
	t.Parallel()

	t.Run("appends one JSON line per article", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out", "articles.jsonl")
		w, err := fs.NewArticleFile(path)
		require.NoError(t, err)
		defer w.Close()

		ctx := context.Background()
		require.NoError(t, w.WriteArticle(ctx, &lexcrawl.Article{
			SiteName:  "example",
			URL:       "https://example.com/2024/05/a1",
			Language:  "tl",
			Text:      "Unang balita.",
			ScrapedAt: time.Now().UTC(),
		}))
		require.NoError(t, w.WriteArticle(ctx, &lexcrawl.Article{
			SiteName:  "example",
			URL:       "https://example.com/2024/05/a2",
			Language:  "tl",
			Text:      "Ikalawang balita.",
			ScrapedAt: time.Now().UTC(),
		}))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		require.Len(t, lines, 2)

		var a lexcrawl.Article
		require.NoError(t, json.Unmarshal([]byte(lines[1]), &a))
		assert.Equal(t, "https://example.com/2024/05/a2", a.URL)
		assert.Equal(t, "Ikalawang balita.", a.Text)
	})

	t.Run("rejects articles without text", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "articles.jsonl")
		w, err := fs.NewArticleFile(path)
		require.NoError(t, err)
		defer w.Close()

		err = w.WriteArticle(context.Background(), &lexcrawl.Article{URL: "https://example.com/x"})
		require.Error(t, err)
		assert.Equal(t, lexcrawl.EINVALID, lexcrawl.ErrorCode(err))
	})
}

func TestPDFStore_SavePDF(t *testing.T) {
	t.Parallel()

	t.Run("derives the filename from the URL path", func(t *testing.T) {
		t.Parallel()

		store := fs.NewPDFStore(t.TempDir())

		name, path, err := store.SavePDF(context.Background(), "https://example.com/docs/annual-report.pdf", []byte("%PDF-1.4"))
		require.NoError(t, err)
		assert.Equal(t, "annual-report.pdf", name)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.4", string(data))
	})

	t.Run("appends a counter on collision", func(t *testing.T) {
		t.Parallel()

		store := fs.NewPDFStore(t.TempDir())
		ctx := context.Background()

		name1, _, err := store.SavePDF(ctx, "https://a.example.com/report.pdf", []byte("%PDF one"))
		require.NoError(t, err)
		name2, _, err := store.SavePDF(ctx, "https://b.example.com/report.pdf", []byte("%PDF two"))
		require.NoError(t, err)

		assert.Equal(t, "report.pdf", name1)
		assert.Equal(t, "report_1.pdf", name2)
	})

	t.Run("platform file URLs use the preceding segment", func(t *testing.T) {
		t.Parallel()

		store := fs.NewPDFStore(t.TempDir())

		name, _, err := store.SavePDF(context.Background(), "https://www.scribd.com/document/123456/aklat-ng-bayan/file", []byte("%PDF"))
		require.NoError(t, err)
		assert.Equal(t, "aklat-ng-bayan.pdf", name)
	})

	t.Run("extensionless URLs get a hashed name ending in .pdf", func(t *testing.T) {
		t.Parallel()

		store := fs.NewPDFStore(t.TempDir())

		name, _, err := store.SavePDF(context.Background(), "https://drive.google.com/uc?export=download&id=ABC123", []byte("%PDF"))
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(name, ".pdf"), "got %q", name)
		assert.NotEqual(t, ".pdf", name)
	})
}
