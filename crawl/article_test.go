package crawl_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexcrawl/lexcrawl"
	"github.com/lexcrawl/lexcrawl/crawl"
	"github.com/lexcrawl/lexcrawl/mock"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }

// acceptUnless returns a validator that rejects text containing the marker
// and accepts everything else as "tl".
func acceptUnless(marker string) *mock.LanguageValidator {
	return &mock.LanguageValidator{
		ValidateFn: func(text string, targetCodes []string, lenient bool) lexcrawl.LanguageDecision {
			if strings.Contains(text, marker) {
				return lexcrawl.LanguageDecision{Code: "en", Confidence: 0.95}
			}
			return lexcrawl.LanguageDecision{IsTarget: true, Code: "tl", Confidence: 0.9}
		},
	}
}

// collectWriter returns a writer that appends accepted articles under a
// lock, since article pages are crawled concurrently.
func collectWriter() (*mock.ArticleService, func() []*lexcrawl.Article) {
	var mu sync.Mutex
	var articles []*lexcrawl.Article
	writer := &mock.ArticleService{
		WriteArticleFn: func(ctx context.Context, article *lexcrawl.Article) error {
			mu.Lock()
			defer mu.Unlock()
			articles = append(articles, article)
			return nil
		},
	}
	return writer, func() []*lexcrawl.Article {
		mu.Lock()
		defer mu.Unlock()
		return articles
	}
}

func siteConfig() lexcrawl.SiteConfig {
	return lexcrawl.SiteConfig{
		Name:          "example",
		AllowedDomain: "example.com",
		StartURL:      "https://example.com/news",
		Selectors: lexcrawl.Selectors{
			ArticleLinks: strPtr("h2.entry-title a::attr(href)"),
			Pagination:   strPtr("a.next::attr(href)"),
			ArticleTitle: strPtr("h1::text"),
			ArticleBody:  strPtr(`//div[@class="content"]//p//text()`),
			ArticleDate:  strPtr(`meta[property="article:published_time"]::attr(content)`),
		},
	}
}

func articlePage(title string, paragraphs ...string) string {
	var b strings.Builder
	b.WriteString(`<html><head><meta property="article:published_time" content="2024-05-17"></head><body><h1>`)
	b.WriteString(title)
	b.WriteString(`</h1><div class="content">`)
	for _, p := range paragraphs {
		b.WriteString("<p>" + p + "</p>")
	}
	b.WriteString(`</div></body></html>`)
	return b.String()
}

func newSpider(fetcher lexcrawl.Fetcher, validator lexcrawl.LanguageValidator, writer lexcrawl.ArticleWriter, opts ...crawl.ArticleOption) *crawl.ArticleSpider {
	base := []crawl.ArticleOption{
		crawl.WithArticleLogger(discard()),
		crawl.WithArticleLimiter(crawl.NewDomainLimiter(10000)),
		crawl.WithArticleRetryDelays([]time.Duration{}),
	}
	return crawl.NewArticleSpider(fetcher, validator, writer, append(base, opts...)...)
}

func TestArticleSpider_Crawl(t *testing.T) {
	t.Parallel()

	t.Run("paginates listings and keeps target-language articles", func(t *testing.T) {
		t.Parallel()

		pages := map[string]string{
			"https://example.com/news": `<html><body>
<h2 class="entry-title"><a href="/2024/05/a1">A1</a></h2>
<h2 class="entry-title"><a href="/2024/05/a2">A2</a></h2>
<a class="next" href="/news/page/2">Next</a>
</body></html>`,
			"https://example.com/news/page/2": `<html><body>
<h2 class="entry-title"><a href="/2024/05/a2">A2 again</a></h2>
<h2 class="entry-title"><a href="/2024/05/a3">A3</a></h2>
<a class="next" href="/news">Back</a>
</body></html>`,
			"https://example.com/2024/05/a1": articlePage("Unang Balita", "Ito ang unang talata.", "Pangalawang talata."),
			"https://example.com/2024/05/a2": articlePage("Foreign Piece", "entirely english content here."),
			"https://example.com/2024/05/a3": articlePage("Ikatlong Balita", "Isa pang artikulo."),
		}
		fetcher := &mock.Fetcher{FetchFn: func(ctx context.Context, url string) (string, error) {
			html, ok := pages[url]
			if !ok {
				return "", lexcrawl.Errorf(lexcrawl.ENOTFOUND, "no page %s", url)
			}
			return html, nil
		}}
		writer, articles := collectWriter()
		spider := newSpider(fetcher, acceptUnless("english"), writer)

		stats, err := spider.Crawl(context.Background(), []lexcrawl.SiteConfig{siteConfig()}, []string{"tl"})
		require.NoError(t, err)

		// The A2 link appears on both listing pages but is only fetched
		// once; the Back link cycles to the start URL and ends pagination.
		assert.Equal(t, 2, stats.PagesVisited)
		assert.Equal(t, 3, stats.LinksFound)
		assert.Equal(t, 2, stats.Accepted)
		assert.Equal(t, 1, stats.Rejected)
		assert.Zero(t, stats.Errors)

		got := articles()
		require.Len(t, got, 2)
		byURL := make(map[string]*lexcrawl.Article)
		for _, a := range got {
			byURL[a.URL] = a
		}
		a1 := byURL["https://example.com/2024/05/a1"]
		require.NotNil(t, a1)
		assert.Equal(t, "example", a1.SiteName)
		assert.Equal(t, "Unang Balita", a1.Title)
		assert.Equal(t, "Ito ang unang talata.\nPangalawang talata.", a1.BodyText)
		assert.Equal(t, "Unang Balita\n\nIto ang unang talata.\nPangalawang talata.", a1.Text)
		assert.Equal(t, "2024-05-17", a1.PublishedAt)
		assert.Equal(t, "tl", a1.Language)
		assert.Equal(t, 0.9, a1.Confidence)
		assert.False(t, a1.ScrapedAt.IsZero())
	})

	t.Run("listing page cap bounds pagination", func(t *testing.T) {
		t.Parallel()

		fetched := 0
		fetcher := &mock.Fetcher{FetchFn: func(ctx context.Context, url string) (string, error) {
			fetched++
			// Every page links to a fresh next page, never terminating on
			// its own.
			return `<html><body><a class="next" href="/news/page/` +
				strings.Repeat("x", fetched) + `">Next</a></body></html>`, nil
		}}
		writer, _ := collectWriter()
		spider := newSpider(fetcher, acceptUnless("english"), writer, crawl.WithMaxListingPages(3))

		stats, err := spider.Crawl(context.Background(), []lexcrawl.SiteConfig{siteConfig()}, []string{"tl"})
		require.NoError(t, err)

		assert.Equal(t, 3, stats.PagesVisited)
	})

	t.Run("error records and selectorless configs are skipped", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{FetchFn: func(ctx context.Context, url string) (string, error) {
			t.Error("nothing should be fetched")
			return "", nil
		}}
		writer, _ := collectWriter()
		spider := newSpider(fetcher, acceptUnless("english"), writer)

		noLinks := siteConfig()
		noLinks.Selectors.ArticleLinks = nil

		stats, err := spider.Crawl(context.Background(), []lexcrawl.SiteConfig{
			{Failed: true, URL: "https://down.example.com", Message: "fetch failed"},
			noLinks,
		}, []string{"tl"})
		require.NoError(t, err)

		assert.Zero(t, stats.PagesVisited)
	})

	t.Run("listing fetch failure counts as an error without aborting", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{FetchFn: func(ctx context.Context, url string) (string, error) {
			return "", lexcrawl.Errorf(lexcrawl.EUNAVAILABLE, "refused")
		}}
		writer, _ := collectWriter()
		spider := newSpider(fetcher, acceptUnless("english"), writer)

		stats, err := spider.Crawl(context.Background(), []lexcrawl.SiteConfig{siteConfig()}, []string{"tl"})
		require.NoError(t, err)

		assert.Equal(t, 1, stats.Errors)
		assert.Zero(t, stats.PagesVisited)
	})

	t.Run("fallback extractor rescues pages the selectors miss", func(t *testing.T) {
		t.Parallel()

		pages := map[string]string{
			"https://example.com/news": `<html><body>
<h2 class="entry-title"><a href="/2024/05/a1">A1</a></h2>
</body></html>`,
			"https://example.com/2024/05/a1": `<html><body><div id="app">Walang kilalang istraktura dito.</div></body></html>`,
		}
		fetcher := &mock.Fetcher{FetchFn: func(ctx context.Context, url string) (string, error) {
			return pages[url], nil
		}}
		extractor := &mock.Extractor{ExtractFn: func(html string) (*lexcrawl.ExtractResult, error) {
			return &lexcrawl.ExtractResult{Title: "Nahanap na Pamagat", Text: "Ang nilalamang nahango."}, nil
		}}
		writer, articles := collectWriter()
		spider := newSpider(fetcher, acceptUnless("english"), writer, crawl.WithFallbackExtractor(extractor))

		config := siteConfig()
		config.Selectors.Pagination = nil

		_, err := spider.Crawl(context.Background(), []lexcrawl.SiteConfig{config}, []string{"tl"})
		require.NoError(t, err)

		got := articles()
		require.Len(t, got, 1)
		assert.Equal(t, "Nahanap na Pamagat\n\nAng nilalamang nahango.", got[0].Text)
	})
}
