package crawl

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lexcrawl/lexcrawl"
)

// Article spider defaults.
const (
	DefaultMaxListingPages    = 10
	DefaultArticleConcurrency = 4
	defaultFrontierSize       = 100_000
	frontierFalsePositiveRate = 0.001
)

// ArticleStats summarizes one article crawl run.
type ArticleStats struct {
	PagesVisited int
	LinksFound   int
	Accepted     int
	Rejected     int
	Errors       int
}

// ArticleSpider crawls configured sites, extracts articles with each
// site's persisted selectors, and keeps those in the target language.
type ArticleSpider struct {
	fetcher     lexcrawl.Fetcher
	validator   lexcrawl.LanguageValidator
	writer      lexcrawl.ArticleWriter
	fallback    lexcrawl.Extractor
	limiter     lexcrawl.DomainLimiter
	logger      *slog.Logger
	maxPages    int
	concurrency int
	retryDelays []time.Duration
}

// ArticleOption configures an ArticleSpider.
type ArticleOption func(*ArticleSpider)

// WithFallbackExtractor sets a boilerplate-stripping extractor used when a
// site's selectors yield no text for a page.
func WithFallbackExtractor(e lexcrawl.Extractor) ArticleOption {
	return func(s *ArticleSpider) { s.fallback = e }
}

// WithArticleLimiter sets the per-domain rate limiter.
func WithArticleLimiter(l lexcrawl.DomainLimiter) ArticleOption {
	return func(s *ArticleSpider) { s.limiter = l }
}

// WithMaxListingPages bounds how many listing pages are paginated through
// per site.
func WithMaxListingPages(n int) ArticleOption {
	return func(s *ArticleSpider) { s.maxPages = n }
}

// WithArticleConcurrency sets how many article pages are fetched in
// parallel per listing page.
func WithArticleConcurrency(n int) ArticleOption {
	return func(s *ArticleSpider) { s.concurrency = n }
}

// WithArticleLogger sets the logger.
func WithArticleLogger(logger *slog.Logger) ArticleOption {
	return func(s *ArticleSpider) { s.logger = logger }
}

// WithArticleRetryDelays overrides the fetch retry backoff delays.
func WithArticleRetryDelays(delays []time.Duration) ArticleOption {
	return func(s *ArticleSpider) { s.retryDelays = delays }
}

// NewArticleSpider creates an article spider writing accepted articles
// through the given writer.
func NewArticleSpider(fetcher lexcrawl.Fetcher, validator lexcrawl.LanguageValidator, writer lexcrawl.ArticleWriter, opts ...ArticleOption) *ArticleSpider {
	s := &ArticleSpider{
		fetcher:     fetcher,
		validator:   validator,
		writer:      writer,
		limiter:     NewDomainLimiter(1),
		logger:      slog.Default(),
		maxPages:    DefaultMaxListingPages,
		concurrency: DefaultArticleConcurrency,
		retryDelays: DefaultRetryDelays(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// siteSelectors is a config's selector set parsed into executable form.
type siteSelectors struct {
	links      lexcrawl.SelectorCandidate
	pagination *lexcrawl.SelectorCandidate
	title      *lexcrawl.SelectorCandidate
	body       *lexcrawl.SelectorCandidate
	date       *lexcrawl.SelectorCandidate
}

func parseSiteSelectors(config *lexcrawl.SiteConfig) (*siteSelectors, error) {
	if config.Selectors.ArticleLinks == nil {
		return nil, lexcrawl.Errorf(lexcrawl.EINVALID, "site %q has no article links selector", config.Name)
	}
	links, err := lexcrawl.ParseSelector(*config.Selectors.ArticleLinks)
	if err != nil {
		return nil, err
	}

	parsed := &siteSelectors{links: links}
	optional := func(expr *string) (*lexcrawl.SelectorCandidate, error) {
		if expr == nil || *expr == "" {
			return nil, nil
		}
		c, err := lexcrawl.ParseSelector(*expr)
		if err != nil {
			return nil, err
		}
		return &c, nil
	}
	if parsed.pagination, err = optional(config.Selectors.Pagination); err != nil {
		return nil, err
	}
	if parsed.title, err = optional(config.Selectors.ArticleTitle); err != nil {
		return nil, err
	}
	if parsed.body, err = optional(config.Selectors.ArticleBody); err != nil {
		return nil, err
	}
	if parsed.date, err = optional(config.Selectors.ArticleDate); err != nil {
		return nil, err
	}
	return parsed, nil
}

// Crawl walks every usable site config: listing pages are paginated up to
// the per-site bound, article links are fetched concurrently, and each
// extracted article is kept only when the language validator accepts it.
// Per-site and per-article failures are counted, never fatal.
func (s *ArticleSpider) Crawl(ctx context.Context, configs []lexcrawl.SiteConfig, targetCodes []string) (*ArticleStats, error) {
	stats := &ArticleStats{}
	var mu sync.Mutex
	frontier := NewFrontier(defaultFrontierSize, frontierFalsePositiveRate)

	for i := range configs {
		config := &configs[i]
		if config.Failed {
			continue
		}
		if err := config.Validate(); err != nil {
			s.logger.Warn("skipping unusable site config", "site", config.Name, "error", err)
			continue
		}
		selectors, err := parseSiteSelectors(config)
		if err != nil {
			s.logger.Warn("skipping site with bad selectors", "site", config.Name, "error", err)
			continue
		}
		if err := s.crawlSite(ctx, config, selectors, targetCodes, frontier, stats, &mu); err != nil {
			if ctx.Err() != nil {
				return stats, ctx.Err()
			}
		}
	}
	return stats, nil
}

func (s *ArticleSpider) crawlSite(ctx context.Context, config *lexcrawl.SiteConfig, selectors *siteSelectors, targetCodes []string, frontier *Frontier, stats *ArticleStats, mu *sync.Mutex) error {
	domain := config.AllowedDomain
	page := config.StartURL
	frontier.Push(lexcrawl.Link{URL: page})

	for visited := 0; visited < s.maxPages; visited++ {
		if err := s.limiter.Wait(ctx, domain); err != nil {
			return err
		}
		pageHTML, err := FetchWithRetryDelays(ctx, page, s.fetcher.Fetch, s.logger, s.retryDelays)
		if err != nil {
			s.logger.Warn("listing page fetch failed", "site", config.Name, "url", page, "error", err)
			mu.Lock()
			stats.Errors++
			mu.Unlock()
			return nil
		}
		mu.Lock()
		stats.PagesVisited++
		mu.Unlock()

		links := extractValues(pageHTML, selectors.links, page)
		s.logger.Info("listing page parsed", "site", config.Name, "url", page, "links", len(links))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.concurrency)
		for _, link := range links {
			if skippableLink(link) {
				continue
			}
			if !frontier.Push(lexcrawl.Link{URL: link, Source: page}) {
				continue
			}
			mu.Lock()
			stats.LinksFound++
			mu.Unlock()

			g.Go(func() error {
				s.crawlArticle(gctx, config, selectors, targetCodes, link, stats, mu)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		next := s.nextPage(pageHTML, selectors, page, frontier)
		if next == "" {
			return nil
		}
		page = next
	}
	return nil
}

// nextPage returns the next listing page URL, or "" when pagination ends.
func (s *ArticleSpider) nextPage(pageHTML string, selectors *siteSelectors, page string, frontier *Frontier) string {
	if selectors.pagination == nil {
		return ""
	}
	next := extractFirst(pageHTML, *selectors.pagination, page)
	if next == "" || skippableLink(next) {
		return ""
	}
	if !frontier.Push(lexcrawl.Link{URL: next, Source: page}) {
		return ""
	}
	return next
}

func (s *ArticleSpider) crawlArticle(ctx context.Context, config *lexcrawl.SiteConfig, selectors *siteSelectors, targetCodes []string, url string, stats *ArticleStats, mu *sync.Mutex) {
	if err := s.limiter.Wait(ctx, config.AllowedDomain); err != nil {
		return
	}
	pageHTML, err := FetchWithRetryDelays(ctx, url, s.fetcher.Fetch, s.logger, s.retryDelays)
	if err != nil {
		s.logger.Warn("article fetch failed", "site", config.Name, "url", url, "error", err)
		mu.Lock()
		stats.Errors++
		mu.Unlock()
		return
	}

	article := s.parseArticle(pageHTML, url, config, selectors)
	if article == nil {
		s.logger.Debug("no text found", "site", config.Name, "url", url)
		return
	}

	decision := s.validator.Validate(article.Text, targetCodes, false)
	if !decision.IsTarget {
		s.logger.Info("skipping off-target article",
			"site", config.Name, "url", url, "language", decision.Code, "confidence", decision.Confidence)
		mu.Lock()
		stats.Rejected++
		mu.Unlock()
		return
	}
	article.Language = decision.Code
	article.Confidence = decision.Confidence

	if err := s.writer.WriteArticle(ctx, article); err != nil {
		s.logger.Error("article write failed", "site", config.Name, "url", url, "error", err)
		mu.Lock()
		stats.Errors++
		mu.Unlock()
		return
	}
	s.logger.Info("article accepted",
		"site", config.Name, "url", url, "language", decision.Code, "confidence", decision.Confidence)
	mu.Lock()
	stats.Accepted++
	mu.Unlock()
}

// parseArticle extracts an article from page markup using the site's
// selectors, falling back to the boilerplate extractor when they yield
// nothing. Returns nil when no text could be extracted at all.
func (s *ArticleSpider) parseArticle(pageHTML, url string, config *lexcrawl.SiteConfig, selectors *siteSelectors) *lexcrawl.Article {
	var title, body, date string
	if selectors.title != nil {
		title = extractFirst(pageHTML, *selectors.title, "")
	}
	if selectors.body != nil {
		body = strings.Join(extractValues(pageHTML, *selectors.body, ""), "\n")
	}
	if selectors.date != nil {
		date = extractFirst(pageHTML, *selectors.date, "")
	}

	if title == "" && body == "" && s.fallback != nil {
		res, err := s.fallback.Extract(pageHTML)
		if err == nil && res != nil {
			title = strings.TrimSpace(res.Title)
			body = strings.TrimSpace(res.Text)
		}
	}

	var full string
	switch {
	case title != "" && body != "":
		full = title + "\n\n" + body
	case title != "":
		full = title
	default:
		full = body
	}
	if full == "" {
		return nil
	}

	return &lexcrawl.Article{
		SiteName:    config.Name,
		URL:         url,
		Title:       title,
		BodyText:    body,
		Text:        full,
		PublishedAt: date,
		ScrapedAt:   time.Now().UTC(),
	}
}
