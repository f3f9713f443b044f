// Package configgen generates site configs from seed URLs by detecting the
// site's CMS and validating candidate selectors against live pages.
package configgen

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/lexcrawl/lexcrawl"
)

// DefaultDelay is the politeness pause between successive seed URLs in a
// batch.
const DefaultDelay = time.Second

// Options selects how much page analysis a generation run performs.
type Options struct {
	// Analyze fetches and inspects the listing page. When false the
	// generic profile's first candidates are used verbatim.
	Analyze bool

	// DeepValidation additionally fetches a sample article and validates
	// the title, body and date selectors against it.
	DeepValidation bool
}

// Generator builds site configs. Batch processing is strictly sequential
// with a delay between seeds so target sites are not hammered.
type Generator struct {
	fetcher lexcrawl.Fetcher
	prober  lexcrawl.Prober
	chooser lexcrawl.SelectorChooser
	delay   time.Duration
	logger  *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithDelay sets the pause between seed URLs in ProcessURLs.
func WithDelay(d time.Duration) Option {
	return func(g *Generator) { g.delay = d }
}

// WithLogger sets the logger used for per-seed progress reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) { g.logger = logger }
}

// NewGenerator returns a Generator using the given fetcher, prober and
// chooser.
func NewGenerator(fetcher lexcrawl.Fetcher, prober lexcrawl.Prober, chooser lexcrawl.SelectorChooser, opts ...Option) *Generator {
	g := &Generator{
		fetcher: fetcher,
		prober:  prober,
		chooser: chooser,
		delay:   DefaultDelay,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds a site config for one seed URL.
//
// Three modes: quick (no analysis) fills every selector with the generic
// profile's first candidate; shallow analysis fetches the listing page,
// detects the CMS and validates the link and pagination selectors; deep
// validation additionally fetches a sample article and validates title,
// body and date against it. Fetch failures degrade to the next-simpler
// mode rather than failing the seed.
func (g *Generator) Generate(ctx context.Context, rawURL string, opts Options) (*lexcrawl.SiteConfig, error) {
	domain := lexcrawl.DomainOf(rawURL)
	if domain == "" {
		return nil, lexcrawl.Errorf(lexcrawl.EINVALID, "cannot determine domain of %q", rawURL)
	}

	config := &lexcrawl.SiteConfig{
		Name:          lexcrawl.SiteNameFor(domain),
		AllowedDomain: domain,
		StartURL:      rawURL,
	}

	if !opts.Analyze {
		applyFirstCandidates(config, lexcrawl.ProfileFor(lexcrawl.CMSGeneric), true)
		return config, nil
	}

	pageHTML, err := g.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		g.logger.Warn("listing fetch failed, using generic defaults", "url", rawURL, "error", err)
		applyFirstCandidates(config, lexcrawl.ProfileFor(lexcrawl.CMSGeneric), true)
		return config, nil
	}

	cms := lexcrawl.DetectCMS(pageHTML)
	config.NeedsJS = g.prober.NeedsJS(pageHTML)
	profile := lexcrawl.ProfileFor(cms)
	g.logger.Info("analyzed listing page", "url", rawURL, "cms", string(cms), "needs_js", config.NeedsJS)

	linksSel, linksCount, linkSamples := g.chooser.ChooseBest(
		pageHTML, profile.Candidates(lexcrawl.FieldArticleLinks), lexcrawl.FieldArticleLinks, rawURL, domain)
	pagSel, pagCount, _ := g.chooser.ChooseBest(
		pageHTML, profile.Candidates(lexcrawl.FieldPagination), lexcrawl.FieldPagination, rawURL, "")

	config.Selectors.ArticleLinks = selectorString(linksSel)
	config.Selectors.Pagination = selectorString(pagSel)
	config.Validation.ArticleLinksFound = linksCount
	config.Validation.PaginationFound = pagCount > 0

	if opts.DeepValidation && len(linkSamples) > 0 {
		articleURL := linkSamples[0]
		if g.validateOnArticle(ctx, config, profile, articleURL) {
			return config, nil
		}
		g.logger.Warn("sample article fetch failed, using profile defaults", "url", articleURL)
	}

	applyFirstCandidates(config, profile, false)
	return config, nil
}

// validateOnArticle fetches a sample article and chooses the title, body
// and date selectors against it. Returns false when the article could not
// be fetched.
func (g *Generator) validateOnArticle(ctx context.Context, config *lexcrawl.SiteConfig, profile lexcrawl.CMSProfile, articleURL string) bool {
	articleHTML, err := g.fetcher.Fetch(ctx, articleURL)
	if err != nil {
		return false
	}

	titleSel, titleCount, titleSamples := g.chooser.ChooseBest(
		articleHTML, profile.Candidates(lexcrawl.FieldArticleTitle), lexcrawl.FieldArticleTitle, "", "")
	bodySel, bodyCount, bodySamples := g.chooser.ChooseBest(
		articleHTML, profile.Candidates(lexcrawl.FieldArticleBody), lexcrawl.FieldArticleBody, "", "")
	dateSel, dateCount, dateSamples := g.chooser.ChooseBest(
		articleHTML, profile.Candidates(lexcrawl.FieldArticleDate), lexcrawl.FieldArticleDate, "", "")

	config.Selectors.ArticleTitle = selectorString(titleSel)
	config.Selectors.ArticleBody = selectorString(bodySel)
	config.Selectors.ArticleDate = selectorString(dateSel)

	config.Validation.TitleWorks = titleCount > 0
	if len(titleSamples) > 0 {
		config.Validation.TitleSample = titleSamples[0]
	}
	config.Validation.BodyWorks = bodyCount > 0
	config.Validation.BodyParagraphs = bodyCount
	config.Validation.BodyLength = totalLength(bodySamples)
	config.Validation.DateWorks = dateCount > 0
	if len(dateSamples) > 0 {
		config.Validation.DateSample = dateSamples[0]
	}
	config.Validation.TestURL = articleURL
	return true
}

// ProcessURLs generates a config for each seed URL in order. Individual
// failures become error records in the output rather than aborting the
// batch; a politeness delay separates successive seeds. Context
// cancellation stops the batch and returns what has been generated so far.
func (g *Generator) ProcessURLs(ctx context.Context, urls []string, opts Options) []lexcrawl.SiteConfig {
	var configs []lexcrawl.SiteConfig
	first := true
	for _, rawURL := range urls {
		rawURL = strings.TrimSpace(rawURL)
		if rawURL == "" {
			continue
		}
		if !first {
			select {
			case <-ctx.Done():
				return configs
			case <-time.After(g.delay):
			}
		}
		first = false

		config, err := g.Generate(ctx, rawURL, opts)
		if err != nil {
			g.logger.Error("config generation failed", "url", rawURL, "error", err)
			configs = append(configs, lexcrawl.SiteConfig{
				Failed:  true,
				URL:     rawURL,
				Message: err.Error(),
			})
			continue
		}
		configs = append(configs, *config)
	}
	return configs
}

// applyFirstCandidates fills the selector fields with the profile's first
// candidates. When all is false only the article-page fields are set,
// leaving previously chosen link and pagination selectors in place.
func applyFirstCandidates(config *lexcrawl.SiteConfig, profile lexcrawl.CMSProfile, all bool) {
	first := func(field lexcrawl.SelectorField) *string {
		candidates := profile.Candidates(field)
		if len(candidates) == 0 {
			return nil
		}
		s := candidates[0].String()
		return &s
	}
	if all {
		config.Selectors.ArticleLinks = first(lexcrawl.FieldArticleLinks)
		config.Selectors.Pagination = first(lexcrawl.FieldPagination)
	}
	config.Selectors.ArticleTitle = first(lexcrawl.FieldArticleTitle)
	config.Selectors.ArticleBody = first(lexcrawl.FieldArticleBody)
	config.Selectors.ArticleDate = first(lexcrawl.FieldArticleDate)
}

func selectorString(candidate lexcrawl.SelectorCandidate) *string {
	s := candidate.String()
	if s == "" {
		return nil
	}
	return &s
}

func totalLength(samples []string) int {
	n := 0
	for _, s := range samples {
		n += len(s)
	}
	return n
}
