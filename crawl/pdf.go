package crawl

import (
	"bytes"
	"context"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/lexcrawl/lexcrawl"
)

// PDF spider defaults.
const (
	DefaultMaxDepth = 5

	// Payloads smaller than this cannot be real documents.
	minPDFSize = 100

	// Extracted text shorter than this is not worth a language decision.
	minPDFTextLength = 100
)

var pdfHeader = []byte("%PDF")

// Google Drive viewer links are rewritten to direct-download form before
// fetching.
var gdriveIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/file/d/([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`id=([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`/open\?id=([a-zA-Z0-9_-]+)`),
}

// PDFStats summarizes one PDF crawl run.
type PDFStats struct {
	Found      int
	Downloaded int
	Target     int
	Other      int

	// Languages counts decisions per detected language code.
	Languages map[string]int
}

// PDFSpider walks seed sites looking for PDF documents, keeps the ones in
// the target language, and saves them through a PDFStore.
type PDFSpider struct {
	fetcher    lexcrawl.Fetcher
	downloader lexcrawl.Downloader
	extractor  lexcrawl.TextExtractor
	validator  lexcrawl.LanguageValidator
	store      lexcrawl.PDFStore
	limiter    lexcrawl.DomainLimiter
	logger     *slog.Logger
	maxDepth   int
}

// PDFOption configures a PDFSpider.
type PDFOption func(*PDFSpider)

// WithMaxDepth bounds how many hops from a seed URL pages are followed.
func WithMaxDepth(n int) PDFOption {
	return func(s *PDFSpider) { s.maxDepth = n }
}

// WithPDFLimiter sets the per-domain rate limiter.
func WithPDFLimiter(l lexcrawl.DomainLimiter) PDFOption {
	return func(s *PDFSpider) { s.limiter = l }
}

// WithPDFLogger sets the logger.
func WithPDFLogger(logger *slog.Logger) PDFOption {
	return func(s *PDFSpider) { s.logger = logger }
}

// NewPDFSpider creates a PDF spider.
func NewPDFSpider(fetcher lexcrawl.Fetcher, downloader lexcrawl.Downloader, extractor lexcrawl.TextExtractor, validator lexcrawl.LanguageValidator, store lexcrawl.PDFStore, opts ...PDFOption) *PDFSpider {
	s := &PDFSpider{
		fetcher:    fetcher,
		downloader: downloader,
		extractor:  extractor,
		validator:  validator,
		store:      store,
		limiter:    NewDomainLimiter(1),
		logger:     slog.Default(),
		maxDepth:   DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Crawl walks pages reachable from the seeds, restricted to the given
// domain (or the seeds' own domains when empty), harvesting PDF links as
// it goes. Accepted documents are saved and returned with run statistics.
func (s *PDFSpider) Crawl(ctx context.Context, seeds []string, domain string, targetCodes []string) (*PDFStats, []lexcrawl.PDFDocument, error) {
	stats := &PDFStats{Languages: make(map[string]int)}
	var docs []lexcrawl.PDFDocument

	allowed := make(map[string]bool)
	if domain != "" {
		allowed[domain] = true
	}

	frontier := NewFrontier(defaultFrontierSize, frontierFalsePositiveRate)
	for _, seed := range seeds {
		seed = strings.TrimSpace(seed)
		if seed == "" {
			continue
		}
		if domain == "" {
			if host := hostOf(seed); host != "" {
				allowed[host] = true
			}
		}
		frontier.Push(lexcrawl.Link{URL: seed})
	}

	downloaded := make(map[string]bool)

	for {
		link, ok := frontier.Pop()
		if !ok {
			return stats, docs, nil
		}
		if ctx.Err() != nil {
			return stats, docs, ctx.Err()
		}

		if err := s.limiter.Wait(ctx, hostOf(link.URL)); err != nil {
			return stats, docs, err
		}
		pageHTML, err := s.fetcher.Fetch(ctx, link.URL)
		if err != nil {
			s.logger.Warn("page fetch failed", "url", link.URL, "error", err)
			continue
		}

		// Some seed links point straight at a document.
		if strings.HasPrefix(pageHTML, string(pdfHeader)) {
			stats.Found++
			s.handlePDF(ctx, link.URL, link.Source, []byte(pageHTML), targetCodes, stats, &docs)
			continue
		}

		pdfLinks, pageLinks := s.parsePage(pageHTML, link.URL)

		for _, pdfURL := range pdfLinks {
			if downloaded[pdfURL] {
				continue
			}
			downloaded[pdfURL] = true
			stats.Found++
			s.downloadPDF(ctx, pdfURL, link.URL, targetCodes, stats, &docs)
		}

		if link.Depth >= s.maxDepth {
			continue
		}
		for _, pageURL := range pageLinks {
			if !allowed[hostOf(pageURL)] {
				continue
			}
			frontier.Push(lexcrawl.Link{URL: pageURL, Depth: link.Depth + 1, Source: link.URL})
		}
	}
}

// parsePage collects candidate PDF links and same-site page links from
// one page's markup.
func (s *PDFSpider) parsePage(pageHTML, pageURL string) (pdfLinks, pageLinks []string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, nil
	}

	candidates := make(map[string]bool)
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if href == "" || skippableLink(href) {
			return
		}
		full := resolveURL(href, pageURL)
		if !strings.HasPrefix(strings.ToLower(full), "http") {
			return
		}
		if isPotentialPDF(full) {
			candidates[full] = true
			return
		}
		pageLinks = append(pageLinks, full)
	})

	// Embedded Google Drive viewers hide the document behind an iframe.
	doc.Find("iframe[src]").Each(func(_ int, f *goquery.Selection) {
		src, _ := f.Attr("src")
		if strings.Contains(src, "drive.google.com") {
			if direct := gdriveDirectLink(src); direct != "" {
				candidates[direct] = true
			}
		}
	})

	for u := range candidates {
		pdfLinks = append(pdfLinks, u)
	}
	return pdfLinks, pageLinks
}

// downloadPDF fetches one candidate document and hands it to handlePDF.
func (s *PDFSpider) downloadPDF(ctx context.Context, pdfURL, sourcePage string, targetCodes []string, stats *PDFStats, docs *[]lexcrawl.PDFDocument) {
	if err := s.limiter.Wait(ctx, hostOf(pdfURL)); err != nil {
		return
	}
	data, err := s.downloader.Download(ctx, pdfURL)
	if err != nil {
		s.logger.Warn("document download failed", "url", pdfURL, "error", err)
		return
	}
	s.handlePDF(ctx, pdfURL, sourcePage, data, targetCodes, stats, docs)
}

// handlePDF validates a downloaded payload and saves it when it is a real
// PDF in the target language.
func (s *PDFSpider) handlePDF(ctx context.Context, pdfURL, sourcePage string, data []byte, targetCodes []string, stats *PDFStats, docs *[]lexcrawl.PDFDocument) {
	if len(data) < minPDFSize {
		s.logger.Debug("payload too small", "url", pdfURL, "size", len(data))
		return
	}
	if !bytes.HasPrefix(data, pdfHeader) {
		s.logger.Debug("missing PDF header", "url", pdfURL)
		return
	}
	stats.Downloaded++

	text, err := s.extractor.ExtractText(data)
	if err != nil || len(strings.TrimSpace(text)) < minPDFTextLength {
		s.logger.Warn("could not extract enough text", "url", pdfURL, "error", err)
		return
	}

	decision := s.validator.Validate(text, targetCodes, false)
	stats.Languages[decision.Code]++

	if !decision.IsTarget {
		stats.Other++
		s.logger.Info("skipping off-target document",
			"url", pdfURL, "language", decision.Code, "confidence", decision.Confidence)
		return
	}
	stats.Target++

	filename, path, err := s.store.SavePDF(ctx, pdfURL, data)
	if err != nil {
		s.logger.Error("document save failed", "url", pdfURL, "error", err)
		return
	}
	s.logger.Info("document accepted",
		"url", pdfURL, "language", decision.Code, "confidence", decision.Confidence, "saved_to", path)

	*docs = append(*docs, lexcrawl.PDFDocument{
		URL:        pdfURL,
		SourcePage: sourcePage,
		Filename:   filename,
		SavedTo:    path,
		SizeBytes:  len(data),
		Language:   decision.Code,
		Confidence: decision.Confidence,
		TextLength: len(text),
	})
}

// isPotentialPDF reports whether a URL plausibly points at a PDF document.
func isPotentialPDF(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	return strings.HasSuffix(lower, ".pdf") ||
		strings.Contains(lower, ".pdf") ||
		strings.HasSuffix(rawURL, "/file") ||
		strings.HasSuffix(rawURL, "/download") ||
		strings.Contains(lower, "/download/") ||
		strings.Contains(rawURL, "drive.google.com")
}

// gdriveDirectLink rewrites a Google Drive viewer URL to its
// direct-download form, or returns "" when no file ID is present.
func gdriveDirectLink(rawURL string) string {
	for _, re := range gdriveIDPatterns {
		if m := re.FindStringSubmatch(rawURL); m != nil {
			return "https://drive.google.com/uc?export=download&id=" + m[1]
		}
	}
	return ""
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
