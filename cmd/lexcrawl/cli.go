package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/lexcrawl/lexcrawl"
	"github.com/lexcrawl/lexcrawl/configgen"
	"github.com/lexcrawl/lexcrawl/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Search    lexcrawl.SearchProvider
	Generator *configgen.Generator

	// Language holds the target-language config for crawl and pdf runs.
	Language lexcrawl.LanguageConfig

	Articles *crawl.ArticleSpider
	PDFs     *crawl.PDFSpider
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Discover  DiscoverCmd  `cmd:"" help:"Discover seed site URLs via web search"`
	Configure ConfigureCmd `cmd:"" help:"Generate site configs with validated selectors"`
	Crawl     CrawlCmd     `cmd:"" help:"Crawl configured sites for target-language articles"`
	PDF       PDFCmd       `cmd:"" help:"Crawl seed sites for target-language PDF documents"`
}

// DiscoverCmd is the "discover" subcommand.
type DiscoverCmd struct {
	Terms   []string `short:"t" required:"" help:"Search term (repeatable)"`
	MaxURLs int      `default:"30" help:"Maximum URLs across all terms"`
	Output  string   `short:"o" default:"seeds.txt" help:"Seed URL list output path"`
	Results string   `help:"Optional JSONL path for full search results"`
}

// ConfigureCmd is the "configure" subcommand.
type ConfigureCmd struct {
	Input            string        `short:"i" required:"" help:"Seed URL list path"`
	Output           string        `short:"o" default:"site_configs.json" help:"Site config output path"`
	Delay            time.Duration `default:"1s" help:"Delay between sites"`
	NoAnalyze        bool          `help:"Skip fetching; emit generic selectors only"`
	NoDeepValidation bool          `help:"Skip validating selectors on a sample article"`
	MinLinks         int           `default:"3" help:"Minimum article links for a selector to win"`
	MinBodyLength    int           `default:"100" help:"Minimum body text length for a selector to win"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Configs     string `short:"c" required:"" help:"Site config JSON path"`
	Language    string `short:"l" required:"" help:"Target language key"`
	Languages   string `default:"languages.json" help:"Language mapping file path"`
	Output      string `short:"o" default:"articles.jsonl" help:"Article JSONL output path"`
	DB          string `help:"Optional SQLite database path (replaces JSONL output)"`
	MaxPages    int    `default:"10" help:"Listing pages to paginate through per site"`
	Concurrency int    `default:"4" help:"Concurrent article fetches per listing page"`
	Extractor   string `default:"trafilatura" enum:"trafilatura,readability" help:"Fallback content extractor"`
}

// PDFCmd is the "pdf" subcommand.
type PDFCmd struct {
	Seeds     string `short:"s" required:"" help:"Seed URL list path"`
	Language  string `short:"l" required:"" help:"Target language key"`
	Languages string `default:"languages.json" help:"Language mapping file path"`
	Dir       string `help:"Download directory (defaults to the language's configured directory)"`
	Domain    string `help:"Restrict page following to this domain (defaults to seed domains)"`
	MaxDepth  int    `default:"5" help:"Maximum hops from a seed page"`
}
