package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/lexcrawl/lexcrawl"
	"github.com/lexcrawl/lexcrawl/configgen"
	"github.com/lexcrawl/lexcrawl/crawl"
	"github.com/lexcrawl/lexcrawl/fs"
	"github.com/lexcrawl/lexcrawl/goquery"
	lexhttp "github.com/lexcrawl/lexcrawl/http"
	"github.com/lexcrawl/lexcrawl/language"
	"github.com/lexcrawl/lexcrawl/lingua"
	"github.com/lexcrawl/lexcrawl/pdf"
	"github.com/lexcrawl/lexcrawl/readability"
	lexslog "github.com/lexcrawl/lexcrawl/slog"
	"github.com/lexcrawl/lexcrawl/sqlite"
	"github.com/lexcrawl/lexcrawl/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database, opened when the crawl command targets one.
	DB *sqlite.DB

	articles *fs.ArticleFile
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.articles != nil {
		if err := m.articles.Close(); err != nil {
			return err
		}
	}
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("lexcrawl"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'lexcrawl --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	httpFetcher := lexhttp.NewFetcher()
	fetcher := lexslog.NewLoggingFetcher(httpFetcher, logger)
	defer m.Close()

	switch cmd {
	case "discover":
		deps.Search = lexhttp.NewDuckDuckGo(fetcher, lexhttp.WithSearchLogger(logger))

	case "configure":
		chooser := goquery.NewChooser(cli.Configure.MinLinks, cli.Configure.MinBodyLength)
		deps.Generator = configgen.NewGenerator(fetcher, goquery.NewProber(), chooser,
			configgen.WithDelay(cli.Configure.Delay),
			configgen.WithLogger(logger),
		)

	case "crawl":
		langConfig, validator, err := m.languageSetup(cli.Crawl.Languages, cli.Crawl.Language, logger)
		if err != nil {
			return err
		}
		deps.Language = langConfig

		var writer lexcrawl.ArticleWriter
		if cli.Crawl.DB != "" {
			m.DB = sqlite.NewDB(cli.Crawl.DB)
			if err := m.DB.Open(); err != nil {
				return fmt.Errorf("failed to open database at %q: %w", cli.Crawl.DB, err)
			}
			writer = sqlite.NewArticleService(m.DB)
		} else {
			m.articles, err = fs.NewArticleFile(cli.Crawl.Output)
			if err != nil {
				return err
			}
			writer = m.articles
		}

		var extractor lexcrawl.Extractor = trafilatura.NewExtractor()
		if cli.Crawl.Extractor == "readability" {
			extractor = readability.NewExtractor()
		}

		deps.Articles = crawl.NewArticleSpider(fetcher, validator, writer,
			crawl.WithFallbackExtractor(extractor),
			crawl.WithMaxListingPages(cli.Crawl.MaxPages),
			crawl.WithArticleConcurrency(cli.Crawl.Concurrency),
			crawl.WithArticleLogger(logger),
		)

	case "pdf":
		langConfig, validator, err := m.languageSetup(cli.PDF.Languages, cli.PDF.Language, logger)
		if err != nil {
			return err
		}
		deps.Language = langConfig

		dir := cli.PDF.Dir
		if dir == "" {
			dir = langConfig.DownloadDir
		}
		if dir == "" {
			dir = "downloads"
		}

		deps.PDFs = crawl.NewPDFSpider(fetcher, httpFetcher, pdf.NewExtractor(), validator,
			fs.NewPDFStore(dir),
			crawl.WithMaxDepth(cli.PDF.MaxDepth),
			crawl.WithPDFLogger(logger),
		)
	}

	return kongCtx.Run(deps)
}

// languageSetup loads the language mapping file, resolves the target
// language, and builds the validation stack. Failures here abort the run
// before any network activity.
func (m *Main) languageSetup(mappingPath, key string, logger *slog.Logger) (lexcrawl.LanguageConfig, lexcrawl.LanguageValidator, error) {
	svc, err := language.NewService(mappingPath)
	if err != nil {
		return lexcrawl.LanguageConfig{}, nil, err
	}
	config, err := svc.Config(key)
	if err != nil {
		return lexcrawl.LanguageConfig{}, nil, err
	}

	validator := language.NewValidator(lingua.NewClassifier(), language.WithLogger(logger))
	return config, lexslog.NewLoggingValidator(validator, logger), nil
}
