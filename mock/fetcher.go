package mock

import (
	"context"

	"github.com/lexcrawl/lexcrawl"
)

var _ lexcrawl.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of lexcrawl.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

var _ lexcrawl.Downloader = (*Downloader)(nil)

// Downloader is a mock implementation of lexcrawl.Downloader.
type Downloader struct {
	DownloadFn func(ctx context.Context, url string) ([]byte, error)
}

func (d *Downloader) Download(ctx context.Context, url string) ([]byte, error) {
	return d.DownloadFn(ctx, url)
}

var _ lexcrawl.Prober = (*Prober)(nil)

// Prober is a mock implementation of lexcrawl.Prober.
type Prober struct {
	NeedsJSFn func(html string) bool
}

func (p *Prober) NeedsJS(html string) bool {
	return p.NeedsJSFn(html)
}

var _ lexcrawl.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of lexcrawl.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*lexcrawl.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*lexcrawl.ExtractResult, error) {
	return e.ExtractFn(html)
}
