package mock

import (
	"context"

	"github.com/lexcrawl/lexcrawl"
)

var _ lexcrawl.URLFrontier = (*URLFrontier)(nil)

// URLFrontier is a mock implementation of lexcrawl.URLFrontier.
type URLFrontier struct {
	PushFn func(link lexcrawl.Link) bool
	PopFn  func() (lexcrawl.Link, bool)
	LenFn  func() int
	SeenFn func(url string) bool
}

func (f *URLFrontier) Push(link lexcrawl.Link) bool {
	return f.PushFn(link)
}

func (f *URLFrontier) Pop() (lexcrawl.Link, bool) {
	return f.PopFn()
}

func (f *URLFrontier) Len() int {
	return f.LenFn()
}

func (f *URLFrontier) Seen(url string) bool {
	return f.SeenFn(url)
}

var _ lexcrawl.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of lexcrawl.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

var _ lexcrawl.SearchProvider = (*SearchProvider)(nil)

// SearchProvider is a mock implementation of lexcrawl.SearchProvider.
type SearchProvider struct {
	DiscoverFn func(ctx context.Context, terms []string, maxURLs int) ([]lexcrawl.SearchResult, error)
	NameFn     func() string
}

func (p *SearchProvider) Discover(ctx context.Context, terms []string, maxURLs int) ([]lexcrawl.SearchResult, error) {
	return p.DiscoverFn(ctx, terms, maxURLs)
}

func (p *SearchProvider) Name() string {
	return p.NameFn()
}
