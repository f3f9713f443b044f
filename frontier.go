package lexcrawl

import "context"

// Link is one URL queued for crawling.
type Link struct {
	URL string

	// Depth is the number of hops from a seed URL.
	Depth int

	// Priority orders the frontier (higher is popped first).
	Priority int

	// Source is the page the link was found on.
	Source string
}

// URLFrontier manages a crawl queue with deduplication.
type URLFrontier interface {
	// Push adds a link to the frontier.
	// Returns false if the URL has already been seen.
	Push(link Link) bool

	// Pop returns the next link by priority.
	// Returns false if the frontier is empty.
	Pop() (Link, bool)

	// Len returns the number of links in the queue.
	Len() int

	// Seen returns true if the URL has been processed or queued.
	Seen(url string) bool
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
