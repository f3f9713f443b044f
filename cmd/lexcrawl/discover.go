package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lexcrawl/lexcrawl"
	"github.com/lexcrawl/lexcrawl/fs"
)

// Run executes the discover command.
func (c *DiscoverCmd) Run(deps *Dependencies) error {
	results, err := deps.Search.Discover(deps.Ctx, c.Terms, c.MaxURLs)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lexcrawl.ErrorMessage(err))
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No URLs discovered.")
		return nil
	}

	urls := make([]string, 0, len(results))
	for _, r := range results {
		urls = append(urls, r.URL)
	}
	if err := fs.WriteSeeds(c.Output, urls); err != nil {
		return err
	}

	if c.Results != "" {
		if err := writeResults(c.Results, results); err != nil {
			return err
		}
	}

	fmt.Fprintf(deps.Stdout, "Discovered %d URLs across %d terms, saved to %s\n", len(urls), len(c.Terms), c.Output)
	return nil
}

// writeResults writes full search results as JSON Lines.
func writeResults(path string, results []lexcrawl.SearchResult) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return lexcrawl.Errorf(lexcrawl.EINTERNAL, "cannot create results dir: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return lexcrawl.Errorf(lexcrawl.EINTERNAL, "cannot create results file: %v", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			return lexcrawl.Errorf(lexcrawl.EINTERNAL, "cannot encode result: %v", err)
		}
	}
	return nil
}
