package main

import (
	"fmt"

	"github.com/lexcrawl/lexcrawl"
	"github.com/lexcrawl/lexcrawl/fs"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	configs, err := fs.ReadSiteConfigs(c.Configs)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lexcrawl.ErrorMessage(err))
		return err
	}
	if len(configs) == 0 {
		fmt.Fprintln(deps.Stderr, "error: config file has no sites")
		return lexcrawl.Errorf(lexcrawl.EINVALID, "config file %s has no sites", c.Configs)
	}

	fmt.Fprintf(deps.Stdout, "Crawling %d sites for %s articles\n", len(configs), deps.Language.DisplayName)

	stats, err := deps.Articles.Crawl(deps.Ctx, configs, deps.Language.AcceptedCodes)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lexcrawl.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Visited %d listing pages, found %d article links\n", stats.PagesVisited, stats.LinksFound)
	fmt.Fprintf(deps.Stdout, "Accepted %d, rejected %d off-target, %d errors\n", stats.Accepted, stats.Rejected, stats.Errors)
	return nil
}
