package main

import (
	"fmt"

	"github.com/lexcrawl/lexcrawl"
	"github.com/lexcrawl/lexcrawl/fs"
)

// Run executes the pdf command.
func (c *PDFCmd) Run(deps *Dependencies) error {
	seeds, err := fs.ReadSeeds(c.Seeds)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lexcrawl.ErrorMessage(err))
		return err
	}
	if len(seeds) == 0 {
		fmt.Fprintln(deps.Stderr, "error: seed file is empty")
		return lexcrawl.Errorf(lexcrawl.EINVALID, "seed file %s is empty", c.Seeds)
	}

	fmt.Fprintf(deps.Stdout, "Searching %d seed sites for %s PDFs\n", len(seeds), deps.Language.DisplayName)

	stats, docs, err := deps.PDFs.Crawl(deps.Ctx, seeds, c.Domain, deps.Language.AcceptedCodes)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lexcrawl.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Found %d PDF links, downloaded %d\n", stats.Found, stats.Downloaded)
	fmt.Fprintf(deps.Stdout, "Kept %d target-language documents, skipped %d others\n", stats.Target, stats.Other)
	for _, doc := range docs {
		fmt.Fprintf(deps.Stdout, "  %s (%s, %.2f) saved to %s\n", doc.Filename, doc.Language, doc.Confidence, doc.SavedTo)
	}
	return nil
}
