package main

import (
	"fmt"

	"github.com/lexcrawl/lexcrawl"
	"github.com/lexcrawl/lexcrawl/configgen"
	"github.com/lexcrawl/lexcrawl/fs"
)

// Run executes the configure command.
func (c *ConfigureCmd) Run(deps *Dependencies) error {
	seeds, err := fs.ReadSeeds(c.Input)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lexcrawl.ErrorMessage(err))
		return err
	}
	if len(seeds) == 0 {
		fmt.Fprintln(deps.Stderr, "error: seed file is empty")
		return lexcrawl.Errorf(lexcrawl.EINVALID, "seed file %s is empty", c.Input)
	}

	configs := deps.Generator.ProcessURLs(deps.Ctx, seeds, configgen.Options{
		Analyze:        !c.NoAnalyze,
		DeepValidation: !c.NoDeepValidation,
	})

	if err := fs.WriteSiteConfigs(c.Output, configs); err != nil {
		return err
	}

	failed := 0
	for _, config := range configs {
		if config.Failed {
			failed++
			fmt.Fprintf(deps.Stdout, "FAIL  %s  %s\n", config.URL, config.Message)
			continue
		}
		fmt.Fprintf(deps.Stdout, "ok    %s  links=%d pagination=%t\n",
			config.Name, config.Validation.ArticleLinksFound, config.Validation.PaginationFound)
	}
	fmt.Fprintf(deps.Stdout, "Wrote %d configs (%d failed) to %s\n", len(configs), failed, c.Output)
	return nil
}
