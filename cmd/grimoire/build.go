package main

import (
	"fmt"
	"os"
)

// BuildCmd fetches the upstream sources and rebuilds the corpus.
type BuildCmd struct {
	Local bool `help:"Skip fetching, build from the existing checkouts."`
	Clean bool `help:"Remove the checkouts and fetch from scratch."`
}

func (c *BuildCmd) Run(deps *Dependencies) error {
	if c.Clean {
		if err := os.RemoveAll(deps.DataDir); err != nil {
			return fmt.Errorf("failed to clean data directory: %w", err)
		}
	}

	if !c.Local {
		results, err := deps.Fetcher.Update(deps.Ctx)
		if err != nil {
			return err
		}
		for name, ok := range results {
			if !ok {
				fmt.Fprintf(deps.Stderr, "warning: source %s could not be fetched, using the existing checkout\n", name)
			}
		}
	}

	stats, err := deps.Builder.Build(deps.Ctx, deps.SourceDir("pf2-fr"), deps.SourceDir("pf2e"))
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "corpus rebuilt: %d entries (%d translated)\n", stats.Total, stats.Translated)
	categories, err := deps.Entries.Categories(deps.Ctx)
	if err != nil {
		return err
	}
	for _, c := range categories {
		fmt.Fprintf(deps.Stdout, "   %-12s %d\n", c.Name, c.Count)
	}
	return nil
}
