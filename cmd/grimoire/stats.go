package main

import "fmt"

// StatsCmd prints the aggregate metadata of the current corpus.
type StatsCmd struct{}

func (c *StatsCmd) Run(deps *Dependencies) error {
	stats, err := deps.Entries.Stats(deps.Ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "corpus: %d entries (%d translated)\n", stats.Total, stats.Translated)
	fmt.Fprintf(deps.Stdout, "built:  %s (build %s)\n", stats.CreatedAt, stats.BuildID)

	categories, err := deps.Entries.Categories(deps.Ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, "\ncategories:")
	for _, c := range categories {
		fmt.Fprintf(deps.Stdout, "   %-12s %d\n", c.Name, c.Count)
	}
	return nil
}
