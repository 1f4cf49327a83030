package main

import (
	"fmt"
	"strings"

	"github.com/pf2fr/grimoire"
)

// SearchCmd runs one query and prints the ranked results.
type SearchCmd struct {
	Query []string `arg:"" optional:"" help:"Search terms."`
	Type  string   `help:"Filter by category (sort, créature, don, ...)."`
	Pack  string   `help:"Filter by pack name substring."`
	Trait string   `help:"Filter by trait substring."`
	Full  bool     `short:"f" help:"Print the full detail view of every result."`
	Limit int      `default:"25" help:"Maximum number of results."`
}

func (c *SearchCmd) Run(deps *Dependencies) error {
	query := strings.Join(c.Query, " ")

	filter := grimoire.SearchFilter{
		Query:    query,
		Category: c.Type,
		Pack:     c.Pack,
		Trait:    c.Trait,
		Limit:    c.Limit,
	}

	var (
		results []*grimoire.Entry
		err     error
	)
	if query == "" && c.Trait != "" {
		results, err = deps.Search.ListByTrait(deps.Ctx, c.Trait, c.Type, c.Limit)
	} else {
		results, err = deps.Search.Search(deps.Ctx, filter)
	}
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Fprintf(deps.Stdout, "no results for %q\n", query)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "%d result(s) for %q:\n\n", len(results), query)
	for i, e := range results {
		if c.Full {
			fmt.Fprintln(deps.Stdout, deps.Renderer.Detail(e))
		} else {
			fmt.Fprintln(deps.Stdout, deps.Renderer.CompactRow(e, i+1))
		}
	}
	return nil
}
