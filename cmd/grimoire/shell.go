package main

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pf2fr/grimoire"
)

// typeShortcuts maps shell query prefixes to category filters. French
// and English spellings are accepted; the first matching prefix wins.
var typeShortcuts = []struct {
	prefix   string
	category string
}{
	{"créature:", "créature"}, {"creature:", "créature"}, {"monstre:", "créature"},
	{"npc:", "créature"}, {"pnj:", "créature"},
	{"sort:", "sort"}, {"spell:", "sort"},
	{"don:", "don"}, {"feat:", "don"},
	{"équipement:", "équipement"}, {"equip:", "équipement"}, {"objet:", "équipement"},
	{"arme:", "arme"}, {"weapon:", "arme"},
	{"armure:", "armure"}, {"armor:", "armure"},
	{"action:", "action"},
	{"danger:", "danger"}, {"hazard:", "danger"},
	{"état:", "état"}, {"condition:", "état"},
	{"classe:", "classe"}, {"class:", "classe"},
	{"compagnon:", "compagnon"}, {"companion:", "compagnon"},
	{"règle:", "règle"}, {"regle:", "règle"}, {"rule:", "règle"},
	{"traitdef:", "trait"}, {"définition:", "trait"},
	{"capacité:", "capacité"}, {"ability:", "capacité"}, {"npca:", "capacité"},
	{"matériau:", "matériau"}, {"materiau:", "matériau"}, {"material:", "matériau"},
	{"glossaire:", "glossaire"}, {"gloss:", "glossaire"}, {"ref:", "glossaire"},
}

// ShellCmd runs the interactive search loop.
type ShellCmd struct{}

func (c *ShellCmd) Run(deps *Dependencies) error {
	out := deps.Stdout
	fmt.Fprintln(out, "grimoire shell")
	fmt.Fprintln(out, "   q=quit, stats, types, packs, traits")
	fmt.Fprintln(out, "   <num>=details, full <num>=details")
	fmt.Fprintln(out, "   filters: créature: sort: pack:bestiary trait:magus desc:flamme")
	fmt.Fprintln(out)

	var lastResults []*grimoire.Entry

	scanner := bufio.NewScanner(deps.Stdin)
	for {
		fmt.Fprint(out, "pf2> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "q", "quit", "exit":
			return nil
		case "stats":
			c.printStats(deps)
			continue
		case "types":
			c.printCounts(deps, "types", deps.Entries.Categories, 0)
			continue
		case "packs":
			c.printCounts(deps, "packs", deps.Entries.Collections, 25)
			continue
		case "traits":
			c.printTraits(deps)
			continue
		}

		// A bare number recalls a previous result in full.
		if idx, err := strconv.Atoi(input); err == nil {
			c.printDetail(deps, lastResults, idx)
			continue
		}
		if rest, ok := strings.CutPrefix(strings.ToLower(input), "full "); ok {
			if idx, err := strconv.Atoi(strings.TrimSpace(rest)); err == nil {
				c.printDetail(deps, lastResults, idx)
				continue
			}
		}

		results, label, err := c.query(deps, input)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", grimoire.ErrorMessage(err))
			continue
		}
		lastResults = results

		if len(results) == 0 {
			fmt.Fprintf(out, "no results for %q\n", label)
			continue
		}
		fmt.Fprintf(out, "\n%d result(s) for %q:\n", len(results), label)
		for i, e := range results {
			fmt.Fprintln(out, deps.Renderer.CompactRow(e, i+1))
		}
		fmt.Fprintln(out, "type a number for full details")
	}
}

// query parses the filter prefixes off the input and dispatches to the
// right search operation.
func (c *ShellCmd) query(deps *Dependencies, input string) ([]*grimoire.Entry, string, error) {
	filter := grimoire.SearchFilter{Query: input}

	for _, ts := range typeShortcuts {
		if strings.HasPrefix(strings.ToLower(filter.Query), ts.prefix) {
			filter.Category = ts.category
			filter.Query = strings.TrimSpace(filter.Query[len(ts.prefix):])
			break
		}
	}

	if strings.HasPrefix(strings.ToLower(filter.Query), "pack:") {
		filter.Pack, filter.Query = splitFilterArg(filter.Query[len("pack:"):])
	}
	if strings.HasPrefix(strings.ToLower(filter.Query), "trait:") {
		filter.Trait, filter.Query = splitFilterArg(filter.Query[len("trait:"):])
	}
	if strings.HasPrefix(strings.ToLower(filter.Query), "desc:") {
		query := strings.TrimSpace(filter.Query[len("desc:"):])
		results, err := deps.Search.SearchDescriptions(deps.Ctx, query, grimoire.DefaultSearchLimit)
		return results, query, err
	}

	if filter.Trait != "" && filter.Query == "" {
		results, err := deps.Search.ListByTrait(deps.Ctx, filter.Trait, filter.Category, 0)
		return results, "trait:" + filter.Trait, err
	}

	results, err := deps.Search.Search(deps.Ctx, filter)
	return results, filter.Query, err
}

// splitFilterArg splits "bestiary boule de feu" into the filter value
// and the remaining query.
func splitFilterArg(rest string) (value, query string) {
	parts := strings.SplitN(strings.TrimSpace(rest), " ", 2)
	if len(parts) == 0 || parts[0] == "" {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.TrimSpace(parts[1])
}

func (c *ShellCmd) printDetail(deps *Dependencies, results []*grimoire.Entry, idx int) {
	if idx < 1 || idx > len(results) {
		fmt.Fprintf(deps.Stdout, "invalid number (1-%d)\n", len(results))
		return
	}
	fmt.Fprintln(deps.Stdout, deps.Renderer.Detail(results[idx-1]))
}

func (c *ShellCmd) printStats(deps *Dependencies) {
	stats, err := deps.Entries.Stats(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", grimoire.ErrorMessage(err))
		return
	}
	fmt.Fprintf(deps.Stdout, "\n%d entries, %d translated\n", stats.Total, stats.Translated)
}

func (c *ShellCmd) printCounts(deps *Dependencies, label string, list func(ctx context.Context) ([]grimoire.NameCount, error), limit int) {
	counts, err := list(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", grimoire.ErrorMessage(err))
		return
	}
	if limit > 0 && len(counts) > limit {
		counts = counts[:limit]
	}
	fmt.Fprintf(deps.Stdout, "\n%s:\n", label)
	for _, c := range counts {
		fmt.Fprintf(deps.Stdout, "   • %s (%d)\n", c.Name, c.Count)
	}
}

func (c *ShellCmd) printTraits(deps *Dependencies) {
	counts, err := deps.Entries.TraitCounts(deps.Ctx, 30)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", grimoire.ErrorMessage(err))
		return
	}
	fmt.Fprintln(deps.Stdout, "\ntraits (top 30):")
	for _, c := range counts {
		fmt.Fprintf(deps.Stdout, "   • %s (%d)\n", c.Name, c.Count)
	}
}
