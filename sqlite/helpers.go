package sqlite

import (
	"sort"
	"strings"

	"github.com/pf2fr/grimoire"
)

// sortNameCounts orders by descending count, ties broken by name.
func sortNameCounts(counts []grimoire.NameCount) {
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Name < counts[j].Name
	})
}

// ftsQuote wraps a free-text query as a single FTS5 phrase so user
// input can never be parsed as MATCH syntax.
func ftsQuote(query string) string {
	return `"` + strings.ReplaceAll(query, `"`, `""`) + `"`
}
