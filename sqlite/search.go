package sqlite

import (
	"context"
	"database/sql"
	"sort"
	"strings"

	"github.com/pf2fr/grimoire"
)

// Compile-time interface verification.
var _ grimoire.SearchService = (*SearchService)(nil)

// Relevance tiers. French matches always outrank their English
// counterpart; the accent-normalized tiers slot between exact and
// prefix so an accent-blind exact hit still beats a literal prefix hit.
const (
	scoreExactFR      = 1000
	scoreExactEN      = 950
	scoreNormExactFR  = 900
	scoreNormExactEN  = 850
	scorePrefixFR     = 500
	scorePrefixEN     = 450
	scoreNormPrefixFR = 400
	scoreNormPrefixEN = 350
	scoreSubstrFR     = 200
	scoreSubstrEN     = 150
	scoreNormSubstrFR = 100
	scoreNormSubstrEN = 50
)

// normFallbackThreshold triggers the accent-normalized full scan when
// the literal tiers found fewer results than this. SQLite's LOWER()
// is ASCII-only, so accented names need the scan.
const normFallbackThreshold = 5

// minIdentifierQueryLen is the shortest query treated as a possible
// bare identifier lookup.
const minIdentifierQueryLen = 8

// SearchService implements grimoire.SearchService using SQLite.
type SearchService struct {
	db *DB
}

// NewSearchService creates a new SearchService.
func NewSearchService(db *DB) *SearchService {
	return &SearchService{db: db}
}

// scored pairs an entry with its relevance tier during collection.
type scored struct {
	score int
	entry *grimoire.Entry
}

// collector accumulates scored entries, deduplicating on (pack, id).
// The first tier to claim a key wins, so collection order must run
// from the highest tier down.
type collector struct {
	filter  grimoire.SearchFilter
	seen    map[string]bool
	results []scored
}

func newCollector(filter grimoire.SearchFilter) *collector {
	return &collector{filter: filter, seen: map[string]bool{}}
}

// add appends the entry at the given tier unless it was already
// claimed or fails the trait filter. SQL-level filters (category,
// pack) are assumed applied by the caller.
func (c *collector) add(e *grimoire.Entry, score int) {
	if c.filter.Trait != "" && !e.HasTrait(c.filter.Trait) {
		return
	}
	key := e.Key()
	if c.seen[key] {
		return
	}
	c.seen[key] = true
	c.results = append(c.results, scored{score, e})
}

// addChecked is add with the category and pack filters applied in Go,
// for entries that arrive from an unfiltered scan.
func (c *collector) addChecked(e *grimoire.Entry, score int) {
	if c.filter.Category != "" && e.Category != c.filter.Category {
		return
	}
	if c.filter.Pack != "" && !strings.Contains(strings.ToLower(e.Pack), strings.ToLower(c.filter.Pack)) {
		return
	}
	c.add(e, score)
}

// sorted returns the results ordered by descending tier, ties broken
// by French name, capped at limit.
func (c *collector) sorted(limit int) []*grimoire.Entry {
	sort.SliceStable(c.results, func(i, j int) bool {
		if c.results[i].score != c.results[j].score {
			return c.results[i].score > c.results[j].score
		}
		return strings.ToLower(c.results[i].entry.NameFR) < strings.ToLower(c.results[j].entry.NameFR)
	})
	entries := make([]*grimoire.Entry, 0, len(c.results))
	for _, r := range c.results {
		if len(entries) == limit {
			break
		}
		entries = append(entries, r.entry)
	}
	return entries
}

// looksLikeIdentifier reports whether the query could be a bare record
// identifier rather than a name.
func looksLikeIdentifier(query string) bool {
	if len(query) < minIdentifierQueryLen {
		return false
	}
	for _, r := range strings.ReplaceAll(query, "-", "") {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// Search runs the tiered name lookup described on grimoire.SearchService.
func (s *SearchService) Search(ctx context.Context, filter grimoire.SearchFilter) ([]*grimoire.Entry, error) {
	query := strings.TrimSpace(filter.Query)
	if query == "" {
		return nil, nil
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = grimoire.DefaultSearchLimit
	}

	// A bare identifier bypasses ranking entirely.
	if looksLikeIdentifier(query) {
		var data string
		err := s.db.QueryRowContext(ctx, "SELECT data FROM entries WHERE id = ? LIMIT 1", query).Scan(&data)
		if err == nil {
			if e, derr := decodeEntry(data); derr == nil {
				return []*grimoire.Entry{e}, nil
			}
		} else if err != sql.ErrNoRows {
			return nil, err
		}
	}

	queryLower := strings.ToLower(query)
	queryNorm := grimoire.Normalize(query)
	col := newCollector(filter)

	likeEscaped := escapeLike(queryLower)
	tiers := []struct {
		column  string
		pattern string
		score   int
	}{
		{"name_fr", queryLower, scoreExactFR},
		{"name_en", queryLower, scoreExactEN},
		{"name_fr", likeEscaped + "%", scorePrefixFR},
		{"name_en", likeEscaped + "%", scorePrefixEN},
		{"name_fr", "%" + likeEscaped + "%", scoreSubstrFR},
		{"name_en", "%" + likeEscaped + "%", scoreSubstrEN},
	}

	for _, tier := range tiers {
		op := "LIKE ? ESCAPE '\\'"
		if tier.score == scoreExactFR || tier.score == scoreExactEN {
			op = "= ?"
		}
		var q strings.Builder
		var args []any
		q.WriteString("SELECT data FROM entries WHERE LOWER(" + tier.column + ") " + op)
		args = append(args, tier.pattern)
		if filter.Category != "" {
			q.WriteString(" AND type = ?")
			args = append(args, filter.Category)
		}
		if filter.Pack != "" {
			q.WriteString(" AND pack LIKE ?")
			args = append(args, "%"+filter.Pack+"%")
		}
		if err := s.collectRows(ctx, col, q.String(), args, tier.score); err != nil {
			return nil, err
		}
	}

	// Accent-normalized fallback. LOWER() in SQLite is ASCII-only, so
	// "Éclair" never matches a lowercased LIKE; scan and compare the
	// folded names in Go.
	if len(col.results) < normFallbackThreshold || queryNorm != queryLower {
		q := "SELECT data FROM entries"
		var args []any
		if filter.Category != "" {
			q += " WHERE type = ?"
			args = append(args, filter.Category)
		}
		if err := s.collectNormalized(ctx, col, q, args, queryNorm); err != nil {
			return nil, err
		}
	}

	return col.sorted(limit), nil
}

// collectRows runs a tier query and feeds decoded entries to the
// collector.
func (s *SearchService) collectRows(ctx context.Context, col *collector, query string, args []any, score int) error {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return err
		}
		e, err := decodeEntry(data)
		if err != nil {
			continue
		}
		col.add(e, score)
	}
	return rows.Err()
}

// collectNormalized scans entries and ranks them by accent-folded
// comparison against the folded query.
func (s *SearchService) collectNormalized(ctx context.Context, col *collector, query string, args []any, queryNorm string) error {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return err
		}
		e, err := decodeEntry(data)
		if err != nil {
			continue
		}
		frNorm := grimoire.Normalize(e.NameFR)
		enNorm := grimoire.Normalize(e.NameEN)

		switch {
		case frNorm == queryNorm:
			col.addChecked(e, scoreNormExactFR)
		case enNorm == queryNorm:
			col.addChecked(e, scoreNormExactEN)
		case strings.HasPrefix(frNorm, queryNorm):
			col.addChecked(e, scoreNormPrefixFR)
		case strings.HasPrefix(enNorm, queryNorm):
			col.addChecked(e, scoreNormPrefixEN)
		case strings.Contains(frNorm, queryNorm):
			col.addChecked(e, scoreNormSubstrFR)
		case strings.Contains(enNorm, queryNorm):
			col.addChecked(e, scoreNormSubstrEN)
		}
	}
	return rows.Err()
}

// ListByTrait returns entries carrying the trait, sorted by level then
// French name.
func (s *SearchService) ListByTrait(ctx context.Context, trait, category string, limit int) ([]*grimoire.Entry, error) {
	if limit <= 0 {
		limit = grimoire.DefaultTraitListLimit
	}

	q := "SELECT data FROM entries"
	var args []any
	if category != "" {
		q += " WHERE type = ?"
		args = append(args, category)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type leveled struct {
		level int
		entry *grimoire.Entry
	}
	var matches []leveled
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		e, err := decodeEntry(data)
		if err != nil {
			continue
		}
		if !e.HasTrait(trait) {
			continue
		}
		lvl, _ := e.Level()
		matches = append(matches, leveled{lvl, e})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].level != matches[j].level {
			return matches[i].level < matches[j].level
		}
		return strings.ToLower(matches[i].entry.NameFR) < strings.ToLower(matches[j].entry.NameFR)
	})

	entries := make([]*grimoire.Entry, 0, len(matches))
	for _, m := range matches {
		if len(entries) == limit {
			break
		}
		entries = append(entries, m.entry)
	}
	return entries, nil
}

// SearchDescriptions queries the full-text index over names, packs and
// description excerpts, best match first.
func (s *SearchService) SearchDescriptions(ctx context.Context, query string, limit int) ([]*grimoire.Entry, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = grimoire.DefaultSearchLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT e.data
		FROM entries_fts f
		JOIN entries e ON e.rowid = f.rowid
		WHERE entries_fts MATCH ?
		ORDER BY f.rank
		LIMIT ?
	`, ftsQuote(query), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*grimoire.Entry
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		e, err := decodeEntry(data)
		if err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// escapeLike escapes LIKE wildcards in user input.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
