package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/pf2fr/grimoire"
)

// Compile-time interface verification.
var _ grimoire.EntryService = (*EntryService)(nil)

// schemaVersion is recorded with every build so readers can detect a
// corpus written by an incompatible binary.
const schemaVersion = "1"

// ftsDescriptionLimit caps the description text indexed per entry.
// Creature stat blocks can run to hundreds of KB of HTML; indexing the
// head is enough for discovery.
const ftsDescriptionLimit = 5000

// EntryService implements grimoire.EntryService using SQLite.
type EntryService struct {
	db *DB
}

// NewEntryService creates a new EntryService.
func NewEntryService(db *DB) *EntryService {
	return &EntryService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content []byte) string {
	h := xxhash.Sum64(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// truncateRunes cuts s to at most n runes without splitting a
// character.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// RebuildCorpus replaces the entire corpus in a single transaction.
// Entries that fail validation are skipped; duplicate (pack, id) pairs
// beyond the first are dropped silently by INSERT OR IGNORE.
func (s *EntryService) RebuildCorpus(ctx context.Context, entries []*grimoire.Entry) (*grimoire.CorpusStats, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM entries"); err != nil {
		return nil, err
	}
	// External-content FTS tables are not touched by deletes on the
	// content table; delete-all resets the index explicitly.
	if _, err := tx.ExecContext(ctx, "INSERT INTO entries_fts(entries_fts) VALUES('delete-all')"); err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM metadata"); err != nil {
		return nil, err
	}

	stats := &grimoire.CorpusStats{
		BuildID:    uuid.New().String(),
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
		ByCategory: map[string]int{},
		Version:    schemaVersion,
	}

	for _, e := range entries {
		if e.Validate() != nil {
			continue
		}

		data, err := json.Marshal(e)
		if err != nil {
			continue
		}

		res, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO entries (id, pack, name_fr, name_en, type, source, translated, content_hash, data)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, e.ID, e.Pack, e.NameFR, e.NameEN, e.Category, e.Source, boolToInt(e.Translated), hashContent(data), string(data))
		if err != nil {
			return nil, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, err
		}
		if n == 0 {
			continue // duplicate
		}

		rowid, err := res.LastInsertId()
		if err != nil {
			return nil, err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO entries_fts (rowid, name_fr, name_en, pack, description)
			VALUES (?, ?, ?, ?, ?)
		`, rowid, e.NameFR, e.NameEN, e.Pack, truncateRunes(e.Description, ftsDescriptionLimit)); err != nil {
			return nil, err
		}

		stats.Total++
		stats.ByCategory[e.Category]++
		if e.Translated {
			stats.Translated++
		}
	}

	byCategory, err := json.Marshal(stats.ByCategory)
	if err != nil {
		return nil, err
	}
	meta := [][2]string{
		{"created_at", stats.CreatedAt},
		{"build_id", stats.BuildID},
		{"total", strconv.Itoa(stats.Total)},
		{"translated", strconv.Itoa(stats.Translated)},
		{"stats", string(byCategory)},
		{"version", stats.Version},
	}
	for _, kv := range meta {
		if _, err := tx.ExecContext(ctx, "INSERT INTO metadata (key, value) VALUES (?, ?)", kv[0], kv[1]); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return stats, nil
}

// FindEntryByID retrieves one entry by identifier, regardless of pack.
func (s *EntryService) FindEntryByID(ctx context.Context, id string) (*grimoire.Entry, error) {
	var data string
	err := s.db.QueryRowContext(ctx, "SELECT data FROM entries WHERE id = ? LIMIT 1", id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, grimoire.Errorf(grimoire.ENOTFOUND, "entry not found")
	}
	if err != nil {
		return nil, err
	}
	return decodeEntry(data)
}

// Stats returns the aggregate metadata recorded with the last build.
func (s *EntryService) Stats(ctx context.Context) (*grimoire.CorpusStats, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM metadata")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	meta := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		meta[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(meta) == 0 {
		return nil, grimoire.Errorf(grimoire.ENOTFOUND, "no corpus has been built")
	}

	stats := &grimoire.CorpusStats{
		BuildID:    meta["build_id"],
		CreatedAt:  meta["created_at"],
		Version:    meta["version"],
		ByCategory: map[string]int{},
	}
	stats.Total, _ = strconv.Atoi(meta["total"])
	stats.Translated, _ = strconv.Atoi(meta["translated"])
	if raw := meta["stats"]; raw != "" {
		_ = json.Unmarshal([]byte(raw), &stats.ByCategory)
	}
	return stats, nil
}

// Categories returns per-category entry counts, most frequent first.
func (s *EntryService) Categories(ctx context.Context) ([]grimoire.NameCount, error) {
	return s.countBy(ctx, "type")
}

// Collections returns per-pack entry counts, most frequent first.
func (s *EntryService) Collections(ctx context.Context) ([]grimoire.NameCount, error) {
	return s.countBy(ctx, "pack")
}

func (s *EntryService) countBy(ctx context.Context, column string) ([]grimoire.NameCount, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+column+", COUNT(*) AS n FROM entries GROUP BY "+column+" ORDER BY n DESC, "+column+" ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []grimoire.NameCount
	for rows.Next() {
		var nc grimoire.NameCount
		if err := rows.Scan(&nc.Name, &nc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, nc)
	}
	return counts, rows.Err()
}

// TraitCounts tallies traits across the whole corpus. Traits live
// inside the serialized attribute tree, so this is a full scan.
func (s *EntryService) TraitCounts(ctx context.Context, limit int) ([]grimoire.NameCount, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT data FROM entries")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tally := map[string]int{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		e, err := decodeEntry(data)
		if err != nil {
			continue
		}
		traits, _ := e.Traits()
		for _, t := range traits {
			tally[t]++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	counts := make([]grimoire.NameCount, 0, len(tally))
	for name, n := range tally {
		counts = append(counts, grimoire.NameCount{Name: name, Count: n})
	}
	sortNameCounts(counts)
	if limit > 0 && len(counts) > limit {
		counts = counts[:limit]
	}
	return counts, nil
}

func decodeEntry(data string) (*grimoire.Entry, error) {
	var e grimoire.Entry
	if err := json.Unmarshal([]byte(data), &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
