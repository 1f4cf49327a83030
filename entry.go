package grimoire

import "context"

// Entry is the canonical persisted unit: one mechanical record merged
// with its translation, or a synthesized glossary concept. Entries are
// immutable after a corpus build and superseded wholesale by the next
// full rebuild.
type Entry struct {
	ID         string `json:"_id"`
	Pack       string `json:"_pack"`
	Category   string `json:"_pack_type"`
	Source     string `json:"_source"`
	Translated bool   `json:"_translated"`

	NameFR      string `json:"name_fr"`
	NameEN      string `json:"name_en"`
	Description string `json:"description_fr"`
	Status      string `json:"_trans_status,omitempty"`
	HasJournal  bool   `json:"_has_journal,omitempty"`

	// Type is the original type tag from the mechanical dataset,
	// distinct from the derived Category.
	Type string `json:"type"`

	// System is the full attribute tree, carried verbatim so the
	// presentation layer can read any path the dataset defines.
	System Value `json:"system"`

	// Items are embedded sub-records (attacks, abilities, spellcasting
	// entries) with their own translations.
	Items []*SubItem `json:"items,omitempty"`
}

// SubItem is an embedded sub-record of an entry.
type SubItem struct {
	ID          string `json:"_id"`
	Type        string `json:"type"`
	NameFR      string `json:"name_fr"`
	NameEN      string `json:"name_en"`
	Description string `json:"description_fr,omitempty"`
	Translated  bool   `json:"_translated"`
	System      Value  `json:"system"`
}

// Validate returns an error if the entry contains invalid fields.
func (e *Entry) Validate() error {
	if e.ID == "" {
		return Errorf(EINVALID, "entry identifier required")
	}
	if e.Pack == "" {
		return Errorf(EINVALID, "entry pack required")
	}
	return nil
}

// Key returns the compound uniqueness key of the entry.
func (e *Entry) Key() string { return e.Pack + ":" + e.ID }

// Name returns the display name, preferring the French side.
func (e *Entry) Name() string {
	if e.NameFR != "" {
		return e.NameFR
	}
	return e.NameEN
}

// Level extracts the level from the attribute tree. Levels live at
// system.level or system.details.level, either bare or wrapped in
// {"value": n}. The second return is false when no level is present.
func (e *Entry) Level() (int, bool) {
	if lvl := e.System.Get("level"); !lvl.IsNull() {
		return lvl.ValueOrSelf().IntOK()
	}
	if lvl := e.System.Get("details", "level"); !lvl.IsNull() {
		return lvl.ValueOrSelf().IntOK()
	}
	return 0, false
}

// Traits returns the trait list and rarity from the attribute tree.
// system.traits is usually {"value": [...], "rarity": "..."} but
// appears as a bare list in some packs.
func (e *Entry) Traits() (traits []string, rarity string) {
	td := e.System.Get("traits")
	switch td.Kind() {
	case KindMap:
		traits = td.Get("value").Strings()
		rarity = td.Get("rarity").ValueOrSelf().Str()
	case KindSeq:
		traits = td.Strings()
	}
	return traits, rarity
}

// HasTrait reports whether any trait contains the given substring,
// case-insensitively. Used by the search trait filter.
func (e *Entry) HasTrait(substr string) bool {
	traits, _ := e.Traits()
	return containsFold(traits, substr)
}

// DisplayDescription returns the best available description text: the
// resolved French description, then creature public notes, then the
// attribute tree's own description field.
func (e *Entry) DisplayDescription() string {
	if e.Description != "" {
		return e.Description
	}
	if e.Category == CategoryCreature {
		if notes := e.System.Get("details", "publicNotes").Str(); notes != "" {
			return notes
		}
	}
	return e.System.Get("description").ValueOrSelf().Str()
}

// CorpusStats holds the aggregate metadata recorded with each build.
type CorpusStats struct {
	BuildID    string         `json:"buildId"`
	CreatedAt  string         `json:"createdAt"`
	Total      int            `json:"total"`
	Translated int            `json:"translated"`
	ByCategory map[string]int `json:"byCategory"`
	Version    string         `json:"version"`
}

// NameCount is a name with an occurrence count, used by the corpus
// introspection queries.
type NameCount struct {
	Name  string
	Count int
}

// EntryService manages the persisted corpus.
type EntryService interface {
	// RebuildCorpus replaces the entire corpus with the given entries in
	// one transaction. Duplicate (pack, id) pairs beyond the first are
	// dropped silently. Returns the recorded aggregate stats.
	RebuildCorpus(ctx context.Context, entries []*Entry) (*CorpusStats, error)

	// FindEntryByID retrieves one entry by its identifier, regardless of
	// pack. Returns ENOTFOUND if no entry has the identifier.
	FindEntryByID(ctx context.Context, id string) (*Entry, error)

	// Stats returns the aggregate metadata of the current corpus.
	Stats(ctx context.Context) (*CorpusStats, error)

	// Categories returns per-category entry counts, most frequent first.
	Categories(ctx context.Context) ([]NameCount, error)

	// Collections returns per-pack entry counts, most frequent first.
	Collections(ctx context.Context) ([]NameCount, error)

	// TraitCounts returns the most frequent traits across the corpus.
	TraitCounts(ctx context.Context, limit int) ([]NameCount, error)
}
