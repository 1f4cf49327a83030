package grimoire

import "context"

// DefaultSearchLimit caps result lists when the caller does not set one.
const DefaultSearchLimit = 25

// DefaultTraitListLimit caps trait listings.
const DefaultTraitListLimit = 50

// SearchFilter carries a free-text query and the optional filters that
// intersect with it. A zero Limit means DefaultSearchLimit.
type SearchFilter struct {
	Query    string
	Category string // exact match on the derived category
	Pack     string // case-insensitive substring of the pack name
	Trait    string // case-insensitive substring of any trait
	Limit    int
}

// SearchService provides ranked lookup over the persisted corpus.
type SearchService interface {
	// Search returns entries ranked by relevance tier, most relevant
	// first, deduplicated on (pack, id) and capped at the filter limit.
	// An empty or unmatched query yields an empty slice, never an error.
	Search(ctx context.Context, filter SearchFilter) ([]*Entry, error)

	// ListByTrait returns all entries whose trait list contains the
	// given substring, sorted by ascending level then name. Category is
	// an optional exact filter; limit <= 0 means DefaultTraitListLimit.
	ListByTrait(ctx context.Context, trait, category string, limit int) ([]*Entry, error)

	// SearchDescriptions queries the full-text index over names, packs
	// and description excerpts.
	SearchDescriptions(ctx context.Context, query string, limit int) ([]*Entry, error)
}
