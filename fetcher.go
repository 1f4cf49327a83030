package grimoire

import "context"

// Source identifies one upstream data repository.
type Source struct {
	Name string
	URL  string
}

// SourceFetcher retrieves or refreshes the upstream data sources.
type SourceFetcher interface {
	// Update fetches every configured source and reports per-source
	// success. It returns EUNAVAILABLE when no source could be fetched;
	// partial failure is not an error.
	Update(ctx context.Context) (map[string]bool, error)
}
