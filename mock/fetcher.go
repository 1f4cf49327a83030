package mock

import (
	"context"

	"github.com/pf2fr/grimoire"
)

var _ grimoire.SourceFetcher = (*SourceFetcher)(nil)

// SourceFetcher is a mock implementation of grimoire.SourceFetcher.
type SourceFetcher struct {
	UpdateFn func(ctx context.Context) (map[string]bool, error)
}

func (f *SourceFetcher) Update(ctx context.Context) (map[string]bool, error) {
	return f.UpdateFn(ctx)
}
