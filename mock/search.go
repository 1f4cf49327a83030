package mock

import (
	"context"

	"github.com/pf2fr/grimoire"
)

var _ grimoire.SearchService = (*SearchService)(nil)

// SearchService is a mock implementation of grimoire.SearchService.
type SearchService struct {
	SearchFn             func(ctx context.Context, filter grimoire.SearchFilter) ([]*grimoire.Entry, error)
	ListByTraitFn        func(ctx context.Context, trait, category string, limit int) ([]*grimoire.Entry, error)
	SearchDescriptionsFn func(ctx context.Context, query string, limit int) ([]*grimoire.Entry, error)
}

func (s *SearchService) Search(ctx context.Context, filter grimoire.SearchFilter) ([]*grimoire.Entry, error) {
	return s.SearchFn(ctx, filter)
}

func (s *SearchService) ListByTrait(ctx context.Context, trait, category string, limit int) ([]*grimoire.Entry, error) {
	return s.ListByTraitFn(ctx, trait, category, limit)
}

func (s *SearchService) SearchDescriptions(ctx context.Context, query string, limit int) ([]*grimoire.Entry, error) {
	return s.SearchDescriptionsFn(ctx, query, limit)
}
