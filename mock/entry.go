// Package mock provides function-field mock implementations of the
// domain service interfaces.
package mock

import (
	"context"

	"github.com/pf2fr/grimoire"
)

var _ grimoire.EntryService = (*EntryService)(nil)

// EntryService is a mock implementation of grimoire.EntryService.
type EntryService struct {
	RebuildCorpusFn func(ctx context.Context, entries []*grimoire.Entry) (*grimoire.CorpusStats, error)
	FindEntryByIDFn func(ctx context.Context, id string) (*grimoire.Entry, error)
	StatsFn         func(ctx context.Context) (*grimoire.CorpusStats, error)
	CategoriesFn    func(ctx context.Context) ([]grimoire.NameCount, error)
	CollectionsFn   func(ctx context.Context) ([]grimoire.NameCount, error)
	TraitCountsFn   func(ctx context.Context, limit int) ([]grimoire.NameCount, error)
}

func (s *EntryService) RebuildCorpus(ctx context.Context, entries []*grimoire.Entry) (*grimoire.CorpusStats, error) {
	return s.RebuildCorpusFn(ctx, entries)
}

func (s *EntryService) FindEntryByID(ctx context.Context, id string) (*grimoire.Entry, error) {
	return s.FindEntryByIDFn(ctx, id)
}

func (s *EntryService) Stats(ctx context.Context) (*grimoire.CorpusStats, error) {
	return s.StatsFn(ctx)
}

func (s *EntryService) Categories(ctx context.Context) ([]grimoire.NameCount, error) {
	return s.CategoriesFn(ctx)
}

func (s *EntryService) Collections(ctx context.Context) ([]grimoire.NameCount, error) {
	return s.CollectionsFn(ctx)
}

func (s *EntryService) TraitCounts(ctx context.Context, limit int) ([]grimoire.NameCount, error) {
	return s.TraitCountsFn(ctx, limit)
}
