package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/pf2fr/grimoire"
	"github.com/pf2fr/grimoire/mock"
	grimslog "github.com/pf2fr/grimoire/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSearchService_Search(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	inner := &mock.SearchService{
		SearchFn: func(ctx context.Context, filter grimoire.SearchFilter) ([]*grimoire.Entry, error) {
			return []*grimoire.Entry{{ID: "a", Pack: "spells-srd", NameFR: "Boule de feu"}}, nil
		},
	}

	svc := grimslog.NewLoggingSearchService(inner, logger)
	entries, err := svc.Search(context.Background(), grimoire.SearchFilter{Query: "boule de feu"})

	require.NoError(t, err)
	require.Len(t, entries, 1)
	output := buf.String()
	assert.Contains(t, output, "search")
	assert.Contains(t, output, `query="boule de feu"`)
	assert.Contains(t, output, "results=1")
}

func TestLoggingSearchService_ListByTrait(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	inner := &mock.SearchService{
		ListByTraitFn: func(ctx context.Context, trait, category string, limit int) ([]*grimoire.Entry, error) {
			return nil, nil
		},
	}

	svc := grimslog.NewLoggingSearchService(inner, logger)
	_, err := svc.ListByTrait(context.Background(), "feu", "", 0)

	require.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, "trait listing")
	assert.Contains(t, output, "trait=feu")
	assert.Contains(t, output, "results=0")
}

func TestLoggingSearchService_SearchDescriptions(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	inner := &mock.SearchService{
		SearchDescriptionsFn: func(ctx context.Context, query string, limit int) ([]*grimoire.Entry, error) {
			return []*grimoire.Entry{{ID: "a"}, {ID: "b"}}, nil
		},
	}

	svc := grimslog.NewLoggingSearchService(inner, logger)
	entries, err := svc.SearchDescriptions(context.Background(), "flamme", 10)

	require.NoError(t, err)
	assert.Len(t, entries, 2)
	output := buf.String()
	assert.Contains(t, output, "description search")
	assert.Contains(t, output, "query=flamme")
}
