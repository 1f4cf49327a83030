package main_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/pf2fr/grimoire"
	main "github.com/pf2fr/grimoire/cmd/grimoire"
	"github.com/pf2fr/grimoire/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("joins the query terms and passes the filters", func(t *testing.T) {
		t.Parallel()

		var gotFilter grimoire.SearchFilter
		search := &mock.SearchService{
			SearchFn: func(ctx context.Context, filter grimoire.SearchFilter) ([]*grimoire.Entry, error) {
				gotFilter = filter
				return []*grimoire.Entry{fireBoltEntry()}, nil
			},
		}

		var stdout, stderr bytes.Buffer
		deps := testDeps(strings.NewReader(""), &stdout, &stderr)
		deps.Search = search

		cmd := &main.SearchCmd{Query: []string{"trait", "de", "feu"}, Type: "sort", Limit: 10}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, "trait de feu", gotFilter.Query)
		assert.Equal(t, "sort", gotFilter.Category)
		assert.Equal(t, 10, gotFilter.Limit)
		assert.Contains(t, stdout.String(), "Trait de feu")
	})

	t.Run("trait filter without a query lists by trait", func(t *testing.T) {
		t.Parallel()

		var gotTrait, gotCategory string
		search := &mock.SearchService{
			ListByTraitFn: func(ctx context.Context, trait, category string, limit int) ([]*grimoire.Entry, error) {
				gotTrait, gotCategory = trait, category
				return []*grimoire.Entry{fireBoltEntry()}, nil
			},
		}

		var stdout, stderr bytes.Buffer
		deps := testDeps(strings.NewReader(""), &stdout, &stderr)
		deps.Search = search

		cmd := &main.SearchCmd{Trait: "feu", Type: "sort", Limit: 25}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, "feu", gotTrait)
		assert.Equal(t, "sort", gotCategory)
	})

	t.Run("full mode prints the detail view", func(t *testing.T) {
		t.Parallel()

		search := &mock.SearchService{
			SearchFn: func(ctx context.Context, filter grimoire.SearchFilter) ([]*grimoire.Entry, error) {
				return []*grimoire.Entry{fireBoltEntry()}, nil
			},
		}

		var stdout, stderr bytes.Buffer
		deps := testDeps(strings.NewReader(""), &stdout, &stderr)
		deps.Search = search

		cmd := &main.SearchCmd{Query: []string{"feu"}, Full: true}
		require.NoError(t, cmd.Run(deps))

		out := stdout.String()
		assert.Contains(t, out, "TRAIT DE FEU")
		assert.Contains(t, out, "Vous projetez un trait de feu.")
	})

	t.Run("no results", func(t *testing.T) {
		t.Parallel()

		search := &mock.SearchService{
			SearchFn: func(ctx context.Context, filter grimoire.SearchFilter) ([]*grimoire.Entry, error) {
				return nil, nil
			},
		}

		var stdout, stderr bytes.Buffer
		deps := testDeps(strings.NewReader(""), &stdout, &stderr)
		deps.Search = search

		cmd := &main.SearchCmd{Query: []string{"zzz"}}
		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), `no results for "zzz"`)
	})
}
