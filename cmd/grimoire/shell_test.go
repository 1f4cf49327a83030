package main_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/pf2fr/grimoire"
	main "github.com/pf2fr/grimoire/cmd/grimoire"
	"github.com/pf2fr/grimoire/htmltomarkdown"
	"github.com/pf2fr/grimoire/mock"
	"github.com/pf2fr/grimoire/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fireBoltEntry() *grimoire.Entry {
	return &grimoire.Entry{
		ID:          "sxQZ6yqTn0czJxVd",
		Pack:        "spells-srd",
		Category:    grimoire.CategorySpell,
		NameFR:      "Trait de feu",
		NameEN:      "Fire Bolt",
		Translated:  true,
		Description: "<p>Vous projetez un trait de feu.</p>",
		System: grimoire.ValueOf(map[string]any{
			"level":  map[string]any{"value": 1},
			"traits": map[string]any{"value": []any{"feu"}},
		}),
	}
}

func testDeps(stdin io.Reader, stdout, stderr io.Writer) *main.Dependencies {
	return &main.Dependencies{
		Ctx:      context.Background(),
		Stdin:    stdin,
		Stdout:   stdout,
		Stderr:   stderr,
		Renderer: render.NewRenderer(render.NewTheme(false), htmltomarkdown.NewConverter()),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestShellCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("quits on q", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		deps := testDeps(strings.NewReader("q\n"), &stdout, &stderr)

		cmd := &main.ShellCmd{}
		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), "pf2>")
	})

	t.Run("query then numeric recall", func(t *testing.T) {
		t.Parallel()

		var gotFilter grimoire.SearchFilter
		search := &mock.SearchService{
			SearchFn: func(ctx context.Context, filter grimoire.SearchFilter) ([]*grimoire.Entry, error) {
				gotFilter = filter
				return []*grimoire.Entry{fireBoltEntry()}, nil
			},
		}

		var stdout, stderr bytes.Buffer
		deps := testDeps(strings.NewReader("sort: feu\n1\nq\n"), &stdout, &stderr)
		deps.Search = search

		cmd := &main.ShellCmd{}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, "feu", gotFilter.Query)
		assert.Equal(t, grimoire.CategorySpell, gotFilter.Category)
		out := stdout.String()
		assert.Contains(t, out, `1 result(s) for "feu"`)
		assert.Contains(t, out, "Trait de feu")
		// The numeric recall printed the detail view.
		assert.Contains(t, out, "TRAIT DE FEU")
		assert.Contains(t, out, "Vous projetez un trait de feu.")
	})

	t.Run("out of range recall reports the valid range", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		deps := testDeps(strings.NewReader("7\nq\n"), &stdout, &stderr)

		cmd := &main.ShellCmd{}
		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), "invalid number (1-0)")
	})

	t.Run("bare trait filter lists by trait", func(t *testing.T) {
		t.Parallel()

		var gotTrait string
		search := &mock.SearchService{
			ListByTraitFn: func(ctx context.Context, trait, category string, limit int) ([]*grimoire.Entry, error) {
				gotTrait = trait
				return []*grimoire.Entry{fireBoltEntry()}, nil
			},
		}

		var stdout, stderr bytes.Buffer
		deps := testDeps(strings.NewReader("trait:feu\nq\n"), &stdout, &stderr)
		deps.Search = search

		cmd := &main.ShellCmd{}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, "feu", gotTrait)
		assert.Contains(t, stdout.String(), `1 result(s) for "trait:feu"`)
	})

	t.Run("desc prefix queries the full-text index", func(t *testing.T) {
		t.Parallel()

		var gotQuery string
		search := &mock.SearchService{
			SearchDescriptionsFn: func(ctx context.Context, query string, limit int) ([]*grimoire.Entry, error) {
				gotQuery = query
				return nil, nil
			},
		}

		var stdout, stderr bytes.Buffer
		deps := testDeps(strings.NewReader("desc:flamme\nq\n"), &stdout, &stderr)
		deps.Search = search

		cmd := &main.ShellCmd{}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, "flamme", gotQuery)
		assert.Contains(t, stdout.String(), `no results for "flamme"`)
	})

	t.Run("introspection commands", func(t *testing.T) {
		t.Parallel()

		entries := &mock.EntryService{
			StatsFn: func(ctx context.Context) (*grimoire.CorpusStats, error) {
				return &grimoire.CorpusStats{Total: 42, Translated: 40}, nil
			},
			CategoriesFn: func(ctx context.Context) ([]grimoire.NameCount, error) {
				return []grimoire.NameCount{{Name: "sort", Count: 30}}, nil
			},
			CollectionsFn: func(ctx context.Context) ([]grimoire.NameCount, error) {
				return []grimoire.NameCount{{Name: "spells-srd", Count: 30}}, nil
			},
			TraitCountsFn: func(ctx context.Context, limit int) ([]grimoire.NameCount, error) {
				return []grimoire.NameCount{{Name: "feu", Count: 12}}, nil
			},
		}

		var stdout, stderr bytes.Buffer
		deps := testDeps(strings.NewReader("stats\ntypes\npacks\ntraits\nq\n"), &stdout, &stderr)
		deps.Entries = entries

		cmd := &main.ShellCmd{}
		require.NoError(t, cmd.Run(deps))

		out := stdout.String()
		assert.Contains(t, out, "42 entries, 40 translated")
		assert.Contains(t, out, "• sort (30)")
		assert.Contains(t, out, "• spells-srd (30)")
		assert.Contains(t, out, "• feu (12)")
	})
}
