package render_test

import (
	"strings"
	"testing"

	"github.com/pf2fr/grimoire"
	"github.com/pf2fr/grimoire/htmltomarkdown"
	"github.com/pf2fr/grimoire/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainRenderer() *render.Renderer {
	return render.NewRenderer(render.NewTheme(false), htmltomarkdown.NewConverter())
}

func TestFormatMod(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "+7", render.FormatMod(7))
	assert.Equal(t, "+0", render.FormatMod(0))
	assert.Equal(t, "-2", render.FormatMod(-2))
}

func TestFormatActions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   any
		want string
	}{
		{1, "◆"},
		{2, "◆◆"},
		{3, "◆◆◆"},
		{"reaction", "↺"},
		{"free", "◇"},
		{"passive", "—"},
		{"1 minute", "1 minute"},
		{map[string]any{"value": 2}, "◆◆"},
		{nil, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, render.FormatActions(grimoire.ValueOf(tt.in)), "input %v", tt.in)
	}
}

func TestTraitChips(t *testing.T) {
	t.Parallel()

	t.Run("plain theme renders bracketed chips", func(t *testing.T) {
		t.Parallel()

		theme := render.NewTheme(false)
		chips := theme.TraitChips([]string{"feu", "évocation"}, "rare")
		assert.Equal(t, "[rare] [feu] [évocation]", chips)
	})

	t.Run("common rarity is omitted", func(t *testing.T) {
		t.Parallel()

		theme := render.NewTheme(false)
		assert.Equal(t, "[feu]", theme.TraitChips([]string{"feu"}, "common"))
	})

	t.Run("enabled theme colors the rarity chip", func(t *testing.T) {
		t.Parallel()

		theme := render.NewTheme(true)
		chips := theme.TraitChips([]string{"feu"}, "unique")
		assert.Contains(t, chips, "\033[91m[unique]")
		assert.Contains(t, chips, "\033[96m[feu]")
	})
}

func TestRewriteNotation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"compendium references become angle quotes",
			"@UUID[Compendium.pf2e.spells-srd.Item.abc]{Trait de feu}",
			"⟨Trait de feu⟩",
		},
		{
			"legacy compendium syntax",
			"@Compendium[pf2e.feats-srd.abc]{Attaque en puissance}",
			"⟨Attaque en puissance⟩",
		},
		{
			"checks keep the statistic",
			"@Check[reflex|dc:20|basic]",
			"[reflex]",
		},
		{
			"damage keeps the expression",
			"@Damage[2d6]{2d6 feu}",
			"[2d6]",
		},
		{
			"inline rolls keep the dice",
			"[[/r 1d20+5 #Perception]]{1d20+5}",
			"[1d20+5 ]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, render.RewriteNotation(tt.in))
		})
	}
}

func TestExcerpt(t *testing.T) {
	t.Parallel()

	t.Run("strips tags and collapses whitespace", func(t *testing.T) {
		t.Parallel()

		got := render.Excerpt("<p>Vous projetez\n un <strong>trait</strong> de feu.</p>", 120)
		assert.Equal(t, "Vous projetez un trait de feu.", got)
	})

	t.Run("truncates long text with ellipsis", func(t *testing.T) {
		t.Parallel()

		got := render.Excerpt(strings.Repeat("a", 200), 120)
		assert.Len(t, []rune(got), 120)
		assert.True(t, strings.HasSuffix(got, "..."))
	})
}

func TestCompactRow(t *testing.T) {
	t.Parallel()

	entry := &grimoire.Entry{
		ID:          "sxQZ6yqTn0czJxVd",
		Pack:        "spells-srd",
		Category:    grimoire.CategorySpell,
		NameFR:      "Trait de feu",
		NameEN:      "Fire Bolt",
		Translated:  true,
		Description: "<p>Vous projetez un trait de feu.</p>",
		System: grimoire.ValueOf(map[string]any{
			"level":  map[string]any{"value": 1},
			"traits": map[string]any{"value": []any{"feu"}, "rarity": "common"},
		}),
	}

	row := plainRenderer().CompactRow(entry, 1)

	assert.Contains(t, row, "1. Trait de feu")
	assert.Contains(t, row, "(Fire Bolt)")
	assert.Contains(t, row, "[sort]")
	assert.Contains(t, row, "Niv.1")
	assert.Contains(t, row, "← spells-srd")
	assert.Contains(t, row, "#sxQZ6yqT")
	assert.Contains(t, row, "[feu]")
	assert.Contains(t, row, "Vous projetez un trait de feu.")
	assert.NotContains(t, row, "[EN]")
}

func TestCompactRow_Untranslated(t *testing.T) {
	t.Parallel()

	entry := &grimoire.Entry{
		ID:       "aaaaaaaaaaaaaaa1",
		Pack:     "spells-srd",
		Category: grimoire.CategorySpell,
		NameFR:   "Fire Bolt",
		NameEN:   "Fire Bolt",
	}

	row := plainRenderer().CompactRow(entry, 3)

	assert.Contains(t, row, "[EN]")
	// Identical names are not repeated.
	assert.NotContains(t, row, "(Fire Bolt)")
}

func TestDetail_Spell(t *testing.T) {
	t.Parallel()

	entry := &grimoire.Entry{
		ID:          "sxQZ6yqTn0czJxVd",
		Pack:        "spells-srd",
		Category:    grimoire.CategorySpell,
		Source:      "foundry+pf2-fr",
		NameFR:      "Trait de feu",
		NameEN:      "Fire Bolt",
		Translated:  true,
		Description: "<p>Vous projetez un trait de feu.</p>",
		System: grimoire.ValueOf(map[string]any{
			"level":      map[string]any{"value": 1},
			"traits":     map[string]any{"value": []any{"feu", "évocation"}},
			"traditions": map[string]any{"value": []any{"arcane", "primal"}},
			"time":       map[string]any{"value": "2"},
			"range":      map[string]any{"value": "36 mètres"},
			"target":     map[string]any{"value": "1 créature"},
			"defense":    map[string]any{"save": map[string]any{"statistic": "reflex", "basic": true}},
		}),
	}

	out := plainRenderer().Detail(entry)

	assert.Contains(t, out, "TRAIT DE FEU")
	assert.Contains(t, out, "Sort 1")
	assert.Contains(t, out, "(Fire Bolt)")
	assert.Contains(t, out, "Pack: spells-srd | UUID: sxQZ6yqTn0czJxVd | Source: foundry+pf2-fr")
	assert.Contains(t, out, "Vous projetez un trait de feu.")
	assert.Contains(t, out, "Traditions arcane, primal")
	assert.Contains(t, out, "Incantation ◆◆")
	assert.Contains(t, out, "Portée 36 mètres")
	assert.Contains(t, out, "Cibles 1 créature")
	assert.Contains(t, out, "Jet de sauvegarde reflex basique")
}

func TestDetail_SpellLabelRefinement(t *testing.T) {
	t.Parallel()

	cantrip := &grimoire.Entry{
		ID: "aaaaaaaaaaaaaaa1", Pack: "spells-srd",
		Category: grimoire.CategorySpell, NameFR: "Lumière",
		System: grimoire.ValueOf(map[string]any{
			"level":  map[string]any{"value": 1},
			"traits": map[string]any{"value": []any{"cantrip", "lumière"}},
		}),
	}

	out := plainRenderer().Detail(cantrip)
	assert.Contains(t, out, "Tour de magie 1")
}

func TestDetail_Creature(t *testing.T) {
	t.Parallel()

	entry := &grimoire.Entry{
		ID:       "BN5Lb6IsQ9Wyu3rL",
		Pack:     "pathfinder-bestiary",
		Category: grimoire.CategoryCreature,
		Source:   "foundry+pf2-fr",
		NameFR:   "Loup",
		NameEN:   "Wolf",
		System: grimoire.ValueOf(map[string]any{
			"details": map[string]any{
				"level":     map[string]any{"value": 1},
				"languages": map[string]any{"value": []any{}},
			},
			"traits": map[string]any{
				"value": []any{"animal"},
				"size":  map[string]any{"value": "med"},
			},
			"perception": map[string]any{
				"mod": 7,
				"senses": []any{
					map[string]any{"type": "low-light-vision"},
					map[string]any{"type": "scent", "acuity": "imprecise", "range": 9},
				},
			},
			"abilities": map[string]any{
				"str": map[string]any{"mod": 2},
				"dex": map[string]any{"mod": 4},
			},
			"skills": map[string]any{
				"athletics": map[string]any{"base": 7},
				"stealth":   map[string]any{"base": 7},
			},
			"saves": map[string]any{
				"fortitude": map[string]any{"value": 8},
				"reflex":    map[string]any{"value": 9},
				"will":      map[string]any{"value": 5},
			},
			"attributes": map[string]any{
				"ac":    map[string]any{"value": 15},
				"hp":    map[string]any{"max": 24},
				"speed": map[string]any{"value": 10},
				"weaknesses": []any{
					map[string]any{"type": "feu", "value": 5},
				},
			},
		}),
		Items: []*grimoire.SubItem{
			{
				ID: "abcdefabcdefabcd", Type: "melee", NameFR: "Mâchoires", NameEN: "Jaws", Translated: true,
				System: grimoire.ValueOf(map[string]any{
					"bonus":  map[string]any{"value": 9},
					"traits": map[string]any{"value": []any{"finesse"}},
					"damageRolls": map[string]any{
						"d1": map[string]any{"damage": "1d6+2", "damageType": "piercing"},
					},
				}),
			},
			{
				ID: "fedcbafedcbafedc", Type: "action", NameFR: "Attaque en meute", NameEN: "Pack Attack",
				System: grimoire.ValueOf(map[string]any{
					"category":    "defensive",
					"description": map[string]any{"value": "<p>Les attaques du loup infligent 1d4 dégâts de plus.</p>"},
				}),
			},
		},
	}

	out := plainRenderer().Detail(entry)

	assert.Contains(t, out, "LOUP")
	assert.Contains(t, out, "Créature 1")
	assert.Contains(t, out, "Taille Moyenne (M)")
	assert.Contains(t, out, "Perception +7; low-light-vision, scent (imprecise) 9 m")
	assert.Contains(t, out, "Compétences Athlétisme +7, Discrétion +7")
	assert.Contains(t, out, "For +2")
	assert.Contains(t, out, "CA 15")
	assert.Contains(t, out, "Vigueur +8; Réflexes +9; Volonté +5")
	assert.Contains(t, out, "PV 24")
	assert.Contains(t, out, "Faiblesses feu 5")
	assert.Contains(t, out, "Vitesse 10 m")
	assert.Contains(t, out, "Corps-à-corps ◆ Mâchoires +9 (finesse)")
	assert.Contains(t, out, "Dégâts 1d6+2 perforant")
	assert.Contains(t, out, "Attaque en meute")
	assert.Contains(t, out, "Les attaques du loup infligent 1d4 dégâts de plus.")
}

func TestDetail_Class(t *testing.T) {
	t.Parallel()

	entry := &grimoire.Entry{
		ID:       "aaaaaaaaaaaaaaa1",
		Pack:     "classes",
		Category: grimoire.CategoryClass,
		NameFR:   "Magicien",
		NameEN:   "Wizard",
		System: grimoire.ValueOf(map[string]any{
			"hp":         6,
			"keyAbility": map[string]any{"value": []any{"int"}},
			"perception": 1,
			"savingThrows": map[string]any{
				"fortitude": 1, "reflex": 1, "will": 2,
			},
			"trainedSkills": map[string]any{
				"value":      []any{"arcana"},
				"additional": 2,
			},
			"attacks":        map[string]any{"simple": 1, "unarmed": 1},
			"defenses":       map[string]any{"unarmored": 1},
			"spellcasting":   2,
			"classFeatLevels": map[string]any{"value": []any{2, 4, 6}},
			"items": map[string]any{
				"a": map[string]any{"name": "Lien arcanique", "level": 1},
				"b": map[string]any{"name": "École de magie", "level": 1},
			},
			"publication": map[string]any{"title": "Player Core"},
		}),
	}

	out := plainRenderer().Detail(entry)

	assert.Contains(t, out, "MAGICIEN")
	assert.Contains(t, out, "Points de vie 6 + modificateur de Constitution par niveau")
	assert.Contains(t, out, "Caractéristique clé Intelligence")
	assert.Contains(t, out, "Perception Formé")
	assert.Contains(t, out, "Jets de sauvegarde Vigueur (Formé), Réflexes (Formé), Volonté (Expert)")
	assert.Contains(t, out, "Compétences Arcanes, +2 au choix")
	assert.Contains(t, out, "Attaques Simples (Formé), Sans arme (Formé)")
	assert.Contains(t, out, "Incantation Expert")
	assert.Contains(t, out, "Dons de classe Niv. 2, 4, 6")
	assert.Contains(t, out, "Capacités de classe")
	assert.Contains(t, out, "Lien arcanique")
	assert.Contains(t, out, "Source: Player Core")
}

func TestClean(t *testing.T) {
	t.Parallel()

	r := plainRenderer()

	t.Run("converts html and rewrites references", func(t *testing.T) {
		t.Parallel()

		got := r.Clean(`<p>Voir @UUID[Compendium.pf2e.spells-srd.Item.abc]{Boule de feu}.</p>`)
		assert.Contains(t, got, "⟨Boule de feu⟩")
		assert.NotContains(t, got, "@UUID")
		assert.NotContains(t, got, "<p>")
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "", r.Clean("  "))
	})
}
