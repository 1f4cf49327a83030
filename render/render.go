package render

import (
	"fmt"
	"strings"

	"github.com/pf2fr/grimoire"
)

// detailWidth is the rule width of the detail view.
const detailWidth = 70

// excerptLen caps the compact row's description excerpt.
const excerptLen = 120

// Renderer formats entries using a theme and an HTML converter.
type Renderer struct {
	theme *Theme
	conv  grimoire.Converter
}

// NewRenderer creates a Renderer.
func NewRenderer(theme *Theme, conv grimoire.Converter) *Renderer {
	return &Renderer{theme: theme, conv: conv}
}

// typeLabels capitalizes categories for the detail header.
var typeLabels = map[string]string{
	grimoire.CategoryCreature:  "Créature",
	grimoire.CategorySpell:     "Sort",
	grimoire.CategoryFeat:      "Don",
	grimoire.CategoryAction:    "Action",
	grimoire.CategoryEquipment: "Équipement",
	grimoire.CategoryWeapon:    "Arme",
	grimoire.CategoryArmor:     "Armure",
	"consommable":              "Consommable",
	grimoire.CategoryHazard:    "Danger",
	grimoire.CategoryAncestry:  "Ascendance",
	grimoire.CategoryClass:     "Classe",
	grimoire.CategoryArchetype: "Archétype",
	grimoire.CategoryCondition: "État",
	grimoire.CategoryRule:      "Règle",
	grimoire.CategoryDomain:    "Domaine",
	grimoire.CategoryTrait:     "Trait",
	grimoire.CategoryAbility:   "Capacité",
	grimoire.CategoryMaterial:  "Matériau",
	grimoire.CategoryGlossary:  "Glossaire",
	grimoire.CategoryJournal:   "Journal",
	"compagnon":                "Compagnon",
	"trésor":                   "Trésor",
	"familier":                 "Familier",
	"véhicule":                 "Véhicule",
}

// typeLabel resolves the display label of an entry, refining spells
// into cantrips and focus spells by trait.
func typeLabel(e *grimoire.Entry) string {
	label, ok := typeLabels[e.Category]
	if !ok {
		label = capitalizeFirst(e.Category)
	}
	if e.Category == grimoire.CategorySpell {
		if e.HasTrait("cantrip") {
			label = "Tour de magie"
		} else if e.HasTrait("focus") {
			label = "Sort focalisé"
		}
	}
	return label
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}

// CompactRow renders one result-list row: name pair, category, level,
// pack, translation marker, identifier, traits and a one-line excerpt.
func (r *Renderer) CompactRow(e *grimoire.Entry, idx int) string {
	t := r.theme
	var b strings.Builder

	b.WriteString(t.Highlight(fmt.Sprintf(" %d. %s ", idx, e.NameFR)))
	if e.NameEN != "" && !strings.EqualFold(e.NameEN, e.NameFR) {
		b.WriteString(" " + t.Dim("("+e.NameEN+")"))
	}
	b.WriteString("\n")

	b.WriteString("   " + t.Dim("["+e.Category+"]"))
	if lvl, ok := e.Level(); ok {
		b.WriteString(" " + t.Yellow(fmt.Sprintf("Niv.%d", lvl)))
	}
	b.WriteString(" " + t.Magenta("← "+e.Pack))
	if !e.Translated {
		b.WriteString(" " + t.Red("[EN]"))
	}
	if e.ID != "" {
		id := e.ID
		if len(id) > 8 {
			id = id[:8]
		}
		b.WriteString(" " + t.Dim("#"+id))
	}
	b.WriteString("\n")

	traits, rarity := e.Traits()
	if chips := t.TraitChips(traits, rarity); chips != "" {
		b.WriteString("   " + chips + "\n")
	}

	if desc := e.DisplayDescription(); desc != "" {
		b.WriteString("   " + t.Dim(Excerpt(desc, excerptLen)) + "\n")
	}
	return b.String()
}

// Detail renders the full view of an entry: header, traits, metadata,
// description and the per-category stat block.
func (r *Renderer) Detail(e *grimoire.Entry) string {
	t := r.theme
	var b strings.Builder

	rule := strings.Repeat("═", detailWidth)
	b.WriteString(t.Blue(rule) + "\n")

	title := t.Bold(t.White(" " + strings.ToUpper(e.NameFR) + " "))
	label := typeLabel(e)
	if lvl, ok := e.Level(); ok && label != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", title, t.Yellow(fmt.Sprintf("%s %d", label, lvl))))
	} else if label != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", title, t.Yellow(label)))
	} else {
		b.WriteString(title + "\n")
	}

	if e.NameEN != "" && !strings.EqualFold(e.NameEN, e.NameFR) {
		b.WriteString("   " + t.Dim("("+e.NameEN+")") + "\n")
	}

	traits, rarity := e.Traits()
	if chips := t.TraitChips(traits, rarity); chips != "" {
		b.WriteString("   " + chips + "\n")
	}

	b.WriteString("   " + t.Dim(fmt.Sprintf("Pack: %s | UUID: %s | Source: %s", e.Pack, e.ID, e.Source)) + "\n")
	b.WriteString(t.Dim(strings.Repeat("─", detailWidth)) + "\n")

	if desc := e.DisplayDescription(); desc != "" {
		for _, line := range strings.Split(r.Clean(desc), "\n") {
			if strings.TrimSpace(line) == "" {
				b.WriteString("\n")
				continue
			}
			b.WriteString("   " + line + "\n")
		}
		b.WriteString("\n")
	}

	switch e.Category {
	case grimoire.CategoryCreature, "compagnon":
		r.creatureBlock(&b, e)
	case grimoire.CategorySpell:
		r.spellBlock(&b, e.System)
	case grimoire.CategoryFeat:
		r.featBlock(&b, e.System)
	case grimoire.CategoryEquipment, grimoire.CategoryWeapon, grimoire.CategoryArmor, "consommable":
		r.equipmentBlock(&b, e.System)
	case grimoire.CategoryAction:
		r.actionBlock(&b, e.System)
	case grimoire.CategoryClass:
		r.classBlock(&b, e.System)
	}

	b.WriteString(t.Blue(rule) + "\n")
	return b.String()
}

// field writes one "   Label value" detail line.
func (r *Renderer) field(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "   %s %s\n", r.theme.Green(label), value)
}

// separator writes a thin rule.
func (r *Renderer) separator(b *strings.Builder) {
	b.WriteString(r.theme.Dim(strings.Repeat("─", detailWidth)) + "\n")
}
