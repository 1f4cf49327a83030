// Package lang synthesizes glossary entries from the two datasets'
// top-level language files. Neither dataset ships these concepts as
// records; they only exist as localization keys, so the lexicon
// families here rebuild them into searchable entries.
package lang

import (
	"sort"
	"strings"

	"github.com/pf2fr/grimoire"
)

// SourceLabel marks entries synthesized from both language files.
const SourceLabel = "pf2-fr+pf2e"

// Extract parses both language files and returns every lexicon family.
// Keys are unioned across languages; a missing side falls back to the
// other.
func Extract(frJSON, enJSON []byte) ([]*grimoire.Entry, error) {
	fr, err := grimoire.ParseValue(frJSON)
	if err != nil {
		return nil, grimoire.Errorf(grimoire.EINVALID, "invalid french language file: %v", err)
	}
	en, err := grimoire.ParseValue(enJSON)
	if err != nil {
		return nil, grimoire.Errorf(grimoire.EINVALID, "invalid english language file: %v", err)
	}

	frRoot := fr.Get("PF2E")
	enRoot := en.Get("PF2E")

	var entries []*grimoire.Entry
	entries = append(entries, Traits(frRoot, enRoot)...)
	entries = append(entries, Conditions(frRoot, enRoot)...)
	entries = append(entries, NPCAbilities(frRoot, enRoot)...)
	entries = append(entries, Materials(frRoot, enRoot)...)
	entries = append(entries, Glossary(frRoot, enRoot)...)
	return entries, nil
}

// stringsByPrefix collects string values whose key starts with prefix,
// mapped by the lowercased remainder of the key. Keys containing any of
// the exclude fragments are skipped.
func stringsByPrefix(root grimoire.Value, prefix string, exclude ...string) map[string]string {
	out := map[string]string{}
keys:
	for _, k := range root.Keys() {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		for _, ex := range exclude {
			if strings.Contains(k, ex) {
				continue keys
			}
		}
		v := root.Get(k)
		if v.Kind() != grimoire.KindString {
			continue
		}
		suffix := strings.ToLower(k[len(prefix):])
		if suffix == "" {
			continue
		}
		out[suffix] = v.Str()
	}
	return out
}

// stringMap flattens a mapping node into suffix→string, skipping
// non-string values.
func stringMap(node grimoire.Value) map[string]string {
	out := map[string]string{}
	for _, k := range node.Keys() {
		v := node.Get(k)
		if v.Kind() == grimoire.KindString {
			out[strings.ToLower(k)] = v.Str()
		}
	}
	return out
}

// unionKeys returns the sorted union of both maps' keys. Sorting keeps
// extraction order stable across builds.
func unionKeys(a, b map[string]string) []string {
	seen := map[string]bool{}
	for k := range a {
		seen[k] = true
	}
	for k := range b {
		seen[k] = true
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func fallback(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Traits builds trait entries from TraitDescription* keys, using
// Trait* labels for display names. The bare lexicon key is the entry
// identifier.
func Traits(fr, en grimoire.Value) []*grimoire.Entry {
	frDescs := stringsByPrefix(fr, "TraitDescription")
	enDescs := stringsByPrefix(en, "TraitDescription")
	frLabels := stringsByPrefix(fr, "Trait", "TraitDescription")
	enLabels := stringsByPrefix(en, "Trait", "TraitDescription")

	var entries []*grimoire.Entry
	for _, key := range unionKeys(frDescs, enDescs) {
		nameFR := fallback(frLabels[key], capitalize(key))
		nameEN := fallback(enLabels[key], capitalize(key))
		descFR := frDescs[key]
		descEN := enDescs[key]

		entries = append(entries, &grimoire.Entry{
			ID:          key,
			Pack:        "traits",
			Category:    grimoire.CategoryTrait,
			Source:      SourceLabel,
			Translated:  descFR != "",
			NameFR:      fallback(nameFR, nameEN),
			NameEN:      fallback(nameEN, nameFR),
			Description: descFR,
			Type:        "trait",
			System:      descriptionSystem(fallback(descEN, descFR)),
		})
	}
	return entries
}

// Conditions builds condition name entries from ConditionType* keys.
// Condition descriptions live in the compendium's own condition
// records; these entries are the quick bilingual name reference.
func Conditions(fr, en grimoire.Value) []*grimoire.Entry {
	frNames := stringsByPrefix(fr, "ConditionType")
	enNames := stringsByPrefix(en, "ConditionType")

	var entries []*grimoire.Entry
	for _, key := range unionKeys(frNames, enNames) {
		nameFR := frNames[key]
		nameEN := enNames[key]

		entries = append(entries, &grimoire.Entry{
			ID:         "condition-" + key,
			Pack:       "conditions",
			Category:   grimoire.CategoryCondition,
			Source:     SourceLabel,
			Translated: nameFR != "",
			NameFR:     fallback(nameFR, nameEN),
			NameEN:     fallback(nameEN, nameFR),
			Type:       "état",
			System:     descriptionSystem(""),
		})
	}
	return entries
}

// NPCAbilities builds entries from the NPC.Abilities.Glossary mapping,
// resolving display names through AttackEffect* labels (Grab carries a
// proper translation there, for example).
func NPCAbilities(fr, en grimoire.Value) []*grimoire.Entry {
	frGlossary := fr.Get("NPC", "Abilities", "Glossary")
	enGlossary := en.Get("NPC", "Abilities", "Glossary")
	frEffects := stringsByPrefix(fr, "AttackEffect")
	enEffects := stringsByPrefix(en, "AttackEffect")

	keys := map[string]bool{}
	for _, k := range frGlossary.Keys() {
		keys[k] = true
	}
	for _, k := range enGlossary.Keys() {
		keys[k] = true
	}
	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	var entries []*grimoire.Entry
	for _, key := range sorted {
		descFR := frGlossary.Get(key).Str()
		descEN := enGlossary.Get(key).Str()
		lower := strings.ToLower(key)
		nameFR := fallback(frEffects[lower], key)
		nameEN := fallback(enEffects[lower], key)

		entries = append(entries, &grimoire.Entry{
			ID:          "npc-ability-" + lower,
			Pack:        "npc-abilities",
			Category:    grimoire.CategoryAbility,
			Source:      SourceLabel,
			Translated:  descFR != "",
			NameFR:      fallback(nameFR, nameEN),
			NameEN:      fallback(nameEN, nameFR),
			Description: descFR,
			Type:        "capacité",
			System:      descriptionSystem(fallback(descEN, descFR)),
		})
	}
	return entries
}

// Materials builds entries from PreciousMaterial* keys. Only materials
// with a *Description key become entries; Grade and Label variants are
// pricing noise, not names.
func Materials(fr, en grimoire.Value) []*grimoire.Entry {
	frNames := materialNames(fr)
	enNames := materialNames(en)
	frDescs := materialDescriptions(fr)
	enDescs := materialDescriptions(en)

	var entries []*grimoire.Entry
	for _, key := range unionKeys(frDescs, enDescs) {
		nameFR := fallback(frNames[key], capitalize(key))
		nameEN := fallback(enNames[key], capitalize(key))
		descFR := frDescs[key]
		descEN := enDescs[key]

		entries = append(entries, &grimoire.Entry{
			ID:          "material-" + key,
			Pack:        "materials",
			Category:    grimoire.CategoryMaterial,
			Source:      SourceLabel,
			Translated:  descFR != "",
			NameFR:      fallback(nameFR, nameEN),
			NameEN:      fallback(nameEN, nameFR),
			Description: descFR,
			Type:        "matériau",
			System:      descriptionSystem(fallback(descEN, descFR)),
		})
	}
	return entries
}

func materialNames(root grimoire.Value) map[string]string {
	out := map[string]string{}
	for k, v := range stringsByPrefix(root, "PreciousMaterial", "Description", "Grade", "Label") {
		out[k] = v
	}
	return out
}

func materialDescriptions(root grimoire.Value) map[string]string {
	out := map[string]string{}
	for k, v := range stringsByPrefix(root, "PreciousMaterial") {
		if strings.HasSuffix(k, "description") {
			out[strings.TrimSuffix(k, "description")] = v
		}
	}
	return out
}

// glossaryFamily names one flat-prefix glossary family: the key prefix
// in the language file, the identifier fragment, and both display
// labels for the category line.
type glossaryFamily struct {
	prefix   string
	idPrefix string
	labelFR  string
	labelEN  string
}

var glossaryFamilies = []glossaryFamily{
	{"ActorSize", "taille", "Taille", "Size"},
	{"ProficiencyLevel", "maîtrise", "Niveau de maîtrise", "Proficiency Level"},
	{"DCAdjustment", "dd", "Ajustement DD", "DC Adjustment"},
	{"ActionType", "type-action", "Type d'action", "Action Type"},
	{"PreparationType", "préparation", "Type de préparation", "Preparation Type"},
	{"WeaponGroup", "groupe-arme", "Groupe d'armes", "Weapon Group"},
	{"ArmorGroup", "groupe-armure", "Groupe d'armures", "Armor Group"},
	{"WeaponType", "type-arme", "Type d'arme", "Weapon Type"},
	{"ArmorType", "type-armure", "Type d'armure", "Armor Type"},
	{"Currency", "devise", "Devise", "Currency"},
}

// saveNamesFR maps the save keys to their standard French names, used
// when the French file lacks the key.
var saveNamesFR = map[string]string{
	"fortitude": "Vigueur",
	"reflex":    "Réflexes",
	"will":      "Volonté",
}

// Glossary builds the general rules vocabulary: flat prefix families,
// the Skill, Damage.IWR.Type, Area.Shape and Duration maps, and the
// three saving throws.
func Glossary(fr, en grimoire.Value) []*grimoire.Entry {
	var entries []*grimoire.Entry

	for _, fam := range glossaryFamilies {
		frItems := stringsByPrefix(fr, fam.prefix, "Label", "Header", "Title")
		enItems := stringsByPrefix(en, fam.prefix, "Label", "Header", "Title")
		for _, key := range unionKeys(frItems, enItems) {
			if e := glossaryEntry(fam.idPrefix, key, frItems[key], enItems[key], fam.labelFR, fam.labelEN); e != nil {
				entries = append(entries, e)
			}
		}
	}

	frSkills := stringMap(fr.Get("Skill"))
	enSkills := stringMap(en.Get("Skill"))
	for _, key := range unionKeys(frSkills, enSkills) {
		if e := glossaryEntry("compétence", key, frSkills[key], enSkills[key], "Compétence", "Skill"); e != nil {
			entries = append(entries, e)
		}
	}

	frDamage := stringMap(fr.Get("Damage", "IWR", "Type"))
	enDamage := stringMap(en.Get("Damage", "IWR", "Type"))
	for _, key := range unionKeys(frDamage, enDamage) {
		if e := glossaryEntry("dégât", key, frDamage[key], enDamage[key], "Type de dégât", "Damage/IWR Type"); e != nil {
			entries = append(entries, e)
		}
	}

	frShapes := stringMap(fr.Get("Area", "Shape"))
	enShapes := stringMap(en.Get("Area", "Shape"))
	for _, key := range unionKeys(frShapes, enShapes) {
		if e := glossaryEntry("zone", key, frShapes[key], enShapes[key], "Forme de zone", "Area Shape"); e != nil {
			entries = append(entries, e)
		}
	}

	frDurations := stringMap(fr.Get("Duration"))
	enDurations := stringMap(en.Get("Duration"))
	for _, key := range unionKeys(frDurations, enDurations) {
		if e := glossaryEntry("durée", key, frDurations[key], enDurations[key], "Durée", "Duration"); e != nil {
			entries = append(entries, e)
		}
	}

	for _, key := range []string{"Fortitude", "Reflex", "Will"} {
		frVal := fr.Get("Saves" + key).Str()
		enVal := en.Get("Saves" + key).Str()
		if frVal == "" && enVal == "" {
			continue
		}
		short := strings.ToLower(key)
		entries = append(entries, &grimoire.Entry{
			ID:          "glossaire-sauvegarde-" + short,
			Pack:        "glossaire",
			Category:    grimoire.CategoryGlossary,
			Source:      SourceLabel,
			Translated:  frVal != "",
			NameFR:      fallback(frVal, saveNamesFR[short]),
			NameEN:      fallback(enVal, key),
			Description: "Catégorie: Jet de sauvegarde",
			Type:        "glossaire",
			System:      descriptionSystem("Category: Saving Throw"),
		})
	}

	return entries
}

func glossaryEntry(idPrefix, key, nameFR, nameEN, labelFR, labelEN string) *grimoire.Entry {
	if nameFR == "" && nameEN == "" {
		return nil
	}
	return &grimoire.Entry{
		ID:          "glossaire-" + idPrefix + "-" + key,
		Pack:        "glossaire",
		Category:    grimoire.CategoryGlossary,
		Source:      SourceLabel,
		Translated:  nameFR != "",
		NameFR:      fallback(nameFR, nameEN),
		NameEN:      fallback(nameEN, nameFR),
		Description: "Catégorie: " + labelFR,
		Type:        "glossaire",
		System:      descriptionSystem("Category: " + labelEN),
	}
}

func descriptionSystem(desc string) grimoire.Value {
	return grimoire.ValueOf(map[string]any{
		"description": map[string]any{"value": desc},
	})
}
