package grimoire

import "strings"

// Categories assigned by Classify. The corpus is French-first, so
// categories are the French display vocabulary.
const (
	CategoryCreature  = "créature"
	CategoryHazard    = "danger"
	CategorySpell     = "sort"
	CategoryFeat      = "don"
	CategoryAction    = "action"
	CategoryEquipment = "équipement"
	CategoryWeapon    = "arme"
	CategoryArmor     = "armure"
	CategoryClass     = "classe"
	CategoryAncestry  = "ascendance"
	CategoryArchetype = "archétype"
	CategoryRule      = "règle"
	CategoryDomain    = "domaine"
	CategoryTrait     = "trait"
	CategoryAbility   = "capacité"
	CategoryCondition = "état"
	CategoryMaterial  = "matériau"
	CategoryGlossary  = "glossaire"
	CategoryJournal   = "journal"
	CategoryOther     = "autre"
)

// typeCategories maps explicit mechanical type tags to categories.
var typeCategories = map[string]string{
	"npc": CategoryCreature, "creature": CategoryCreature, "character": CategoryCreature,
	"hazard": CategoryHazard, "spell": CategorySpell, "feat": CategoryFeat,
	"action": CategoryAction, "equipment": CategoryEquipment, "treasure": "trésor",
	"backpack": "conteneur", "weapon": CategoryWeapon, "armor": CategoryArmor,
	"shield": "bouclier", "consumable": "consommable", "ancestry": CategoryAncestry,
	"heritage": "héritage", "background": "historique", "class": CategoryClass,
	"archetype": CategoryArchetype, "deity": "divinité", "effect": "effet",
	"condition": CategoryCondition, "familiar": "familier", "vehicle": "véhicule",
}

// packCategories maps known collection-name fragments to categories.
// Matched by substring against the normalized pack name. The order is
// fixed: a name matching several fragments always classifies as the
// first one listed.
var packCategories = []struct {
	fragment string
	category string
}{
	{"pathfinder-bestiary", CategoryCreature}, {"bestiary", CategoryCreature},
	{"pathfinder-monster-core", CategoryCreature}, {"monster-core", CategoryCreature},
	{"npc", CategoryCreature}, {"hazards", CategoryHazard}, {"spells", CategorySpell},
	{"feats", CategoryFeat}, {"actions", CategoryAction}, {"equipment", CategoryEquipment},
	{"weapons", CategoryWeapon}, {"armor", CategoryArmor}, {"consumables", "consommable"},
	{"ancestries", CategoryAncestry}, {"heritages", "héritage"},
	{"backgrounds", "historique"}, {"classes", CategoryClass}, {"archetypes", CategoryArchetype},
	{"deities", "divinité"}, {"conditions", CategoryCondition}, {"familiar", "familier"},
	{"vehicles", "véhicule"}, {"animal-companions", "compagnon"}, {"eidolons", "eidolon"},
}

// ClassifyType derives a category from an explicit type tag and the
// record's attribute tree. Explicit tags are authoritative; structural
// heuristics are checked in a fixed order (hit points, spell
// traditions, prerequisites, price) that downstream consumers depend
// on. Returns CategoryOther when nothing matches.
func ClassifyType(typeTag string, system Value) string {
	if cat, ok := typeCategories[typeTag]; ok {
		return cat
	}
	if system.Get("attributes").Has("hp") {
		return CategoryCreature
	}
	if system.Has("traditions") {
		return CategorySpell
	}
	if system.Has("prerequisites") {
		return CategoryFeat
	}
	if system.Has("price") {
		return CategoryEquipment
	}
	return CategoryOther
}

// ClassifyPack derives a category from a collection name, the weakest
// signal in the classification chain. The name is lowercased with the
// ".json" and "-srd" suffixes stripped before fragment matching.
func ClassifyPack(pack string) string {
	normalized := strings.ToLower(pack)
	normalized = strings.ReplaceAll(normalized, ".json", "")
	normalized = strings.ReplaceAll(normalized, "-srd", "")
	for _, pc := range packCategories {
		if strings.Contains(normalized, pc.fragment) {
			return pc.category
		}
	}
	return CategoryOther
}

// Classify runs the full fallback chain: explicit tag, structural
// shape, then collection name.
func Classify(typeTag string, system Value, pack string) string {
	if cat := ClassifyType(typeTag, system); cat != CategoryOther {
		return cat
	}
	return ClassifyPack(pack)
}
