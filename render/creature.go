package render

import (
	"fmt"
	"strings"

	"github.com/pf2fr/grimoire"
)

var sizeLabels = map[string]string{
	"tiny": "Très petite (TP)",
	"sm":   "Petite (P)",
	"med":  "Moyenne (M)",
	"lg":   "Grande (G)",
	"huge": "Très grande (TG)",
	"grg":  "Gargantuesque (Gar)",
}

var skillLabels = map[string]string{
	"acrobatics": "Acrobaties", "arcana": "Arcanes", "athletics": "Athlétisme",
	"crafting": "Artisanat", "deception": "Duperie", "diplomacy": "Diplomatie",
	"intimidation": "Intimidation", "medicine": "Médecine", "nature": "Nature",
	"occultism": "Occultisme", "performance": "Représentation", "religion": "Religion",
	"society": "Société", "stealth": "Discrétion", "survival": "Survie",
	"thievery": "Vol",
}

var abilityLabels = map[string]string{
	"str": "For", "dex": "Dex", "con": "Con", "int": "Int", "wis": "Sag", "cha": "Cha",
}

var saveLabels = [][2]string{
	{"fortitude", "Vigueur"},
	{"reflex", "Réflexes"},
	{"will", "Volonté"},
}

// attackTraitLabels and damageTypeLabels give the common weapon traits
// and damage types their French names; unknown values pass through.
var attackTraitLabels = map[string]string{
	"unarmed": "mains nues", "finesse": "finesse", "agile": "agile",
	"reach": "allonge", "thrown": "lancer", "deadly": "mortel",
	"fatal": "fatal", "forceful": "percutant", "sweep": "balayage",
	"trip": "croc-en-jambe", "shove": "bousculade", "grapple": "lutte",
	"knockdown": "renversement", "backstabber": "perfide",
}

var damageTypeLabels = map[string]string{
	"piercing": "perforant", "slashing": "tranchant", "bludgeoning": "contondant",
	"fire": "feu", "cold": "froid", "electricity": "électricité",
	"acid": "acide", "poison": "poison", "mental": "mental",
	"force": "force", "sonic": "son", "bleed": "saignement",
	"positive": "positif", "negative": "négatif", "spirit": "esprit",
	"vitality": "vitalité", "void": "néant",
}

var actionTraitLabels = map[string]string{
	"concentrate": "concentration", "manipulate": "manipulation",
	"move": "mouvement", "attack": "attaque", "flourish": "épanouissement",
	"press": "pression", "rage": "rage", "stance": "posture",
	"visual": "visuel", "auditory": "auditif", "mental": "mental",
	"emotion": "émotion", "fear": "peur", "linguistic": "linguistique",
	"incapacitation": "mise hors combat", "death": "mort",
}

func translateAll(values []string, labels map[string]string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if fr, ok := labels[strings.ToLower(v)]; ok {
			out = append(out, fr)
		} else {
			out = append(out, v)
		}
	}
	return out
}

func (r *Renderer) creatureBlock(b *strings.Builder, e *grimoire.Entry) {
	sys := e.System
	t := r.theme

	if size := sys.Get("traits", "size", "value").Str(); size != "" {
		label, ok := sizeLabels[size]
		if !ok {
			label = capitalizeFirst(size)
		}
		r.field(b, "Taille", label)
	}

	if perception := sys.Get("perception"); perception.Kind() == grimoire.KindMap {
		mod := perception.Get("mod")
		if mod.IsNull() {
			mod = perception.Get("value")
		}
		var senses []string
		for _, sense := range perception.Get("senses").Seq() {
			s := sense.Get("type").Str()
			if s == "" {
				s = sense.Str()
			}
			if acuity := sense.Get("acuity").Str(); acuity != "" {
				s += " (" + acuity + ")"
			}
			if rng, ok := sense.Get("range").IntOK(); ok {
				s += fmt.Sprintf(" %d m", rng)
			}
			senses = append(senses, s)
		}
		for _, s := range strings.Split(sys.Get("traits", "senses", "value").Str(), ",") {
			if s = strings.TrimSpace(s); s != "" {
				senses = append(senses, s)
			}
		}
		line := FormatMod(mod.Int())
		if len(senses) > 0 {
			line += "; " + strings.Join(senses, ", ")
		}
		r.field(b, "Perception", line)
	}

	if langs := sys.Get("details", "languages", "value").Strings(); len(langs) > 0 {
		r.field(b, "Langues", strings.Join(langs, ", "))
	}

	if skills := sys.Get("skills"); skills.Kind() == grimoire.KindMap {
		var parts []string
		for _, k := range skills.Keys() {
			base := skills.Get(k, "base").Int()
			if base == 0 {
				continue
			}
			name, ok := skillLabels[k]
			if !ok {
				name = capitalizeFirst(k)
			}
			parts = append(parts, name+" "+FormatMod(base))
		}
		if len(parts) > 0 {
			r.field(b, "Compétences", strings.Join(parts, ", "))
		}
	}

	if abilities := sys.Get("abilities"); abilities.Kind() == grimoire.KindMap {
		var parts []string
		for _, ab := range []string{"str", "dex", "con", "int", "wis", "cha"} {
			if !abilities.Has(ab) {
				continue
			}
			parts = append(parts, t.Bold(abilityLabels[ab])+" "+FormatMod(abilities.Get(ab, "mod").Int()))
		}
		if len(parts) > 0 {
			b.WriteString("   " + strings.Join(parts, ", ") + "\n")
		}
	}

	r.separator(b)
	attrs := sys.Get("attributes")

	if ac := attrs.Get("ac"); ac.Kind() == grimoire.KindMap {
		line := fmt.Sprintf("%d", ac.Get("value").Int())
		if details := ac.Get("details").Str(); details != "" {
			line += " (" + details + ")"
		}
		r.field(b, "CA", line)
	}

	if saves := sys.Get("saves"); saves.Kind() == grimoire.KindMap {
		var parts []string
		for _, save := range saveLabels {
			if saves.Has(save[0]) {
				parts = append(parts, t.Bold(save[1])+" "+FormatMod(saves.Get(save[0], "value").Int()))
			}
		}
		if len(parts) > 0 {
			b.WriteString("   " + strings.Join(parts, "; ") + "\n")
		}
	}

	if hp := attrs.Get("hp"); hp.Kind() == grimoire.KindMap {
		max := hp.Get("max")
		if max.IsNull() {
			max = hp.Get("value")
		}
		line := fmt.Sprintf("%d", max.Int())
		if details := hp.Get("details").Str(); details != "" {
			line += " (" + details + ")"
		}
		r.field(b, "PV", line)
	}

	r.field(b, "Immunités", joinTyped(attrs.Get("immunities"), false))
	r.field(b, "Résistances", joinTyped(attrs.Get("resistances"), true))
	r.field(b, "Faiblesses", joinTyped(attrs.Get("weaknesses"), true))

	r.separator(b)

	if speed := attrs.Get("speed"); speed.Kind() == grimoire.KindMap {
		line := fmt.Sprintf("%d m", speed.Get("value").Int())
		var others []string
		for _, s := range speed.Get("otherSpeeds").Seq() {
			others = append(others, fmt.Sprintf("%s %d m", s.Get("type").Str(), s.Get("value").Int()))
		}
		if len(others) > 0 {
			line += ", " + strings.Join(others, ", ")
		}
		r.field(b, "Vitesse", line)
	}

	r.creatureItems(b, e.Items)
}

// joinTyped flattens a typed list ({"type": x, "value": n}) into a
// comma-separated line.
func joinTyped(list grimoire.Value, withValue bool) string {
	var parts []string
	for _, item := range list.Seq() {
		s := item.Get("type").Str()
		if s == "" {
			s = item.Str()
		}
		if withValue {
			if v, ok := item.Get("value").IntOK(); ok {
				s += fmt.Sprintf(" %d", v)
			}
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}

// creatureItems renders the embedded sub-records in rule order:
// attacks, passive abilities, then offensive actions.
func (r *Renderer) creatureItems(b *strings.Builder, items []*grimoire.SubItem) {
	t := r.theme
	var attacks, offensive, passive []*grimoire.SubItem

	for _, item := range items {
		switch item.Type {
		case "melee", "ranged":
			attacks = append(attacks, item)
		case "action":
			switch item.System.Get("category").Str() {
			case "offensive":
				offensive = append(offensive, item)
			case "defensive":
				passive = append(passive, item)
			default:
				if !item.System.Get("actions", "value").IsNull() {
					offensive = append(offensive, item)
				} else {
					passive = append(passive, item)
				}
			}
		}
	}

	for _, atk := range attacks {
		kind := "Corps-à-corps"
		if atk.Type == "ranged" {
			kind = "À distance"
		}
		line := "   " + t.Orange(kind) + " ◆ " + t.Bold(atk.NameFR) + " " + FormatMod(atk.System.Get("bonus", "value").Int())
		if traits := translateAll(atk.System.Get("traits", "value").Strings(), attackTraitLabels); len(traits) > 0 {
			line += " (" + strings.Join(traits, ", ") + ")"
		}
		b.WriteString(line + "\n")

		if damage := attackDamage(atk.System); damage != "" {
			b.WriteString("      " + t.Green("Dégâts") + " " + damage + "\n")
		}
	}

	writeAbility := func(item *grimoire.SubItem, nameStyle func(string) string) {
		line := "   " + nameStyle(t.Bold(item.NameFR))
		if sym := FormatActions(item.System.Get("actions", "value")); sym != "" {
			line += " " + sym
		}
		if traits := translateAll(item.System.Get("traits", "value").Strings(), actionTraitLabels); len(traits) > 0 {
			line += " (" + strings.Join(traits, ", ") + ")"
		}
		b.WriteString(line + "\n")

		if trigger := item.System.Get("trigger", "value").Str(); trigger != "" {
			b.WriteString("      " + t.Green("Déclencheur") + " " + Excerpt(trigger, excerptLen) + "\n")
		}
		desc := item.Description
		if desc == "" {
			desc = item.System.Get("description").ValueOrSelf().Str()
		}
		if desc != "" {
			b.WriteString("      " + t.Dim(Excerpt(desc, 200)) + "\n")
		}
	}

	if len(passive) > 0 {
		b.WriteString("\n")
		for _, item := range passive {
			writeAbility(item, t.Cyan)
		}
	}
	if len(offensive) > 0 {
		b.WriteString("\n")
		for _, item := range offensive {
			writeAbility(item, t.Yellow)
		}
	}
}

// attackDamage joins an attack's damage rolls, damage types in French.
func attackDamage(sys grimoire.Value) string {
	rolls := sys.Get("damageRolls")
	var parts []string
	for _, k := range rolls.Keys() {
		roll := rolls.Get(k)
		dice := roll.Get("damage").Str()
		if dice == "" {
			continue
		}
		dtype := roll.Get("damageType").Str()
		if fr, ok := damageTypeLabels[strings.ToLower(dtype)]; ok {
			dtype = fr
		}
		parts = append(parts, strings.TrimSpace(dice+" "+dtype))
	}
	return strings.Join(parts, " plus ")
}
