package render

import (
	"fmt"
	"strings"

	"github.com/pf2fr/grimoire"
)

func (r *Renderer) spellBlock(b *strings.Builder, sys grimoire.Value) {
	if lvl, ok := sys.Get("level").ValueOrSelf().IntOK(); ok {
		r.field(b, "Niveau", fmt.Sprintf("%d", lvl))
	}
	if traditions := sys.Get("traditions", "value").Strings(); len(traditions) > 0 {
		r.field(b, "Traditions", strings.Join(traditions, ", "))
	}
	if traits := sys.Get("traits", "value").Strings(); len(traits) > 0 {
		r.field(b, "Traits", strings.Join(traits, ", "))
	}
	r.separator(b)

	r.field(b, "Incantation", FormatActions(sys.Get("time", "value")))

	if components := sys.Get("components"); components.Kind() == grimoire.KindMap {
		var list []string
		for _, k := range components.Keys() {
			if k != "value" && components.Get(k).Bool() {
				list = append(list, k)
			}
		}
		r.field(b, "Composantes", strings.Join(list, ", "))
	}

	r.field(b, "Portée", sys.Get("range", "value").Str())

	if area := sys.Get("area"); area.Kind() == grimoire.KindMap && !area.Get("value").IsNull() {
		r.field(b, "Zone", fmt.Sprintf("%s de %d m", area.Get("type").Str(), area.Get("value").Int()))
	}

	r.field(b, "Cibles", sys.Get("target", "value").Str())

	if save := sys.Get("defense", "save"); save.Kind() == grimoire.KindMap {
		s := save.Get("statistic").Str()
		if save.Get("basic").Bool() {
			s += " basique"
		}
		r.field(b, "Jet de sauvegarde", s)
	}

	r.field(b, "Durée", sys.Get("duration", "value").Str())
}

func (r *Renderer) featBlock(b *strings.Builder, sys grimoire.Value) {
	if lvl, ok := sys.Get("level").ValueOrSelf().IntOK(); ok {
		r.field(b, "Niveau", fmt.Sprintf("%d", lvl))
	}
	r.field(b, "Actions", FormatActions(sys.Get("actions", "value")))
	if traits := sys.Get("traits", "value").Strings(); len(traits) > 0 {
		r.field(b, "Traits", strings.Join(traits, ", "))
	}

	if prereqs := sys.Get("prerequisites", "value"); prereqs.Kind() == grimoire.KindSeq {
		var list []string
		for _, p := range prereqs.Seq() {
			if s := p.ValueOrSelf().Str(); s != "" {
				list = append(list, s)
			}
		}
		r.field(b, "Prérequis", strings.Join(list, "; "))
	}

	r.field(b, "Déclencheur", Excerpt(sys.Get("trigger", "value").Str(), excerptLen))
	r.field(b, "Conditions", Excerpt(sys.Get("requirements").ValueOrSelf().Str(), excerptLen))
}

func (r *Renderer) equipmentBlock(b *strings.Builder, sys grimoire.Value) {
	if price := sys.Get("price", "value"); price.Kind() == grimoire.KindMap {
		var parts []string
		for _, coin := range price.Keys() {
			if v := price.Get(coin).Int(); v > 0 {
				parts = append(parts, fmt.Sprintf("%d %s", v, coin))
			}
		}
		r.field(b, "Prix", strings.Join(parts, ", "))
	}

	if lvl, ok := sys.Get("level").ValueOrSelf().IntOK(); ok && lvl != 0 {
		r.field(b, "Niveau", fmt.Sprintf("%d", lvl))
	}
	r.field(b, "Encombrement", sys.Get("bulk", "value").Str())
	if traits := sys.Get("traits", "value").Strings(); len(traits) > 0 {
		r.field(b, "Traits", strings.Join(traits, ", "))
	}

	if damage := sys.Get("damage"); damage.Kind() == grimoire.KindMap {
		if die := damage.Get("die").Str(); die != "" {
			dice := damage.Get("dice").Int()
			if dice == 0 {
				dice = 1
			}
			r.field(b, "Dégâts", fmt.Sprintf("%d%s %s", dice, die, damage.Get("damageType").Str()))
		}
	}

	r.field(b, "Groupe", sys.Get("group").ValueOrSelf().Str())
	r.field(b, "Catégorie", sys.Get("category").ValueOrSelf().Str())

	if ac := sys.Get("acBonus").ValueOrSelf().Int(); ac != 0 {
		r.field(b, "Bonus CA", FormatMod(ac))
	}
	if dexCap := sys.Get("dexCap").ValueOrSelf().Int(); dexCap != 0 {
		r.field(b, "Cap. Dex", FormatMod(dexCap))
	}
	if penalty := sys.Get("checkPenalty").ValueOrSelf().Int(); penalty != 0 {
		r.field(b, "Malus test", fmt.Sprintf("%d", penalty))
	}
	if penalty := sys.Get("speedPenalty").ValueOrSelf().Int(); penalty != 0 {
		r.field(b, "Malus vitesse", fmt.Sprintf("%d", penalty))
	}
}

func (r *Renderer) actionBlock(b *strings.Builder, sys grimoire.Value) {
	r.field(b, "Actions", FormatActions(sys.Get("actions", "value")))
	if traits := sys.Get("traits", "value").Strings(); len(traits) > 0 {
		r.field(b, "Traits", strings.Join(traits, ", "))
	}
	r.field(b, "Déclencheur", Excerpt(sys.Get("trigger", "value").Str(), excerptLen))
	r.field(b, "Conditions", Excerpt(sys.Get("requirements").ValueOrSelf().Str(), excerptLen))
}
