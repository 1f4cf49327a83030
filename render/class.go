package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pf2fr/grimoire"
)

var fullAbilityLabels = map[string]string{
	"str": "Force", "dex": "Dextérité", "con": "Constitution",
	"int": "Intelligence", "wis": "Sagesse", "cha": "Charisme",
}

var proficiencyLabels = map[int]string{
	0: "Non formé", 1: "Formé", 2: "Expert", 3: "Maître", 4: "Légendaire",
}

var attackKindLabels = [][2]string{
	{"simple", "Simples"},
	{"martial", "Martiales"},
	{"advanced", "Avancées"},
	{"unarmed", "Sans arme"},
}

var defenseKindLabels = [][2]string{
	{"unarmored", "Sans armure"},
	{"light", "Légère"},
	{"medium", "Intermédiaire"},
	{"heavy", "Lourde"},
}

func proficiency(rank int) string {
	if label, ok := proficiencyLabels[rank]; ok {
		return label
	}
	return "?"
}

func (r *Renderer) classBlock(b *strings.Builder, sys grimoire.Value) {
	t := r.theme

	r.field(b, "Points de vie", fmt.Sprintf("%d + modificateur de Constitution par niveau", sys.Get("hp").ValueOrSelf().Int()))

	if keys := sys.Get("keyAbility", "value").Strings(); len(keys) > 0 {
		var names []string
		for _, k := range keys {
			if name, ok := fullAbilityLabels[k]; ok {
				names = append(names, name)
			} else {
				names = append(names, strings.ToUpper(k))
			}
		}
		r.field(b, "Caractéristique clé", strings.Join(names, " ou "))
	}

	r.separator(b)
	b.WriteString("   " + t.Bold("Maîtrises initiales") + "\n")

	r.field(b, "Perception", proficiency(sys.Get("perception").ValueOrSelf().Int()))

	saves := sys.Get("savingThrows")
	var saveParts []string
	for _, save := range saveLabels {
		saveParts = append(saveParts, fmt.Sprintf("%s (%s)", save[1], proficiency(saves.Get(save[0]).ValueOrSelf().Int())))
	}
	r.field(b, "Jets de sauvegarde", strings.Join(saveParts, ", "))

	trained := sys.Get("trainedSkills")
	var skillParts []string
	for _, s := range trained.Get("value").Strings() {
		if name, ok := skillLabels[s]; ok {
			skillParts = append(skillParts, name)
		} else {
			skillParts = append(skillParts, capitalizeFirst(s))
		}
	}
	if additional := trained.Get("additional").Int(); additional > 0 {
		skillParts = append(skillParts, fmt.Sprintf("+%d au choix", additional))
	}
	if len(skillParts) == 0 {
		skillParts = []string{"Aucune"}
	}
	r.field(b, "Compétences", strings.Join(skillParts, ", "))

	attacks := sys.Get("attacks")
	var atkParts []string
	for _, kind := range attackKindLabels {
		if rank := attacks.Get(kind[0]).ValueOrSelf().Int(); rank > 0 {
			atkParts = append(atkParts, fmt.Sprintf("%s (%s)", kind[1], proficiency(rank)))
		}
	}
	if len(atkParts) > 0 {
		r.field(b, "Attaques", strings.Join(atkParts, ", "))
	}

	defenses := sys.Get("defenses")
	var defParts []string
	for _, kind := range defenseKindLabels {
		if rank := defenses.Get(kind[0]).ValueOrSelf().Int(); rank > 0 {
			defParts = append(defParts, fmt.Sprintf("%s (%s)", kind[1], proficiency(rank)))
		}
	}
	if len(defParts) > 0 {
		r.field(b, "Défenses", strings.Join(defParts, ", "))
	}

	if rank := sys.Get("spellcasting").ValueOrSelf().Int(); rank > 0 {
		r.field(b, "Incantation", proficiency(rank))
	}

	r.separator(b)
	b.WriteString("   " + t.Bold("Progression") + "\n")

	progression := [][2]string{
		{"ancestryFeatLevels", "Dons d'ascendance"},
		{"classFeatLevels", "Dons de classe"},
		{"generalFeatLevels", "Dons généraux"},
		{"skillFeatLevels", "Dons de compétence"},
		{"skillIncreaseLevels", "Augm. compétences"},
	}
	for _, p := range progression {
		levels := sys.Get(p[0], "value").Seq()
		if len(levels) == 0 {
			continue
		}
		var nums []string
		for _, lvl := range levels {
			nums = append(nums, fmt.Sprintf("%d", lvl.Int()))
		}
		r.field(b, p[1], "Niv. "+strings.Join(nums, ", "))
	}

	r.separator(b)

	// Class features, sorted by the level they are granted at.
	if features := sys.Get("items"); features.Kind() == grimoire.KindMap {
		b.WriteString("   " + t.Bold("Capacités de classe") + "\n")

		type feature struct {
			level int
			name  string
		}
		var list []feature
		for _, k := range features.Keys() {
			f := features.Get(k)
			list = append(list, feature{f.Get("level").Int(), f.Get("name").Str()})
		}
		sort.SliceStable(list, func(i, j int) bool { return list[i].level < list[j].level })

		for _, f := range list {
			b.WriteString(fmt.Sprintf("   %s %s\n", t.Yellow(fmt.Sprintf("Niv.%2d", f.level)), f.name))
		}
	}

	if title := sys.Get("publication", "title").Str(); title != "" {
		b.WriteString("\n   " + t.Dim("Source: "+title) + "\n")
	}
}
