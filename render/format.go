package render

import (
	"fmt"
	"strings"

	"github.com/pf2fr/grimoire"
)

// FormatMod renders a modifier with an explicit sign, the tabletop
// convention for bonuses.
func FormatMod(v int) string {
	if v >= 0 {
		return fmt.Sprintf("+%d", v)
	}
	return fmt.Sprintf("%d", v)
}

// actionSymbols maps action costs to the standard glyphs.
var actionSymbols = map[string]string{
	"1":        "◆",
	"2":        "◆◆",
	"3":        "◆◆◆",
	"reaction": "↺",
	"free":     "◇",
	"passive":  "—",
}

// FormatActions renders an action cost as its glyph. Unknown costs
// (like "1 minute") pass through as text.
func FormatActions(v grimoire.Value) string {
	v = v.ValueOrSelf()
	if v.IsNull() {
		return ""
	}
	var key string
	switch v.Kind() {
	case grimoire.KindNumber:
		key = fmt.Sprintf("%d", v.Int())
	default:
		key = v.Str()
	}
	if sym, ok := actionSymbols[key]; ok {
		return sym
	}
	return key
}

// rarityColors styles the non-common rarity chip.
var rarityColors = map[string]func(*Theme, string) string{
	"uncommon": (*Theme).Yellow,
	"rare":     (*Theme).Magenta,
	"unique":   (*Theme).Red,
}

// TraitChips renders the rarity (when notable) and trait list as
// bracketed chips.
func (t *Theme) TraitChips(traits []string, rarity string) string {
	var parts []string

	r := strings.ToLower(rarity)
	if r != "" && r != "common" {
		color, ok := rarityColors[r]
		if !ok {
			color = (*Theme).Cyan
		}
		parts = append(parts, color(t, "["+rarity+"]"))
	}
	for _, trait := range traits {
		if _, isRarity := rarityColors[strings.ToLower(trait)]; isRarity {
			continue
		}
		parts = append(parts, t.Cyan("["+trait+"]"))
	}
	return strings.Join(parts, " ")
}
