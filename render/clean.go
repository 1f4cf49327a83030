package render

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Game notation embedded in description HTML. The dataset uses inline
// directives that only make sense inside the original VTT; rewrite
// them to their readable text before any HTML processing.
var (
	uuidRefRe       = regexp.MustCompile(`@UUID\[Compendium\.[^\]]+\]\{([^}]+)\}`)
	compendiumRefRe = regexp.MustCompile(`@Compendium\[[^\]]+\]\{([^}]+)\}`)
	checkRe         = regexp.MustCompile(`@Check\[([^\]|]+)[^\]]*\]`)
	damageRe        = regexp.MustCompile(`@Damage\[([^\]]+)\](\{[^}]+\})?`)
	rollRe          = regexp.MustCompile(`\[\[/r(?:oll)?\s*([^\]#]+)[^\]]*\]\](\{[^}]+\})?`)
	blankLinesRe    = regexp.MustCompile(`\n{3,}`)
	spacesRe        = regexp.MustCompile(`\s+`)
)

// RewriteNotation replaces game directives with plain-text equivalents:
// cross-references become ⟨name⟩, checks, damage and rolls keep their
// expression in brackets.
func RewriteNotation(s string) string {
	s = uuidRefRe.ReplaceAllString(s, "⟨$1⟩")
	s = compendiumRefRe.ReplaceAllString(s, "⟨$1⟩")
	s = checkRe.ReplaceAllString(s, "[$1]")
	s = damageRe.ReplaceAllString(s, "[$1]")
	s = rollRe.ReplaceAllString(s, "[$1]")
	return s
}

// Clean converts a description HTML fragment to display text: game
// notation rewritten, HTML converted to Markdown, blank runs collapsed.
func (r *Renderer) Clean(html string) string {
	html = strings.TrimSpace(RewriteNotation(html))
	if html == "" {
		return ""
	}
	text, err := r.conv.Convert(html)
	if err != nil {
		// Fall back to a bare tag strip.
		text = plainText(html)
	}
	return strings.TrimSpace(blankLinesRe.ReplaceAllString(text, "\n\n"))
}

// plainText strips tags and decodes entities without any layout.
func plainText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	return doc.Text()
}

// Excerpt flattens a description to a single line of at most max
// characters for the compact row.
func Excerpt(html string, max int) string {
	text := plainText(RewriteNotation(html))
	text = strings.TrimSpace(spacesRe.ReplaceAllString(text, " "))
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max-3]) + "..."
}
