// Package htm parses the community translation layer's annotation
// files. The format is line-oriented text with literal section markers,
// not well-formed HTML, so everything format-coupled lives here behind
// a small API: one function per delimited section.
package htm

import (
	"regexp"
	"strings"

	"github.com/pf2fr/grimoire"
)

var (
	nameENRe = regexp.MustCompile(`(?m)^Name:\s*(.+)$`)
	nameFRRe = regexp.MustCompile(`(?m)^Nom:\s*(.+)$`)
	statusRe = regexp.MustCompile(`(?m)^État:\s*(.+)$`)
	itemIDRe = regexp.MustCompile(`(?m)^ID:\s*(.+)$`)

	// Description blocks are delimited by literal marker lines. The
	// non-greedy body stops at the next marker or at end of input; the
	// terminator is consumed by the match but excluded from the capture.
	descENRe = regexp.MustCompile(`(?s)-- Desc \(en\) --\s*(.+?)(?:-- Desc \(fr\) --|-- End desc ---|$)`)
	descFRRe = regexp.MustCompile(`(?s)-- Desc \(fr\) --\s*(.+?)(?:-- End desc ---|$)`)

	// The items section opens with a "----- Items" header line and runs
	// until a line of at least ten dashes.
	itemsRe = regexp.MustCompile(`(?s)----- Items -+\s*(.+?)(?:-{10,}|$)`)

	itemBlockStartRe = regexp.MustCompile(`^ID:\s`)
)

// firstMatch returns the trimmed first capture group, or "".
func firstMatch(re *regexp.Regexp, content string) string {
	if m := re.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// NameEN extracts the English name line.
func NameEN(content string) string { return firstMatch(nameENRe, content) }

// NameFR extracts the French name line.
func NameFR(content string) string { return firstMatch(nameFRRe, content) }

// Status extracts the free-text translation status line.
func Status(content string) string { return firstMatch(statusRe, content) }

// DescEN extracts the English description block.
func DescEN(content string) string { return firstMatch(descENRe, content) }

// DescFR extracts the French description block.
func DescFR(content string) string { return firstMatch(descFRRe, content) }

// splitItemBlocks splits the items section into blocks, each starting
// at an "ID:" line. Text before the first ID line is dropped.
func splitItemBlocks(section string) []string {
	var blocks []string
	var current []string
	inBlock := false
	for _, line := range strings.SplitAfter(section, "\n") {
		if itemBlockStartRe.MatchString(line) {
			if inBlock {
				blocks = append(blocks, strings.Join(current, ""))
			}
			current = current[:0]
			inBlock = true
		}
		if inBlock {
			current = append(current, line)
		}
	}
	if inBlock && len(current) > 0 {
		blocks = append(blocks, strings.Join(current, ""))
	}
	return blocks
}

// Items extracts the sub-item translations from the items section.
func Items(content string) map[string]*grimoire.ItemTranslation {
	section := firstMatch(itemsRe, content)
	if section == "" {
		return nil
	}

	items := make(map[string]*grimoire.ItemTranslation)
	for _, block := range splitItemBlocks(section) {
		id := firstMatch(itemIDRe, block)
		if id == "" {
			continue
		}
		nameEN := NameEN(block)
		nameFR := NameFR(block)
		if nameFR == "" {
			nameFR = nameEN
		}
		items[id] = &grimoire.ItemTranslation{
			ID:     id,
			NameEN: nameEN,
			NameFR: nameFR,
			DescEN: DescEN(block),
			DescFR: DescFR(block),
		}
	}
	return items
}

// Parse parses one annotation file's content into a Translation. It
// returns nil when neither language's name is present, which marks the
// file as not a translation unit rather than an error.
func Parse(content, pack, stem string) *grimoire.Translation {
	nameEN := NameEN(content)
	nameFR := NameFR(content)
	if nameEN == "" && nameFR == "" {
		return nil
	}

	descEN := DescEN(content)
	descFR := DescFR(content)
	if nameFR == "" {
		nameFR = nameEN
	}
	if descFR == "" {
		descFR = descEN
	}

	return &grimoire.Translation{
		UUID:   ResolveID(stem),
		Pack:   pack,
		NameEN: nameEN,
		NameFR: nameFR,
		DescEN: descEN,
		DescFR: descFR,
		Status: Status(content),
		Items:  Items(content),
	}
}
