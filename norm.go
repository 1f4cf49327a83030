package grimoire

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// newNormalizer builds a transformer that decomposes accented
// characters and removes the combining marks, so "Démon" and "demon"
// compare equal after lowering. Chain transformers carry internal
// buffers, so each call gets its own instance.
func newNormalizer() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// Normalize returns a lowercased, diacritic-stripped form of s used by
// the accent-insensitive search tier. Safe for concurrent use.
func Normalize(s string) string {
	result, _, err := transform.String(newNormalizer(), s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(result)
}

// HasDiacritics reports whether s contains characters altered by
// Normalize beyond simple lowering.
func HasDiacritics(s string) bool {
	return Normalize(s) != strings.ToLower(s)
}

// containsFold reports whether any element of list contains substr,
// case-insensitively.
func containsFold(list []string, substr string) bool {
	sub := strings.ToLower(substr)
	for _, s := range list {
		if strings.Contains(strings.ToLower(s), sub) {
			return true
		}
	}
	return false
}
