package htm

import "strings"

// identifierLen is the fixed length of the opaque record identifiers
// embedded in annotation file names.
const identifierLen = 16

func looksLikeID(s string) bool {
	if len(s) != identifierLen {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		default:
			return false
		}
	}
	return true
}

// ResolveID derives the record identifier from a file name stem.
// Annotation files come in several naming conventions:
//
//	BN5Lb6IsQ9Wyu3rL.htm              bare identifier
//	common-03-sxQZ6yqTn0czJxVd.htm    rarity-level prefix
//	backpack-12-iAfqKpHyJ6beLGjB.htm  type-level prefix
//
// A trailing dash-separated segment of exactly sixteen alphanumerics is
// the identifier; a bare sixteen-alphanumeric stem is used directly;
// anything else falls back to the full stem.
func ResolveID(stem string) string {
	parts := strings.Split(stem, "-")
	if len(parts) >= 2 && looksLikeID(parts[len(parts)-1]) {
		return parts[len(parts)-1]
	}
	if len(parts) == 1 && looksLikeID(parts[0]) {
		return parts[0]
	}
	return stem
}
