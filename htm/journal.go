package htm

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pf2fr/grimoire"
)

// journalFolderCategories maps journal page folders to categories.
// Folders not listed here hold rules text.
var journalFolderCategories = map[string]string{
	"pages-GMScreen":        grimoire.CategoryRule,
	"pages-Classes":         grimoire.CategoryClass,
	"pages-Ancestries":      grimoire.CategoryAncestry,
	"pages-Archetypes":      grimoire.CategoryArchetype,
	"pages-Domains":         grimoire.CategoryDomain,
	"pages-RemasterChanges": grimoire.CategoryRule,
}

// journalPageDirs lists the pages-* subdirectories of the journals
// tree, returning nil when the tree is absent.
func journalPageDirs(dataDir string) []string {
	journalDir := filepath.Join(dataDir, "journals")
	entries, err := os.ReadDir(journalDir)
	if err != nil {
		return nil
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(e.Name(), "pages-") {
			dirs = append(dirs, filepath.Join(journalDir, e.Name()))
		}
	}
	return dirs
}

// LoadJournals collects the French narrative text of every journal
// page, keyed by page identifier. Reconciliation uses this map to
// resolve pointer descriptions into full text.
func (l *Loader) LoadJournals(dataDir string) grimoire.JournalMap {
	journals := make(grimoire.JournalMap)
	for _, dir := range journalPageDirs(dataDir) {
		matches, _ := filepath.Glob(filepath.Join(dir, "*.htm"))
		for _, path := range matches {
			content, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			if desc := DescFR(string(content)); desc != "" {
				stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
				journals[stem] = desc
			}
		}
	}
	return journals
}

// LoadJournalEntries extracts the journal pages themselves as
// searchable entries (class write-ups, GM screen rules, and so on).
func (l *Loader) LoadJournalEntries(dataDir string) []*grimoire.Entry {
	var entries []*grimoire.Entry
	for _, dir := range journalPageDirs(dataDir) {
		folder := filepath.Base(dir)
		category, ok := journalFolderCategories[folder]
		if !ok {
			category = grimoire.CategoryRule
		}
		pack := "journals-" + strings.ToLower(strings.TrimPrefix(folder, "pages-"))

		matches, _ := filepath.Glob(filepath.Join(dir, "*.htm"))
		for _, path := range matches {
			content, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			text := string(content)
			nameEN := NameEN(text)
			nameFR := NameFR(text)
			if nameEN == "" && nameFR == "" {
				continue
			}
			if nameFR == "" {
				nameFR = nameEN
			}
			if nameEN == "" {
				nameEN = nameFR
			}
			descEN := DescEN(text)
			descFR := DescFR(text)
			if descEN == "" {
				descEN = descFR
			}
			stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

			entries = append(entries, &grimoire.Entry{
				ID:          stem,
				Pack:        pack,
				Category:    category,
				Source:      "pf2-fr",
				Translated:  true,
				NameFR:      nameFR,
				NameEN:      nameEN,
				Description: descFR,
				Type:        "journal",
				System: grimoire.ValueOf(map[string]any{
					"description": map[string]any{"value": descEN},
				}),
			})
		}
	}
	if len(entries) > 0 {
		l.logger.Info("journal pages extracted", "count", len(entries))
	}
	return entries
}
