package build

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pf2fr/grimoire"
	"github.com/pf2fr/grimoire/bloom"
	"github.com/pf2fr/grimoire/foundry"
	"github.com/pf2fr/grimoire/htm"
	"github.com/pf2fr/grimoire/lang"
)

// dupFilterFPRate is the false positive rate of the duplicate
// pre-check filter. The storage primary key is the authority; the
// filter only feeds the build log.
const dupFilterFPRate = 0.01

// Builder assembles the full corpus from the two checked-out source
// repositories and persists it in one rebuild.
type Builder struct {
	htm     *htm.Loader
	foundry *foundry.Loader
	entries grimoire.EntryService
	logger  *slog.Logger
}

// NewBuilder creates a Builder persisting through the given service.
func NewBuilder(entries grimoire.EntryService, logger *slog.Logger) *Builder {
	return &Builder{
		htm:     htm.NewLoader(logger),
		foundry: foundry.NewLoader(logger),
		entries: entries,
		logger:  logger,
	}
}

// Build loads every source under the French and English repository
// checkouts, reconciles them and replaces the corpus. It returns
// EUNAVAILABLE when the sources yield no entries at all; partial
// sources degrade with a warning.
func (b *Builder) Build(ctx context.Context, frDir, enDir string) (*grimoire.CorpusStats, error) {
	dataDir := filepath.Join(frDir, "data")

	translations, err := b.htm.LoadTranslations(ctx, dataDir)
	if err != nil {
		return nil, err
	}
	journals := b.htm.LoadJournals(dataDir)

	records, err := b.foundry.LoadRecords(ctx, foundry.PacksDir(enDir))
	if err != nil {
		return nil, err
	}

	seen := bloom.NewFilter(uint(len(records))+1024, dupFilterFPRate)
	probableDups := 0

	entries := make([]*grimoire.Entry, 0, len(records))
	for _, rec := range records {
		e := Reconcile(rec, translations[rec.ID], journals)
		if seen.Test(e.Key()) {
			probableDups++
		} else {
			seen.Add(e.Key())
		}
		entries = append(entries, e)
	}
	entries = append(entries, b.htm.LoadJournalEntries(dataDir)...)
	entries = append(entries, b.lexicon(frDir, enDir)...)

	if len(entries) == 0 {
		return nil, grimoire.Errorf(grimoire.EUNAVAILABLE, "no entries could be extracted from the sources")
	}

	stats, err := b.entries.RebuildCorpus(ctx, entries)
	if err != nil {
		return nil, err
	}
	b.logger.Info("corpus rebuilt",
		"build_id", stats.BuildID,
		"total", stats.Total,
		"translated", stats.Translated,
		"probable_duplicates", probableDups)
	return stats, nil
}

// lexicon extracts every lexicon family from the two top-level
// language files. Missing or invalid files degrade to no lexicon
// entries.
func (b *Builder) lexicon(frDir, enDir string) []*grimoire.Entry {
	frPath := filepath.Join(frDir, "lang", "fr.json")
	enPath := filepath.Join(enDir, "static", "lang", "en.json")

	frJSON, err := os.ReadFile(frPath)
	if err != nil {
		b.logger.Warn("french language file not found", "path", frPath)
		return nil
	}
	enJSON, err := os.ReadFile(enPath)
	if err != nil {
		b.logger.Warn("english language file not found", "path", enPath)
		return nil
	}

	entries, err := lang.Extract(frJSON, enJSON)
	if err != nil {
		b.logger.Warn("lexicon extraction failed", "error", err)
		return nil
	}
	b.logger.Info("lexicon extracted", "count", len(entries))
	return entries
}
