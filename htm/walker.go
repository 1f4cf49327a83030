package htm

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pf2fr/grimoire"
	"golang.org/x/sync/errgroup"
)

// defaultConcurrency bounds the parallel annotation file reads.
const defaultConcurrency = 8

// Loader reads annotation files from the translation repository's data
// directory and builds the in-memory translation map.
type Loader struct {
	// Concurrency limits parallel file parsing. Defaults to 8.
	Concurrency int

	logger *slog.Logger
}

// NewLoader creates a Loader logging through the given logger.
func NewLoader(logger *slog.Logger) *Loader {
	return &Loader{Concurrency: defaultConcurrency, logger: logger}
}

// htmFiles lists the .htm files directly in dir and one subdirectory
// level below it.
func htmFiles(dir string) []string {
	var files []string
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		if e.IsDir() {
			sub, err := os.ReadDir(path)
			if err != nil {
				continue
			}
			for _, s := range sub {
				if !s.IsDir() && strings.HasSuffix(s.Name(), ".htm") {
					files = append(files, filepath.Join(path, s.Name()))
				}
			}
			continue
		}
		if strings.HasSuffix(e.Name(), ".htm") {
			files = append(files, path)
		}
	}
	return files
}

// LoadTranslations parses every annotation file under dataDir (one
// subdirectory per pack) into a TranslationMap. Files parse
// independently and in parallel; map inserts are serialized and
// last-write-wins on identifier collision. A missing dataDir degrades
// to an empty map with a warning.
func (l *Loader) LoadTranslations(ctx context.Context, dataDir string) (grimoire.TranslationMap, error) {
	translations := make(grimoire.TranslationMap)

	packDirs, err := os.ReadDir(dataDir)
	if err != nil {
		l.logger.Warn("translation data directory not found", "dir", dataDir)
		return translations, nil
	}

	concurrency := l.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, packDir := range packDirs {
		if !packDir.IsDir() {
			continue
		}
		pack := packDir.Name()
		for _, path := range htmFiles(filepath.Join(dataDir, pack)) {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				content, err := os.ReadFile(path)
				if err != nil {
					// Malformed or unreadable units are skipped, not errors.
					l.logger.Debug("skipping unreadable annotation file", "path", path, "error", err)
					return nil
				}
				stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
				trans := Parse(string(content), pack, stem)
				if trans == nil {
					return nil
				}
				mu.Lock()
				translations[trans.UUID] = trans
				mu.Unlock()
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	l.logger.Info("translations loaded", "count", len(translations))
	return translations, nil
}
