package foundry

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// defaultConcurrency bounds the parallel record file reads.
const defaultConcurrency = 8

// Loader reads the mechanical dataset's per-pack record trees.
type Loader struct {
	// Concurrency limits parallel file parsing. Defaults to 8.
	Concurrency int

	logger *slog.Logger
}

// NewLoader creates a Loader logging through the given logger.
func NewLoader(logger *slog.Logger) *Loader {
	return &Loader{Concurrency: defaultConcurrency, logger: logger}
}

// PacksDir resolves the packs directory within the mechanical
// repository, preferring the current packs/pf2e layout over the legacy
// flat packs tree.
func PacksDir(repoDir string) string {
	nested := filepath.Join(repoDir, "packs", "pf2e")
	if info, err := os.Stat(nested); err == nil && info.IsDir() {
		return nested
	}
	return filepath.Join(repoDir, "packs")
}

// LoadRecords parses every record file under packsDir. The pack name is
// the first path element below packsDir; files whose name starts with
// an underscore are dataset bookkeeping, not records. Unparseable files
// are skipped silently. A missing packsDir degrades to no records.
func (l *Loader) LoadRecords(ctx context.Context, packsDir string) ([]*Record, error) {
	var paths []string
	err := filepath.WalkDir(packsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") || strings.HasPrefix(d.Name(), "_") {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		l.logger.Warn("mechanical packs directory not found", "dir", packsDir)
		return nil, nil
	}

	concurrency := l.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	var mu sync.Mutex
	var records []*Record
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				l.logger.Debug("skipping unreadable record file", "path", path, "error", err)
				return nil
			}
			rel, err := filepath.Rel(packsDir, path)
			if err != nil {
				return nil
			}
			pack := strings.Split(filepath.ToSlash(rel), "/")[0]
			rec, err := ParseRecord(data, pack)
			if err != nil {
				l.logger.Debug("skipping malformed record file", "path", path, "error", err)
				return nil
			}
			mu.Lock()
			records = append(records, rec)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	l.logger.Info("mechanical records loaded", "count", len(records))
	return records, nil
}
