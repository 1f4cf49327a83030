// Package git fetches and refreshes the upstream data repositories by
// shelling out to the git binary.
package git

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/pf2fr/grimoire"
)

// DefaultSources are the upstream repositories of the two dataset
// halves: the English mechanical data and the French translation layer.
var DefaultSources = []grimoire.Source{
	{Name: "pf2e", URL: "https://github.com/foundryvtt/pf2e.git"},
	{Name: "pf2-fr", URL: "https://gitlab.com/pathfinder-fr/foundryvtt-pathfinder2-fr.git"},
}

// commandTimeout bounds one git invocation. Full clones of the
// mechanical dataset can take several minutes on a slow link.
const commandTimeout = 15 * time.Minute

// Runner executes one git invocation and returns its combined output.
// It exists so tests can substitute a fake git.
type Runner func(ctx context.Context, args ...string) (string, error)

// Ensure Fetcher implements grimoire.SourceFetcher.
var _ grimoire.SourceFetcher = (*Fetcher)(nil)

// Fetcher clones or fast-forwards the configured sources under a base
// directory, one subdirectory per source name.
type Fetcher struct {
	dir     string
	sources []grimoire.Source
	run     Runner
	logger  *slog.Logger
}

// NewFetcher creates a Fetcher rooted at dir. A nil run uses the real
// git binary.
func NewFetcher(dir string, sources []grimoire.Source, run Runner, logger *slog.Logger) *Fetcher {
	if run == nil {
		run = execGit
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{dir: dir, sources: sources, run: run, logger: logger}
}

// Update fetches every configured source and reports per-source
// success. An existing checkout is fast-forwarded; when the
// fast-forward fails (force-pushed upstream, dirty tree) the checkout
// is wiped and recloned. New checkouts are shallow, with a full clone
// fallback for servers that refuse depth-limited fetches.
func (f *Fetcher) Update(ctx context.Context) (map[string]bool, error) {
	if _, err := f.run(ctx, "--version"); err != nil {
		return nil, grimoire.Errorf(grimoire.EUNAVAILABLE, "git is not installed: %v", err)
	}
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return nil, err
	}

	results := make(map[string]bool, len(f.sources))
	for _, src := range f.sources {
		results[src.Name] = f.updateSource(ctx, src)
	}

	for _, ok := range results {
		if ok {
			return results, nil
		}
	}
	return results, grimoire.Errorf(grimoire.EUNAVAILABLE, "no source could be fetched")
}

// Dir returns the checkout directory of a source.
func (f *Fetcher) Dir(name string) string {
	return filepath.Join(f.dir, name)
}

func (f *Fetcher) updateSource(ctx context.Context, src grimoire.Source) bool {
	target := f.Dir(src.Name)

	if _, err := os.Stat(target); err == nil {
		f.logger.Info("refreshing source", "source", src.Name)
		if _, err := f.run(ctx, "-C", target, "pull", "--ff-only"); err == nil {
			return true
		}
		f.logger.Warn("fast-forward failed, recloning", "source", src.Name)
		if err := os.RemoveAll(target); err != nil {
			f.logger.Error("cannot remove stale checkout", "source", src.Name, "err", err)
			return false
		}
	}

	f.logger.Info("cloning source", "source", src.Name, "url", src.URL)
	if _, err := f.run(ctx, "clone", "--depth", "1", src.URL, target); err == nil {
		return true
	}
	out, err := f.run(ctx, "clone", src.URL, target)
	if err != nil {
		f.logger.Error("clone failed", "source", src.Name, "err", err, "output", out)
		return false
	}
	return true
}

// execGit runs the real git binary.
func execGit(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), fmt.Errorf("git %s: %w", args[0], err)
	}
	return string(out), nil
}
