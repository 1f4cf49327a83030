package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/pf2fr/grimoire"
	"github.com/pf2fr/grimoire/build"
	"github.com/pf2fr/grimoire/git"
	"github.com/pf2fr/grimoire/htmltomarkdown"
	"github.com/pf2fr/grimoire/render"
	grimslog "github.com/pf2fr/grimoire/slog"
	"github.com/pf2fr/grimoire/sqlite"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string `help:"Corpus database path." env:"GRIMOIRE_DB" default:"grimoire.db"`
	Data    string `help:"Directory holding the source checkouts." env:"GRIMOIRE_DATA" default:"sources"`
	NoColor bool   `help:"Disable ANSI styling."`
	Verbose bool   `short:"v" help:"Verbose logging."`

	Build  BuildCmd  `cmd:"" help:"Fetch the sources and rebuild the corpus."`
	Search SearchCmd `cmd:"" help:"Search the corpus."`
	Stats  StatsCmd  `cmd:"" help:"Show corpus statistics."`
	Shell  ShellCmd  `cmd:"" help:"Interactive search shell."`
}

// Dependencies holds all services and configuration for command
// execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Entries  grimoire.EntryService
	Search   grimoire.SearchService
	Fetcher  grimoire.SourceFetcher
	Builder  *build.Builder
	Renderer *render.Renderer
	Logger   *slog.Logger

	DataDir string
}

// SourceDir returns the checkout directory of one upstream source.
func (d *Dependencies) SourceDir(name string) string {
	return filepath.Join(d.DataDir, name)
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("grimoire"),
		kong.Description("Local bilingual reference for the PF2e ruleset"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	building := strings.HasPrefix(kctx.Command(), "build")
	if !building {
		if _, err := os.Stat(cli.DB); err != nil {
			return grimoire.Errorf(grimoire.ENOTFOUND,
				"corpus database %q not found, run 'grimoire build' first", cli.DB)
		}
	}

	db := sqlite.NewDB(cli.DB)
	if err := db.Open(); err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	entries := sqlite.NewEntryService(db)

	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,

		Entries: entries,
		Search:  grimslog.NewLoggingSearchService(sqlite.NewSearchService(db), logger),
		Fetcher: grimslog.NewLoggingSourceFetcher(
			git.NewFetcher(cli.Data, git.DefaultSources, nil, logger), logger),
		Builder:  build.NewBuilder(entries, logger),
		Renderer: render.NewRenderer(render.NewTheme(!cli.NoColor), htmltomarkdown.NewConverter()),
		Logger:   logger,

		DataDir: cli.Data,
	}

	return kctx.Run(deps)
}
