// Package slog provides logging decorators for the domain service
// interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/pf2fr/grimoire"
)

// Ensure LoggingSourceFetcher implements grimoire.SourceFetcher.
var _ grimoire.SourceFetcher = (*LoggingSourceFetcher)(nil)

// LoggingSourceFetcher wraps a SourceFetcher with operation logging.
type LoggingSourceFetcher struct {
	next   grimoire.SourceFetcher
	logger *slog.Logger
}

// NewLoggingSourceFetcher creates a new LoggingSourceFetcher.
func NewLoggingSourceFetcher(next grimoire.SourceFetcher, logger *slog.Logger) *LoggingSourceFetcher {
	return &LoggingSourceFetcher{next: next, logger: logger}
}

// Update delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingSourceFetcher) Update(ctx context.Context) (results map[string]bool, err error) {
	defer func(begin time.Time) {
		fetched := 0
		for _, ok := range results {
			if ok {
				fetched++
			}
		}
		f.logger.Info("source update",
			"sources", len(results),
			"fetched", fetched,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Update(ctx)
}
