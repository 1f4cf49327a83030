package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/pf2fr/grimoire"
)

// Ensure LoggingSearchService implements grimoire.SearchService.
var _ grimoire.SearchService = (*LoggingSearchService)(nil)

// LoggingSearchService wraps a SearchService with query logging.
type LoggingSearchService struct {
	next   grimoire.SearchService
	logger *slog.Logger
}

// NewLoggingSearchService creates a new LoggingSearchService.
func NewLoggingSearchService(next grimoire.SearchService, logger *slog.Logger) *LoggingSearchService {
	return &LoggingSearchService{next: next, logger: logger}
}

// Search delegates to the wrapped service and logs the operation.
func (s *LoggingSearchService) Search(ctx context.Context, filter grimoire.SearchFilter) (entries []*grimoire.Entry, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("search",
			"query", filter.Query,
			"category", filter.Category,
			"results", len(entries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, filter)
}

// ListByTrait delegates to the wrapped service and logs the operation.
func (s *LoggingSearchService) ListByTrait(ctx context.Context, trait, category string, limit int) (entries []*grimoire.Entry, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("trait listing",
			"trait", trait,
			"results", len(entries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ListByTrait(ctx, trait, category, limit)
}

// SearchDescriptions delegates to the wrapped service and logs the operation.
func (s *LoggingSearchService) SearchDescriptions(ctx context.Context, query string, limit int) (entries []*grimoire.Entry, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("description search",
			"query", query,
			"results", len(entries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SearchDescriptions(ctx, query, limit)
}
