package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/newsrank"
)

// Ensure LoggingExtractor implements newsrank.Extractor.
var _ newsrank.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   newsrank.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next newsrank.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the item count.
// A page yielding no items is logged as a warning since it usually means
// the parser no longer matches the site.
func (e *LoggingExtractor) Extract(html string, parser *newsrank.ParserSpec, sourceURL string) (items []*newsrank.NewsItem, err error) {
	defer func(begin time.Time) {
		name := ""
		if parser != nil {
			name = parser.Name
		}
		level := slog.LevelInfo
		if err == nil && len(items) == 0 {
			level = slog.LevelWarn
		}
		e.logger.Log(context.Background(), level, "extract",
			"parser", name,
			"url", sourceURL,
			"items", len(items),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html, parser, sourceURL)
}
