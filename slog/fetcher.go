// Package slog wraps newsrank services with structured logging.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/newsrank"
)

// Ensure LoggingFetcher implements newsrank.Fetcher.
var _ newsrank.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging. Tasks the operator passed on
// are logged as warnings, other failures as errors.
type LoggingFetcher struct {
	next   newsrank.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next newsrank.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingFetcher) Fetch(ctx context.Context, task *newsrank.Task) (html string, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"task", task.ID,
			"url", task.URL,
			"engine", task.Engine,
			"duration", time.Since(begin),
		}
		switch code := newsrank.ErrorCode(err); {
		case err == nil:
			f.logger.Info("fetch", append(attrs, "bytes", len(html))...)
		case code == newsrank.EABANDONED || code == newsrank.ECHALLENGE:
			f.logger.Warn("fetch skipped", append(attrs, "code", code, "reason", newsrank.ErrorMessage(err))...)
		default:
			f.logger.Error("fetch", append(attrs, "err", err)...)
		}
	}(time.Now())
	return f.next.Fetch(ctx, task)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
