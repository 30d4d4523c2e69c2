package slog

import (
	"context"
	"log/slog"

	"github.com/fwojciec/newsrank"
)

// Ensure LoggingItemStore implements newsrank.ItemStore.
var _ newsrank.ItemStore = (*LoggingItemStore)(nil)

// LoggingItemStore wraps an ItemStore with debug logging of checkpoint writes.
type LoggingItemStore struct {
	next   newsrank.ItemStore
	logger *slog.Logger
}

// NewLoggingItemStore creates a new LoggingItemStore.
func NewLoggingItemStore(next newsrank.ItemStore, logger *slog.Logger) *LoggingItemStore {
	return &LoggingItemStore{next: next, logger: logger}
}

func (s *LoggingItemStore) AppendItems(ctx context.Context, stage newsrank.Stage, items []*newsrank.NewsItem) (err error) {
	defer func() {
		s.logger.Debug("checkpoint append", "stage", stage, "items", len(items), "err", err)
	}()
	return s.next.AppendItems(ctx, stage, items)
}

func (s *LoggingItemStore) WriteItems(ctx context.Context, stage newsrank.Stage, items []*newsrank.NewsItem) (err error) {
	defer func() {
		s.logger.Debug("checkpoint write", "stage", stage, "items", len(items), "err", err)
	}()
	return s.next.WriteItems(ctx, stage, items)
}

func (s *LoggingItemStore) ReadItems(ctx context.Context, stage newsrank.Stage) (items []*newsrank.NewsItem, err error) {
	defer func() {
		s.logger.Debug("checkpoint read", "stage", stage, "items", len(items), "err", err)
	}()
	return s.next.ReadItems(ctx, stage)
}

func (s *LoggingItemStore) Clear(ctx context.Context) error {
	s.logger.Debug("checkpoint clear")
	return s.next.Clear(ctx)
}
