package mock

import (
	"context"

	"github.com/fwojciec/newsrank"
)

var _ newsrank.ItemStore = (*ItemStore)(nil)

// ItemStore is a mock implementation of newsrank.ItemStore.
type ItemStore struct {
	AppendItemsFn func(ctx context.Context, stage newsrank.Stage, items []*newsrank.NewsItem) error
	WriteItemsFn  func(ctx context.Context, stage newsrank.Stage, items []*newsrank.NewsItem) error
	ReadItemsFn   func(ctx context.Context, stage newsrank.Stage) ([]*newsrank.NewsItem, error)
	ClearFn       func(ctx context.Context) error
}

func (s *ItemStore) AppendItems(ctx context.Context, stage newsrank.Stage, items []*newsrank.NewsItem) error {
	return s.AppendItemsFn(ctx, stage, items)
}

func (s *ItemStore) WriteItems(ctx context.Context, stage newsrank.Stage, items []*newsrank.NewsItem) error {
	return s.WriteItemsFn(ctx, stage, items)
}

func (s *ItemStore) ReadItems(ctx context.Context, stage newsrank.Stage) ([]*newsrank.NewsItem, error) {
	return s.ReadItemsFn(ctx, stage)
}

func (s *ItemStore) Clear(ctx context.Context) error {
	return s.ClearFn(ctx)
}

var _ newsrank.ItemService = (*ItemService)(nil)

// ItemService is a mock implementation of newsrank.ItemService.
type ItemService struct {
	CreateRunFn   func(ctx context.Context, run *newsrank.Run) error
	CreateItemsFn func(ctx context.Context, runID string, items []*newsrank.NewsItem) error
	FindItemsFn   func(ctx context.Context, filter newsrank.ItemFilter) ([]*newsrank.NewsItem, error)
	FindRunsFn    func(ctx context.Context, limit int) ([]*newsrank.Run, error)
}

func (s *ItemService) CreateRun(ctx context.Context, run *newsrank.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *ItemService) CreateItems(ctx context.Context, runID string, items []*newsrank.NewsItem) error {
	return s.CreateItemsFn(ctx, runID, items)
}

func (s *ItemService) FindItems(ctx context.Context, filter newsrank.ItemFilter) ([]*newsrank.NewsItem, error) {
	return s.FindItemsFn(ctx, filter)
}

func (s *ItemService) FindRuns(ctx context.Context, limit int) ([]*newsrank.Run, error) {
	return s.FindRunsFn(ctx, limit)
}
