package fs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fwojciec/newsrank"
)

// Ensure ItemStore implements newsrank.ItemStore at compile time.
var _ newsrank.ItemStore = (*ItemStore)(nil)

var stages = []newsrank.Stage{newsrank.StageRaw, newsrank.StageFiltered, newsrank.StageSorted}

// ItemStore keeps one JSONL checkpoint file per stage in a work directory.
type ItemStore struct {
	mu  sync.Mutex
	dir string
}

// NewItemStore creates an ItemStore rooted at dir.
func NewItemStore(dir string) *ItemStore {
	return &ItemStore{dir: dir}
}

// Path returns the checkpoint file of a stage, for example items_raw.jsonl.
func (s *ItemStore) Path(stage newsrank.Stage) string {
	return filepath.Join(s.dir, "items_"+string(stage)+".jsonl")
}

func (s *ItemStore) AppendItems(ctx context.Context, stage newsrank.Stage, items []*newsrank.NewsItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(s.Path(stage), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if err := EncodeItems(f, items); err != nil {
		_ = f.Close()
		return fmt.Errorf("append %s items: %w", stage, err)
	}
	return f.Close()
}

// WriteItems writes to a temporary file and renames it over the checkpoint,
// so readers never see a partial file.
func (s *ItemStore) WriteItems(ctx context.Context, stage newsrank.Stage, items []*newsrank.NewsItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}
	tmp := s.Path(stage) + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := EncodeItems(f, items); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("write %s items: %w", stage, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, s.Path(stage))
}

func (s *ItemStore) ReadItems(ctx context.Context, stage newsrank.Stage) ([]*newsrank.NewsItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.Path(stage))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, newsrank.Errorf(newsrank.ENOTFOUND, "no %s checkpoint in %s", stage, s.dir)
	} else if err != nil {
		return nil, err
	}
	defer f.Close()

	return DecodeItems(f)
}

// Clear removes every stage checkpoint. Missing files are ignored.
func (s *ItemStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, stage := range stages {
		if err := os.Remove(s.Path(stage)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}
