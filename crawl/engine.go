package crawl

import (
	"context"
	"errors"
	"strings"

	"github.com/fwojciec/newsrank"
)

var _ newsrank.Fetcher = (*EngineFetcher)(nil)

// EngineFetcher routes each task to a fetcher by its engine column. Tasks
// with engine "http" use Static; all others use Browser.
type EngineFetcher struct {
	Browser newsrank.Fetcher
	Static  newsrank.Fetcher
}

// Fetch delegates to the fetcher selected for task.
func (f *EngineFetcher) Fetch(ctx context.Context, task *newsrank.Task) (string, error) {
	if strings.EqualFold(strings.TrimSpace(task.Engine), newsrank.EngineHTTP) {
		if f.Static == nil {
			return "", newsrank.Errorf(newsrank.EINVALID, "no static fetcher for task %s", task.ID)
		}
		return f.Static.Fetch(ctx, task)
	}
	if f.Browser == nil {
		return "", newsrank.Errorf(newsrank.EINVALID, "no browser fetcher for task %s", task.ID)
	}
	return f.Browser.Fetch(ctx, task)
}

// Close closes both underlying fetchers.
func (f *EngineFetcher) Close() error {
	var errs []error
	if f.Browser != nil {
		errs = append(errs, f.Browser.Close())
	}
	if f.Static != nil {
		errs = append(errs, f.Static.Close())
	}
	return errors.Join(errs...)
}
