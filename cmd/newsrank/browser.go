package main

import (
	"context"
	"sync"

	"github.com/fwojciec/newsrank"
)

var _ newsrank.Fetcher = (*lazyBrowser)(nil)

// lazyBrowser starts the browser on the first fetch, so runs whose sources
// all use the http engine never launch one.
type lazyBrowser struct {
	launch func() (newsrank.Fetcher, error)

	once    sync.Once
	fetcher newsrank.Fetcher
	err     error
}

func (b *lazyBrowser) Fetch(ctx context.Context, task *newsrank.Task) (string, error) {
	b.once.Do(func() {
		b.fetcher, b.err = b.launch()
	})
	if b.err != nil {
		return "", b.err
	}
	return b.fetcher.Fetch(ctx, task)
}

// Close closes the browser if it was started. No browser is launched
// after Close.
func (b *lazyBrowser) Close() error {
	b.once.Do(func() {
		b.err = newsrank.Errorf(newsrank.EINTERNAL, "browser closed")
	})
	if b.fetcher == nil {
		return nil
	}
	return b.fetcher.Close()
}
