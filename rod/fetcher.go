// Package rod fetches pages with a Chromium-based browser driven by rod.
// It runs page actions and lets an operator clear captcha and block pages.
package rod

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/newsrank"
)

// DefaultFetchTimeout bounds navigation and the initial page load.
const DefaultFetchTimeout = newsrank.DefaultBrowserTimeout

// Ensure Fetcher implements newsrank.Fetcher at compile time.
var _ newsrank.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML through a managed browser.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager *BrowserManager
	driver  *Driver
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the navigation timeout. A page still loading when it
// expires is stopped and captured as is.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithDriver replaces the default Driver.
func WithDriver(d *Driver) Option {
	return func(f *Fetcher) {
		f.driver = d
	}
}

// NewFetcher creates a Fetcher using manager for browser instances and
// resolver for challenges. Close releases the manager.
func NewFetcher(manager *BrowserManager, resolver newsrank.ChallengeResolver, opts ...Option) *Fetcher {
	f := &Fetcher{
		manager: manager,
		driver:  NewDriver(resolver),
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch opens the task URL in a new tab and returns the captured HTML.
func (f *Fetcher) Fetch(ctx context.Context, task *newsrank.Task) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, release, err := f.manager.OpenPage()
	if err != nil {
		return "", err
	}
	defer release()

	page = page.Context(ctx)

	loading := page.Timeout(f.timeout)
	err = loading.Navigate(task.URL)
	if err == nil {
		err = loading.WaitLoad()
	}
	loading.CancelTimeout()
	switch {
	case errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil:
		_ = page.StopLoading()
	case err != nil:
		return "", fmt.Errorf("navigate %s: %w", task.URL, err)
	}

	return f.driver.Capture(ctx, &rodPage{page: page}, task)
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}
