// Package http provides a plain HTTP implementation of newsrank.Fetcher
// for sources that render their listings without JavaScript.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsrank"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 30 * time.Second

// DefaultUserAgent is sent with every request unless overridden.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36 Edg/120.0.0.0"

// maxBodySize caps how much of a response is read.
const maxBodySize = 16 << 20

// Ensure Fetcher implements newsrank.Fetcher at compile time.
var _ newsrank.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves page HTML with plain GET requests. Page actions are
// ignored since nothing executes JavaScript.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the task page and decodes it to UTF-8 using the declared
// or sniffed charset.
//
// Returns ECHALLENGE for 403 and 429 responses, for captcha pages, and for
// short pages that look like a block notice.
func (f *Fetcher) Fetch(ctx context.Context, task *newsrank.Task) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, task.URL, nil)
	if err != nil {
		return "", newsrank.Errorf(newsrank.EINVALID, "invalid url %q: %v", task.URL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests:
		return "", newsrank.Errorf(newsrank.ECHALLENGE, "HTTP %d for %s", resp.StatusCode, task.URL)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, task.URL)
	}

	r, err := charset.NewReader(io.LimitReader(resp.Body, maxBodySize), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", task.URL, err)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	html := string(body)

	challenge := newsrank.DetectChallenge(html, pageTitle(html))
	if challenge == newsrank.ChallengeCaptcha {
		return "", newsrank.Errorf(newsrank.ECHALLENGE, "%s page at %s", challenge, task.URL)
	}
	if len(html) < newsrank.MinPageLength {
		if challenge != newsrank.ChallengeNone {
			return "", newsrank.Errorf(newsrank.ECHALLENGE, "%s page at %s", challenge, task.URL)
		}
		return "", fmt.Errorf("page too short (%d bytes) at %s", len(html), task.URL)
	}

	return html, nil
}

func pageTitle(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// Close is a no-op; http.Client needs no cleanup.
func (f *Fetcher) Close() error {
	return nil
}
