//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/newsrank"
	"github.com/fwojciec/newsrank/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFetcher(t *testing.T) *rod.Fetcher {
	t.Helper()
	manager, err := rod.NewBrowserManager()
	require.NoError(t, err)

	driver := rod.NewDriver(newsrank.SkipChallenges{})
	driver.Settle = 100 * time.Millisecond
	fetcher := rod.NewFetcher(manager, nil, rod.WithDriver(driver), rod.WithTimeout(10*time.Second))
	t.Cleanup(func() { fetcher.Close() })
	return fetcher
}

func TestFetcher_Fetch_ReturnsRenderedHTML(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Listing</title></head>
<body>
<ul id="news"></ul>
<script>
const list = document.getElementById('news');
for (let i = 0; i < 40; i++) {
  const li = document.createElement('li');
  li.textContent = 'Rendered headline number ' + i;
  list.appendChild(li);
}
</script>
</body>
</html>`))
	}))
	defer srv.Close()

	fetcher := newFetcher(t)

	html, err := fetcher.Fetch(context.Background(), &newsrank.Task{ID: "t1", URL: srv.URL, Action: "WAIT"})
	require.NoError(t, err)
	assert.Contains(t, html, "Rendered headline number 39")
}

func TestFetcher_Fetch_SkipsChallengedPage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>Check</title></head><body>
<div class="g-recaptcha">Please verify you are human</div>` + strings.Repeat("<p>x</p>", 200) + `</body></html>`))
	}))
	defer srv.Close()

	fetcher := newFetcher(t)

	_, err := fetcher.Fetch(context.Background(), &newsrank.Task{ID: "t1", URL: srv.URL})
	assert.Equal(t, newsrank.EABANDONED, newsrank.ErrorCode(err))
}

func TestFetcher_Fetch_ContextCancellation(t *testing.T) {
	t.Parallel()

	fetcher := newFetcher(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fetcher.Fetch(ctx, &newsrank.Task{ID: "t1", URL: "http://127.0.0.1:1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
