package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/newsrank"
	"github.com/fwojciec/newsrank/mock"
	nrslog "github.com/fwojciec/newsrank/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fetchWith(t *testing.T, html string, fetchErr error) (string, string, error) {
	t.Helper()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.Fetcher{
		FetchFn: func(context.Context, *newsrank.Task) (string, error) {
			return html, fetchErr
		},
	}

	task := &newsrank.Task{ID: "t1", URL: "https://example.com/news", Engine: newsrank.EngineBrowser}
	got, err := nrslog.NewLoggingFetcher(inner, logger).Fetch(context.Background(), task)
	return got, buf.String(), err
}

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs task engine and page size", func(t *testing.T) {
		t.Parallel()

		html, output, err := fetchWith(t, "<html>news</html>", nil)

		require.NoError(t, err)
		assert.Equal(t, "<html>news</html>", html)
		assert.Contains(t, output, "level=INFO")
		assert.Contains(t, output, "task=t1")
		assert.Contains(t, output, "url=https://example.com/news")
		assert.Contains(t, output, "engine=edge")
		assert.Contains(t, output, "bytes=17")
		assert.Contains(t, output, "duration=")
	})

	t.Run("warns when the operator passes on a challenge", func(t *testing.T) {
		t.Parallel()

		// Given a fetch the operator abandoned at a captcha
		_, output, err := fetchWith(t, "", newsrank.Errorf(newsrank.EABANDONED, "captcha on %s", "example.com"))

		// Then the error passes through and is logged as a skip
		assert.Equal(t, newsrank.EABANDONED, newsrank.ErrorCode(err))
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, `msg="fetch skipped"`)
		assert.Contains(t, output, "code=abandoned")
		assert.Contains(t, output, `reason="captcha on example.com"`)
		assert.NotContains(t, output, "bytes=")
	})

	t.Run("logs other failures as errors", func(t *testing.T) {
		t.Parallel()

		_, output, err := fetchWith(t, "", errors.New("network error"))

		require.Error(t, err)
		assert.Contains(t, output, "level=ERROR")
		assert.Contains(t, output, `err="network error"`)
	})
}

func TestLoggingFetcher_Close(t *testing.T) {
	t.Parallel()

	closed := false
	inner := &mock.Fetcher{
		CloseFn: func() error {
			closed = true
			return nil
		},
	}

	err := nrslog.NewLoggingFetcher(inner, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))).Close()

	require.NoError(t, err)
	assert.True(t, closed)
}
