package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/newsrank"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, task *newsrank.Task) (string, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// RetryDelays returns the backoff delays for a fetch allowed the given
// number of attempts: 1s, 2s, 4s and so on. One attempt means no retries.
func RetryDelays(attempts int) []time.Duration {
	var delays []time.Duration
	d := time.Second
	for i := 1; i < attempts; i++ {
		delays = append(delays, d)
		d *= 2
	}
	return delays
}

// FetchWithRetryDelays fetches a task, retrying after each delay in turn.
// A task abandoned by the operator is never retried.
func FetchWithRetryDelays(ctx context.Context, task *newsrank.Task, fetch FetchFunc, logger LogFunc, delays []time.Duration) (string, error) {
	for attempt := 0; ; attempt++ {
		html, err := fetch(ctx, task)
		if err == nil {
			return html, nil
		}
		if attempt == len(delays) || newsrank.ErrorCode(err) == newsrank.EABANDONED {
			return "", err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}

		if logger != nil {
			logger("  retry %s (attempt %d/%d): %v", task.URL, attempt+2, len(delays)+1, err)
		}

		timer := time.NewTimer(delays[attempt])
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}
	}
}
