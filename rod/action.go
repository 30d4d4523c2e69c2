package rod

import (
	"context"
	"time"

	"github.com/fwojciec/newsrank"
)

// RunAction performs a page action. Failed clicks are skipped; scroll
// failures and cancellation are returned.
func RunAction(ctx context.Context, page Page, action newsrank.Action) error {
	switch a := action.(type) {
	case newsrank.WaitAction:
		return sleep(ctx, a.Delay)

	case newsrank.ScrollAction:
		for i := 0; i < a.Times; i++ {
			if err := page.ScrollBy(a.Pixels); err != nil {
				return err
			}
			if err := sleep(ctx, a.Delay); err != nil {
				return err
			}
			bottom, err := page.AtBottom()
			if err != nil {
				return err
			}
			if bottom {
				break
			}
		}
		return nil

	case newsrank.ScrollToBottomAction:
		last, err := page.ScrollHeight()
		if err != nil {
			return err
		}
		for i := 0; i < a.MaxScrolls; i++ {
			if err := page.ScrollToBottom(); err != nil {
				return err
			}
			if err := sleep(ctx, a.Delay); err != nil {
				return err
			}
			height, err := page.ScrollHeight()
			if err != nil {
				return err
			}
			if height == last {
				break
			}
			last = height
		}
		return nil

	case newsrank.ClickAllAction:
		for _, sel := range a.Selectors {
			n, err := page.Count(sel)
			if err != nil {
				continue
			}
			for i := 0; i < n; i++ {
				if err := page.ClickNth(sel, i); err != nil {
					continue
				}
				if err := sleep(ctx, a.Delay); err != nil {
					return err
				}
			}
		}
		return nil
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
