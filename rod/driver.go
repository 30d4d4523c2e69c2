package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/newsrank"
)

// Defaults for Driver.
const (
	DefaultSettle             = 2 * time.Second
	DefaultReloadWait         = 3 * time.Second
	DefaultBlockBackoff       = 5 * time.Second
	DefaultMaxChallengeRounds = 5
)

// Driver runs everything that happens on a page between navigation and
// capture: settling, the challenge loop and the task's page action.
type Driver struct {
	Resolver newsrank.ChallengeResolver

	// Settle is waited after navigation before the page is inspected.
	Settle time.Duration
	// ReloadWait is waited after a reload.
	ReloadWait time.Duration
	// BlockBackoff is waited before reloading a blocked page.
	BlockBackoff time.Duration
	// MaxChallengeRounds bounds how often the operator is asked per page.
	MaxChallengeRounds int
}

// NewDriver returns a Driver with default timings.
func NewDriver(resolver newsrank.ChallengeResolver) *Driver {
	if resolver == nil {
		resolver = newsrank.SkipChallenges{}
	}
	return &Driver{
		Resolver:           resolver,
		Settle:             DefaultSettle,
		ReloadWait:         DefaultReloadWait,
		BlockBackoff:       DefaultBlockBackoff,
		MaxChallengeRounds: DefaultMaxChallengeRounds,
	}
}

// Capture settles a navigated page, clears challenges, runs the task's
// action and returns the page HTML.
//
// Returns EABANDONED when the operator skips the task, ECHALLENGE when the
// page is still challenged after MaxChallengeRounds, and an error when the
// captured page is shorter than newsrank.MinPageLength.
func (d *Driver) Capture(ctx context.Context, page Page, task *newsrank.Task) (string, error) {
	if err := sleep(ctx, d.Settle); err != nil {
		return "", err
	}
	if err := d.clearChallenges(ctx, page, task); err != nil {
		return "", err
	}
	if err := RunAction(ctx, page, newsrank.ParseAction(task.Action)); err != nil {
		return "", fmt.Errorf("action %q: %w", task.Action, err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", err
	}
	if len(html) < newsrank.MinPageLength {
		return "", fmt.Errorf("page too short (%d bytes) at %s", len(html), task.URL)
	}
	return html, nil
}

func (d *Driver) clearChallenges(ctx context.Context, page Page, task *newsrank.Task) error {
	for round := 0; round < d.MaxChallengeRounds; round++ {
		html, err := page.HTML()
		if err != nil {
			return err
		}
		title, err := page.Title()
		if err != nil {
			return err
		}

		challenge := newsrank.DetectChallenge(html, title)
		if challenge == newsrank.ChallengeNone {
			return nil
		}

		res, err := d.Resolver.ResolveChallenge(ctx, task, challenge)
		if err != nil {
			return err
		}
		switch res {
		case newsrank.ResolveSkip:
			return newsrank.Errorf(newsrank.EABANDONED, "%s page at %s skipped", challenge, task.URL)
		case newsrank.ResolveRefresh:
			if challenge == newsrank.ChallengeBlocked {
				if err := sleep(ctx, d.BlockBackoff); err != nil {
					return err
				}
			}
			if err := page.Reload(); err != nil {
				return err
			}
			if err := sleep(ctx, d.ReloadWait); err != nil {
				return err
			}
		case newsrank.ResolveContinue:
		}
	}
	return newsrank.Errorf(newsrank.ECHALLENGE, "challenge persists at %s", task.URL)
}
