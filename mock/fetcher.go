package mock

import (
	"context"

	"github.com/fwojciec/newsrank"
)

var _ newsrank.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of newsrank.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, task *newsrank.Task) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, task *newsrank.Task) (string, error) {
	return f.FetchFn(ctx, task)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ newsrank.ChallengeResolver = (*ChallengeResolver)(nil)

// ChallengeResolver is a mock implementation of newsrank.ChallengeResolver.
type ChallengeResolver struct {
	ResolveChallengeFn func(ctx context.Context, task *newsrank.Task, challenge newsrank.Challenge) (newsrank.ChallengeResolution, error)
}

func (r *ChallengeResolver) ResolveChallenge(ctx context.Context, task *newsrank.Task, challenge newsrank.Challenge) (newsrank.ChallengeResolution, error) {
	return r.ResolveChallengeFn(ctx, task, challenge)
}

var _ newsrank.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of newsrank.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
