package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fwojciec/newsrank"
)

var _ newsrank.ChallengeResolver = (*PromptResolver)(nil)

// PromptResolver asks the operator on a terminal how to handle a page
// that shows a challenge. Prompts from concurrent fetches are serialized.
type PromptResolver struct {
	mu  sync.Mutex
	in  *bufio.Reader
	out io.Writer
}

// NewPromptResolver returns a PromptResolver reading answers from in and
// writing prompts to out.
func NewPromptResolver(in io.Reader, out io.Writer) *PromptResolver {
	return &PromptResolver{in: bufio.NewReader(in), out: out}
}

// ResolveChallenge prompts until the operator answers C (continue),
// R (refresh) or P (pass). Closed input passes on the task.
func (r *PromptResolver) ResolveChallenge(ctx context.Context, task *newsrank.Task, challenge newsrank.Challenge) (newsrank.ChallengeResolution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for {
		if err := ctx.Err(); err != nil {
			return newsrank.ResolveSkip, err
		}

		fmt.Fprintf(r.out, "\n%s challenge on task %s\n  %s\n[C]ontinue, [R]efresh or [P]ass? ", challenge, task.ID, task.URL)
		line, err := r.in.ReadString('\n')

		switch strings.ToUpper(strings.TrimSpace(line)) {
		case "C":
			return newsrank.ResolveContinue, nil
		case "R":
			return newsrank.ResolveRefresh, nil
		case "P":
			return newsrank.ResolveSkip, nil
		}
		if err != nil {
			fmt.Fprintln(r.out)
			return newsrank.ResolveSkip, nil
		}
	}
}
