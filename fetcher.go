package newsrank

import (
	"context"
	"strings"
)

// MinPageLength is the smallest page, in bytes, accepted as a successful load.
const MinPageLength = 1000

// Fetcher retrieves page HTML for a task.
// Implementations may drive a browser and run the task's page action.
type Fetcher interface {
	// Fetch loads the task URL and returns the page HTML.
	// Returns EABANDONED when the operator chose to skip the task.
	Fetch(ctx context.Context, task *Task) (html string, err error)

	// Close releases any held resources.
	Close() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// Challenge classifies an anti-bot page.
type Challenge int

const (
	ChallengeNone Challenge = iota
	ChallengeCaptcha
	ChallengeBlocked
)

func (c Challenge) String() string {
	switch c {
	case ChallengeCaptcha:
		return "captcha"
	case ChallengeBlocked:
		return "blocked"
	default:
		return "none"
	}
}

var captchaIndicators = []string{
	"g-recaptcha",
	"recaptcha",
	"h-captcha",
	"hcaptcha",
	"cf-turnstile",
	"challenge-form",
	"captcha",
	"verify",
	"robot",
	"human",
}

var blockIndicators = []string{
	"access denied",
	"forbidden",
	"403",
	"blocked",
	"rate limit",
	"too many requests",
	"429",
}

// DetectChallenge inspects a loaded page for captcha and block markers.
// Captcha takes precedence over block.
func DetectChallenge(html, title string) Challenge {
	source := strings.ToLower(html)
	title = strings.ToLower(title)

	if isCaptcha(source) {
		return ChallengeCaptcha
	}
	for _, ind := range blockIndicators {
		if strings.Contains(source, ind) || strings.Contains(title, ind) {
			return ChallengeBlocked
		}
	}
	return ChallengeNone
}

func isCaptcha(source string) bool {
	found := false
	for _, ind := range captchaIndicators {
		if strings.Contains(source, ind) {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	if strings.Contains(source, "please verify") || strings.Contains(source, "are you a robot") {
		return true
	}
	return strings.Contains(source, "captcha") &&
		(strings.Contains(source, "solve") || strings.Contains(source, "verify"))
}

// ChallengeResolution is the operator's answer to a detected challenge.
type ChallengeResolution int

const (
	// ResolveRefresh reloads the page and retries.
	ResolveRefresh ChallengeResolution = iota
	// ResolveContinue retries without reloading.
	ResolveContinue
	// ResolveSkip abandons the task.
	ResolveSkip
)

// ChallengeResolver asks an operator how to proceed after a challenge.
type ChallengeResolver interface {
	ResolveChallenge(ctx context.Context, task *Task, challenge Challenge) (ChallengeResolution, error)
}

// SkipChallenges is a ChallengeResolver that abandons every challenged task.
// It is used when no operator is attached.
type SkipChallenges struct{}

// ResolveChallenge always returns ResolveSkip.
func (SkipChallenges) ResolveChallenge(context.Context, *Task, Challenge) (ChallengeResolution, error) {
	return ResolveSkip, nil
}
