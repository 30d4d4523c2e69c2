// Package timefmt resolves free-form date expressions to calendar dates.
// Format patterns use strptime directives and are parsed with
// github.com/itchyny/timefmt-go.
package timefmt

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/fwojciec/newsrank"
	"github.com/itchyny/timefmt-go"
)

// Ensure Normalizer implements newsrank.DateNormalizer.
var _ newsrank.DateNormalizer = (*Normalizer)(nil)

// Normalizer resolves date expressions using a format registry, a fixed
// relative-time grammar and an ISO date fallback.
type Normalizer struct {
	registry newsrank.DateFormatRegistry

	// Now returns the current time. Relative expressions resolve against it.
	Now func() time.Time
}

// NewNormalizer creates a Normalizer using the given format registry and
// the system clock.
func NewNormalizer(registry newsrank.DateFormatRegistry) *Normalizer {
	return &Normalizer{
		registry: registry,
		Now:      time.Now,
	}
}

// Normalize returns the calendar date of raw, or nil if it cannot be
// resolved. The first successful step wins: the site format for
// domainHint, each default format, the relative grammar, then an ISO
// YYYY-MM-DD substring.
func (n *Normalizer) Normalize(raw, domainHint string) *civil.Date {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if domainHint != "" {
		if format, ok := n.registry.FormatFor(domainHint); ok {
			if d, ok := ParseFormat(raw, format); ok {
				return &d
			}
		}
	}

	for _, format := range n.registry.DefaultFormats {
		if d, ok := ParseFormat(raw, format); ok {
			return &d
		}
	}

	if d, ok := ParseRelative(raw, n.Now()); ok {
		return &d
	}

	if d, ok := ParseISO(raw); ok {
		return &d
	}

	return nil
}

// ParseFormat parses s with a strptime-style format and keeps the date part.
// Impossible dates such as February 30 are rejected rather than rolled over
// into the next month.
func ParseFormat(s, format string) (civil.Date, bool) {
	if format == "" {
		return civil.Date{}, false
	}
	t, err := timefmt.Parse(s, format)
	if err != nil {
		return civil.Date{}, false
	}
	if !sameNumbers(s, timefmt.Format(t, format)) {
		return civil.Date{}, false
	}
	return civil.DateOf(t), true
}

var digitRun = regexp.MustCompile(`\d+`)

// sameNumbers reports whether a and b hold the same sequence of numbers,
// ignoring zero padding and the text between them.
func sameNumbers(a, b string) bool {
	na, nb := digitRun.FindAllString(a, -1), digitRun.FindAllString(b, -1)
	if len(na) != len(nb) {
		return false
	}
	for i := range na {
		x, errX := strconv.Atoi(na[i])
		y, errY := strconv.Atoi(nb[i])
		if errX != nil || errY != nil || x != y {
			return false
		}
	}
	return true
}

var isoDate = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`)

// ParseISO finds the first YYYY-MM-DD substring of s and parses it.
func ParseISO(s string) (civil.Date, bool) {
	m := isoDate.FindString(s)
	if m == "" {
		return civil.Date{}, false
	}
	d, err := civil.ParseDate(m)
	if err != nil {
		return civil.Date{}, false
	}
	return d, true
}

var urlDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`/(\d{4})/(\d{2})/(\d{2})/`),
	regexp.MustCompile(`/(\d{4})-(\d{2})-(\d{2})/`),
	regexp.MustCompile(`/(\d{4})(\d{2})(\d{2})/`),
}

// DateFromURL extracts a date embedded in a URL path as /YYYY/MM/DD/,
// /YYYY-MM-DD/ or /YYYYMMDD/.
func DateFromURL(rawURL string) (civil.Date, bool) {
	for _, re := range urlDatePatterns {
		m := re.FindStringSubmatch(rawURL)
		if m == nil {
			continue
		}
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		d := civil.Date{Year: year, Month: time.Month(month), Day: day}
		if d.IsValid() {
			return d, true
		}
	}
	return civil.Date{}, false
}
