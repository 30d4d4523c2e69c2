package newsrank

import (
	"strings"

	"cloud.google.com/go/civil"
)

// SiteFormat binds a strptime-style date pattern to pages whose host
// contains Domain.
type SiteFormat struct {
	Domain string
	Format string
}

// DateFormatRegistry holds the configurable date patterns. The relative-time
// grammar and the ISO prefix fallback are built in and not listed here.
type DateFormatRegistry struct {
	SiteFormats    []SiteFormat
	DefaultFormats []string
}

// FormatFor returns the first site format whose domain is a substring of
// domainHint.
func (r *DateFormatRegistry) FormatFor(domainHint string) (string, bool) {
	if domainHint == "" {
		return "", false
	}
	for _, sf := range r.SiteFormats {
		if sf.Domain != "" && strings.Contains(domainHint, sf.Domain) {
			return sf.Format, true
		}
	}
	return "", false
}

// DateNormalizer resolves date expressions into calendar dates.
type DateNormalizer interface {
	// Normalize returns the calendar date of raw, or nil when it cannot be
	// resolved. Unresolved is a normal outcome, not an error.
	Normalize(raw, domainHint string) *civil.Date
}
