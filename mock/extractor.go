package mock

import (
	"cloud.google.com/go/civil"
	"github.com/fwojciec/newsrank"
)

var _ newsrank.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of newsrank.Extractor.
type Extractor struct {
	ExtractFn func(html string, parser *newsrank.ParserSpec, sourceURL string) ([]*newsrank.NewsItem, error)
}

func (e *Extractor) Extract(html string, parser *newsrank.ParserSpec, sourceURL string) ([]*newsrank.NewsItem, error) {
	return e.ExtractFn(html, parser, sourceURL)
}

var _ newsrank.DateNormalizer = (*DateNormalizer)(nil)

// DateNormalizer is a mock implementation of newsrank.DateNormalizer.
type DateNormalizer struct {
	NormalizeFn func(raw, domainHint string) *civil.Date
}

func (n *DateNormalizer) Normalize(raw, domainHint string) *civil.Date {
	return n.NormalizeFn(raw, domainHint)
}
