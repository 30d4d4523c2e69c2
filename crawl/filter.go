package crawl

import (
	"github.com/fwojciec/newsrank"
	"github.com/fwojciec/newsrank/keyword"
	"github.com/fwojciec/newsrank/timefmt"
)

// Filter resolves dates, drops stale items and scores the rest.
type Filter struct {
	Settings   newsrank.Settings
	Groups     []newsrank.ScoringGroup
	Normalizer newsrank.DateNormalizer
}

// NewFilter creates a Filter from the operator configuration.
func NewFilter(cfg *newsrank.Config, normalizer newsrank.DateNormalizer) *Filter {
	return &Filter{
		Settings:   cfg.Settings,
		Groups:     cfg.ScoringGroups,
		Normalizer: normalizer,
	}
}

// FilterStats counts what happened to the items of one Apply call.
type FilterStats struct {
	In       int
	TooOld   int
	LowScore int
	Kept     int
}

// Apply returns the items that are recent enough and score at least the
// pass threshold, in input order. Items are updated in place. Items with an
// unresolved date are never dropped for age.
func (f *Filter) Apply(items []*newsrank.NewsItem) ([]*newsrank.NewsItem, FilterStats) {
	stats := FilterStats{In: len(items)}
	kept := make([]*newsrank.NewsItem, 0, len(items))

	for _, item := range items {
		f.resolveDate(item)

		if cutoff := f.Settings.MinimumDate; cutoff != nil && item.HasDate() && item.DateParsed.Before(*cutoff) {
			stats.TooOld++
			continue
		}

		if f.Settings.BypassScoring {
			item.Score = newsrank.BypassScore
			item.ScoreHits = []string{newsrank.BypassHit}
		} else {
			item.Score, item.ScoreHits = keyword.Score(item, f.Groups)
			if item.Score < f.Settings.PassScoreThreshold {
				stats.LowScore++
				continue
			}
		}
		kept = append(kept, item)
	}

	stats.Kept = len(kept)
	return kept, stats
}

func (f *Filter) resolveDate(item *newsrank.NewsItem) {
	if item.HasDate() {
		return
	}
	if item.DateRaw != "" && f.Normalizer != nil {
		item.DateParsed = f.Normalizer.Normalize(item.DateRaw, item.DomainHint())
	}
	if !item.HasDate() && f.Settings.DateFromURL {
		if d, ok := timefmt.DateFromURL(item.URL); ok {
			item.DateParsed = &d
		}
	}
}
