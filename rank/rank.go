// Package rank deduplicates scored news items by title and orders them for
// presentation.
package rank

import (
	"slices"
	"strings"
	"unicode"

	"github.com/fwojciec/newsrank"
	"github.com/fwojciec/newsrank/keyword"
)

// Rank deduplicates items and returns the survivors in presentation order.
func Rank(items []*newsrank.NewsItem) []*newsrank.NewsItem {
	return Sort(Deduplicate(items))
}

// NormalizeTitle returns the comparison key for a title: lowercased, with
// punctuation removed and whitespace collapsed.
func NormalizeTitle(title string) string {
	stripped := strings.Map(func(r rune) rune {
		if keyword.IsWordRune(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, strings.ToLower(title))
	return strings.Join(strings.Fields(stripped), " ")
}

// Deduplicate keeps one item per normalized title. A later item replaces
// the survivor when its score is higher, or when scores tie and both dates
// are resolved and its date is later. Items with an empty normalized title
// are dropped. Survivors keep the position of the first item of their title.
func Deduplicate(items []*newsrank.NewsItem) []*newsrank.NewsItem {
	index := make(map[string]int)
	var out []*newsrank.NewsItem

	for _, item := range items {
		key := NormalizeTitle(item.Title)
		if key == "" {
			continue
		}

		i, ok := index[key]
		if !ok {
			index[key] = len(out)
			out = append(out, item)
			continue
		}
		if replaces(item, out[i]) {
			out[i] = item
		}
	}
	return out
}

func replaces(candidate, survivor *newsrank.NewsItem) bool {
	if candidate.Score != survivor.Score {
		return candidate.Score > survivor.Score
	}
	if !candidate.HasDate() || !survivor.HasDate() {
		return false
	}
	return candidate.DateParsed.After(*survivor.DateParsed)
}

// Sort orders items with a resolved date first, newest date then highest
// score first, followed by undated items by descending score. Items that
// compare equal keep their input order.
func Sort(items []*newsrank.NewsItem) []*newsrank.NewsItem {
	dated := make([]*newsrank.NewsItem, 0, len(items))
	var undated []*newsrank.NewsItem
	for _, item := range items {
		if item.HasDate() {
			dated = append(dated, item)
		} else {
			undated = append(undated, item)
		}
	}

	slices.SortStableFunc(dated, func(a, b *newsrank.NewsItem) int {
		switch {
		case a.DateParsed.After(*b.DateParsed):
			return -1
		case a.DateParsed.Before(*b.DateParsed):
			return 1
		}
		return b.Score - a.Score
	})
	slices.SortStableFunc(undated, func(a, b *newsrank.NewsItem) int {
		return b.Score - a.Score
	})

	return append(dated, undated...)
}
