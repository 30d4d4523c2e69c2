// Package keyword scores news items against weighted keyword groups.
//
// Matching is case-insensitive and bounded by word boundaries, where a word
// character is any Unicode letter, number or underscore.
package keyword

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fwojciec/newsrank"
)

// Score returns the total weight of the groups matched by item's title and
// teaser, and the literal keyword that first matched in each such group.
// A group contributes at most once.
func Score(item *newsrank.NewsItem, groups []newsrank.ScoringGroup) (int, []string) {
	text := strings.ToLower(item.Title + " " + item.Teaser)

	total := 0
	hits := []string{}
	for _, g := range groups {
		for _, kw := range g.Keywords {
			if matchesAny(text, Variants(strings.ToLower(kw))) {
				total += g.Weight
				hits = append(hits, kw)
				break
			}
		}
	}
	return total, hits
}

func matchesAny(text string, variants []string) bool {
	for _, v := range variants {
		if Contains(text, v) {
			return true
		}
	}
	return false
}

// Variants returns kw followed by its spelling variants: hyphen and space
// swaps and simple English plurals. Non-ASCII keywords have no variants.
func Variants(kw string) []string {
	out := []string{kw}
	if !isASCII(kw) {
		return out
	}

	add := func(v string) {
		for _, have := range out {
			if have == v {
				return
			}
		}
		out = append(out, v)
	}

	if strings.Contains(kw, "-") {
		add(strings.ReplaceAll(kw, "-", " "))
		add(strings.ReplaceAll(kw, "-", ""))
	} else if strings.Contains(kw, " ") {
		add(strings.ReplaceAll(kw, " ", "-"))
	}

	if kw != "" && !strings.HasSuffix(kw, "s") {
		if n := len(kw); n > 1 && kw[n-1] == 'y' && !strings.ContainsRune("aeiou", rune(kw[n-2])) {
			add(kw[:n-1] + "ies")
		}
		add(kw + "s")
		for _, suffix := range []string{"x", "z", "ch", "sh"} {
			if strings.HasSuffix(kw, suffix) {
				add(kw + "es")
				break
			}
		}
	}
	return out
}

// Contains reports whether word occurs in text with a word boundary on
// both sides. An empty word never matches.
func Contains(text, word string) bool {
	if word == "" {
		return false
	}
	for from := 0; from <= len(text)-len(word); {
		i := strings.Index(text[from:], word)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(word)
		if boundary(text, start) && boundary(text, end) {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		from = start + size
	}
	return false
}

// boundary reports whether a word boundary sits at byte offset i of s.
func boundary(s string, i int) bool {
	before, after := false, false
	if i > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:i])
		before = IsWordRune(r)
	}
	if i < len(s) {
		r, _ := utf8.DecodeRuneInString(s[i:])
		after = IsWordRune(r)
	}
	return before != after
}

// IsWordRune reports whether r is a word character: a letter, a number or
// an underscore.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
