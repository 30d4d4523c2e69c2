package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsrank"
)

// FindMany returns every node under root matched by rule, in document order.
// A nil or malformed rule yields an empty selection.
func FindMany(root *goquery.Selection, rule newsrank.SelectorRule) *goquery.Selection {
	switch r := rule.(type) {
	case newsrank.CSSRule:
		if strings.TrimSpace(r.Selector) == "" {
			return root.Slice(0, 0)
		}
		return root.Find(r.Selector)
	case newsrank.TagRule:
		return findTag(root, r.Tag, r.Attrs)
	default:
		return root.Slice(0, 0)
	}
}

// FindOne returns the first node under root matched by rule.
// The boolean is false when nothing matches.
func FindOne(root *goquery.Selection, rule newsrank.SelectorRule) (*goquery.Selection, bool) {
	sel := FindMany(root, rule)
	if sel.Length() == 0 {
		return nil, false
	}
	return sel.First(), true
}

// findTag selects tag elements passing the exact and presence matchers,
// then keeps those for which every containment matcher holds.
func findTag(root *goquery.Selection, tag string, attrs []newsrank.AttrMatcher) *goquery.Selection {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return root.Slice(0, 0)
	}

	var structural, contains []newsrank.AttrMatcher
	for _, m := range attrs {
		if m.Structural() {
			structural = append(structural, m)
		} else {
			contains = append(contains, m)
		}
	}

	sel := root.Find("*").FilterFunction(func(_ int, s *goquery.Selection) bool {
		if goquery.NodeName(s) != tag {
			return false
		}
		for _, m := range structural {
			if !matchStructural(s, m) {
				return false
			}
		}
		return true
	})
	if len(contains) == 0 {
		return sel
	}

	return sel.FilterFunction(func(_ int, s *goquery.Selection) bool {
		for _, m := range contains {
			if !matchContains(s, m) {
				return false
			}
		}
		return true
	})
}

func matchStructural(s *goquery.Selection, m newsrank.AttrMatcher) bool {
	val, ok := s.Attr(m.Name)
	if !ok {
		return false
	}
	if m.Kind == newsrank.MatchPresent {
		return true
	}
	if m.Name == "class" {
		if val == m.Value {
			return true
		}
		for _, c := range strings.Fields(val) {
			if c == m.Value {
				return true
			}
		}
		return false
	}
	return val == m.Value
}

func matchContains(s *goquery.Selection, m newsrank.AttrMatcher) bool {
	val, _ := s.Attr(m.Name)
	if m.Name == "class" {
		for _, c := range strings.Fields(val) {
			if strings.Contains(c, m.Value) {
				return true
			}
		}
		return false
	}
	return strings.Contains(val, m.Value)
}

// Text returns the text of sel with whitespace runs collapsed to single
// spaces and trimmed.
func Text(sel *goquery.Selection) string {
	if sel == nil {
		return ""
	}
	return strings.Join(strings.Fields(sel.Text()), " ")
}
