package newsrank

// SelectorRule describes how to locate nodes within a DOM subtree.
//
// The set of rules is closed: CSSRule and TagRule are the only variants.
// A nil SelectorRule matches nothing.
type SelectorRule interface {
	selectorRule()
}

// CSSRule addresses nodes with a CSS selector query.
type CSSRule struct {
	Selector string
}

// TagRule addresses nodes by tag name, filtered by attribute matchers.
type TagRule struct {
	Tag   string
	Attrs []AttrMatcher
}

func (CSSRule) selectorRule() {}
func (TagRule) selectorRule() {}

// MatchKind selects how an AttrMatcher compares an attribute.
type MatchKind int

// Attribute matcher kinds.
const (
	// MatchEquals requires the attribute value to equal Value. For the class
	// attribute any single class equal to Value also matches.
	MatchEquals MatchKind = iota

	// MatchPresent requires the attribute to exist; its value is ignored.
	MatchPresent

	// MatchContains requires Value to be a substring of the attribute value,
	// or of any single class when the attribute is class.
	MatchContains
)

// String returns the configuration spelling of the kind.
func (k MatchKind) String() string {
	switch k {
	case MatchEquals:
		return "equals"
	case MatchPresent:
		return "present"
	case MatchContains:
		return "contains"
	}
	return "unknown"
}

// AttrMatcher is a single attribute predicate of a TagRule.
type AttrMatcher struct {
	Name  string
	Kind  MatchKind
	Value string
}

// Structural reports whether the matcher belongs to the exact/presence
// pre-filter rather than the containment pass.
func (m AttrMatcher) Structural() bool {
	return m.Kind != MatchContains
}
