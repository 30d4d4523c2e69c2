package newsrank

// DateMethod selects how the date field is read off its node.
type DateMethod string

// Date extraction methods.
const (
	// DateReadAttribute reads DateSource.Attribute, falling back to text.
	DateReadAttribute DateMethod = "read_attribute"
	// DateReadText reads the node text only.
	DateReadText DateMethod = "read_text"
)

// DefaultDateAttribute is read when a read_attribute date source names none.
const DefaultDateAttribute = "datetime"

// DateSource locates and reads the raw date expression of an item.
type DateSource struct {
	Rule      SelectorRule
	Method    DateMethod
	Attribute string
}

// URLLogic is the strategy used to find an item's link.
//
// The set is closed: URLFromTitle, URLFromElement and FindInContainer.
// A nil URLLogic behaves as FindInContainer{Tag: "a"}.
type URLLogic interface {
	urlLogic()
}

// URLFromTitle reads href off the title node, then its nearest ancestor
// anchor, then its nearest descendant anchor.
type URLFromTitle struct{}

// URLFromElement reads href off the node located by Rule.
type URLFromElement struct {
	Rule SelectorRule
}

// FindInContainer reads href off the first Tag element in the container
// that satisfies Attrs.
type FindInContainer struct {
	Tag   string
	Attrs []AttrMatcher
}

func (URLFromTitle) urlLogic()    {}
func (URLFromElement) urlLogic()  {}
func (FindInContainer) urlLogic() {}

// ParserSpec is a named set of selector rules describing how items are laid
// out on one family of pages.
type ParserSpec struct {
	Name      string
	Container SelectorRule
	Title     SelectorRule
	Date      DateSource
	Teaser    SelectorRule
	URL       URLLogic
}

// Validate returns an error if the parser cannot produce any items.
func (p *ParserSpec) Validate() error {
	if p.Container == nil {
		return Errorf(EINVALID, "parser %q has no container rule", p.Name)
	}
	return nil
}

// Extractor turns one HTML document into candidate news items.
type Extractor interface {
	// Extract parses html and applies parser to it. Relative links are
	// resolved against sourceURL. Items without a title are never returned.
	// Returns EINVALID if the parser has no container rule.
	Extract(html string, parser *ParserSpec, sourceURL string) ([]*NewsItem, error)
}
