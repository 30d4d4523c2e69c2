package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsrank"
)

// Ensure Extractor implements newsrank.Extractor.
var _ newsrank.Extractor = (*Extractor)(nil)

// Extractor builds news items from HTML using goquery.
type Extractor struct {
	// NewID assigns item identifiers. Defaults to newsrank.NewID.
	NewID func() string
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{NewID: newsrank.NewID}
}

// Extract parses html and applies parser to it.
func (e *Extractor) Extract(html string, parser *newsrank.ParserSpec, sourceURL string) ([]*newsrank.NewsItem, error) {
	if parser == nil {
		return nil, newsrank.Errorf(newsrank.EINVALID, "parser required")
	}
	if err := parser.Validate(); err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, newsrank.Errorf(newsrank.EINVALID, "failed to parse HTML: %v", err)
	}

	items := ExtractItems(doc.Selection, parser, sourceURL)
	newID := e.NewID
	if newID == nil {
		newID = newsrank.NewID
	}
	for _, item := range items {
		item.ID = newID()
	}
	return items, nil
}

// ExtractItems builds one item per container matched by the parser's
// container rule. Containers without a title, and containers whose
// extraction fails, are skipped. Item IDs are left empty.
func ExtractItems(root *goquery.Selection, parser *newsrank.ParserSpec, sourceURL string) []*newsrank.NewsItem {
	containers := FindMany(root, parser.Container)

	items := make([]*newsrank.NewsItem, 0, containers.Length())
	containers.Each(func(_ int, container *goquery.Selection) {
		item, ok := extractItem(container, parser, sourceURL)
		if ok {
			items = append(items, item)
		}
	})
	return items
}

func extractItem(container *goquery.Selection, parser *newsrank.ParserSpec, sourceURL string) (item *newsrank.NewsItem, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			item, ok = nil, false
		}
	}()

	item = &newsrank.NewsItem{
		SourceURL:  sourceURL,
		ParserName: parser.Name,
	}

	titleNode, hasTitle := FindOne(container, parser.Title)
	if hasTitle {
		item.Title = Text(titleNode)
	}
	if item.Title == "" {
		return nil, false
	}

	href := findHref(container, parser.URL, titleNode)
	item.URL = ResolveURL(sourceURL, href)

	if parser.Date.Rule != nil {
		if node, found := FindOne(container, parser.Date.Rule); found {
			item.DateRaw = readDate(node, parser.Date)
		}
	}

	if node, found := FindOne(container, parser.Teaser); found {
		item.Teaser = Text(node)
	}

	return item, true
}

func readDate(node *goquery.Selection, src newsrank.DateSource) string {
	if src.Method == newsrank.DateReadAttribute {
		attr := src.Attribute
		if attr == "" {
			attr = newsrank.DefaultDateAttribute
		}
		if v := strings.TrimSpace(node.AttrOr(attr, "")); v != "" {
			return v
		}
	}
	return Text(node)
}

func findHref(container *goquery.Selection, logic newsrank.URLLogic, titleNode *goquery.Selection) string {
	switch l := logic.(type) {
	case newsrank.URLFromTitle:
		return hrefFromTitle(titleNode)
	case newsrank.URLFromElement:
		if node, ok := FindOne(container, l.Rule); ok {
			return node.AttrOr("href", "")
		}
		return ""
	case newsrank.FindInContainer:
		return hrefInContainer(container, l.Tag, l.Attrs)
	default:
		return hrefInContainer(container, "a", nil)
	}
}

// hrefFromTitle reads href off the title node, then its nearest ancestor
// anchor, then its first descendant anchor.
func hrefFromTitle(title *goquery.Selection) string {
	if title == nil {
		return ""
	}
	if href := title.AttrOr("href", ""); href != "" {
		return href
	}
	if href := title.Parent().Closest("a").AttrOr("href", ""); href != "" {
		return href
	}
	return title.Find("a").First().AttrOr("href", "")
}

func hrefInContainer(container *goquery.Selection, tag string, attrs []newsrank.AttrMatcher) string {
	if tag == "" {
		tag = "a"
	}
	node, ok := FindOne(container, newsrank.TagRule{Tag: tag, Attrs: attrs})
	if !ok {
		return ""
	}
	return node.AttrOr("href", "")
}

// ResolveURL makes href absolute against sourceURL. A leading "./" is
// dropped first. An empty href yields "".
func ResolveURL(sourceURL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	href = strings.TrimPrefix(href, "./")

	base, err := url.Parse(sourceURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
