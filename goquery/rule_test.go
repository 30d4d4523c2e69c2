package goquery_test

import (
	"strings"
	"testing"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsrank"
	"github.com/fwojciec/newsrank/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, html string) *gq.Selection {
	t.Helper()
	doc, err := gq.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc.Selection
}

func texts(sel *gq.Selection) []string {
	var out []string
	sel.Each(func(_ int, s *gq.Selection) {
		out = append(out, goquery.Text(s))
	})
	return out
}

const listHTML = `<!DOCTYPE html>
<html><body>
<ul>
	<li class="news-item featured"><a href="/a" data-kind="story">Alpha</a></li>
	<li class="news-item"><a href="/b" data-kind="promo">Beta</a></li>
	<li class="other"><a>Gamma</a></li>
	<li class="news-itemized"><a href="/d" data-kind="story-long">Delta</a></li>
</ul>
</body></html>`

func TestFindMany(t *testing.T) {
	t.Parallel()

	t.Run("css rule delegates to selector query", func(t *testing.T) {
		t.Parallel()

		root := parse(t, listHTML)
		sel := goquery.FindMany(root, newsrank.CSSRule{Selector: "li.news-item"})
		assert.Equal(t, []string{"Alpha", "Beta"}, texts(sel))
	})

	t.Run("tag rule without attributes returns all tags in document order", func(t *testing.T) {
		t.Parallel()

		root := parse(t, listHTML)
		sel := goquery.FindMany(root, newsrank.TagRule{Tag: "li"})
		assert.Equal(t, []string{"Alpha", "Beta", "Gamma", "Delta"}, texts(sel))
	})

	t.Run("class equality matches any single class", func(t *testing.T) {
		t.Parallel()

		root := parse(t, listHTML)
		sel := goquery.FindMany(root, newsrank.TagRule{
			Tag:   "li",
			Attrs: []newsrank.AttrMatcher{{Name: "class", Kind: newsrank.MatchEquals, Value: "news-item"}},
		})
		assert.Equal(t, []string{"Alpha", "Beta"}, texts(sel))
	})

	t.Run("class containment matches a substring of any class", func(t *testing.T) {
		t.Parallel()

		root := parse(t, listHTML)
		sel := goquery.FindMany(root, newsrank.TagRule{
			Tag:   "li",
			Attrs: []newsrank.AttrMatcher{{Name: "class", Kind: newsrank.MatchContains, Value: "news-item"}},
		})
		assert.Equal(t, []string{"Alpha", "Beta", "Delta"}, texts(sel))
	})

	t.Run("presence matcher ignores the value", func(t *testing.T) {
		t.Parallel()

		root := parse(t, listHTML)
		sel := goquery.FindMany(root, newsrank.TagRule{
			Tag:   "a",
			Attrs: []newsrank.AttrMatcher{{Name: "href", Kind: newsrank.MatchPresent}},
		})
		assert.Equal(t, []string{"Alpha", "Beta", "Delta"}, texts(sel))
	})

	t.Run("presence differs from equality with a literal value", func(t *testing.T) {
		t.Parallel()

		root := parse(t, listHTML)
		sel := goquery.FindMany(root, newsrank.TagRule{
			Tag:   "a",
			Attrs: []newsrank.AttrMatcher{{Name: "href", Kind: newsrank.MatchEquals, Value: "true"}},
		})
		assert.Equal(t, 0, sel.Length())
	})

	t.Run("all containment matchers must hold after structural filter", func(t *testing.T) {
		t.Parallel()

		root := parse(t, listHTML)
		sel := goquery.FindMany(root, newsrank.TagRule{
			Tag: "a",
			Attrs: []newsrank.AttrMatcher{
				{Name: "href", Kind: newsrank.MatchPresent},
				{Name: "data-kind", Kind: newsrank.MatchContains, Value: "story"},
				{Name: "href", Kind: newsrank.MatchContains, Value: "/d"},
			},
		})
		assert.Equal(t, []string{"Delta"}, texts(sel))
	})

	t.Run("nil rule matches nothing", func(t *testing.T) {
		t.Parallel()

		root := parse(t, listHTML)
		assert.Equal(t, 0, goquery.FindMany(root, nil).Length())
	})

	t.Run("tag rule without tag matches nothing", func(t *testing.T) {
		t.Parallel()

		root := parse(t, listHTML)
		assert.Equal(t, 0, goquery.FindMany(root, newsrank.TagRule{}).Length())
	})

	t.Run("empty css selector matches nothing", func(t *testing.T) {
		t.Parallel()

		root := parse(t, listHTML)
		assert.Equal(t, 0, goquery.FindMany(root, newsrank.CSSRule{}).Length())
	})
}

func TestFindOne(t *testing.T) {
	t.Parallel()

	t.Run("returns first structural match", func(t *testing.T) {
		t.Parallel()

		root := parse(t, listHTML)
		sel, ok := goquery.FindOne(root, newsrank.TagRule{Tag: "a"})
		require.True(t, ok)
		assert.Equal(t, "Alpha", goquery.Text(sel))
	})

	t.Run("returns first containment survivor", func(t *testing.T) {
		t.Parallel()

		root := parse(t, listHTML)
		sel, ok := goquery.FindOne(root, newsrank.TagRule{
			Tag:   "a",
			Attrs: []newsrank.AttrMatcher{{Name: "data-kind", Kind: newsrank.MatchContains, Value: "promo"}},
		})
		require.True(t, ok)
		assert.Equal(t, "Beta", goquery.Text(sel))
	})

	t.Run("reports absent without error", func(t *testing.T) {
		t.Parallel()

		root := parse(t, listHTML)
		sel, ok := goquery.FindOne(root, newsrank.CSSRule{Selector: "article"})
		assert.False(t, ok)
		assert.Nil(t, sel)
	})
}

func TestText(t *testing.T) {
	t.Parallel()

	root := parse(t, "<p>  Separator \n\t capacity   <b>expands</b>  </p>")
	sel, ok := goquery.FindOne(root, newsrank.TagRule{Tag: "p"})
	require.True(t, ok)
	assert.Equal(t, "Separator capacity expands", goquery.Text(sel))
	assert.Equal(t, "", goquery.Text(nil))
}
