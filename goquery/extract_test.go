package goquery_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/fwojciec/newsrank"
	"github.com/fwojciec/newsrank/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const newsHTML = `<!DOCTYPE html>
<html><body>
<div class="list">
	<div class="item">
		<h3 class="title"><a href="./123">Separator   capacity
			expands</a></h3>
		<time datetime="2024-05-01">May 1</time>
		<p class="summary">New  lines for wet-process film.</p>
	</div>
	<div class="item">
		<h3 class="title"><a href="/abs/456">Battery makers sign deal</a></h3>
		<time>3 days ago</time>
	</div>
	<div class="item">
		<h3 class="title">   </h3>
		<a href="/skipped">no title</a>
	</div>
</div>
</body></html>`

func newsParser() *newsrank.ParserSpec {
	return &newsrank.ParserSpec{
		Name:      "list_parser",
		Container: newsrank.TagRule{Tag: "div", Attrs: []newsrank.AttrMatcher{{Name: "class", Kind: newsrank.MatchEquals, Value: "item"}}},
		Title:     newsrank.CSSRule{Selector: "h3.title"},
		Date: newsrank.DateSource{
			Rule:   newsrank.TagRule{Tag: "time"},
			Method: newsrank.DateReadAttribute,
		},
		Teaser: newsrank.CSSRule{Selector: "p.summary"},
	}
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("builds one item per titled container", func(t *testing.T) {
		t.Parallel()

		ext := goquery.NewExtractor()
		items, err := ext.Extract(newsHTML, newsParser(), "https://a.com/news/x")

		require.NoError(t, err)
		require.Len(t, items, 2)

		first := items[0]
		assert.Equal(t, "Separator capacity expands", first.Title)
		assert.Equal(t, "https://a.com/news/123", first.URL)
		assert.Equal(t, "2024-05-01", first.DateRaw)
		assert.Equal(t, "New lines for wet-process film.", first.Teaser)
		assert.Equal(t, "https://a.com/news/x", first.SourceURL)
		assert.Equal(t, "list_parser", first.ParserName)
		assert.Len(t, first.ID, 8)
		assert.Nil(t, first.DateParsed)

		second := items[1]
		assert.Equal(t, "https://a.com/abs/456", second.URL)
		assert.Equal(t, "3 days ago", second.DateRaw, "falls back to text when attribute is missing")
		assert.Equal(t, "", second.Teaser)
	})

	t.Run("uses injected id generator", func(t *testing.T) {
		t.Parallel()

		n := 0
		ext := &goquery.Extractor{NewID: func() string {
			n++
			return fmt.Sprintf("id%d", n)
		}}
		items, err := ext.Extract(newsHTML, newsParser(), "https://a.com/news/x")

		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "id1", items[0].ID)
		assert.Equal(t, "id2", items[1].ID)
	})

	t.Run("returns EINVALID without container rule", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewExtractor().Extract(newsHTML, &newsrank.ParserSpec{Name: "broken"}, "https://a.com")
		assert.Equal(t, newsrank.EINVALID, newsrank.ErrorCode(err))
	})

	t.Run("returns empty result when no container matches", func(t *testing.T) {
		t.Parallel()

		parser := newsParser()
		parser.Container = newsrank.CSSRule{Selector: "article"}
		items, err := goquery.NewExtractor().Extract(newsHTML, parser, "https://a.com")

		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("malformed title rule yields no items", func(t *testing.T) {
		t.Parallel()

		parser := newsParser()
		parser.Title = nil
		items, err := goquery.NewExtractor().Extract(newsHTML, parser, "https://a.com")

		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestExtractItems_Count(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, 7, 25} {
		t.Run(fmt.Sprintf("%d titled containers among untitled ones", n), func(t *testing.T) {
			t.Parallel()

			var b strings.Builder
			b.WriteString("<html><body>")
			for i := 0; i < n; i++ {
				fmt.Fprintf(&b, `<li><span class="t">Story %d</span></li><li><span class="t"></span></li>`, i)
			}
			b.WriteString("</body></html>")

			root := parse(t, b.String())
			parser := &newsrank.ParserSpec{
				Container: newsrank.TagRule{Tag: "li"},
				Title:     newsrank.CSSRule{Selector: "span.t"},
			}
			items := goquery.ExtractItems(root, parser, "https://a.com")
			assert.Len(t, items, n)
		})
	}
}

func TestExtractItems_URLLogic(t *testing.T) {
	t.Parallel()

	const html = `<html><body>
<div class="card">
	<a class="wrap" href="/from-ancestor"><span class="t">Ancestor link</span></a>
	<a class="read-more js-link" href="/read">Read</a>
	<a class="plain" href="/first">First</a>
</div>
<div class="card">
	<h2 class="t"><a href="/from-child">Child link</a></h2>
</div>
<div class="card">
	<a class="t" href="/own">Own link</a>
</div>
</body></html>`

	base := &newsrank.ParserSpec{
		Container: newsrank.CSSRule{Selector: "div.card"},
		Title:     newsrank.CSSRule{Selector: ".t"},
	}

	t.Run("url from title reads own ancestor and descendant anchors", func(t *testing.T) {
		t.Parallel()

		p := *base
		p.URL = newsrank.URLFromTitle{}
		items := goquery.ExtractItems(parse(t, html), &p, "https://a.com/news/")

		require.Len(t, items, 3)
		assert.Equal(t, "https://a.com/from-ancestor", items[0].URL)
		assert.Equal(t, "https://a.com/from-child", items[1].URL)
		assert.Equal(t, "https://a.com/own", items[2].URL)
	})

	t.Run("url from element uses its own rule", func(t *testing.T) {
		t.Parallel()

		p := *base
		p.URL = newsrank.URLFromElement{Rule: newsrank.CSSRule{Selector: "a.read-more"}}
		items := goquery.ExtractItems(parse(t, html), &p, "https://a.com/news/")

		require.Len(t, items, 3)
		assert.Equal(t, "https://a.com/read", items[0].URL)
		assert.Equal(t, "", items[1].URL)
	})

	t.Run("url from element without a rule leaves urls empty", func(t *testing.T) {
		t.Parallel()

		p := *base
		p.URL = newsrank.URLFromElement{}
		items := goquery.ExtractItems(parse(t, html), &p, "https://a.com/news/")

		require.Len(t, items, 3)
		for _, item := range items {
			assert.Empty(t, item.URL)
		}
		assert.Equal(t, "Ancestor link", items[0].Title)
	})

	t.Run("find in container filters anchors by containment", func(t *testing.T) {
		t.Parallel()

		p := *base
		p.URL = newsrank.FindInContainer{
			Tag:   "a",
			Attrs: []newsrank.AttrMatcher{{Name: "class", Kind: newsrank.MatchContains, Value: "read"}},
		}
		items := goquery.ExtractItems(parse(t, html), &p, "https://a.com/news/")

		require.Len(t, items, 3)
		assert.Equal(t, "https://a.com/read", items[0].URL)
		assert.Equal(t, "", items[1].URL)
	})

	t.Run("default takes the first anchor in the container", func(t *testing.T) {
		t.Parallel()

		items := goquery.ExtractItems(parse(t, html), base, "https://a.com/news/")

		require.Len(t, items, 3)
		assert.Equal(t, "https://a.com/from-ancestor", items[0].URL)
		assert.Equal(t, "https://a.com/from-child", items[1].URL)
	})
}

func TestResolveURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, source, href, want string
	}{
		{"dot-slash relative", "https://a.com/news/x", "./123", "https://a.com/news/123"},
		{"root relative", "https://a.com/news/x", "/abs/123", "https://a.com/abs/123"},
		{"already absolute", "https://a.com/news/x", "https://b.com/y", "https://b.com/y"},
		{"empty href", "https://a.com/news/x", "", ""},
		{"protocol relative", "https://a.com/news/x", "//cdn.a.com/z", "https://cdn.a.com/z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, goquery.ResolveURL(tt.source, tt.href))
		})
	}
}
