package crawl_test

import (
	"testing"

	"github.com/fwojciec/newsrank"
	"github.com/fwojciec/newsrank/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandTasks(t *testing.T) {
	t.Parallel()

	sets := &newsrank.KeywordSets{
		Mapping: map[string]string{"Q": "TERMS"},
		Lists:   map[string][]string{"TERMS": {"separator", "wet film"}},
	}

	t.Run("expands rows with keywords and keeps plain rows", func(t *testing.T) {
		t.Parallel()

		rows := []newsrank.SourceRow{
			{BaseURL: "https://a.com/search?q={keyword}", Enabled: true, ParserName: "p1", Action: "WAIT", SearchName: "Q", Engine: "edge"},
			{BaseURL: "https://b.com/news", Enabled: true, ParserName: "p2", Action: "CLICK_EXPAND", SearchName: "NONE", Engine: "http"},
		}

		tasks := crawl.ExpandTasks(rows, sets, "")

		require.Len(t, tasks, 3)
		assert.Equal(t, "https://a.com/search?q=separator", tasks[0].URL)
		assert.Equal(t, "https://a.com/search?q=wet film", tasks[1].URL)
		assert.Equal(t, "https://b.com/news", tasks[2].URL)
		assert.Equal(t, "p2", tasks[2].ParserName)
		assert.Equal(t, "CLICK_EXPAND", tasks[2].Action)
		assert.Equal(t, "http", tasks[2].Engine)
		assert.Len(t, tasks[0].ID, 8)
		assert.NotEqual(t, tasks[0].ID, tasks[1].ID)
	})

	t.Run("skips disabled and empty rows", func(t *testing.T) {
		t.Parallel()

		rows := []newsrank.SourceRow{
			{BaseURL: "https://a.com", Enabled: false, ParserName: "p"},
			{BaseURL: "  ", Enabled: true, ParserName: "p"},
		}

		assert.Empty(t, crawl.ExpandTasks(rows, sets, ""))
	})

	t.Run("drops repeated url and parser pairs", func(t *testing.T) {
		t.Parallel()

		rows := []newsrank.SourceRow{
			{BaseURL: "https://a.com/news", Enabled: true, ParserName: "p"},
			{BaseURL: "https://a.com/news", Enabled: true, ParserName: "p"},
			{BaseURL: "https://a.com/news", Enabled: true, ParserName: "other"},
		}

		tasks := crawl.ExpandTasks(rows, sets, "")

		require.Len(t, tasks, 2)
		assert.Equal(t, "p", tasks[0].ParserName)
		assert.Equal(t, "other", tasks[1].ParserName)
	})
}

func TestSubstituteKeyword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, base, kw, placeholder, want string
	}{
		{"brace placeholder", "https://a.com/?q={keyword}", "separator", "", "https://a.com/?q=separator"},
		{"encoded placeholder uses %20", "https://a.com/?q={keyword_encoded}", "wet film+", "", "https://a.com/?q=wet%20film%2B"},
		{"printf placeholder", "https://a.com/?q=%s", "film", "", "https://a.com/?q=film"},
		{"configured placeholder", "https://a.com/search/Separator", "coating", "Separator", "https://a.com/search/coating"},
		{"no placeholder", "https://a.com/news", "film", "", "https://a.com/news"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, crawl.SubstituteKeyword(tt.base, tt.kw, tt.placeholder))
		})
	}
}
