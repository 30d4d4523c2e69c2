package rank_test

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/fwojciec/newsrank"
	"github.com/fwojciec/newsrank/rank"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) *civil.Date {
	return &civil.Date{Year: y, Month: m, Day: d}
}

func TestNormalizeTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"  Separator   Capacity, Expands! ", "separator capacity expands"},
		{"Wet-process film (2024)", "wetprocess film 2024"},
		{"恩捷：隔膜产能扩张", "恩捷隔膜产能扩张"},
		{"snake_case stays", "snake_case stays"},
		{"!!! ...", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, rank.NormalizeTitle(tt.in))
		})
	}
}

func TestDeduplicate(t *testing.T) {
	t.Parallel()

	t.Run("higher score survives", func(t *testing.T) {
		t.Parallel()

		items := []*newsrank.NewsItem{
			{ID: "a", Title: "Separator news", Score: 80},
			{ID: "b", Title: "separator NEWS!", Score: 95},
		}
		got := rank.Deduplicate(items)

		require.Len(t, got, 1)
		assert.Equal(t, "b", got[0].ID)
	})

	t.Run("equal score prefers later resolved date", func(t *testing.T) {
		t.Parallel()

		items := []*newsrank.NewsItem{
			{ID: "a", Title: "Separator news", Score: 80, DateParsed: day(2024, time.January, 1)},
			{ID: "b", Title: "Separator news", Score: 80, DateParsed: day(2024, time.March, 1)},
		}
		got := rank.Deduplicate(items)

		require.Len(t, got, 1)
		assert.Equal(t, "b", got[0].ID)
	})

	t.Run("equal score keeps earlier survivor over earlier date", func(t *testing.T) {
		t.Parallel()

		items := []*newsrank.NewsItem{
			{ID: "a", Title: "Separator news", Score: 80, DateParsed: day(2024, time.March, 1)},
			{ID: "b", Title: "Separator news", Score: 80, DateParsed: day(2024, time.January, 1)},
		}
		got := rank.Deduplicate(items)

		require.Len(t, got, 1)
		assert.Equal(t, "a", got[0].ID)
	})

	t.Run("unresolved dates never win a tie", func(t *testing.T) {
		t.Parallel()

		items := []*newsrank.NewsItem{
			{ID: "a", Title: "Separator news", Score: 80},
			{ID: "b", Title: "Separator news", Score: 80, DateParsed: day(2024, time.March, 1)},
			{ID: "c", Title: "Separator news", Score: 80},
		}
		got := rank.Deduplicate(items)

		require.Len(t, got, 1)
		assert.Equal(t, "a", got[0].ID)
	})

	t.Run("empty normalized titles are dropped", func(t *testing.T) {
		t.Parallel()

		items := []*newsrank.NewsItem{
			{ID: "a", Title: "???"},
			{ID: "b", Title: "Real title"},
		}
		got := rank.Deduplicate(items)

		require.Len(t, got, 1)
		assert.Equal(t, "b", got[0].ID)
	})

	t.Run("survivor keeps first position", func(t *testing.T) {
		t.Parallel()

		items := []*newsrank.NewsItem{
			{ID: "a", Title: "One", Score: 10},
			{ID: "b", Title: "Two", Score: 10},
			{ID: "c", Title: "one", Score: 20},
		}
		got := rank.Deduplicate(items)

		require.Len(t, got, 2)
		assert.Equal(t, "c", got[0].ID)
		assert.Equal(t, "b", got[1].ID)
	})
}

func TestSort(t *testing.T) {
	t.Parallel()

	t.Run("dated items precede undated regardless of score", func(t *testing.T) {
		t.Parallel()

		items := []*newsrank.NewsItem{
			{ID: "may", DateParsed: day(2024, time.May, 1), Score: 50},
			{ID: "none", Score: 99},
			{ID: "june", DateParsed: day(2024, time.June, 1), Score: 10},
		}
		got := rank.Sort(items)

		require.Len(t, got, 3)
		assert.Equal(t, []string{"june", "may", "none"}, ids(got))
	})

	t.Run("same date orders by descending score", func(t *testing.T) {
		t.Parallel()

		items := []*newsrank.NewsItem{
			{ID: "low", DateParsed: day(2024, time.May, 1), Score: 10},
			{ID: "high", DateParsed: day(2024, time.May, 1), Score: 90},
		}
		assert.Equal(t, []string{"high", "low"}, ids(rank.Sort(items)))
	})

	t.Run("undated items order by descending score stably", func(t *testing.T) {
		t.Parallel()

		items := []*newsrank.NewsItem{
			{ID: "a", Score: 50},
			{ID: "b", Score: 70},
			{ID: "c", Score: 50},
		}
		assert.Equal(t, []string{"b", "a", "c"}, ids(rank.Sort(items)))
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, rank.Sort(nil))
	})
}

func TestRank(t *testing.T) {
	t.Parallel()

	items := []*newsrank.NewsItem{
		{ID: "1", Title: "Plant opens", Score: 80, DateParsed: day(2024, time.May, 1)},
		{ID: "2", Title: "Undated story", Score: 99},
		{ID: "3", Title: "plant opens.", Score: 95, DateParsed: day(2024, time.April, 1)},
		{ID: "4", Title: "Newest story", Score: 10, DateParsed: day(2024, time.June, 1)},
	}
	got := rank.Rank(items)

	assert.Equal(t, []string{"4", "3", "2"}, ids(got))
}

func ids(items []*newsrank.NewsItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}
