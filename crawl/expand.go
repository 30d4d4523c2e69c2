package crawl

import (
	"net/url"
	"strings"

	"github.com/fwojciec/newsrank"
	"github.com/fwojciec/newsrank/bloom"
)

// Task deduplication filter sizing.
const (
	minExpectedTasks      = 1000
	taskFalsePositiveRate = 0.001
)

// Placeholders substituted with each search keyword in a base URL.
const (
	KeywordPlaceholder        = "{keyword}"
	EncodedKeywordPlaceholder = "{keyword_encoded}"
	PrintfPlaceholder         = "%s"
)

// ExpandTasks builds crawl tasks from enabled source rows. A row whose
// search name resolves to keywords yields one task per keyword, with the
// keyword substituted into the URL. Tasks repeating an earlier URL and
// parser pair are dropped.
func ExpandTasks(rows []newsrank.SourceRow, sets *newsrank.KeywordSets, placeholder string) []*newsrank.Task {
	expected := 0
	for _, row := range rows {
		expected += 1 + len(sets.Resolve(row.SearchName))
	}
	seen := bloom.NewFilter(uint(max(expected, minExpectedTasks)), taskFalsePositiveRate)

	var tasks []*newsrank.Task
	add := func(row newsrank.SourceRow, u string) {
		if seen.Seen(row.ParserName + "\x00" + u) {
			return
		}
		tasks = append(tasks, &newsrank.Task{
			ID:         newsrank.NewID(),
			URL:        u,
			ParserName: row.ParserName,
			Action:     row.Action,
			FilterName: row.FilterName,
			Engine:     row.Engine,
		})
	}

	for _, row := range rows {
		if !row.Enabled || strings.TrimSpace(row.BaseURL) == "" {
			continue
		}

		keywords := sets.Resolve(row.SearchName)
		if len(keywords) == 0 {
			add(row, row.BaseURL)
			continue
		}
		for _, kw := range keywords {
			add(row, SubstituteKeyword(row.BaseURL, kw, placeholder))
		}
	}
	return tasks
}

// SubstituteKeyword replaces the keyword placeholders of baseURL with kw.
// The encoded placeholder receives kw percent-encoded with spaces as %20.
func SubstituteKeyword(baseURL, kw, placeholder string) string {
	u := baseURL
	if placeholder != "" {
		u = strings.ReplaceAll(u, placeholder, kw)
	}
	u = strings.ReplaceAll(u, KeywordPlaceholder, kw)
	u = strings.ReplaceAll(u, PrintfPlaceholder, kw)
	encoded := strings.ReplaceAll(url.QueryEscape(kw), "+", "%20")
	return strings.ReplaceAll(u, EncodedKeywordPlaceholder, encoded)
}
