package crawl

import (
	"fmt"
	"strings"
)

// TruncateURL shortens a URL for display to at most maxLen runes, keeping
// the end, which carries the path and query.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(url)
	if len(runes) <= maxLen {
		return url
	}
	if maxLen < 4 {
		return string(runes[:maxLen])
	}
	return "..." + string(runes[len(runes)-maxLen+3:])
}

// String summarizes the stage counts of a run.
func (r *Result) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Collected %d items, %d passed filters, %d after dedup", r.Raw, r.Filtered, r.Final)
	if r.Failed > 0 || r.Skipped > 0 {
		fmt.Fprintf(&b, " (%d of %d tasks failed, %d passed)", r.Failed, r.Tasks, r.Skipped)
	}
	return b.String()
}
