package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/newsrank"
)

// Ensure DigestWriter implements newsrank.DigestWriter at compile time.
var _ newsrank.DigestWriter = (*DigestWriter)(nil)

// DigestWriter writes the ranked items as a dated text file.
type DigestWriter struct {
	dir string

	// Heading is the first line of the digest.
	Heading string

	// Now returns the current time. The digest is named after its date.
	Now func() time.Time
}

// NewDigestWriter creates a DigestWriter writing into dir.
func NewDigestWriter(dir string) *DigestWriter {
	return &DigestWriter{
		dir:     dir,
		Heading: "News digest",
		Now:     time.Now,
	}
}

// WriteDigest writes <date>_news.txt and returns its path.
func (w *DigestWriter) WriteDigest(ctx context.Context, items []*newsrank.NewsItem, translations map[string]newsrank.Translation) (string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", err
	}

	today := w.Now().Format("2006-01-02")
	path := filepath.Join(w.dir, today+"_news.txt")

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", w.Heading)
	fmt.Fprintf(&b, "# Date: %s\n", today)
	fmt.Fprintf(&b, "# Items: %d\n", len(items))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")
	for i, item := range items {
		b.WriteString(FormatDigestItem(i+1, item, translations[item.ID]))
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// FormatDigestItem renders one numbered digest entry. Translated fields
// replace the originals; a translated title also lists the original.
func FormatDigestItem(index int, item *newsrank.NewsItem, tr newsrank.Translation) string {
	var lines []string
	lines = append(lines, fmt.Sprintf("[%d]", index))

	title := item.Title
	if tr.Title != "" {
		title = tr.Title
	}
	lines = append(lines, "Title: "+title)
	if title != item.Title {
		lines = append(lines, "Original Title: "+item.Title)
	}

	hits := "-"
	if len(item.ScoreHits) > 0 {
		hits = strings.Join(item.ScoreHits, ", ")
	}
	lines = append(lines, fmt.Sprintf("Score: %d | %s", item.Score, hits))
	lines = append(lines, "URL: "+item.URL)

	date := "Unknown"
	if item.HasDate() {
		date = item.DateParsed.String()
	}
	if item.DateRaw != "" && item.DateRaw != date {
		lines = append(lines, fmt.Sprintf("Date: %s (Raw: %s)", date, item.DateRaw))
	} else {
		lines = append(lines, "Date: "+date)
	}

	if item.Teaser != "" {
		teaser := item.Teaser
		if tr.Teaser != "" {
			teaser = tr.Teaser
		}
		lines = append(lines, "Teaser: "+teaser)
	}

	lines = append(lines, strings.Repeat("-", 40), "")
	return strings.Join(lines, "\n") + "\n"
}
