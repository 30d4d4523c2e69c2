package newsrank

import (
	"context"
	"net/url"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

// NewsItem represents one candidate news item extracted from a page.
//
// Field order matches the line-delimited checkpoint record. DateParsed is
// nil while the date is unresolved and is omitted from the record.
type NewsItem struct {
	ID         string      `json:"uuid"`
	Title      string      `json:"title"`
	URL        string      `json:"url"`
	DateRaw    string      `json:"date_raw"`
	DateParsed *civil.Date `json:"date_parsed,omitempty"`
	Teaser     string      `json:"teaser"`
	Score      int         `json:"score"`
	ScoreHits  []string    `json:"score_hits"`
	SourceURL  string      `json:"source_url"`
	ParserName string      `json:"parser_name"`
}

// Validate returns an error if the item contains invalid fields.
func (i *NewsItem) Validate() error {
	if i.Title == "" {
		return Errorf(EINVALID, "news item title required")
	}
	return nil
}

// HasDate reports whether the item carries a resolved date.
func (i *NewsItem) HasDate() bool {
	return i.DateParsed != nil
}

// DomainHint returns the host of the page the item was found on. It is the
// hint used to select a site-specific date format.
func (i *NewsItem) DomainHint() string {
	return HostOf(i.SourceURL)
}

// HostOf returns the host component of rawURL, or "" if it cannot be parsed.
func HostOf(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return u.Host
}

// NewID returns a short opaque identifier for an item or task.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// Stage names a pipeline checkpoint.
type Stage string

// Checkpoint stages in pipeline order.
const (
	StageRaw      Stage = "raw"
	StageFiltered Stage = "filtered"
	StageSorted   Stage = "sorted"
)

// ItemStore persists intermediate item batches between pipeline stages.
type ItemStore interface {
	// AppendItems appends items to the stage checkpoint, creating it if needed.
	AppendItems(ctx context.Context, stage Stage, items []*NewsItem) error

	// WriteItems atomically replaces the stage checkpoint with items.
	WriteItems(ctx context.Context, stage Stage, items []*NewsItem) error

	// ReadItems returns all items of the stage checkpoint in file order.
	// Returns ENOTFOUND if the checkpoint does not exist.
	ReadItems(ctx context.Context, stage Stage) ([]*NewsItem, error)

	// Clear removes all checkpoints.
	Clear(ctx context.Context) error
}

// Run records one execution of the pipeline.
type Run struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"startedAt"`
	Tasks     int       `json:"tasks"`
	Raw       int       `json:"raw"`
	Filtered  int       `json:"filtered"`
	Final     int       `json:"final"`
}

// ItemService archives ranked items across runs.
type ItemService interface {
	// CreateRun records a new run and assigns its ID and start time.
	CreateRun(ctx context.Context, run *Run) error

	// CreateItems stores items for a run, preserving their rank order.
	// Returns ENOTFOUND if the run does not exist.
	CreateItems(ctx context.Context, runID string, items []*NewsItem) error

	// FindItems retrieves archived items matching the filter in rank order.
	FindItems(ctx context.Context, filter ItemFilter) ([]*NewsItem, error)

	// FindRuns retrieves runs, most recent first.
	FindRuns(ctx context.Context, limit int) ([]*Run, error)
}

// ItemFilter represents a filter for FindItems.
type ItemFilter struct {
	RunID    *string `json:"runId"`
	Title    *string `json:"title"` // matched by normalized title
	MinScore *int    `json:"minScore"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
