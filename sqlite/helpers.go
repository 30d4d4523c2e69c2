package sqlite

import (
	"database/sql"
	"encoding/json"
	"time"

	"cloud.google.com/go/civil"
	"github.com/fwojciec/newsrank"
)

// limitClause returns the LIMIT and OFFSET suffix of a query with its
// arguments. SQLite only accepts OFFSET after LIMIT, so an offset alone is
// paired with LIMIT -1.
func limitClause(limit, offset int) (string, []any) {
	switch {
	case limit > 0 && offset > 0:
		return " LIMIT ? OFFSET ?", []any{limit, offset}
	case limit > 0:
		return " LIMIT ?", []any{limit}
	case offset > 0:
		return " LIMIT -1 OFFSET ?", []any{offset}
	default:
		return "", nil
	}
}

// formatTime and parseTime store timestamps as RFC 3339 text in UTC.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(value, column string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, newsrank.Errorf(newsrank.EINTERNAL, "failed to parse %s: %v", column, err)
	}
	return t, nil
}

// encodeDate stores an unresolved date as NULL.
func encodeDate(d *civil.Date) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func decodeDate(s sql.NullString) (*civil.Date, error) {
	if !s.Valid {
		return nil, nil
	}
	d, err := civil.ParseDate(s.String)
	if err != nil {
		return nil, newsrank.Errorf(newsrank.EINTERNAL, "failed to parse date_parsed: %v", err)
	}
	return &d, nil
}

// encodeHits stores score hits as a JSON array, never null.
func encodeHits(hits []string) (string, error) {
	if hits == nil {
		hits = []string{}
	}
	b, err := json.Marshal(hits)
	return string(b), err
}

func decodeHits(s string) ([]string, error) {
	var hits []string
	if err := json.Unmarshal([]byte(s), &hits); err != nil {
		return nil, newsrank.Errorf(newsrank.EINTERNAL, "failed to parse score_hits: %v", err)
	}
	return hits, nil
}
