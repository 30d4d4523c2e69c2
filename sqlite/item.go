package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/newsrank"
	"github.com/fwojciec/newsrank/rank"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ newsrank.ItemService = (*ItemService)(nil)

// ItemService implements newsrank.ItemService using SQLite.
type ItemService struct {
	db *DB
}

// NewItemService creates a new ItemService.
func NewItemService(db *DB) *ItemService {
	return &ItemService{db: db}
}

// TitleKey hashes the normalized title so near-identical headlines from
// different runs share a key.
func TitleKey(title string) string {
	h := xxhash.Sum64String(rank.NormalizeTitle(title))
	b := make([]byte, 8)
	for i := range b {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}

// CreateRun records a new run.
func (s *ItemService) CreateRun(ctx context.Context, run *newsrank.Run) error {
	run.ID = uuid.New().String()
	run.StartedAt = time.Now().UTC().Truncate(time.Second)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, tasks, raw, filtered, final)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.ID, formatTime(run.StartedAt), run.Tasks, run.Raw, run.Filtered, run.Final)

	return err
}

// CreateItems stores items in a single transaction. Positions continue
// after any items already stored for the run.
func (s *ItemService) CreateItems(ctx context.Context, runID string, items []*newsrank.NewsItem) error {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs WHERE id = ?", runID).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return newsrank.Errorf(newsrank.ENOTFOUND, "run not found")
	}

	var next int
	if err := tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(position) + 1, 0) FROM items WHERE run_id = ?", runID).Scan(&next); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO items (run_id, position, item_id, title, title_key, url, date_raw, date_parsed,
			teaser, score, score_hits, source_url, parser_name)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, item := range items {
		hits, err := encodeHits(item.ScoreHits)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, runID, next+i, item.ID, item.Title, TitleKey(item.Title),
			item.URL, item.DateRaw, encodeDate(item.DateParsed), item.Teaser, item.Score, hits,
			item.SourceURL, item.ParserName); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindItems retrieves items matching the filter. Items of the same run
// keep their rank order; more recent runs come first.
func (s *ItemService) FindItems(ctx context.Context, filter newsrank.ItemFilter) ([]*newsrank.NewsItem, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT i.item_id, i.title, i.url, i.date_raw, i.date_parsed, i.teaser, i.score,
		i.score_hits, i.source_url, i.parser_name
		FROM items i JOIN runs r ON r.id = i.run_id WHERE 1=1`)

	if filter.RunID != nil {
		query.WriteString(" AND i.run_id = ?")
		args = append(args, *filter.RunID)
	}
	if filter.Title != nil {
		query.WriteString(" AND i.title_key = ?")
		args = append(args, TitleKey(*filter.Title))
	}
	if filter.MinScore != nil {
		query.WriteString(" AND i.score >= ?")
		args = append(args, *filter.MinScore)
	}

	query.WriteString(" ORDER BY r.started_at DESC, r.rowid DESC, i.position ASC")
	clause, pageArgs := limitClause(filter.Limit, filter.Offset)
	query.WriteString(clause)
	args = append(args, pageArgs...)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*newsrank.NewsItem
	for rows.Next() {
		var item newsrank.NewsItem
		var dateParsed sql.NullString
		var hits string

		if err := rows.Scan(&item.ID, &item.Title, &item.URL, &item.DateRaw, &dateParsed, &item.Teaser,
			&item.Score, &hits, &item.SourceURL, &item.ParserName); err != nil {
			return nil, err
		}

		if item.DateParsed, err = decodeDate(dateParsed); err != nil {
			return nil, err
		}
		if item.ScoreHits, err = decodeHits(hits); err != nil {
			return nil, err
		}

		items = append(items, &item)
	}

	return items, rows.Err()
}

// FindRuns retrieves runs, most recent first.
func (s *ItemService) FindRuns(ctx context.Context, limit int) ([]*newsrank.Run, error) {
	clause, args := limitClause(limit, 0)
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, started_at, tasks, raw, filtered, final FROM runs ORDER BY started_at DESC, rowid DESC"+clause,
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*newsrank.Run
	for rows.Next() {
		var run newsrank.Run
		var startedAt string

		if err := rows.Scan(&run.ID, &startedAt, &run.Tasks, &run.Raw, &run.Filtered, &run.Final); err != nil {
			return nil, err
		}
		if run.StartedAt, err = parseTime(startedAt, "started_at"); err != nil {
			return nil, err
		}

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}
