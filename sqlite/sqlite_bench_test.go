package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/fwojciec/newsrank"
	"github.com/fwojciec/newsrank/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkCreateItems archives one ranked batch per run, the way a
// pipeline run finishes.
func BenchmarkCreateItems(b *testing.B) {
	const itemsPerRun = 200

	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	defer db.Close()

	ctx := context.Background()
	svc := sqlite.NewItemService(db)

	items := make([]*newsrank.NewsItem, itemsPerRun)
	for i := range items {
		items[i] = &newsrank.NewsItem{
			ID:        fmt.Sprintf("%08x", i),
			Title:     fmt.Sprintf("Separator plant %d expands capacity", i),
			URL:       fmt.Sprintf("https://example.com/news/%d", i),
			Score:     80,
			ScoreHits: []string{"separator"},
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		run := &newsrank.Run{Final: itemsPerRun}
		if err := svc.CreateRun(ctx, run); err != nil {
			b.Fatal(err)
		}
		if err := svc.CreateItems(ctx, run.ID, items); err != nil {
			b.Fatal(err)
		}
	}
}
