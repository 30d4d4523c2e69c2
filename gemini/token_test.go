package gemini_test

import (
	"context"
	"testing"

	"github.com/fwojciec/newsrank/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCounter_CountTokens(t *testing.T) {
	t.Parallel()

	tc, err := gemini.NewTokenCounter("")
	require.NoError(t, err)

	t.Run("counts tokens of a headline", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "Battery separator plant opens in Poland")

		require.NoError(t, err)
		assert.Positive(t, count)
	})

	t.Run("blank text counts as zero", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "  \n")

		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("a teaser costs more than its headline", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		title, err := tc.CountTokens(ctx, "Separator plant opens")
		require.NoError(t, err)

		teaser, err := tc.CountTokens(ctx, "Separator plant opens with a capacity of two hundred million square metres a year, doubling regional output.")
		require.NoError(t, err)

		assert.Greater(t, teaser, title)
	})

	t.Run("returns the context error", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := tc.CountTokens(ctx, "Separator plant opens")

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestNewTokenCounter(t *testing.T) {
	t.Parallel()

	t.Run("rejects a model without a local tokenizer", func(t *testing.T) {
		t.Parallel()

		_, err := gemini.NewTokenCounter("no-such-model")

		require.Error(t, err)
	})
}
