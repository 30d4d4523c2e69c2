package newsrank_test

import (
	"testing"

	"github.com/fwojciec/newsrank"
	"github.com/stretchr/testify/assert"
)

func TestDateFormatRegistry_FormatFor(t *testing.T) {
	t.Parallel()

	registry := &newsrank.DateFormatRegistry{
		SiteFormats: []newsrank.SiteFormat{
			{Domain: "reuters.com", Format: "%B %d, %Y"},
			{Domain: "news", Format: "%d.%m.%Y"},
		},
	}

	t.Run("matches domain as substring of the hint", func(t *testing.T) {
		t.Parallel()

		format, ok := registry.FormatFor("www.reuters.com")

		assert.True(t, ok)
		assert.Equal(t, "%B %d, %Y", format)
	})

	t.Run("returns first configured match", func(t *testing.T) {
		t.Parallel()

		format, ok := registry.FormatFor("news.reuters.com")

		assert.True(t, ok)
		assert.Equal(t, "%B %d, %Y", format)
	})

	t.Run("returns false without a match", func(t *testing.T) {
		t.Parallel()

		_, ok := registry.FormatFor("example.org")

		assert.False(t, ok)
	})

	t.Run("returns false for empty hint", func(t *testing.T) {
		t.Parallel()

		_, ok := registry.FormatFor("")

		assert.False(t, ok)
	})
}
