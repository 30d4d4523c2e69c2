package mock

import (
	"context"

	"github.com/fwojciec/newsrank"
)

var _ newsrank.Translator = (*Translator)(nil)

// Translator is a mock implementation of newsrank.Translator.
type Translator struct {
	TranslateFn func(ctx context.Context, texts []string, targetLang string) ([]string, error)
}

func (t *Translator) Translate(ctx context.Context, texts []string, targetLang string) ([]string, error) {
	return t.TranslateFn(ctx, texts, targetLang)
}

var _ newsrank.DigestWriter = (*DigestWriter)(nil)

// DigestWriter is a mock implementation of newsrank.DigestWriter.
type DigestWriter struct {
	WriteDigestFn func(ctx context.Context, items []*newsrank.NewsItem, translations map[string]newsrank.Translation) (string, error)
}

func (w *DigestWriter) WriteDigest(ctx context.Context, items []*newsrank.NewsItem, translations map[string]newsrank.Translation) (string, error) {
	return w.WriteDigestFn(ctx, items, translations)
}

var _ newsrank.SourceReader = (*SourceReader)(nil)

// SourceReader is a mock implementation of newsrank.SourceReader.
type SourceReader struct {
	ReadSourcesFn func(ctx context.Context) ([]newsrank.SourceRow, error)
}

func (r *SourceReader) ReadSources(ctx context.Context) ([]newsrank.SourceRow, error) {
	return r.ReadSourcesFn(ctx)
}

var _ newsrank.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of newsrank.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (c *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return c.CountTokensFn(ctx, text)
}
