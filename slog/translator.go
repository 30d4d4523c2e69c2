package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/newsrank"
)

// Ensure LoggingTranslator implements newsrank.Translator.
var _ newsrank.Translator = (*LoggingTranslator)(nil)

// LoggingTranslator wraps a Translator with logging.
type LoggingTranslator struct {
	next   newsrank.Translator
	logger *slog.Logger
}

// NewLoggingTranslator creates a new LoggingTranslator.
func NewLoggingTranslator(next newsrank.Translator, logger *slog.Logger) *LoggingTranslator {
	return &LoggingTranslator{next: next, logger: logger}
}

// Translate delegates to the wrapped translator and logs the batch size.
func (t *LoggingTranslator) Translate(ctx context.Context, texts []string, targetLang string) (out []string, err error) {
	defer func(begin time.Time) {
		t.logger.Info("translate",
			"texts", len(texts),
			"target", targetLang,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return t.next.Translate(ctx, texts, targetLang)
}
