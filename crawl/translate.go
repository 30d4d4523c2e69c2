package crawl

import (
	"context"

	"github.com/fwojciec/newsrank"
)

// Translation batch limits.
const (
	DefaultBatchTexts  = 40
	DefaultBatchTokens = 4000
)

// Translate turns the titles and teasers of ranked items into the target
// language.
//
// Texts that are mostly Han are kept as they are. A batch that fails is
// logged and its texts stay untranslated, so Translate only returns an
// error when ctx is done.
type Translate struct {
	Translator newsrank.Translator

	// Tokens sizes batches by token count. Nil batches by text count only.
	Tokens newsrank.TokenCounter

	TargetLang  string
	BatchTexts  int
	BatchTokens int
	Logger      LogFunc
}

type textRef struct {
	id     string
	teaser bool
	text   string
}

// Run returns translations keyed by item ID. Items with nothing to
// translate are absent from the result.
func (t *Translate) Run(ctx context.Context, items []*newsrank.NewsItem) (map[string]newsrank.Translation, error) {
	var refs []textRef
	for _, item := range items {
		if item.Title != "" && !newsrank.IsMostlyHan(item.Title) {
			refs = append(refs, textRef{id: item.ID, text: item.Title})
		}
		if item.Teaser != "" && !newsrank.IsMostlyHan(item.Teaser) {
			refs = append(refs, textRef{id: item.ID, teaser: true, text: item.Teaser})
		}
	}

	out := make(map[string]newsrank.Translation)
	for _, batch := range t.batches(ctx, refs) {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		texts := make([]string, len(batch))
		for i, ref := range batch {
			texts[i] = ref.text
		}
		translated, err := t.Translator.Translate(ctx, texts, t.TargetLang)
		if err == nil && len(translated) != len(texts) {
			err = newsrank.Errorf(newsrank.EINTERNAL, "got %d translations for %d texts", len(translated), len(texts))
		}
		if err != nil {
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			t.logf("translation batch of %d texts failed: %v", len(texts), err)
			continue
		}

		for i, ref := range batch {
			tr := out[ref.id]
			if ref.teaser {
				tr.Teaser = translated[i]
			} else {
				tr.Title = translated[i]
			}
			out[ref.id] = tr
		}
	}
	return out, nil
}

// batches splits refs so that no batch exceeds the text or token limit.
// A single text over the token limit gets a batch of its own.
func (t *Translate) batches(ctx context.Context, refs []textRef) [][]textRef {
	maxTexts := t.BatchTexts
	if maxTexts <= 0 {
		maxTexts = DefaultBatchTexts
	}
	maxTokens := t.BatchTokens
	if maxTokens <= 0 {
		maxTokens = DefaultBatchTokens
	}

	var out [][]textRef
	var cur []textRef
	tokens := 0
	for _, ref := range refs {
		n := 0
		if t.Tokens != nil {
			if c, err := t.Tokens.CountTokens(ctx, ref.text); err == nil {
				n = c
			}
		}
		if len(cur) > 0 && (len(cur) >= maxTexts || tokens+n > maxTokens) {
			out = append(out, cur)
			cur, tokens = nil, 0
		}
		cur = append(cur, ref)
		tokens += n
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

func (t *Translate) logf(format string, args ...any) {
	if t.Logger != nil {
		t.Logger(format, args...)
	}
}
