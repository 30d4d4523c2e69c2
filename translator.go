package newsrank

import (
	"context"
	"unicode"
)

// Translator translates short texts such as titles and teasers.
type Translator interface {
	// Translate returns one translation per input text, in input order,
	// into the target language (for example "zh-CN").
	Translate(ctx context.Context, texts []string, targetLang string) ([]string, error)
}

// TokenCounter measures text in model tokens so translation requests stay
// under the model's input budget.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}

// Translation holds the translated fields of one item.
type Translation struct {
	Title  string
	Teaser string
}

// DigestWriter renders the final ranked list for human reading.
type DigestWriter interface {
	// WriteDigest writes the digest and returns where it was written.
	// Translations are keyed by item ID and may be nil.
	WriteDigest(ctx context.Context, items []*NewsItem, translations map[string]Translation) (string, error)
}

// IsMostlyHan reports whether more than 30% of the non-space characters of
// text are Han ideographs. Such text is not sent for translation.
func IsMostlyHan(text string) bool {
	var han, total int
	for _, r := range text {
		if r == ' ' {
			continue
		}
		total++
		if unicode.Is(unicode.Han, r) {
			han++
		}
	}
	if total == 0 {
		return false
	}
	return float64(han)/float64(total) > 0.3
}

