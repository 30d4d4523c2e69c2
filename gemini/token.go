package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/newsrank"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ newsrank.TokenCounter = (*TokenCounter)(nil)

// TokenCounter sizes translation batches with the local Gemini tokenizer,
// so no request is spent on counting.
type TokenCounter struct {
	tok *tokenizer.LocalTokenizer
}

// NewTokenCounter loads the tokenizer of model, or of Model when model
// is empty.
func NewTokenCounter(model string) (*TokenCounter, error) {
	if model == "" {
		model = Model
	}
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, newsrank.Errorf(newsrank.EINVALID, "no local tokenizer for %s: %v", model, err)
	}
	return &TokenCounter{tok: tok}, nil
}

// CountTokens returns the number of tokens text adds to a prompt.
// Blank text counts as zero.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}

	result, err := tc.tok.CountTokens([]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}, nil)
	if err != nil {
		return 0, err
	}
	return int(result.TotalTokens), nil
}
