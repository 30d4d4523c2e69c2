// Package gemini implements newsrank.Translator and newsrank.TokenCounter
// with Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/newsrank"
	"google.golang.org/genai"
)

// Model is the Gemini model used for translation.
const Model = "gemini-2.5-flash"

// Ensure Translator implements newsrank.Translator at compile time.
var _ newsrank.Translator = (*Translator)(nil)

// Translator translates batches of short texts with one request per batch.
type Translator struct {
	client *genai.Client
}

// NewTranslator creates a new Translator.
func NewTranslator(client *genai.Client) *Translator {
	return &Translator{client: client}
}

// Translate sends texts as a JSON array and expects an array of the same
// length back. Returns EINTERNAL when the reply cannot be matched to the
// input.
func (t *Translator) Translate(ctx context.Context, texts []string, targetLang string) ([]string, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if targetLang == "" {
		return nil, newsrank.Errorf(newsrank.EINVALID, "target language required")
	}

	prompt, err := BuildUserPrompt(texts, targetLang)
	if err != nil {
		return nil, err
	}

	result, err := t.client.Models.GenerateContent(ctx, Model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, newsrank.Errorf(newsrank.EINTERNAL, "gemini returned nil result")
	}

	return ParseResponse(result.Text(), len(texts))
}

// BuildConfig returns the GenerateContentConfig for translation requests.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.1)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You translate news headlines and summaries. Keep company names, product names and numbers unchanged. Reply with a JSON array of strings only.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
}

// BuildUserPrompt asks for texts to be translated into targetLang.
func BuildUserPrompt(texts []string, targetLang string) (string, error) {
	b, err := json.Marshal(texts)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Translate each string of this JSON array into %s.\n", targetLang)
	fmt.Fprintf(&sb, "Return a JSON array with exactly %d strings in the same order.\n\n", len(texts))
	sb.Write(b)
	return sb.String(), nil
}

// ParseResponse decodes a JSON array reply, tolerating a Markdown code
// fence around it.
func ParseResponse(text string, want int) ([]string, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var out []string
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, newsrank.Errorf(newsrank.EINTERNAL, "unreadable translation reply: %v", err)
	}
	if len(out) != want {
		return nil, newsrank.Errorf(newsrank.EINTERNAL, "translation reply has %d strings, want %d", len(out), want)
	}
	return out, nil
}
