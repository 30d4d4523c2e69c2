package fs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/fwojciec/newsrank"
)

// Configuration file names within the config directory.
const (
	SettingsFile        = "settings.json"
	KeywordSetsFile     = "keyword_sets.json"
	ScoringKeywordsFile = "scoring_keywords.json"
	DateFormatsFile     = "date_formats.json"
	ParsersFile         = "parsers.json"
)

// keywordMappingKey holds search name redirects in the keyword sets file.
const keywordMappingKey = "KEYWORD_SETS_MAPPING"

// LoadConfig reads the operator configuration from dir. A missing file
// leaves its section empty. Returns EINVALID on malformed JSON or on a
// value that cannot be used.
func LoadConfig(dir string) (*newsrank.Config, error) {
	cfg := &newsrank.Config{
		Settings: newsrank.DefaultSettings(),
		Parsers:  make(map[string]*newsrank.ParserSpec),
	}

	steps := []struct {
		name   string
		decode func([]byte) error
	}{
		{SettingsFile, func(b []byte) error { return decodeSettings(b, &cfg.Settings) }},
		{KeywordSetsFile, func(b []byte) error { return decodeKeywordSets(b, &cfg.KeywordSets) }},
		{ScoringKeywordsFile, func(b []byte) (err error) { cfg.ScoringGroups, err = decodeScoringGroups(b); return err }},
		{DateFormatsFile, func(b []byte) error { return decodeDateFormats(b, &cfg.DateFormats) }},
		{ParsersFile, func(b []byte) (err error) { cfg.Parsers, err = decodeParsers(b); return err }},
	}
	for _, step := range steps {
		b, err := readConfigFile(filepath.Join(dir, step.name))
		if err != nil {
			return nil, err
		} else if b == nil {
			continue
		}
		if err := step.decode(b); err != nil {
			if newsrank.ErrorCode(err) == newsrank.EINVALID {
				return nil, newsrank.Errorf(newsrank.EINVALID, "%s: %s", step.name, newsrank.ErrorMessage(err))
			}
			return nil, newsrank.Errorf(newsrank.EINVALID, "%s: %v", step.name, err)
		}
	}
	if cfg.Parsers == nil {
		cfg.Parsers = make(map[string]*newsrank.ParserSpec)
	}
	return cfg, nil
}

// readConfigFile returns nil for a missing or blank file.
func readConfigFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, nil
	}
	return b, nil
}

type member struct {
	Key   string
	Value json.RawMessage
}

// decodeObject returns the members of a JSON object in document order.
func decodeObject(b []byte) ([]member, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var members []member
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		members = append(members, member{Key: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return members, nil
}

// kindOf returns the first significant byte of a raw JSON value.
func kindOf(raw json.RawMessage) byte {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0
	}
	return raw[0]
}

type settingsJSON struct {
	MinimumDate        *string  `json:"MINIMUM_DATE_TO_KEEP"`
	PassScoreThreshold *int     `json:"PASS_SCORE_THRESHOLD"`
	BypassScoring      *bool    `json:"BYPASS_KEYWORD_SCORING"`
	MaxRetries         *int     `json:"MAX_RETRIES"`
	BrowserTimeout     *float64 `json:"BROWSER_TIMEOUT"`
	SourceFile         *string  `json:"SOURCE_EXCEL_FILE"`
	SearchPlaceholder  *string  `json:"SEARCH_PLACEHOLDER"`
	TargetLanguage     *string  `json:"TARGET_LANGUAGE"`
	DateFromURL        *bool    `json:"DATE_FROM_URL"`
}

func decodeSettings(b []byte, s *newsrank.Settings) error {
	var raw settingsJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	if raw.MinimumDate != nil && strings.TrimSpace(*raw.MinimumDate) != "" {
		d, err := civil.ParseDate(strings.TrimSpace(*raw.MinimumDate))
		if err != nil {
			return newsrank.Errorf(newsrank.EINVALID, "invalid MINIMUM_DATE_TO_KEEP %q", *raw.MinimumDate)
		}
		s.MinimumDate = &d
	}
	if raw.PassScoreThreshold != nil {
		s.PassScoreThreshold = *raw.PassScoreThreshold
	}
	if raw.BypassScoring != nil {
		s.BypassScoring = *raw.BypassScoring
	}
	if raw.MaxRetries != nil {
		if *raw.MaxRetries < 1 {
			return newsrank.Errorf(newsrank.EINVALID, "MAX_RETRIES must be at least 1, got %d", *raw.MaxRetries)
		}
		s.MaxRetries = *raw.MaxRetries
	}
	if raw.BrowserTimeout != nil && *raw.BrowserTimeout > 0 {
		s.BrowserTimeout = time.Duration(*raw.BrowserTimeout * float64(time.Second))
	}
	if raw.SourceFile != nil && *raw.SourceFile != "" {
		s.SourceFile = *raw.SourceFile
	}
	if raw.SearchPlaceholder != nil {
		s.SearchPlaceholder = *raw.SearchPlaceholder
	}
	if raw.TargetLanguage != nil && *raw.TargetLanguage != "" {
		s.TargetLanguage = *raw.TargetLanguage
	}
	if raw.DateFromURL != nil {
		s.DateFromURL = *raw.DateFromURL
	}
	return nil
}

func decodeKeywordSets(b []byte, sets *newsrank.KeywordSets) error {
	members, err := decodeObject(b)
	if err != nil {
		return err
	}

	sets.Mapping = make(map[string]string)
	sets.Lists = make(map[string][]string)
	sets.Combinations = make(map[string][]string)

	for _, m := range members {
		if m.Key == keywordMappingKey {
			mapping, err := decodeObject(m.Value)
			if err != nil {
				return fmt.Errorf("%s: %w", keywordMappingKey, err)
			}
			for _, mm := range mapping {
				// Anything but a name, including [], disables expansion.
				var target string
				if kindOf(mm.Value) != '"' || json.Unmarshal(mm.Value, &target) != nil {
					target = newsrank.NoKeywordSet
				}
				sets.Mapping[mm.Key] = target
			}
			continue
		}

		switch kindOf(m.Value) {
		case '[':
			var list []string
			if err := json.Unmarshal(m.Value, &list); err != nil {
				return fmt.Errorf("keyword list %q: %w", m.Key, err)
			}
			sets.Lists[m.Key] = list
		case '{':
			var combo struct {
				Sources []string `json:"sources"`
			}
			if err := json.Unmarshal(m.Value, &combo); err != nil {
				return fmt.Errorf("keyword combination %q: %w", m.Key, err)
			}
			if combo.Sources != nil {
				sets.Combinations[m.Key] = combo.Sources
			}
		}
	}
	return nil
}

func decodeScoringGroups(b []byte) ([]newsrank.ScoringGroup, error) {
	members, err := decodeObject(b)
	if err != nil {
		return nil, err
	}

	var groups []newsrank.ScoringGroup
	for _, m := range members {
		if kindOf(m.Value) != '{' {
			continue
		}
		var raw struct {
			Score    int      `json:"score"`
			Keywords []string `json:"keywords"`
		}
		if err := json.Unmarshal(m.Value, &raw); err != nil {
			return nil, fmt.Errorf("scoring group %q: %w", m.Key, err)
		}
		groups = append(groups, newsrank.ScoringGroup{
			Name:     m.Key,
			Weight:   raw.Score,
			Keywords: raw.Keywords,
		})
	}
	return groups, nil
}

func decodeDateFormats(b []byte, reg *newsrank.DateFormatRegistry) error {
	var raw struct {
		SiteFormats    json.RawMessage `json:"site_formats"`
		DefaultFormats []string        `json:"default_formats"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	reg.DefaultFormats = raw.DefaultFormats

	if kindOf(raw.SiteFormats) != '{' {
		return nil
	}
	members, err := decodeObject(raw.SiteFormats)
	if err != nil {
		return err
	}
	for _, m := range members {
		var sf struct {
			Format string `json:"format"`
		}
		if err := json.Unmarshal(m.Value, &sf); err != nil {
			return fmt.Errorf("site format %q: %w", m.Key, err)
		}
		if sf.Format == "" {
			continue
		}
		reg.SiteFormats = append(reg.SiteFormats, newsrank.SiteFormat{Domain: m.Key, Format: sf.Format})
	}
	return nil
}

// ruleJSON is the shared shape of every selector rule in parsers.json.
// Date sources and URL logic add their own fields.
type ruleJSON struct {
	Type      string          `json:"type"`
	Selector  string          `json:"selector"`
	Tag       string          `json:"tag"`
	Attrs     json.RawMessage `json:"attrs"`
	Method    string          `json:"method"`
	Attribute string          `json:"attribute"`
}

type parserJSON struct {
	Container *ruleJSON `json:"item_container"`
	Title     *ruleJSON `json:"title"`
	Date      *ruleJSON `json:"date_source"`
	Teaser    *ruleJSON `json:"teaser"`
	URL       *ruleJSON `json:"url_logic"`
}

func decodeParsers(b []byte) (map[string]*newsrank.ParserSpec, error) {
	members, err := decodeObject(b)
	if err != nil {
		return nil, err
	}

	parsers := make(map[string]*newsrank.ParserSpec, len(members))
	for _, m := range members {
		if kindOf(m.Value) != '{' {
			continue
		}
		var raw parserJSON
		if err := json.Unmarshal(m.Value, &raw); err != nil {
			return nil, fmt.Errorf("parser %q: %w", m.Key, err)
		}
		p, err := buildParser(m.Key, &raw)
		if err != nil {
			return nil, err
		}
		parsers[m.Key] = p
	}
	return parsers, nil
}

func buildParser(name string, raw *parserJSON) (*newsrank.ParserSpec, error) {
	p := &newsrank.ParserSpec{Name: name}

	var err error
	if p.Container, err = buildRule(raw.Container); err != nil {
		return nil, newsrank.Errorf(newsrank.EINVALID, "parser %q item_container: %v", name, err)
	}
	if p.Title, err = buildRule(raw.Title); err != nil {
		return nil, newsrank.Errorf(newsrank.EINVALID, "parser %q title: %v", name, err)
	}
	if p.Teaser, err = buildRule(raw.Teaser); err != nil {
		return nil, newsrank.Errorf(newsrank.EINVALID, "parser %q teaser: %v", name, err)
	}

	if raw.Date != nil {
		rule, err := buildRule(raw.Date)
		if err != nil {
			return nil, newsrank.Errorf(newsrank.EINVALID, "parser %q date_source: %v", name, err)
		}
		p.Date = newsrank.DateSource{Rule: rule, Method: newsrank.DateReadText}
		if raw.Date.Method == string(newsrank.DateReadAttribute) {
			p.Date.Method = newsrank.DateReadAttribute
			p.Date.Attribute = raw.Date.Attribute
			if p.Date.Attribute == "" {
				p.Date.Attribute = newsrank.DefaultDateAttribute
			}
		}
	}

	if p.URL, err = buildURLLogic(raw.URL); err != nil {
		return nil, newsrank.Errorf(newsrank.EINVALID, "parser %q url_logic: %v", name, err)
	}
	return p, nil
}

// buildRule returns nil for a rule with neither a css selector nor a tag.
func buildRule(raw *ruleJSON) (newsrank.SelectorRule, error) {
	if raw == nil {
		return nil, nil
	}
	if raw.Type == "css" && raw.Selector != "" {
		return newsrank.CSSRule{Selector: raw.Selector}, nil
	}
	if raw.Tag == "" {
		return nil, nil
	}
	attrs, err := decodeAttrs(raw.Attrs)
	if err != nil {
		return nil, err
	}
	return newsrank.TagRule{Tag: strings.ToLower(raw.Tag), Attrs: attrs}, nil
}

func buildURLLogic(raw *ruleJSON) (newsrank.URLLogic, error) {
	if raw == nil {
		return nil, nil
	}
	switch raw.Method {
	case "url_from_title":
		return newsrank.URLFromTitle{}, nil
	case "url_from_element":
		rule, err := buildRule(raw)
		if err != nil {
			return nil, err
		}
		return newsrank.URLFromElement{Rule: rule}, nil
	case "find_in_container", "":
		attrs, err := decodeAttrs(raw.Attrs)
		if err != nil {
			return nil, err
		}
		tag := strings.ToLower(raw.Tag)
		if tag == "" {
			tag = "a"
		}
		return newsrank.FindInContainer{Tag: tag, Attrs: attrs}, nil
	default:
		// An unknown method finds no link, leaving the item URL empty.
		return newsrank.URLFromElement{}, nil
	}
}

// decodeAttrs turns an attrs object into matchers, keeping source order.
// A key ending in __contains is a substring match, true is a presence test
// and any other value must match exactly.
func decodeAttrs(raw json.RawMessage) ([]newsrank.AttrMatcher, error) {
	if kindOf(raw) != '{' {
		return nil, nil
	}
	members, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	attrs := make([]newsrank.AttrMatcher, 0, len(members))
	for _, m := range members {
		var value any
		if err := json.Unmarshal(m.Value, &value); err != nil {
			return nil, err
		}
		switch {
		case strings.Contains(m.Key, "__contains"):
			attrs = append(attrs, newsrank.AttrMatcher{
				Name:  strings.ReplaceAll(m.Key, "__contains", ""),
				Kind:  newsrank.MatchContains,
				Value: fmt.Sprint(value),
			})
		case value == true:
			attrs = append(attrs, newsrank.AttrMatcher{Name: m.Key, Kind: newsrank.MatchPresent})
		default:
			attrs = append(attrs, newsrank.AttrMatcher{Name: m.Key, Kind: newsrank.MatchEquals, Value: fmt.Sprint(value)})
		}
	}
	return attrs, nil
}
