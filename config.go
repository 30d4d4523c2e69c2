package newsrank

import (
	"time"

	"cloud.google.com/go/civil"
)

// Default settings applied when the operator leaves a value unset.
const (
	DefaultPassScoreThreshold = 80
	DefaultMaxRetries         = 3
	DefaultBrowserTimeout     = 30 * time.Second
	DefaultTargetLanguage     = "zh-CN"
	DefaultSourceFile         = "sources.xlsx"
)

// Settings holds the global operator switches.
type Settings struct {
	MinimumDate        *civil.Date
	PassScoreThreshold int
	BypassScoring      bool
	MaxRetries         int
	BrowserTimeout     time.Duration
	SourceFile         string
	SearchPlaceholder  string
	TargetLanguage     string
	DateFromURL        bool
}

// DefaultSettings returns the settings used when no settings file exists.
func DefaultSettings() Settings {
	return Settings{
		PassScoreThreshold: DefaultPassScoreThreshold,
		MaxRetries:         DefaultMaxRetries,
		BrowserTimeout:     DefaultBrowserTimeout,
		SourceFile:         DefaultSourceFile,
		TargetLanguage:     DefaultTargetLanguage,
	}
}

// Config is the complete, immutable operator configuration. It is built
// once and passed to each stage.
type Config struct {
	Settings      Settings
	KeywordSets   KeywordSets
	ScoringGroups []ScoringGroup
	DateFormats   DateFormatRegistry
	Parsers       map[string]*ParserSpec
}

// Parser returns the parser registered under name.
// Returns ENOTFOUND if no such parser exists.
func (c *Config) Parser(name string) (*ParserSpec, error) {
	p, ok := c.Parsers[name]
	if !ok || p == nil {
		return nil, Errorf(ENOTFOUND, "parser %q not found", name)
	}
	return p, nil
}
