package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/newsrank"
	"github.com/fwojciec/newsrank/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Config     *newsrank.Config
	Sources    newsrank.SourceReader
	Pipeline   *crawl.Pipeline
	Extractor  newsrank.Extractor
	Normalizer newsrank.DateNormalizer
	Translate  *crawl.Translate
	Digest     newsrank.DigestWriter
	Items      newsrank.ItemService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	ConfigDir string `name:"config" env:"NEWSRANK_CONFIG" default:"config" help:"Directory holding the JSON configuration files"`
	WorkDir   string `name:"workdir" env:"NEWSRANK_WORKDIR" default:"output" help:"Directory for checkpoints and digests"`
	Verbose   bool   `short:"v" help:"Log debug output"`

	Run      RunCmd      `cmd:"" help:"Collect, filter and rank news from all enabled sources"`
	Resume   ResumeCmd   `cmd:"" help:"Filter and rank the items of the last raw checkpoint"`
	Extract  ExtractCmd  `cmd:"" help:"Extract items from a saved HTML page"`
	List     ListCmd     `cmd:"" help:"List archived items"`
	Template TemplateCmd `cmd:"" help:"Write a sample source spreadsheet"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Sources     string `short:"s" help:"Source spreadsheet (overrides SOURCE_EXCEL_FILE)"`
	Concurrency int    `short:"c" default:"2" help:"Concurrent fetch limit"`
	Translate   bool   `short:"t" help:"Translate titles and teasers with Gemini"`
	ShowBrowser bool   `help:"Run the browser with a visible window"`
	Interactive bool   `short:"i" help:"Ask what to do when a page shows a challenge"`
}

// ResumeCmd is the "resume" subcommand.
type ResumeCmd struct {
	Translate bool `short:"t" help:"Translate titles and teasers with Gemini"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	File      string `arg:"" name:"html-file" help:"Saved HTML page"`
	Parser    string `arg:"" help:"Parser name from parsers.json"`
	SourceURL string `arg:"" name:"source-url" help:"URL the page was fetched from"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	RunID    string `name:"run" help:"Only show items of this run"`
	Runs     bool   `help:"List runs instead of items"`
	MinScore int    `name:"min-score" help:"Only show items scoring at least this much"`
	Limit    int    `short:"n" default:"50" help:"Maximum number of rows"`
}

// TemplateCmd is the "template" subcommand.
type TemplateCmd struct {
	Path string `arg:"" optional:"" default:"sources.xlsx" help:"Where to write the spreadsheet"`
}
