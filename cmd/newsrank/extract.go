package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/newsrank"
	"github.com/fwojciec/newsrank/fs"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	parser, err := deps.Config.Parser(c.Parser)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsrank.ErrorMessage(err))
		return err
	}

	b, err := os.ReadFile(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	items, err := deps.Extractor.Extract(string(b), parser, c.SourceURL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsrank.ErrorMessage(err))
		return err
	}

	for _, item := range items {
		item.ParserName = c.Parser
		if item.DateRaw != "" && !item.HasDate() && deps.Normalizer != nil {
			item.DateParsed = deps.Normalizer.Normalize(item.DateRaw, item.DomainHint())
		}
	}

	if err := fs.EncodeItems(deps.Stdout, items); err != nil {
		return fmt.Errorf("write items: %w", err)
	}
	fmt.Fprintf(deps.Stderr, "%d items\n", len(items))
	return nil
}
