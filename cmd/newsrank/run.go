package main

import (
	"fmt"

	"github.com/fwojciec/newsrank"
	"github.com/fwojciec/newsrank/crawl"
)

// urlWidth bounds URLs in progress lines.
const urlWidth = 60

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	rows, err := deps.Sources.ReadSources(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsrank.ErrorMessage(err))
		return err
	}

	tasks := crawl.ExpandTasks(rows, &deps.Config.KeywordSets, deps.Config.Settings.SearchPlaceholder)
	if len(tasks) == 0 {
		fmt.Fprintln(deps.Stdout, "No enabled sources. Use 'newsrank template' to create a source table.")
		return nil
	}

	if c.Concurrency > 0 {
		deps.Pipeline.Concurrency = c.Concurrency
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Expanded %d tasks\n", event.Total)
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s: %d items\n", event.Completed, event.Total, event.Task.ID, event.Items)
		case crawl.ProgressSkipped:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] pass %s: %s\n", event.Completed, event.Total, crawl.TruncateURL(event.Task.URL, urlWidth), newsrank.ErrorMessage(event.Error))
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] fail %s: %v\n", event.Completed, event.Total, crawl.TruncateURL(event.Task.URL, urlWidth), event.Error)
		}
	}

	result, err := deps.Pipeline.Run(deps.Ctx, tasks, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	return publish(deps, result)
}

// Run executes the resume command.
func (c *ResumeCmd) Run(deps *Dependencies) error {
	result, err := deps.Pipeline.Resume(deps.Ctx)
	if newsrank.ErrorCode(err) == newsrank.ENOTFOUND {
		fmt.Fprintln(deps.Stderr, "No raw checkpoint found. Use 'newsrank run' first.")
		return err
	} else if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	return publish(deps, result)
}

// publish translates, writes the digest and archives the ranked items of a
// finished pipeline run.
func publish(deps *Dependencies, result *crawl.Result) error {
	fmt.Fprintln(deps.Stdout, result)

	var translations map[string]newsrank.Translation
	if deps.Translate != nil && len(result.Items) > 0 {
		var err error
		translations, err = deps.Translate.Run(deps.Ctx, result.Items)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error translating: %v\n", err)
			return err
		}
		fmt.Fprintf(deps.Stdout, "  Translated %d items\n", len(translations))
	}

	path, err := deps.Digest.WriteDigest(deps.Ctx, result.Items, translations)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error writing digest: %v\n", err)
		return err
	}
	fmt.Fprintf(deps.Stdout, "Digest written to %s\n", path)

	if deps.Items == nil {
		return nil
	}

	run := &newsrank.Run{
		Tasks:    result.Tasks,
		Raw:      result.Raw,
		Filtered: result.Filtered,
		Final:    result.Final,
	}
	if err := deps.Items.CreateRun(deps.Ctx, run); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsrank.ErrorMessage(err))
		return err
	}
	if len(result.Items) > 0 {
		if err := deps.Items.CreateItems(deps.Ctx, run.ID, result.Items); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", newsrank.ErrorMessage(err))
			return err
		}
	}
	fmt.Fprintf(deps.Stdout, "Archived run %s\n", run.ID)
	return nil
}
