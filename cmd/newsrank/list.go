package main

import (
	"fmt"

	"github.com/fwojciec/newsrank"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	if c.Runs {
		return c.listRuns(deps)
	}

	filter := newsrank.ItemFilter{Limit: c.Limit}
	if c.RunID != "" {
		filter.RunID = &c.RunID
	}
	if c.MinScore > 0 {
		filter.MinScore = &c.MinScore
	}

	items, err := deps.Items.FindItems(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsrank.ErrorMessage(err))
		return err
	}

	if len(items) == 0 {
		fmt.Fprintln(deps.Stdout, "No archived items found. Use 'newsrank run' to collect some.")
		return nil
	}

	for _, item := range items {
		date := "----------"
		if item.HasDate() {
			date = item.DateParsed.String()
		}
		fmt.Fprintf(deps.Stdout, "%4d  %s  %s  %s\n", item.Score, date, item.Title, item.URL)
	}

	return nil
}

func (c *ListCmd) listRuns(deps *Dependencies) error {
	runs, err := deps.Items.FindRuns(deps.Ctx, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsrank.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs found. Use 'newsrank run' to collect some.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  tasks=%d raw=%d filtered=%d final=%d\n",
			r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), r.Tasks, r.Raw, r.Filtered, r.Final)
	}

	return nil
}
