// Package crawl runs the news collection pipeline: it expands source rows
// into tasks, fetches and extracts each task, then filters and ranks the
// collected items, checkpointing every stage.
package crawl

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fwojciec/newsrank"
	"github.com/fwojciec/newsrank/rank"
	"golang.org/x/sync/errgroup"
)

// Pipeline coordinates fetching, extraction, filtering and ranking.
type Pipeline struct {
	Config      *newsrank.Config
	Fetcher     newsrank.Fetcher
	Extractor   newsrank.Extractor
	Normalizer  newsrank.DateNormalizer
	Items       newsrank.ItemStore
	RateLimiter newsrank.DomainLimiter
	Concurrency int
	RetryDelays []time.Duration
	Logger      LogFunc
}

// CollectResult holds the outcome of fetching and extracting a task batch.
type CollectResult struct {
	Items     []*newsrank.NewsItem
	Succeeded int
	Failed    int
	Skipped   int
}

// Result holds the outcome of a full pipeline run.
type Result struct {
	Tasks    int
	Raw      int
	Filtered int
	Final    int
	Failed   int
	Skipped  int
	Items    []*newsrank.NewsItem
}

// ProgressEvent reports progress while tasks are processed.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Task      *newsrank.Task
	Items     int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressSkipped
	ProgressFinished
)

// ProgressFunc is a callback for reporting pipeline progress.
type ProgressFunc func(event ProgressEvent)

type taskResult struct {
	position int
	task     *newsrank.Task
	items    []*newsrank.NewsItem
	err      error
}

// Run processes tasks from scratch: previous checkpoints are cleared, then
// items are collected, filtered and ranked.
func (p *Pipeline) Run(ctx context.Context, tasks []*newsrank.Task, progress ProgressFunc) (*Result, error) {
	if err := p.Items.Clear(ctx); err != nil {
		return nil, fmt.Errorf("clear checkpoints: %w", err)
	}

	collected, err := p.Collect(ctx, tasks, progress)
	if err != nil {
		return nil, err
	}

	result, err := p.finish(ctx, collected.Items)
	if err != nil {
		return nil, err
	}
	result.Tasks = len(tasks)
	result.Failed = collected.Failed
	result.Skipped = collected.Skipped
	return result, nil
}

// Resume filters and ranks the items of the raw checkpoint without
// fetching anything.
func (p *Pipeline) Resume(ctx context.Context) (*Result, error) {
	items, err := p.Items.ReadItems(ctx, newsrank.StageRaw)
	if err != nil {
		return nil, err
	}
	return p.finish(ctx, items)
}

func (p *Pipeline) finish(ctx context.Context, raw []*newsrank.NewsItem) (*Result, error) {
	filtered, _ := NewFilter(p.Config, p.Normalizer).Apply(raw)
	if err := p.Items.WriteItems(ctx, newsrank.StageFiltered, filtered); err != nil {
		return nil, fmt.Errorf("write filtered items: %w", err)
	}

	ranked := rank.Rank(filtered)
	if err := p.Items.WriteItems(ctx, newsrank.StageSorted, ranked); err != nil {
		return nil, fmt.Errorf("write sorted items: %w", err)
	}

	return &Result{
		Raw:      len(raw),
		Filtered: len(filtered),
		Final:    len(ranked),
		Items:    ranked,
	}, nil
}

// Collect fetches and extracts every task and appends the items to the raw
// checkpoint in task order. A failing task is reported and counted; it
// never aborts the batch.
func (p *Pipeline) Collect(ctx context.Context, tasks []*newsrank.Task, progress ProgressFunc) (*CollectResult, error) {
	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	total := len(tasks)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	resultCh := make(chan taskResult, total)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, task := range tasks {
			g.Go(func() error {
				resultCh <- p.processTask(gctx, i, task)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]taskResult, total)
	var completed atomic.Int64
	out := &CollectResult{}
	for res := range resultCh {
		results[res.position] = res
		done := int(completed.Add(1))

		event := ProgressEvent{Completed: done, Total: total, Task: res.task, Error: res.err}
		switch {
		case res.err == nil:
			out.Succeeded++
			event.Type = ProgressCompleted
			event.Items = len(res.items)
		case newsrank.ErrorCode(res.err) == newsrank.EABANDONED:
			out.Skipped++
			event.Type = ProgressSkipped
		default:
			out.Failed++
			event.Type = ProgressFailed
		}
		if progress != nil {
			progress(event)
		}
	}

	for _, res := range results {
		out.Items = append(out.Items, res.items...)
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(out.Items) > 0 {
		if err := p.Items.AppendItems(ctx, newsrank.StageRaw, out.Items); err != nil {
			return nil, fmt.Errorf("append raw items: %w", err)
		}
	}
	return out, nil
}

// processTask fetches and extracts a single task.
func (p *Pipeline) processTask(ctx context.Context, position int, task *newsrank.Task) taskResult {
	result := taskResult{position: position, task: task}

	parser, err := p.Config.Parser(task.ParserName)
	if err != nil {
		result.err = err
		return result
	}

	host := newsrank.HostOf(task.URL)
	if p.RateLimiter != nil {
		if err := p.RateLimiter.Wait(ctx, host); err != nil {
			result.err = err
			return result
		}
	}

	delays := p.RetryDelays
	if delays == nil {
		delays = RetryDelays(p.Config.Settings.MaxRetries)
	}
	html, err := FetchWithRetryDelays(ctx, task, p.Fetcher.Fetch, p.Logger, delays)
	if err != nil {
		result.err = err
		return result
	}

	items, err := p.Extractor.Extract(html, parser, task.URL)
	if err != nil {
		result.err = err
		return result
	}

	for _, item := range items {
		item.ParserName = task.ParserName
		if item.DateRaw != "" && !item.HasDate() && p.Normalizer != nil {
			item.DateParsed = p.Normalizer.Normalize(item.DateRaw, host)
		}
	}
	result.items = items
	return result
}
