// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package collector runs the snapshot polling loop: one provider fetch per
// iteration, one timestamped CSV file per iteration, and a merged table at
// the end. The loop is driven by a timer and a context so the caller can
// cancel between iterations instead of being blocked in a bare sleep.
package collector

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/serptrack/internal/metrics"
	"github.com/pdiddy/serptrack/internal/serp"
	"github.com/pdiddy/serptrack/internal/snapshot"
	"github.com/pdiddy/serptrack/pkg/types"
)

// MinInterval is the floor on the inter-request delay. Shorter intervals
// are raised to this value to respect upstream rate limits.
const MinInterval = 10 * time.Second

// Run statuses recorded in summaries and the archive.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
)

// Summary describes a finished (or aborted) tracking run.
type Summary struct {
	RunID      string        `json:"run_id" yaml:"run_id"`
	Provider   string        `json:"provider" yaml:"provider"`
	Queries    []string      `json:"queries" yaml:"queries"`
	Iterations int           `json:"iterations" yaml:"iterations"`
	Completed  int           `json:"completed" yaml:"completed"`
	Interval   time.Duration `json:"interval" yaml:"interval"`
	Files      []string      `json:"files" yaml:"files"`
	Rows       int           `json:"rows" yaml:"rows"`
	Status     string        `json:"status" yaml:"status"`
	StartedAt  time.Time     `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time     `json:"finished_at" yaml:"finished_at"`
}

// Collector polls a SERP provider and persists one CSV snapshot per
// iteration.
type Collector struct {
	provider serp.Provider
	cfg      types.TrackConfig

	// now and wait are injection points for tests.
	now  func() time.Time
	wait func(ctx context.Context, d time.Duration) error
}

// New builds a collector over the provider. The provider must already hold
// valid credentials; provider constructors refuse to build without them, so
// a session with missing secrets never reaches the polling loop.
func New(provider serp.Provider, cfg types.TrackConfig) *Collector {
	return &Collector{
		provider: provider,
		cfg:      cfg,
		now:      time.Now,
		wait:     waitTimer,
	}
}

// waitTimer blocks for d or until the context is cancelled.
func waitTimer(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Run executes the polling loop: for each of the configured iterations it
// fetches one snapshot across all queries, writes it to a timestamped CSV
// file in the data directory, and waits the configured interval before the
// next iteration (never between the last fetch and return). Progress is
// reported on w.
//
// Fetch and write errors abort the remaining iterations and propagate;
// files already flushed stay on disk and are listed in the summary.
// Cancellation during a wait aborts the same way with a cancelled status.
func (c *Collector) Run(ctx context.Context, queries []string, w io.Writer) (*snapshot.Table, Summary, error) {
	summary := Summary{
		RunID:      uuid.NewString(),
		Provider:   c.provider.Name(),
		Queries:    queries,
		Iterations: c.cfg.Iterations,
		Interval:   c.interval(),
		StartedAt:  c.now(),
	}

	if len(queries) == 0 {
		summary.Status = StatusFailed
		return nil, summary, fmt.Errorf("no queries: provide at least one search phrase")
	}
	if c.cfg.Iterations < 1 {
		summary.Status = StatusFailed
		return nil, summary, fmt.Errorf("iterations must be at least 1, got %d", c.cfg.Iterations)
	}
	if err := os.MkdirAll(c.cfg.DataDir, 0o755); err != nil {
		summary.Status = StatusFailed
		return nil, summary, fmt.Errorf("creating data directory: %w", err)
	}

	var collected []*snapshot.Table
	for i := 0; i < c.cfg.Iterations; i++ {
		fmt.Fprintf(w, "recording iteration %d/%d\n", i+1, c.cfg.Iterations)

		table, path, err := c.recordSnapshot(ctx, queries)
		if err != nil {
			metrics.RecordFetch(c.provider.Name(), "error")
			summary.Status = StatusFailed
			summary.FinishedAt = c.now()
			metrics.RecordRun(summary.Status)
			return nil, summary, err
		}
		metrics.RecordFetch(c.provider.Name(), "ok")
		metrics.RecordRows(table.Len())

		collected = append(collected, table)
		summary.Files = append(summary.Files, path)
		summary.Completed++
		summary.Rows += table.Len()
		fmt.Fprintf(w, "  saved %s (%d rows)\n", filepath.Base(path), table.Len())

		if i < c.cfg.Iterations-1 {
			if err := c.wait(ctx, c.interval()); err != nil {
				summary.Status = StatusCancelled
				summary.FinishedAt = c.now()
				metrics.RecordRun(summary.Status)
				return nil, summary, fmt.Errorf("tracking cancelled: %w", err)
			}
		}
	}

	merged := snapshot.Merge(collected...)
	summary.Status = StatusCompleted
	summary.FinishedAt = c.now()
	metrics.RecordRun(summary.Status)
	fmt.Fprintf(w, "\ntracking completed: %d snapshots, %d rows\n", summary.Completed, merged.Len())
	return merged, summary, nil
}

// recordSnapshot fetches one snapshot and flushes it to a timestamped file.
func (c *Collector) recordSnapshot(ctx context.Context, queries []string) (*snapshot.Table, string, error) {
	results, err := serp.FetchSnapshot(ctx, c.provider, queries, c.cfg)
	if err != nil {
		return nil, "", err
	}

	table := snapshot.New(results)
	path := filepath.Join(c.cfg.DataDir, snapshotFileName(c.now()))
	if err := table.WriteFile(path); err != nil {
		return nil, "", err
	}
	return table, path, nil
}

// interval returns the configured delay clamped to the floor.
func (c *Collector) interval() time.Duration {
	if c.cfg.Interval < MinInterval {
		return MinInterval
	}
	return c.cfg.Interval
}

// snapshotFileName names an iteration file after its capture time.
func snapshotFileName(t time.Time) string {
	return fmt.Sprintf("serp_%s_scheduled_serp.csv", t.Format("02012006T15_04_05"))
}
