// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/serptrack/internal/archive"
	"github.com/pdiddy/serptrack/internal/collector"
	"github.com/pdiddy/serptrack/internal/serp"
	"github.com/pdiddy/serptrack/pkg/types"
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Poll the SERP API on a schedule and save CSV snapshots",
	Long: `Track fetches search results for the given queries once per iteration,
saves each snapshot as a timestamped CSV file in the data directory, and
records a run manifest when the run finishes. Intervals below ten seconds
are raised to ten seconds.`,
	RunE: runTrack,
}

func init() {
	trackCmd.Flags().String("queries", "", "comma-separated search phrases (required)")
	trackCmd.Flags().Int("iterations", 1, "number of snapshots to collect")
	trackCmd.Flags().Duration("interval", collector.MinInterval, "delay between iterations (minimum 10s)")
	trackCmd.Flags().Int("num", 10, "results per query")
	trackCmd.Flags().String("provider", "googlecse", "SERP backend: googlecse or serper")
	trackCmd.Flags().String("data-dir", defaultDataDir, "directory for snapshot CSV files")
	trackCmd.Flags().Duration("timeout", defaultTimeout, "HTTP request timeout")

	rootCmd.AddCommand(trackCmd)
}

func trackConfigFromFlags(cmd *cobra.Command) types.TrackConfig {
	iterations, _ := cmd.Flags().GetInt("iterations")
	interval, _ := cmd.Flags().GetDuration("interval")
	num, _ := cmd.Flags().GetInt("num")
	provider, _ := cmd.Flags().GetString("provider")
	dataDir, _ := cmd.Flags().GetString("data-dir")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return types.TrackConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		Provider:        provider,
		Interval:        interval,
		Iterations:      iterations,
		ResultsPerQuery: num,
		DataDir:         dataDir,
	}
}

func runTrack(cmd *cobra.Command, args []string) error {
	queriesFlag, _ := cmd.Flags().GetString("queries")
	queries := serp.ParseQueries(queriesFlag)
	if len(queries) == 0 {
		return fmt.Errorf("provide at least one query with --queries")
	}

	cfg := trackConfigFromFlags(cmd)
	provider, err := buildProvider(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := collector.New(provider, cfg)
	merged, summary, runErr := c.Run(ctx, queries, os.Stdout)

	// The manifest and archive record the run even when it aborted, so
	// partial snapshots stay discoverable.
	if summary.RunID != "" && summary.Status != "" {
		if path, err := collector.WriteManifest(cfg.DataDir, summary); err != nil {
			fmt.Fprintf(os.Stderr, "warning: writing run manifest: %v\n", err)
		} else {
			fmt.Fprintf(os.Stdout, "run manifest: %s\n", path)
		}
		archiveRun(cfg.DataDir, summary)
	}

	if runErr != nil {
		return runErr
	}

	fmt.Fprintf(os.Stdout, "merged table: %d rows across %d snapshots\n", merged.Len(), summary.Completed)
	return nil
}

// archiveRun records the summary in the run archive. Archive failures are
// warnings, never fatal.
func archiveRun(dataDir string, summary collector.Summary) {
	store, err := archive.Open(dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: opening run archive: %v\n", err)
		return
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.RecordRun(ctx, summary); err != nil {
		fmt.Fprintf(os.Stderr, "warning: archiving run: %v\n", err)
	}
}
