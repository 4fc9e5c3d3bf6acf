// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/serptrack/internal/archive"
	"github.com/pdiddy/serptrack/internal/collector"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past tracking runs from the run archive",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().String("data-dir", defaultDataDir, "data directory holding the run archive")
	historyCmd.Flags().Int("limit", 0, "maximum runs to list (0 = 20 most recent)")
	historyCmd.Flags().Bool("json", false, "output runs as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := archive.Open(dataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.ListRuns(context.Background(), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatHistoryOutput(runs, jsonOutput)
}

func formatHistoryOutput(runs []collector.Summary, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-36s  %-9s  %-30s  %5s  %5s  %-10s  %-19s\n",
		"Run", "Provider", "Queries", "Iters", "Rows", "Status", "Started")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 126))

	for _, r := range runs {
		queries := strings.Join(r.Queries, ", ")
		if len(queries) > 30 {
			queries = queries[:27] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-36s  %-9s  %-30s  %5d  %5d  %-10s  %-19s\n",
			r.RunID, r.Provider, queries, r.Completed, r.Rows, r.Status,
			r.StartedAt.Format("2006-01-02 15:04:05"))
	}

	fmt.Fprintf(os.Stdout, "\n%d runs\n", len(runs))
	return nil
}
