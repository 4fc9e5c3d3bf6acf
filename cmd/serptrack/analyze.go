// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/serptrack/internal/analysis"
	"github.com/pdiddy/serptrack/internal/report"
	"github.com/pdiddy/serptrack/internal/snapshot"
	"github.com/pdiddy/serptrack/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [files...]",
	Short: "Merge snapshot CSVs and compute derived metrics",
	Long: `Analyze merges one or more snapshot CSV files into a unified table,
computes sentiment, bubble size, and title length for every row, and
prints the result. Use --keyword and --field to filter rows, --json for
machine-readable output, and --report to write the chart dashboard as a
standalone HTML file.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("keyword", "", "case-insensitive regex filter")
	analyzeCmd.Flags().String("field", "both", "filter field: searchTerms, title, or both")
	analyzeCmd.Flags().Bool("json", false, "output rows as JSON")
	analyzeCmd.Flags().String("report", "", "write the chart dashboard to this HTML file")
	analyzeCmd.Flags().Int("bins", 0, "sentiment histogram bins for the report (0 = default)")
	analyzeCmd.Flags().Int("words", 0, "word cloud size for the report (0 = default)")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more snapshot CSV files")
	}

	table, err := snapshot.ReadFiles(args...)
	if err != nil {
		return err
	}

	derived := analysis.Derive(table, analysis.NewScorer())

	keyword, _ := cmd.Flags().GetString("keyword")
	field, _ := cmd.Flags().GetString("field")
	filtered := analysis.Filter(derived, keyword, analysis.ParseFilterField(field))

	if reportPath, _ := cmd.Flags().GetString("report"); reportPath != "" {
		bins, _ := cmd.Flags().GetInt("bins")
		words, _ := cmd.Flags().GetInt("words")
		cfg := types.AnalysisConfig{HistogramBins: bins, WordCloudLimit: words}
		if err := report.WriteFile(reportPath, filtered, cfg); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "report written: %s\n", reportPath)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatAnalyzeOutput(filtered, jsonOutput)
}

func formatAnalyzeOutput(t *snapshot.Table, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(t.Rows)
	}

	if t.Len() == 0 {
		fmt.Println("No rows matched.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-30s  %-45s  %9s  %-19s\n",
		"Rank", "Domain", "Title", "Sentiment", "Captured")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 116))

	for _, r := range t.Rows {
		domain := r.DisplayLink
		if len(domain) > 30 {
			domain = domain[:27] + "..."
		}
		title := r.Title
		if len(title) > 45 {
			title = title[:42] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-30s  %-45s  %9.3f  %-19s\n",
			r.Rank, domain, title, r.Sentiment, r.QueryTime)
	}

	fmt.Fprintf(os.Stdout, "\n%d rows\n", t.Len())
	return nil
}
