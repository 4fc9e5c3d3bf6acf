// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/serptrack/internal/snapshot"
)

var exportCmd = &cobra.Command{
	Use:   "export [files...]",
	Short: "Merge snapshot CSVs into a single unified CSV",
	Long: `Export merges one or more snapshot CSV files into a unified table and
writes it as one CSV, to a file with --out or to stdout without.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("out", "", "destination file (default: stdout)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more snapshot CSV files")
	}

	table, err := snapshot.ReadFiles(args...)
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("out")
	if output == "" {
		return table.WriteCSV(os.Stdout)
	}

	if err := table.WriteFile(output); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "exported %d rows to %s\n", table.Len(), output)
	return nil
}
