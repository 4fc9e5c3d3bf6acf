// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the serptrack CLI.
package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/serptrack/internal/secrets"
	"github.com/pdiddy/serptrack/internal/serp"
	"github.com/pdiddy/serptrack/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "serptrack/0.1"
	defaultDataDir   = "serpdata"
)

// rootCmd is the base command for the serptrack CLI.
var rootCmd = &cobra.Command{
	Use:   "serptrack",
	Short: "Track search engine result pages over time",
	Long: `serptrack polls a search-results API on a schedule, saves one CSV
snapshot per iteration, and turns the merged snapshots into sentiment,
rank, and title-length views.

Each stage is a subcommand: track collects snapshots, analyze merges and
filters saved CSVs, export writes the unified table, history lists past
runs, and serve hosts the interactive dashboard.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./serptrack.yaml or ~/.config/serptrack/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("serptrack")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "serptrack"))
		}
	}

	viper.SetEnvPrefix("SERPTRACK")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// buildProvider constructs the SERP backend named by cfg.Provider using the
// secrets loaded at startup. Missing credentials fail here, before any
// polling starts.
func buildProvider(cfg types.TrackConfig) (serp.Provider, error) {
	client := &http.Client{Timeout: cfg.Timeout}

	switch cfg.Provider {
	case "googlecse", "":
		return serp.NewGoogleCSE(client, loadedSecrets)
	case "serper":
		return serp.NewSerper(client, loadedSecrets)
	default:
		return nil, fmt.Errorf("unknown provider %q: use googlecse or serper", cfg.Provider)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
