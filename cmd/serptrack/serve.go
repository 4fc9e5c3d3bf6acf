// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/serptrack/internal/archive"
	"github.com/pdiddy/serptrack/internal/serp"
	"github.com/pdiddy/serptrack/internal/server"
	"github.com/pdiddy/serptrack/internal/session"
	"github.com/pdiddy/serptrack/pkg/types"
)

const defaultShutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host the interactive SERP tracking dashboard",
	Long: `Serve hosts the dashboard HTTP server: upload snapshot CSVs, start and
cancel tracking runs, filter the unified table, and view the sentiment,
rank, title-length, and word cloud charts. Without provider credentials
the dashboard still serves uploaded data; tracking endpoints are
disabled.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("host", "127.0.0.1", "listen address")
	serveCmd.Flags().Int("port", 8787, "listen port")
	serveCmd.Flags().String("provider", "googlecse", "SERP backend: googlecse or serper")
	serveCmd.Flags().String("data-dir", defaultDataDir, "directory for snapshot CSV files and the run archive")
	serveCmd.Flags().Duration("interval", 0, "default delay between tracking iterations")
	serveCmd.Flags().Int("iterations", 1, "default iterations for dashboard-started runs")
	serveCmd.Flags().Int("num", 10, "results per query")
	serveCmd.Flags().Int("bins", 0, "sentiment histogram bins (0 = default 20)")
	serveCmd.Flags().Int("words", 0, "word cloud size (0 = default 100)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg := serveConfigFromFlags(cmd)

	// Credentials are optional for the dashboard: without them tracking is
	// disabled but uploads and charts still work.
	var provider serp.Provider
	p, err := buildProvider(cfg.Track)
	if err != nil {
		logger.Warn("tracking disabled", "reason", err)
	} else {
		provider = p
	}

	var store *archive.Store
	if s, err := archive.Open(cfg.Track.DataDir); err != nil {
		logger.Warn("run history disabled", "reason", err)
	} else {
		store = s
		defer store.Close()
	}

	srv := server.New(cfg, session.New(), provider, store, logger)
	httpServer := &http.Server{
		Addr:    srv.Addr(),
		Handler: srv.Handler(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("dashboard listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("dashboard server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownTimeout := cfg.Server.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

func serveConfigFromFlags(cmd *cobra.Command) types.AppConfig {
	host, _ := cmd.Flags().GetString("host")
	port, _ := cmd.Flags().GetInt("port")
	provider, _ := cmd.Flags().GetString("provider")
	dataDir, _ := cmd.Flags().GetString("data-dir")
	interval, _ := cmd.Flags().GetDuration("interval")
	iterations, _ := cmd.Flags().GetInt("iterations")
	num, _ := cmd.Flags().GetInt("num")
	bins, _ := cmd.Flags().GetInt("bins")
	words, _ := cmd.Flags().GetInt("words")

	return types.AppConfig{
		Track: types.TrackConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   defaultTimeout,
				UserAgent: defaultUserAgent,
			},
			Provider:        provider,
			Interval:        interval,
			Iterations:      iterations,
			ResultsPerQuery: num,
			DataDir:         dataDir,
		},
		Analysis: types.AnalysisConfig{
			HistogramBins:  bins,
			WordCloudLimit: words,
		},
		Server: types.ServerConfig{
			Host:            host,
			Port:            port,
			ShutdownTimeout: defaultShutdownTimeout,
		},
	}
}
