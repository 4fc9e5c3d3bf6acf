// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "serptrack/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// TrackConfig holds settings for the snapshot collection stage.
type TrackConfig struct {
	HTTPConfig `yaml:",inline"`

	// Provider selects the SERP backend: "googlecse" or "serper".
	Provider string `json:"provider" yaml:"provider"`

	// Interval is the delay between polling iterations. Values below
	// ten seconds are raised to ten seconds to respect upstream rate
	// limits.
	Interval time.Duration `json:"interval" yaml:"interval"`

	// Iterations is the number of snapshots to collect (minimum 1).
	Iterations int `json:"iterations" yaml:"iterations"`

	// ResultsPerQuery caps the number of entries requested per query
	// (default 10).
	ResultsPerQuery int `json:"results_per_query" yaml:"results_per_query"`

	// DataDir is the destination directory for snapshot CSV files.
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// AnalysisConfig holds settings for the derived-metrics and chart stage.
type AnalysisConfig struct {
	// HistogramBins is the bin count for the sentiment histogram (default 20).
	HistogramBins int `json:"histogram_bins" yaml:"histogram_bins"`

	// WordCloudLimit caps the number of words in the word cloud (default 100).
	WordCloudLimit int `json:"word_cloud_limit" yaml:"word_cloud_limit"`
}

// ServerConfig holds settings for the dashboard HTTP server.
type ServerConfig struct {
	// Host is the listen address (default "127.0.0.1").
	Host string `json:"host" yaml:"host"`

	// Port is the listen port (default 8787).
	Port int `json:"port" yaml:"port"`

	// ShutdownTimeout bounds graceful shutdown (default 5s).
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// AppConfig groups all stage configurations.
type AppConfig struct {
	Track    TrackConfig    `json:"track" yaml:"track"`
	Analysis AnalysisConfig `json:"analysis" yaml:"analysis"`
	Server   ServerConfig   `json:"server" yaml:"server"`
}
