// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics registers the Prometheus instruments shared by the
// collector and the dashboard server. Init must be called once at startup
// before any metric is recorded; recording without Init is a no-op.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	fetchesTotal      *prometheus.CounterVec
	snapshotRows      prometheus.Counter
	trackingRuns      *prometheus.CounterVec
	httpRequestsTotal *prometheus.CounterVec

	initOnce sync.Once
)

// Init registers the collectors with the default registry. Safe to call
// more than once; only the first call registers.
func Init() {
	initOnce.Do(func() {
		fetchesTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "serptrack_fetches_total",
				Help: "SERP API fetches by provider and outcome",
			},
			[]string{"provider", "outcome"},
		)
		snapshotRows = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "serptrack_snapshot_rows_total",
				Help: "Total result rows collected across all snapshots",
			},
		)
		trackingRuns = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "serptrack_tracking_runs_total",
				Help: "Tracking runs by final status",
			},
			[]string{"status"},
		)
		httpRequestsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "serptrack_http_requests_total",
				Help: "Dashboard HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		)
		prometheus.MustRegister(fetchesTotal, snapshotRows, trackingRuns, httpRequestsTotal)
	})
}

// RecordFetch counts one provider fetch with the given outcome ("ok" or "error").
func RecordFetch(provider, outcome string) {
	if fetchesTotal == nil {
		return
	}
	fetchesTotal.WithLabelValues(provider, outcome).Inc()
}

// RecordRows counts rows added by a snapshot iteration.
func RecordRows(n int) {
	if snapshotRows == nil || n <= 0 {
		return
	}
	snapshotRows.Add(float64(n))
}

// RecordRun counts one finished tracking run ("completed", "failed", "cancelled").
func RecordRun(status string) {
	if trackingRuns == nil {
		return
	}
	trackingRuns.WithLabelValues(status).Inc()
}

// RecordHTTPRequest counts one dashboard request.
func RecordHTTPRequest(route, code string) {
	if httpRequestsTotal == nil {
		return
	}
	httpRequestsTotal.WithLabelValues(route, code).Inc()
}
