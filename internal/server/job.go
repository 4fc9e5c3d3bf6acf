// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/pdiddy/serptrack/internal/collector"
	"github.com/pdiddy/serptrack/internal/serp"
	"github.com/pdiddy/serptrack/pkg/types"
)

// trackRequest is the JSON body of POST /api/track.
type trackRequest struct {
	// Queries is a comma-separated query list, mirroring the CLI flag.
	Queries string `json:"queries"`

	// Iterations overrides the configured iteration count when positive.
	Iterations int `json:"iterations"`

	// IntervalSeconds overrides the configured interval when positive.
	// Values under the floor are raised by the collector.
	IntervalSeconds int `json:"interval_seconds"`
}

// trackJob is one background tracking run. Only one job runs at a time.
type trackJob struct {
	cancel context.CancelFunc
	done   chan struct{}

	mu      sync.Mutex
	state   string
	summary collector.Summary
	errMsg  string
}

func (j *trackJob) finish(state string, summary collector.Summary, err error) {
	j.mu.Lock()
	j.state = state
	j.summary = summary
	if err != nil {
		j.errMsg = err.Error()
	}
	j.mu.Unlock()
	close(j.done)
}

type jobStatus struct {
	State   string             `json:"state"`
	Error   string             `json:"error,omitempty"`
	Summary *collector.Summary `json:"summary,omitempty"`
}

func (j *trackJob) status() jobStatus {
	j.mu.Lock()
	defer j.mu.Unlock()
	st := jobStatus{State: j.state, Error: j.errMsg}
	if j.summary.RunID != "" {
		sm := j.summary
		st.Summary = &sm
	}
	return st
}

// handleTrackStart launches a background tracking run. It fails with 409
// when a run is active and with 412 when no provider credentials were
// loaded at startup.
func (s *Server) handleTrackStart(w http.ResponseWriter, r *http.Request) {
	if s.provider == nil {
		writeError(w, http.StatusPreconditionFailed,
			fmt.Errorf("no SERP provider configured: check the secrets directory"))
		return
	}

	var req trackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("parsing request: %w", err))
		return
	}
	queries := serp.ParseQueries(req.Queries)
	if len(queries) == 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("no queries: provide at least one search phrase"))
		return
	}

	cfg := s.cfg.Track
	if req.Iterations > 0 {
		cfg.Iterations = req.Iterations
	}
	if req.IntervalSeconds > 0 {
		cfg.Interval = time.Duration(req.IntervalSeconds) * time.Second
	}

	s.mu.Lock()
	if s.job != nil {
		select {
		case <-s.job.done:
			// previous job finished; replace it
		default:
			s.mu.Unlock()
			writeError(w, http.StatusConflict, fmt.Errorf("a tracking run is already active"))
			return
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	job := &trackJob{cancel: cancel, done: make(chan struct{}), state: "running"}
	s.job = job
	s.mu.Unlock()

	go s.runTracking(ctx, job, queries, cfg)

	writeJSON(w, http.StatusAccepted, job.status())
}

// runTracking executes the collector and installs the merged table into the
// session on success.
func (s *Server) runTracking(ctx context.Context, job *trackJob, queries []string, cfg types.TrackConfig) {
	defer job.cancel()

	c := collector.New(s.provider, cfg)
	merged, summary, err := c.Run(ctx, queries, io.Discard)
	if err != nil {
		s.logger.Error("tracking run failed", "run_id", summary.RunID, "error", err)
		s.recordRun(summary)
		job.finish(summary.Status, summary, err)
		return
	}

	s.session.Replace(merged)
	if _, err := collector.WriteManifest(cfg.DataDir, summary); err != nil {
		s.logger.Warn("writing run manifest failed", "run_id", summary.RunID, "error", err)
	}
	s.recordRun(summary)
	s.logger.Info("tracking run completed", "run_id", summary.RunID, "rows", summary.Rows)
	job.finish(summary.Status, summary, nil)
}

// recordRun archives the run summary when an archive is attached. Archive
// failures are logged, never fatal.
func (s *Server) recordRun(summary collector.Summary) {
	if s.archive == nil || summary.RunID == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.archive.RecordRun(ctx, summary); err != nil {
		s.logger.Warn("archiving run failed", "run_id", summary.RunID, "error", err)
	}
}

func (s *Server) handleTrackCancel(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	job := s.job
	s.mu.Unlock()

	if job == nil {
		writeError(w, http.StatusNotFound, fmt.Errorf("no tracking run"))
		return
	}
	select {
	case <-job.done:
		writeError(w, http.StatusConflict, fmt.Errorf("tracking run already finished"))
	default:
		job.cancel()
		writeJSON(w, http.StatusOK, map[string]string{"status": "cancelling"})
	}
}

func (s *Server) handleTrackStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	job := s.job
	s.mu.Unlock()

	if job == nil {
		writeJSON(w, http.StatusOK, jobStatus{State: "idle"})
		return
	}
	writeJSON(w, http.StatusOK, job.status())
}
