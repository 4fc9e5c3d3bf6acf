// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pdiddy/serptrack/internal/analysis"
	"github.com/pdiddy/serptrack/internal/snapshot"
)

// uploadMemoryLimit bounds the in-memory portion of multipart parsing.
const uploadMemoryLimit = 32 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// filteredTable applies the keyword/field query parameters to the session.
func (s *Server) filteredTable(r *http.Request) *snapshot.Table {
	keyword := r.URL.Query().Get("keyword")
	field := analysis.ParseFilterField(r.URL.Query().Get("field"))
	return s.session.Filtered(keyword, field)
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	t := s.filteredTable(r)
	writeJSON(w, http.StatusOK, map[string]any{
		"rows":  t.Rows,
		"count": t.Len(),
	})
}

// handleUpload replaces the session table with the merged contents of the
// uploaded CSV files. A file that cannot be parsed at all rejects the whole
// upload; rows without a usable queryTime load with the unknown sentinel.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(uploadMemoryLimit); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("parsing upload: %w", err))
		return
	}

	var files []string
	for field := range r.MultipartForm.File {
		files = append(files, field)
	}
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("no files uploaded"))
		return
	}

	var tables []*snapshot.Table
	for _, field := range files {
		for _, hdr := range r.MultipartForm.File[field] {
			f, err := hdr.Open()
			if err != nil {
				writeError(w, http.StatusBadRequest, fmt.Errorf("opening %s: %w", hdr.Filename, err))
				return
			}
			t, err := snapshot.ReadCSV(f)
			f.Close()
			if err != nil {
				writeError(w, http.StatusBadRequest, fmt.Errorf("parsing %s: %w", hdr.Filename, err))
				return
			}
			tables = append(tables, t)
		}
	}

	merged := snapshot.Merge(tables...)
	s.session.Replace(merged)
	s.logger.Info("session table replaced from upload", "files", len(tables), "rows", merged.Len())

	writeJSON(w, http.StatusOK, map[string]any{
		"files": len(tables),
		"rows":  merged.Len(),
	})
}

// handleExport streams the session table as a UTF-8 CSV download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	t := s.session.Table()
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="serp_data.csv"`)
	if err := t.WriteCSV(w); err != nil {
		s.logger.Error("export failed", "error", err)
	}
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		writeError(w, http.StatusServiceUnavailable, fmt.Errorf("run archive not available"))
		return
	}
	runs, err := s.archive.ListRuns(r.Context(), 0)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func (s *Server) handleChartSentiment(w http.ResponseWriter, r *http.Request) {
	t := s.filteredTable(r)
	bins := analysis.HistogramBins(t, s.histogramBins())
	writeJSON(w, http.StatusOK, map[string]any{"bins": bins})
}

func (s *Server) handleChartRank(w http.ResponseWriter, r *http.Request) {
	t := s.filteredTable(r)
	writeJSON(w, http.StatusOK, map[string]any{"frames": analysis.RankFrames(t)})
}

func (s *Server) handleChartTitleLength(w http.ResponseWriter, r *http.Request) {
	t := s.filteredTable(r)
	writeJSON(w, http.StatusOK, map[string]any{"points": analysis.TitleLengthPoints(t)})
}

func (s *Server) handleChartWordCloud(w http.ResponseWriter, r *http.Request) {
	t := s.filteredTable(r)
	words := analysis.WordFrequencies(t, s.wordCloudLimit())
	writeJSON(w, http.StatusOK, map[string]any{"words": words})
}

func (s *Server) histogramBins() int {
	if s.cfg.Analysis.HistogramBins > 0 {
		return s.cfg.Analysis.HistogramBins
	}
	return 20
}

func (s *Server) wordCloudLimit() int {
	if s.cfg.Analysis.WordCloudLimit > 0 {
		return s.cfg.Analysis.WordCloudLimit
	}
	return 100
}
