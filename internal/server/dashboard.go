// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"net/http"

	"github.com/pdiddy/serptrack/internal/report"
)

// handleDashboard renders the four dashboard views as a single HTML page.
// The same keyword/field parameters as the JSON chart endpoints apply.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	t := s.filteredTable(r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := report.Render(w, t, s.cfg.Analysis); err != nil {
		s.logger.Error("rendering dashboard", "error", err)
	}
}
