// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session holds the explicit per-session state of the dashboard:
// the unified result table with derived columns. State is passed into each
// operation rather than kept in globals; the dashboard replaces it
// wholesale when new tracking completes or new files are uploaded.
package session

import (
	"sync"

	"github.com/pdiddy/serptrack/internal/analysis"
	"github.com/pdiddy/serptrack/internal/snapshot"
	"github.com/pdiddy/serptrack/pkg/types"
)

// Session owns one unified table. Safe for concurrent use.
type Session struct {
	mu     sync.RWMutex
	table  *snapshot.Table
	scorer *analysis.Scorer
}

// New returns an empty session.
func New() *Session {
	return &Session{scorer: analysis.NewScorer()}
}

// Replace installs a new unified table, discarding the previous one.
// Derived columns are computed here so every later read sees them. Raw
// rows are not mutated; Derive works on a copy.
func (s *Session) Replace(t *snapshot.Table) {
	derived := analysis.Derive(t, s.scorer)
	s.mu.Lock()
	s.table = derived
	s.mu.Unlock()
}

// Clear discards the session table.
func (s *Session) Clear() {
	s.mu.Lock()
	s.table = nil
	s.mu.Unlock()
}

// Empty reports whether the session has no table yet.
func (s *Session) Empty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Len() == 0
}

// Table returns a copy of the session table (empty when none is loaded).
func (s *Session) Table() *snapshot.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Clone()
}

// Filtered returns a copy of the session table filtered by keyword and
// field. The empty keyword returns the full table.
func (s *Session) Filtered(keyword string, field types.FilterField) *snapshot.Table {
	s.mu.RLock()
	t := s.table
	s.mu.RUnlock()
	if t == nil {
		t = snapshot.New(nil)
	}
	return analysis.Filter(t, keyword, field)
}
