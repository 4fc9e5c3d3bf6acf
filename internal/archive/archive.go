// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive persists a history of tracking runs in a local SQLite
// database. The archive is advisory: collection never fails because the
// archive is unavailable.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/serptrack/internal/collector"
)

const (
	indexDir = "index"
	dbFile   = "runs.db"
)

// Store manages the run archive SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the archive database at dataDir/index/runs.db,
// creating the schema if it does not exist.
func Open(dataDir string) (*Store, error) {
	dbDir := filepath.Join(dataDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening archive database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		provider TEXT NOT NULL,
		queries TEXT NOT NULL,
		iterations INTEGER NOT NULL,
		completed INTEGER NOT NULL,
		interval_seconds INTEGER NOT NULL,
		files INTEGER NOT NULL,
		rows INTEGER NOT NULL,
		status TEXT NOT NULL,
		started_at TEXT NOT NULL,
		finished_at TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// RecordRun inserts one finished run into the archive.
func (s *Store) RecordRun(ctx context.Context, summary collector.Summary) error {
	queriesJSON, err := json.Marshal(summary.Queries)
	if err != nil {
		return fmt.Errorf("encoding queries: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, provider, queries, iterations, completed,
			interval_seconds, files, rows, status, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.RunID, summary.Provider, string(queriesJSON),
		summary.Iterations, summary.Completed,
		int64(summary.Interval/time.Second),
		len(summary.Files), summary.Rows, summary.Status,
		summary.StartedAt.UTC().Format(time.RFC3339Nano),
		summary.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting run %s: %w", summary.RunID, err)
	}
	return nil
}

// ListRuns returns up to limit archived runs, most recent first. A limit of
// zero or less returns the 20 most recent.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]collector.Summary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, provider, queries, iterations, completed,
			interval_seconds, rows, status, started_at, finished_at
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var out []collector.Summary
	for rows.Next() {
		var (
			sm              collector.Summary
			queriesJSON     string
			intervalSeconds int64
			startedAt       string
			finishedAt      string
		)
		if err := rows.Scan(
			&sm.RunID, &sm.Provider, &queriesJSON, &sm.Iterations, &sm.Completed,
			&intervalSeconds, &sm.Rows, &sm.Status, &startedAt, &finishedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}

		json.Unmarshal([]byte(queriesJSON), &sm.Queries)
		sm.Interval = time.Duration(intervalSeconds) * time.Second
		if ts, err := time.Parse(time.RFC3339Nano, startedAt); err == nil {
			sm.StartedAt = ts
		}
		if ts, err := time.Parse(time.RFC3339Nano, finishedAt); err == nil {
			sm.FinishedAt = ts
		}

		out = append(out, sm)
	}
	return out, rows.Err()
}
