// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package snapshot holds SERP result tables and their CSV representation.
// A Table is the unit the collector produces per iteration and the unit
// the merger and analysis stages operate on.
package snapshot

import (
	"sort"
	"time"

	"github.com/pdiddy/serptrack/pkg/types"
)

// TimeLayout is the canonical queryTime form used throughout the pipeline.
const TimeLayout = "2006-01-02 15:04:05"

// UnknownTime is the sentinel stored when a source timestamp cannot be
// parsed. Rows with unknown timestamps stay in the table; they are only
// excluded from time-keyed views such as animation frames.
const UnknownTime = "unknown"

// queryTimeLayouts lists the source formats accepted when normalizing.
// Provider responses use RFC 3339; CSV files round-trip the canonical form.
var queryTimeLayouts = []string{
	TimeLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Table is an ordered collection of SERP result rows. A snapshot table is
// immutable once fetched except for the derived columns the analysis stage
// fills in.
type Table struct {
	Rows []types.Result
}

// New returns a table over the given rows.
func New(rows []types.Result) *Table {
	return &Table{Rows: rows}
}

// Len returns the row count.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Clone returns a deep copy of the table. Rows are value types, so copying
// the slice suffices.
func (t *Table) Clone() *Table {
	if t == nil {
		return New(nil)
	}
	rows := make([]types.Result, len(t.Rows))
	copy(rows, t.Rows)
	return New(rows)
}

// Merge concatenates tables in order into one unified table and normalizes
// every queryTime to the canonical layout. The result size is the sum of
// the input sizes. Nil tables contribute nothing.
func Merge(tables ...*Table) *Table {
	total := 0
	for _, t := range tables {
		total += t.Len()
	}
	rows := make([]types.Result, 0, total)
	for _, t := range tables {
		if t == nil {
			continue
		}
		rows = append(rows, t.Rows...)
	}
	merged := New(rows)
	merged.NormalizeQueryTimes()
	return merged
}

// NormalizeQueryTimes rewrites each row's queryTime into the canonical
// layout. Values that parse under none of the accepted layouts become the
// UnknownTime sentinel rather than failing the load.
func (t *Table) NormalizeQueryTimes() {
	for i := range t.Rows {
		t.Rows[i].QueryTime = NormalizeQueryTime(t.Rows[i].QueryTime)
	}
}

// NormalizeQueryTime parses a single timestamp string and returns it in the
// canonical layout, or UnknownTime when it cannot be parsed.
func NormalizeQueryTime(s string) string {
	if s == "" || s == UnknownTime {
		return UnknownTime
	}
	for _, layout := range queryTimeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.Format(TimeLayout)
		}
	}
	return UnknownTime
}

// Timestamps returns the distinct canonical queryTime values in ascending
// order. The UnknownTime sentinel is excluded; canonical timestamps sort
// correctly as strings.
func (t *Table) Timestamps() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range t.Rows {
		if r.QueryTime == UnknownTime || r.QueryTime == "" {
			continue
		}
		if _, ok := seen[r.QueryTime]; ok {
			continue
		}
		seen[r.QueryTime] = struct{}{}
		out = append(out, r.QueryTime)
	}
	sort.Strings(out)
	return out
}
