// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package snapshot

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/serptrack/pkg/types"
)

func sampleTable() *Table {
	return New([]types.Result{
		{
			Rank: 1, DisplayLink: "example.com", Title: "Example result",
			Link: "https://example.com/a", Snippet: "a snippet",
			SearchTerms: "widgets", TotalResults: 1200, SearchTime: 0.31,
			QueryTime: "2026-03-01 10:00:00",
		},
		{
			Rank: 2, DisplayLink: "other.org", Title: "Another, with comma",
			Link: "https://other.org/b", Snippet: `quoted "snippet"`,
			SearchTerms: "widgets", TotalResults: 1200, SearchTime: 0.31,
			QueryTime: "2026-03-01 10:00:00",
		},
	})
}

func TestCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleTable().WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	got, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if got.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", got.Len())
	}

	r := got.Rows[1]
	if r.Title != "Another, with comma" {
		t.Errorf("Title = %q", r.Title)
	}
	if r.Snippet != `quoted "snippet"` {
		t.Errorf("Snippet = %q", r.Snippet)
	}
	if r.TotalResults != 1200 {
		t.Errorf("TotalResults = %d, want 1200", r.TotalResults)
	}
	if r.QueryTime != "2026-03-01 10:00:00" {
		t.Errorf("QueryTime = %q", r.QueryTime)
	}
}

func TestReadCSVDropsIndexArtifact(t *testing.T) {
	// Files exported by other tools often carry an unnamed index column.
	in := strings.Join([]string{
		"Unnamed: 0,rank,displayLink,title,link,snippet,searchTerms,totalResults,searchTime,queryTime",
		"0,1,example.com,Example,https://example.com,snip,widgets,100,0.2,2026-03-01 10:00:00",
	}, "\n")

	got, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if got.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", got.Len())
	}
	if got.Rows[0].Rank != 1 {
		t.Errorf("Rank = %d, want 1 (index column not skipped)", got.Rows[0].Rank)
	}
	if got.Rows[0].DisplayLink != "example.com" {
		t.Errorf("DisplayLink = %q", got.Rows[0].DisplayLink)
	}
}

func TestReadCSVMissingQueryTimeColumn(t *testing.T) {
	in := strings.Join([]string{
		"rank,displayLink,title",
		"1,example.com,Example",
	}, "\n")

	got, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if got.Rows[0].QueryTime != UnknownTime {
		t.Errorf("QueryTime = %q, want sentinel %q", got.Rows[0].QueryTime, UnknownTime)
	}
}

func TestReadCSVUnparsableQueryTime(t *testing.T) {
	in := strings.Join([]string{
		"rank,title,queryTime",
		"1,Example,yesterday sometime",
	}, "\n")

	got, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if got.Rows[0].QueryTime != UnknownTime {
		t.Errorf("QueryTime = %q, want sentinel %q", got.Rows[0].QueryTime, UnknownTime)
	}
}

func TestReadCSVEmptyFile(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty file")
	}
}

func TestReadCSVHeaderOnly(t *testing.T) {
	got, err := ReadCSV(strings.NewReader("rank,title,queryTime\n"))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if got.Len() != 0 {
		t.Errorf("Len() = %d, want 0", got.Len())
	}
}

func TestReadFilesMergesInOrder(t *testing.T) {
	dir := t.TempDir()

	a := filepath.Join(dir, "a.csv")
	b := filepath.Join(dir, "b.csv")
	if err := sampleTable().WriteFile(a); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	second := New([]types.Result{{Rank: 1, Title: "later", QueryTime: "2026-03-01 10:05:00"}})
	if err := second.WriteFile(b); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := ReadFiles(a, b)
	if err != nil {
		t.Fatalf("ReadFiles: %v", err)
	}
	if got.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", got.Len())
	}
	if got.Rows[2].Title != "later" {
		t.Errorf("rows out of order: got %q last", got.Rows[2].Title)
	}
}
