// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"reflect"
	"testing"

	"github.com/pdiddy/serptrack/internal/snapshot"
	"github.com/pdiddy/serptrack/pkg/types"
)

func TestHistogramBinsCountAllRows(t *testing.T) {
	table := snapshot.New([]types.Result{
		{Sentiment: -1},
		{Sentiment: -0.5},
		{Sentiment: 0},
		{Sentiment: 0.99},
		{Sentiment: 1}, // exactly 1 lands in the closed final bin
	})

	bins := HistogramBins(table, 20)
	if len(bins) != 20 {
		t.Fatalf("len(bins) = %d, want 20", len(bins))
	}

	total := 0
	for _, b := range bins {
		total += b.Count
	}
	if total != table.Len() {
		t.Errorf("bin counts sum to %d, want %d", total, table.Len())
	}
	if bins[0].Count != 1 {
		t.Errorf("first bin count = %d, want 1 (sentiment -1)", bins[0].Count)
	}
	if bins[19].Count != 2 {
		t.Errorf("last bin count = %d, want 2 (0.99 and 1.0)", bins[19].Count)
	}
}

func TestHistogramBinsDefault(t *testing.T) {
	bins := HistogramBins(snapshot.New(nil), 0)
	if len(bins) != 20 {
		t.Errorf("len(bins) = %d, want default 20", len(bins))
	}
}

func TestRankFramesGroupByTimestamp(t *testing.T) {
	table := snapshot.New([]types.Result{
		{Rank: 1, DisplayLink: "a.com", QueryTime: "2026-03-01 10:05:00"},
		{Rank: 1, DisplayLink: "a.com", QueryTime: "2026-03-01 10:00:00"},
		{Rank: 2, DisplayLink: "b.org", QueryTime: "2026-03-01 10:00:00"},
		{Rank: 3, DisplayLink: "c.net", QueryTime: snapshot.UnknownTime},
	})

	frames := RankFrames(table)
	if len(frames) != 2 {
		t.Fatalf("len(frames) = %d, want 2", len(frames))
	}

	gotOrder := []string{frames[0].Timestamp, frames[1].Timestamp}
	wantOrder := []string{"2026-03-01 10:00:00", "2026-03-01 10:05:00"}
	if !reflect.DeepEqual(gotOrder, wantOrder) {
		t.Errorf("frame order = %v, want %v", gotOrder, wantOrder)
	}

	if len(frames[0].Points) != 2 {
		t.Errorf("first frame has %d points, want 2", len(frames[0].Points))
	}
	if len(frames[1].Points) != 1 {
		t.Errorf("second frame has %d points, want 1", len(frames[1].Points))
	}

	// Unknown-timestamp rows never appear in frames.
	for _, f := range frames {
		for _, p := range f.Points {
			if p.Domain == "c.net" {
				t.Error("sentinel-timestamp row leaked into a frame")
			}
		}
	}
}

func TestTitleLengthPointsPreserveOrder(t *testing.T) {
	table := snapshot.New([]types.Result{
		{Rank: 1, DisplayLink: "a.com", TitleLength: 20, BubbleSize: 30},
		{Rank: 2, DisplayLink: "b.org", TitleLength: 45, BubbleSize: 42},
	})

	points := TitleLengthPoints(table)
	if len(points) != 2 {
		t.Fatalf("len(points) = %d, want 2", len(points))
	}
	if points[0].Domain != "a.com" || points[1].Domain != "b.org" {
		t.Errorf("points out of order: %v", points)
	}
	if points[1].TitleLength != 45 || points[1].Rank != 2 {
		t.Errorf("point fields wrong: %+v", points[1])
	}
}

func TestWordFrequencies(t *testing.T) {
	table := snapshot.New([]types.Result{
		{Title: "Proxy setup guide for the impatient"},
		{Title: "Proxy benchmarks: proxy vs direct"},
		{Title: "Setup notes"},
	})

	words := WordFrequencies(table, 0)

	counts := make(map[string]int, len(words))
	for _, w := range words {
		counts[w.Word] = w.Count
	}
	if counts["proxy"] != 3 {
		t.Errorf("proxy count = %d, want 3", counts["proxy"])
	}
	if counts["setup"] != 2 {
		t.Errorf("setup count = %d, want 2", counts["setup"])
	}
	if _, ok := counts["the"]; ok {
		t.Error("stopword survived tokenization")
	}
	if _, ok := counts["vs"]; !ok {
		t.Error("two-letter non-stopword dropped")
	}

	// Most frequent first.
	if words[0].Word != "proxy" {
		t.Errorf("words[0] = %q, want proxy", words[0].Word)
	}
}

func TestWordFrequenciesLimit(t *testing.T) {
	table := snapshot.New([]types.Result{
		{Title: "alpha beta gamma delta epsilon"},
	})
	words := WordFrequencies(table, 2)
	if len(words) != 2 {
		t.Errorf("len(words) = %d, want 2", len(words))
	}
	// Equal counts break ties alphabetically.
	if words[0].Word != "alpha" || words[1].Word != "beta" {
		t.Errorf("tie-break order wrong: %v", words)
	}
}
