// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package serp

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/pdiddy/serptrack/pkg/types"
)

func TestParseQueries(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"single", "widgets", []string{"widgets"}},
		{"multiple", "widgets,gadgets", []string{"widgets", "gadgets"}},
		{"trims whitespace", " widgets , gadgets ", []string{"widgets", "gadgets"}},
		{"drops empties", "widgets,,gadgets,", []string{"widgets", "gadgets"}},
		{"dedupes keep first", "widgets,gadgets,widgets", []string{"widgets", "gadgets"}},
		{"empty input", "", nil},
		{"only commas", ",,,", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseQueries(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseQueries(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// fakeProvider returns canned results per query, or errors on a named query.
type fakeProvider struct {
	results  map[string][]types.Result
	failOn   string
	searches []string
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Search(ctx context.Context, query string, cfg types.TrackConfig) ([]types.Result, error) {
	f.searches = append(f.searches, query)
	if query == f.failOn {
		return nil, fmt.Errorf("boom")
	}
	return f.results[query], nil
}

func TestFetchSnapshotConcatenatesQueries(t *testing.T) {
	p := &fakeProvider{results: map[string][]types.Result{
		"widgets": {{Rank: 1, Title: "w1"}, {Rank: 2, Title: "w2"}},
		"gadgets": {{Rank: 1, Title: "g1"}},
	}}

	got, err := FetchSnapshot(context.Background(), p, []string{"widgets", "gadgets"}, types.TrackConfig{})
	if err != nil {
		t.Fatalf("FetchSnapshot: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[2].Title != "g1" {
		t.Errorf("results out of order: got %q last", got[2].Title)
	}
	if !reflect.DeepEqual(p.searches, []string{"widgets", "gadgets"}) {
		t.Errorf("searches = %v", p.searches)
	}
}

func TestFetchSnapshotFailureAborts(t *testing.T) {
	p := &fakeProvider{
		results: map[string][]types.Result{"widgets": {{Rank: 1}}},
		failOn:  "gadgets",
	}

	_, err := FetchSnapshot(context.Background(), p, []string{"widgets", "gadgets"}, types.TrackConfig{})
	if err == nil {
		t.Fatal("expected error")
	}
	// The failing query must be named.
	if want := `query "gadgets"`; !strings.Contains(err.Error(), want) {
		t.Errorf("error %q missing %q", err.Error(), want)
	}
}

func TestFetchSnapshotNoQueries(t *testing.T) {
	if _, err := FetchSnapshot(context.Background(), &fakeProvider{}, nil, types.TrackConfig{}); err == nil {
		t.Fatal("expected error for empty query list")
	}
}

func TestDisplayLink(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://www.example.com/page", "example.com"},
		{"https://sub.example.org/a/b", "sub.example.org"},
		{"not a url", "not a url"},
	}
	for _, tt := range tests {
		if got := displayLink(tt.in); got != tt.want {
			t.Errorf("displayLink(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
