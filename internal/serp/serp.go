// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package serp queries search-engine results APIs and returns ranked
// result entries. Each provider (Google Custom Search, Serper) implements
// the Provider interface per the Strategy pattern.
package serp

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/serptrack/pkg/types"
)

// Provider fetches the ranked results for a single query phrase. The
// returned entries carry 1-based ranks and a capture timestamp in the
// canonical queryTime layout.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, cfg types.TrackConfig) ([]types.Result, error)
}

// ParseQueries splits a comma-separated query list into an ordered set of
// distinct trimmed phrases. Empty phrases are dropped; the first occurrence
// of a duplicate wins.
func ParseQueries(input string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, part := range strings.Split(input, ",") {
		q := strings.TrimSpace(part)
		if q == "" {
			continue
		}
		if _, ok := seen[q]; ok {
			continue
		}
		seen[q] = struct{}{}
		out = append(out, q)
	}
	return out
}

// FetchSnapshot queries the provider once per phrase, in order, and returns
// the concatenated entries. A failure on any phrase aborts the snapshot and
// propagates; entries from earlier phrases are discarded with it.
func FetchSnapshot(ctx context.Context, p Provider, queries []string, cfg types.TrackConfig) ([]types.Result, error) {
	if len(queries) == 0 {
		return nil, fmt.Errorf("no queries: provide at least one search phrase")
	}

	var all []types.Result
	for _, q := range queries {
		results, err := p.Search(ctx, q, cfg)
		if err != nil {
			return nil, fmt.Errorf("%s: query %q: %w", p.Name(), q, err)
		}
		all = append(all, results...)
	}
	return all, nil
}
