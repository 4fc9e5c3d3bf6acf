// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package serp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/serptrack/internal/httputil"
	"github.com/pdiddy/serptrack/internal/secrets"
	"github.com/pdiddy/serptrack/internal/snapshot"
	"github.com/pdiddy/serptrack/pkg/types"
)

// serperBase is the Serper search endpoint. Declared as a var so tests can
// substitute an httptest server.
var serperBase = "https://google.serper.dev/search"

// Serper queries the serper.dev Google results API. It is an alternative
// provider for operators without Custom Search credentials.
type Serper struct {
	Client *http.Client
	APIKey string

	now func() time.Time
}

// NewSerper builds the provider from loaded secrets, failing with the name
// of the missing key when the credential is absent.
func NewSerper(client *http.Client, loaded map[string]string) (*Serper, error) {
	apiKey := loaded[secrets.KeySerperAPIKey]
	if apiKey == "" {
		return nil, fmt.Errorf("missing credential %q: add it to the secrets directory", secrets.KeySerperAPIKey)
	}
	return &Serper{Client: client, APIKey: apiKey, now: time.Now}, nil
}

// Name returns the provider identifier.
func (s *Serper) Name() string { return "serper" }

// Search fetches ranked organic results for the query.
func (s *Serper) Search(ctx context.Context, query string, cfg types.TrackConfig) ([]types.Result, error) {
	num := cfg.ResultsPerQuery
	if num <= 0 {
		num = 10
	}

	payload, err := json.Marshal(map[string]any{"q": query, "num": num})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, serperBase, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("X-API-KEY", s.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, s.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Serper API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Serper API returned HTTP %d", resp.StatusCode)
	}

	var sr serperResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing Serper response: %w", err)
	}

	queryTime := s.clock().Format(snapshot.TimeLayout)

	results := make([]types.Result, 0, len(sr.Organic))
	for i, item := range sr.Organic {
		if i >= num {
			break
		}
		rank := item.Position
		if rank == 0 {
			rank = i + 1
		}
		results = append(results, types.Result{
			Rank:        rank,
			DisplayLink: displayLink(item.Link),
			Title:       item.Title,
			Link:        item.Link,
			Snippet:     item.Snippet,
			SearchTerms: query,
			QueryTime:   queryTime,
		})
	}
	return results, nil
}

func (s *Serper) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

// displayLink reduces a full URL to its bare host, mirroring the
// displayLink field of the Custom Search API.
func displayLink(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return strings.TrimPrefix(u.Host, "www.")
}

// Serper API JSON structures.
type serperResponse struct {
	Organic []serperOrganic `json:"organic"`
}

type serperOrganic struct {
	Title    string `json:"title"`
	Link     string `json:"link"`
	Snippet  string `json:"snippet"`
	Position int    `json:"position"`
}
