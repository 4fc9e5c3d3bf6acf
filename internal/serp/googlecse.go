// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package serp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pdiddy/serptrack/internal/httputil"
	"github.com/pdiddy/serptrack/internal/secrets"
	"github.com/pdiddy/serptrack/internal/snapshot"
	"github.com/pdiddy/serptrack/pkg/types"
)

// googleCSEBase is the Custom Search JSON API endpoint. Declared as a var
// so tests can substitute an httptest server.
var googleCSEBase = "https://www.googleapis.com/customsearch/v1"

// GoogleCSE queries the Google Custom Search JSON API. It requires an API
// key and a custom search engine identifier.
type GoogleCSE struct {
	Client *http.Client
	APIKey string
	CSEID  string

	// now stamps result capture times; tests substitute a fixed clock.
	now func() time.Time
}

// NewGoogleCSE builds the provider from loaded secrets. It fails before any
// network activity when a credential is absent, naming the missing key so
// the operator knows which secret to supply.
func NewGoogleCSE(client *http.Client, loaded map[string]string) (*GoogleCSE, error) {
	apiKey := loaded[secrets.KeyGoogleAPIKey]
	if apiKey == "" {
		return nil, fmt.Errorf("missing credential %q: add it to the secrets directory", secrets.KeyGoogleAPIKey)
	}
	cseID := loaded[secrets.KeyGoogleCSEID]
	if cseID == "" {
		return nil, fmt.Errorf("missing credential %q: add it to the secrets directory", secrets.KeyGoogleCSEID)
	}
	return &GoogleCSE{Client: client, APIKey: apiKey, CSEID: cseID, now: time.Now}, nil
}

// Name returns the provider identifier.
func (g *GoogleCSE) Name() string { return "googlecse" }

// Search fetches one page of ranked results for the query.
func (g *GoogleCSE) Search(ctx context.Context, query string, cfg types.TrackConfig) ([]types.Result, error) {
	num := cfg.ResultsPerQuery
	if num <= 0 {
		num = 10
	}
	if num > 10 {
		num = 10 // API page size cap
	}

	params := url.Values{
		"key": {g.APIKey},
		"cx":  {g.CSEID},
		"q":   {query},
		"num": {strconv.Itoa(num)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleCSEBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, g.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Custom Search API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Custom Search API returned HTTP %d", resp.StatusCode)
	}

	var gr googleCSEResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return nil, fmt.Errorf("parsing Custom Search response: %w", err)
	}

	searchTerms := query
	if len(gr.Queries.Request) > 0 && gr.Queries.Request[0].SearchTerms != "" {
		searchTerms = gr.Queries.Request[0].SearchTerms
	}
	totalResults, _ := strconv.ParseInt(gr.SearchInformation.TotalResults, 10, 64)

	queryTime := g.clock().Format(snapshot.TimeLayout)

	results := make([]types.Result, 0, len(gr.Items))
	for i, item := range gr.Items {
		results = append(results, types.Result{
			Rank:         i + 1,
			DisplayLink:  item.DisplayLink,
			Title:        item.Title,
			Link:         item.Link,
			Snippet:      item.Snippet,
			SearchTerms:  searchTerms,
			TotalResults: totalResults,
			SearchTime:   gr.SearchInformation.SearchTime,
			QueryTime:    queryTime,
		})
	}
	return results, nil
}

func (g *GoogleCSE) clock() time.Time {
	if g.now != nil {
		return g.now()
	}
	return time.Now()
}

// Custom Search JSON API structures.
type googleCSEResponse struct {
	Queries           googleCSEQueries    `json:"queries"`
	SearchInformation googleCSESearchInfo `json:"searchInformation"`
	Items             []googleCSEItem     `json:"items"`
}

type googleCSEQueries struct {
	Request []googleCSERequest `json:"request"`
}

type googleCSERequest struct {
	SearchTerms string `json:"searchTerms"`
	Count       int    `json:"count"`
	StartIndex  int    `json:"startIndex"`
}

type googleCSESearchInfo struct {
	SearchTime   float64 `json:"searchTime"`
	TotalResults string  `json:"totalResults"`
}

type googleCSEItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	DisplayLink string `json:"displayLink"`
	Snippet     string `json:"snippet"`
}
