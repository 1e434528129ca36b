// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pleabargain/market-scout/internal/httputil"
	"github.com/pleabargain/market-scout/pkg/types"
)

// serpAPIBase is the SerpAPI search endpoint. Declared as a var so tests can
// substitute an httptest server.
var serpAPIBase = "https://serpapi.com/search"

const serpEngine = "google"

// Placeholder values for provider hits missing a field.
const (
	noTitle   = "No title"
	noSummary = "No summary available"
	noURL     = "No URL available"
)

// SerpAPIProvider queries SerpAPI's Google engine.
type SerpAPIProvider struct {
	Client *http.Client
	APIKey string
}

// Name returns the provider identifier.
func (p *SerpAPIProvider) Name() string { return "serpapi" }

// Search issues one request to SerpAPI and returns up to maxResults organic
// hits as normalized results, in the provider's ranking order. A non-empty
// regionCode adds the geo parameters (gl plus hl=en).
func (p *SerpAPIProvider) Search(ctx context.Context, query, regionCode string, cfg types.SearchConfig) ([]types.Result, error) {
	if query == "" {
		return nil, fmt.Errorf("empty SerpAPI query")
	}
	if p.APIKey == "" {
		return nil, fmt.Errorf("missing SerpAPI key")
	}

	maxResults := clampResults(cfg.MaxResults)

	params := url.Values{
		"q":       {query},
		"api_key": {p.APIKey},
		"engine":  {serpEngine},
		"num":     {fmt.Sprintf("%d", maxResults)},
	}
	if regionCode != "" {
		params.Set("gl", regionCode)
		params.Set("hl", "en")
	}

	reqURL := serpAPIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, p.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("SerpAPI request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("SerpAPI returned HTTP %d", resp.StatusCode)
	}

	var sr serpResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing SerpAPI response: %w", err)
	}

	hits := sr.OrganicResults
	if len(hits) > maxResults {
		hits = hits[:maxResults]
	}

	results := make([]types.Result, 0, len(hits))
	for _, hit := range hits {
		r := types.Result{
			Title:   hit.Title,
			Summary: hit.Snippet,
			URL:     hit.Link,
		}
		if r.Title == "" {
			r.Title = noTitle
		}
		if r.Summary == "" {
			r.Summary = noSummary
		}
		if r.URL == "" {
			r.URL = noURL
		}
		r.Summary = TruncateSummary(r.Summary, cfg.SummaryWords)
		results = append(results, r)
	}
	return results, nil
}

// clampResults bounds the requested result count to SerpAPI's 1..20 window,
// defaulting to 10 when unset.
func clampResults(n int) int {
	switch {
	case n <= 0:
		return 10
	case n > 20:
		return 20
	default:
		return n
	}
}

// SerpAPI JSON structures. Only the organic results are consumed; the rest of
// the payload is ignored.
type serpResponse struct {
	OrganicResults []serpHit `json:"organic_results"`
}

type serpHit struct {
	Position int    `json:"position"`
	Title    string `json:"title"`
	Snippet  string `json:"snippet"`
	Link     string `json:"link"`
}
