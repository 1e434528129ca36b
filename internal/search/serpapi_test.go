// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pleabargain/market-scout/pkg/types"
)

func testCfg() types.SearchConfig {
	return types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   10 * time.Second,
			UserAgent: "test/0.1",
		},
		MaxResults:   10,
		SummaryWords: 50,
	}
}

func newSerpServer(t *testing.T, body string, capture **http.Request) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if capture != nil {
			*capture = r.Clone(r.Context())
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(ts.Close)

	old := serpAPIBase
	serpAPIBase = ts.URL
	t.Cleanup(func() { serpAPIBase = old })

	return ts
}

// --- Request construction (URL params) ---

func TestSerpAPIRequestParams(t *testing.T) {
	var capturedReq *http.Request
	ts := newSerpServer(t, `{"organic_results":[]}`, &capturedReq)

	cfg := testCfg()
	cfg.MaxResults = 15

	p := &SerpAPIProvider{Client: ts.Client(), APIKey: "sk_test"}
	_, err := p.Search(context.Background(), "luxury travel in Poland", "pl", cfg)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	q := capturedReq.URL.Query()

	if got := q.Get("q"); got != "luxury travel in Poland" {
		t.Errorf("q param = %q", got)
	}
	if got := q.Get("api_key"); got != "sk_test" {
		t.Errorf("api_key param = %q", got)
	}
	if got := q.Get("engine"); got != "google" {
		t.Errorf("engine param = %q, want %q", got, "google")
	}
	if got := q.Get("num"); got != "15" {
		t.Errorf("num param = %q, want %q", got, "15")
	}
	if got := q.Get("gl"); got != "pl" {
		t.Errorf("gl param = %q, want %q", got, "pl")
	}
	if got := q.Get("hl"); got != "en" {
		t.Errorf("hl param = %q, want %q", got, "en")
	}
	if got := capturedReq.Header.Get("User-Agent"); got != "test/0.1" {
		t.Errorf("User-Agent = %q", got)
	}
}

func TestSerpAPIOmitsGeoParamsWithoutRegion(t *testing.T) {
	var capturedReq *http.Request
	ts := newSerpServer(t, `{"organic_results":[]}`, &capturedReq)

	p := &SerpAPIProvider{Client: ts.Client(), APIKey: "sk_test"}
	if _, err := p.Search(context.Background(), "airline news", "", testCfg()); err != nil {
		t.Fatalf("Search: %v", err)
	}

	q := capturedReq.URL.Query()
	if q.Has("gl") || q.Has("hl") {
		t.Errorf("geo params present without a region: gl=%q hl=%q", q.Get("gl"), q.Get("hl"))
	}
}

// --- Response normalization ---

func TestSerpAPINormalizesHits(t *testing.T) {
	body := `{"organic_results":[
		{"position":1,"title":"First","snippet":"one two three","link":"https://a.example"},
		{"position":2,"title":"Second","snippet":"four five","link":"https://b.example"}
	]}`
	ts := newSerpServer(t, body, nil)

	p := &SerpAPIProvider{Client: ts.Client(), APIKey: "sk_test"}
	results, err := p.Search(context.Background(), "q", "", testCfg())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	// Provider order preserved, no re-ranking.
	if results[0].Title != "First" || results[1].Title != "Second" {
		t.Errorf("order not preserved: %q, %q", results[0].Title, results[1].Title)
	}
	if results[0].Selected || results[1].Selected {
		t.Error("fresh results must not be selected")
	}
	if results[0].URL != "https://a.example" {
		t.Errorf("URL = %q", results[0].URL)
	}
}

func TestSerpAPIMissingFieldsGetPlaceholders(t *testing.T) {
	body := `{"organic_results":[
		{"position":1,"link":"https://only-link.example"},
		{"position":2,"title":"Only title"}
	]}`
	ts := newSerpServer(t, body, nil)

	p := &SerpAPIProvider{Client: ts.Client(), APIKey: "sk_test"}
	results, err := p.Search(context.Background(), "q", "", testCfg())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}

	if results[0].Title != "No title" {
		t.Errorf("missing title = %q, want %q", results[0].Title, "No title")
	}
	if results[0].Summary != "No summary available" {
		t.Errorf("missing snippet = %q, want %q", results[0].Summary, "No summary available")
	}
	if results[1].Summary != "No summary available" {
		t.Errorf("missing snippet = %q, want %q", results[1].Summary, "No summary available")
	}
	if results[1].URL != "No URL available" {
		t.Errorf("missing link = %q, want %q", results[1].URL, "No URL available")
	}
}

func TestSerpAPITruncatesSummaries(t *testing.T) {
	words := make([]string, 60)
	for i := range words {
		words[i] = fmt.Sprintf("w%d", i+1)
	}
	body := fmt.Sprintf(`{"organic_results":[{"title":"T","snippet":"%s","link":"https://x"}]}`,
		strings.Join(words, " "))
	ts := newSerpServer(t, body, nil)

	cfg := testCfg()
	cfg.SummaryWords = 5

	p := &SerpAPIProvider{Client: ts.Client(), APIKey: "sk_test"}
	results, err := p.Search(context.Background(), "q", "", cfg)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got, want := results[0].Summary, "w1 w2 w3 w4 w5..."; got != want {
		t.Errorf("Summary = %q, want %q", got, want)
	}
}

func TestSerpAPICapsAtMaxResults(t *testing.T) {
	var hits []string
	for i := 0; i < 20; i++ {
		hits = append(hits, fmt.Sprintf(`{"position":%d,"title":"t%d","snippet":"s","link":"https://x/%d"}`, i+1, i+1, i+1))
	}
	body := `{"organic_results":[` + strings.Join(hits, ",") + `]}`
	ts := newSerpServer(t, body, nil)

	cfg := testCfg()
	cfg.MaxResults = 3

	p := &SerpAPIProvider{Client: ts.Client(), APIKey: "sk_test"}
	results, err := p.Search(context.Background(), "q", "", cfg)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("len(results) = %d, want 3", len(results))
	}
}

// --- Failure modes ---

func TestSerpAPINon200IsError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer ts.Close()

	old := serpAPIBase
	serpAPIBase = ts.URL
	defer func() { serpAPIBase = old }()

	p := &SerpAPIProvider{Client: ts.Client(), APIKey: "sk_bad"}
	_, err := p.Search(context.Background(), "q", "", testCfg())
	if err == nil {
		t.Fatal("Search() succeeded on HTTP 401")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("error %q should carry the status code", err)
	}
}

func TestSerpAPIMalformedJSONIsError(t *testing.T) {
	ts := newSerpServer(t, `{"organic_results": "not an array"`, nil)

	p := &SerpAPIProvider{Client: ts.Client(), APIKey: "sk_test"}
	if _, err := p.Search(context.Background(), "q", "", testCfg()); err == nil {
		t.Fatal("Search() succeeded on malformed JSON")
	}
}

func TestSerpAPIEmptyQueryIsError(t *testing.T) {
	p := &SerpAPIProvider{Client: http.DefaultClient, APIKey: "sk_test"}
	if _, err := p.Search(context.Background(), "", "", testCfg()); err == nil {
		t.Fatal("Search() accepted an empty query")
	}
}

func TestClampResults(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 10},
		{-5, 10},
		{1, 1},
		{20, 20},
		{25, 20},
	}
	for _, tt := range tests {
		if got := clampResults(tt.in); got != tt.want {
			t.Errorf("clampResults(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
