// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search builds provider queries from facet selections, runs them
// against the search provider, and normalizes the raw response into uniform
// result records.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pleabargain/market-scout/pkg/types"
)

// Provider issues one search request and returns normalized results. The
// single implementation is SerpAPIProvider; the interface exists so tests can
// substitute a fake.
type Provider interface {
	Name() string
	Search(ctx context.Context, query, regionCode string, cfg types.SearchConfig) ([]types.Result, error)
}

// Output holds the results of one search invocation. ProviderError carries
// the downgraded provider failure, if any, for display to the user.
type Output struct {
	Results       []types.Result
	ProviderError string
}

// Search runs query against the provider. Provider failures (network errors,
// non-2xx responses, malformed payloads) are downgraded to a warning on w and
// an empty result set; they never propagate as errors. Only an empty query is
// an error, since the caller is expected to validate input first.
func Search(ctx context.Context, p Provider, query, regionCode string, cfg types.SearchConfig, w io.Writer) (Output, error) {
	if strings.TrimSpace(query) == "" {
		return Output{}, fmt.Errorf("query is empty: select a region, topic, or enter search terms")
	}

	results, err := p.Search(ctx, query, regionCode, cfg)
	if err != nil {
		msg := fmt.Sprintf("%s: %v", p.Name(), err)
		fmt.Fprintf(w, "warning: provider %s failed: %v\n", p.Name(), err)
		return Output{ProviderError: msg}, nil
	}

	return Output{Results: results}, nil
}

// FormatTable writes results as a human-readable table to w. A selected row
// is marked with an x in the Sel column.
func FormatTable(results []types.Result, w io.Writer) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-3s  %-50s  %-60s  %s\n", "Rank", "Sel", "Title", "Summary", "URL")
	fmt.Fprintln(w, strings.Repeat("-", 130))

	for i, r := range results {
		sel := " "
		if r.Selected {
			sel = "x"
		}
		fmt.Fprintf(w, "%-4d  [%s]  %-50s  %-60s  %s\n",
			i+1, sel, clip(r.Title, 50), clip(r.Summary, 60), r.URL)
	}

	fmt.Fprintf(w, "\n%d results\n", len(results))
}

// FormatJSON writes results as indented JSON to w.
func FormatJSON(results []types.Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
