// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the market-scout pipeline.
package types

// Result represents one normalized search hit returned by the provider.
// Results keep the provider's ranking order; only the Selected flag changes
// after creation, when the user marks rows for export.
type Result struct {
	// Selected marks the result for export. Always false on a fresh search.
	Selected bool `json:"selected" yaml:"selected"`

	// Title is the result title, or "No title" when the provider omits it.
	Title string `json:"title" yaml:"title"`

	// Summary is the result snippet, truncated to the configured word count.
	Summary string `json:"summary" yaml:"summary"`

	// URL is the result link, or "No URL available" when the provider omits it.
	URL string `json:"url" yaml:"url"`
}
