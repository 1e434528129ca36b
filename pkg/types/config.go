// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "market-scout/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the number of organic results to request, between 1
	// and 20 (default 10). Values outside the range are clamped.
	MaxResults int `json:"max_results" yaml:"max_results"`

	// SummaryWords is the word count summaries are truncated to (default 50).
	SummaryWords int `json:"summary_words" yaml:"summary_words"`
}

// ExportConfig holds settings for the selection export stage.
type ExportConfig struct {
	// Dir is the directory export files are written to (default ".").
	Dir string `json:"dir" yaml:"dir"`
}

// SessionConfig holds settings for the session store.
type SessionConfig struct {
	// Path is the SQLite database file holding the current session.
	Path string `json:"path" yaml:"path"`
}
