// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pleabargain/market-scout/pkg/types"
)

// QueryFile is the on-disk snapshot of a search and its results. The user can
// save a search to a file and reload it later without re-querying the
// provider.
type QueryFile struct {
	Query   QueryParams    `yaml:"query"`
	Config  QueryFileConfig `yaml:"config"`
	Results []types.Result `yaml:"results"`
	Summary QuerySummary   `yaml:"summary"`
}

// QueryParams stores the facet selections and the query they produced.
type QueryParams struct {
	Regions         []string `yaml:"regions,omitempty"`
	Topics          []string `yaml:"topics,omitempty"`
	AdditionalTerms string   `yaml:"additional_terms,omitempty"`
	Text            string   `yaml:"text"`
}

// QueryFileConfig stores the search configuration that produced the results.
type QueryFileConfig struct {
	MaxResults   int    `yaml:"max_results"`
	SummaryWords int    `yaml:"summary_words"`
	RegionCode   string `yaml:"region_code,omitempty"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	Total         int       `yaml:"total"`
	ProviderError string    `yaml:"provider_error,omitempty"`
	Timestamp     time.Time `yaml:"timestamp"`
}

// WriteQueryFile saves a search snapshot to a YAML file.
func WriteQueryFile(path string, params QueryParams, regionCode string, cfg types.SearchConfig, out Output) error {
	qf := QueryFile{
		Query: params,
		Config: QueryFileConfig{
			MaxResults:   cfg.MaxResults,
			SummaryWords: cfg.SummaryWords,
			RegionCode:   regionCode,
		},
		Results: out.Results,
		Summary: QuerySummary{
			Total:         len(out.Results),
			ProviderError: out.ProviderError,
			Timestamp:     time.Now(),
		},
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved search snapshot from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}
