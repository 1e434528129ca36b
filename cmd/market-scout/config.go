// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/pleabargain/market-scout/internal/catalog"
	"github.com/pleabargain/market-scout/internal/session"
	"github.com/pleabargain/market-scout/pkg/types"
)

// searchConfig assembles the search configuration from viper.
func searchConfig() types.SearchConfig {
	return types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("timeout"),
			UserAgent: viper.GetString("user_agent"),
		},
		MaxResults:   viper.GetInt("max_results"),
		SummaryWords: viper.GetInt("summary_words"),
	}
}

// loadCatalog returns the facet catalogs, with config-file overrides applied
// when the regions or topics keys are present.
func loadCatalog() (catalog.Catalog, error) {
	cat := catalog.Default()

	if viper.IsSet("regions") {
		var regions []catalog.Region
		if err := viper.UnmarshalKey("regions", &regions); err != nil {
			return cat, fmt.Errorf("parsing regions from config: %w", err)
		}
		if len(regions) > 0 {
			cat.Regions = regions
		}
	}

	if viper.IsSet("topics") {
		var topics []catalog.Topic
		if err := viper.UnmarshalKey("topics", &topics); err != nil {
			return cat, fmt.Errorf("parsing topics from config: %w", err)
		}
		if len(topics) > 0 {
			cat.Topics = topics
		}
	}

	return cat, nil
}

// openStore opens the session database configured under session_db.
func openStore() (*session.Store, error) {
	return session.Open(types.SessionConfig{Path: viper.GetString("session_db")})
}

// resolveAPIKey picks the SerpAPI key by precedence: the --api-key flag, then
// the environment or config file (SERPAPI_KEY included), then .secrets/.
func resolveAPIKey(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := viper.GetString("api_key"); v != "" {
		return v
	}
	return loadedSecrets["serpapi-api-key"]
}

// splitList parses a comma-separated flag value into trimmed, non-empty items.
func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
