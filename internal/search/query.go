// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"strings"

	"github.com/pleabargain/market-scout/internal/catalog"
)

// BuildQuery assembles the provider query string from the chosen facets and
// free text. Topic phrases come first, then a single OR-joined clause of
// "in {Region}" terms, then the trimmed free text, all space-joined. Facets
// are emitted in catalog order regardless of selection order, so the same
// inputs always produce the same query. Empty inputs yield an empty string.
func BuildQuery(cat catalog.Catalog, selectedRegions, selectedTopics []string, additionalTerms string) string {
	regionSet := toSet(selectedRegions)
	topicSet := toSet(selectedTopics)

	var parts []string
	for _, t := range cat.Topics {
		if topicSet[t.Key] {
			parts = append(parts, t.Phrase)
		}
	}

	var regionTerms []string
	for _, r := range cat.Regions {
		if regionSet[r.Name] {
			regionTerms = append(regionTerms, "in "+r.Name)
		}
	}
	if len(regionTerms) > 0 {
		parts = append(parts, strings.Join(regionTerms, " OR "))
	}

	if terms := strings.TrimSpace(additionalTerms); terms != "" {
		parts = append(parts, terms)
	}

	return strings.Join(parts, " ")
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
