// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog holds the fixed region and topic facets a search query is
// composed from. The catalogs are ordered value types injected at startup so
// that tests can substitute smaller ones and a config file can override the
// defaults; query construction always follows catalog order, not the order
// the user picked facets in.
package catalog

import (
	"fmt"
	"strings"
)

// Region maps a display name to the provider's two-letter geo code.
type Region struct {
	Name string `yaml:"name" mapstructure:"name"`
	Code string `yaml:"code" mapstructure:"code"`
}

// Topic maps a short facet key to the expanded phrase sent to the provider.
type Topic struct {
	Key    string `yaml:"key" mapstructure:"key"`
	Phrase string `yaml:"phrase" mapstructure:"phrase"`
}

// Catalog holds the region and topic facets in display order.
type Catalog struct {
	Regions []Region
	Topics  []Topic
}

// Default returns the built-in facet catalogs.
func Default() Catalog {
	return Catalog{
		Regions: []Region{
			{Name: "Poland", Code: "pl"},
			{Name: "Czech Republic", Code: "cz"},
			{Name: "Romania", Code: "ro"},
			{Name: "France", Code: "fr"},
			{Name: "Saudi Arabia", Code: "sa"},
		},
		Topics: []Topic{
			{Key: "luxury travel market", Phrase: "luxury travel market trends analysis"},
			{Key: "outbound luxury travel", Phrase: "outbound luxury travel market trends analysis"},
			{Key: "airline news", Phrase: "airline industry news updates"},
			{Key: "exclusive travel", Phrase: "exclusive VIP travel experiences premium"},
		},
	}
}

// RegionCode returns the geo code for a region display name.
func (c Catalog) RegionCode(name string) (string, bool) {
	for _, r := range c.Regions {
		if r.Name == name {
			return r.Code, true
		}
	}
	return "", false
}

// TopicPhrase returns the expanded phrase for a topic key.
func (c Catalog) TopicPhrase(key string) (string, bool) {
	for _, t := range c.Topics {
		if t.Key == key {
			return t.Phrase, true
		}
	}
	return "", false
}

// ValidateRegions checks that every name is a catalog region. Matching is
// case-insensitive on input; the returned names are in canonical catalog
// casing, in the order given.
func (c Catalog) ValidateRegions(names []string) ([]string, error) {
	canonical := make([]string, 0, len(names))
	for _, name := range names {
		found := ""
		for _, r := range c.Regions {
			if strings.EqualFold(r.Name, name) {
				found = r.Name
				break
			}
		}
		if found == "" {
			return nil, fmt.Errorf("unknown region %q (known: %s)", name, strings.Join(c.RegionNames(), ", "))
		}
		canonical = append(canonical, found)
	}
	return canonical, nil
}

// ValidateTopics checks that every key is a catalog topic. Matching is
// case-insensitive on input; the returned keys are in canonical catalog
// casing, in the order given.
func (c Catalog) ValidateTopics(keys []string) ([]string, error) {
	canonical := make([]string, 0, len(keys))
	for _, key := range keys {
		found := ""
		for _, t := range c.Topics {
			if strings.EqualFold(t.Key, key) {
				found = t.Key
				break
			}
		}
		if found == "" {
			return nil, fmt.Errorf("unknown topic %q (known: %s)", key, strings.Join(c.TopicKeys(), ", "))
		}
		canonical = append(canonical, found)
	}
	return canonical, nil
}

// RegionNames returns the region display names in catalog order.
func (c Catalog) RegionNames() []string {
	names := make([]string, len(c.Regions))
	for i, r := range c.Regions {
		names[i] = r.Name
	}
	return names
}

// TopicKeys returns the topic keys in catalog order.
func (c Catalog) TopicKeys() []string {
	keys := make([]string, len(c.Topics))
	for i, t := range c.Topics {
		keys[i] = t.Key
	}
	return keys
}
