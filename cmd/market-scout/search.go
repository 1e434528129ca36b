// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pleabargain/market-scout/internal/search"
	"github.com/pleabargain/market-scout/internal/session"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run a facet-based web search and store it as the current session",
	Long: `Search builds a provider query from the chosen region and topic facets plus
any free-text terms, runs it against SerpAPI, and prints the results. The
results replace the current session; use select and export to mark rows and
write them to CSV.

Region and topic names must come from the catalogs (see market-scout.yaml to
override them). Facets are combined in catalog order, so the same selection
always produces the same query.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		regionsFlag, _ := cmd.Flags().GetString("regions")
		topicsFlag, _ := cmd.Flags().GetString("topics")
		terms, _ := cmd.Flags().GetString("terms")
		maxResults, _ := cmd.Flags().GetInt("max-results")
		apiKeyFlag, _ := cmd.Flags().GetString("api-key")
		asJSON, _ := cmd.Flags().GetBool("json")
		outFile, _ := cmd.Flags().GetString("out")

		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		regions, err := cat.ValidateRegions(splitList(regionsFlag))
		if err != nil {
			return err
		}
		topics, err := cat.ValidateTopics(splitList(topicsFlag))
		if err != nil {
			return err
		}

		apiKey := resolveAPIKey(apiKeyFlag)
		if apiKey == "" {
			return fmt.Errorf("no SerpAPI key: pass --api-key, set SERPAPI_KEY, or add .secrets/serpapi-api-key")
		}
		if len(regions) == 0 && len(topics) == 0 && strings.TrimSpace(terms) == "" {
			return fmt.Errorf("select at least one region, topic, or search term")
		}

		query := search.BuildQuery(cat, regions, topics, terms)

		// The geo bias follows the first region the user picked.
		regionCode := ""
		if len(regions) > 0 {
			regionCode, _ = cat.RegionCode(regions[0])
		}

		cfg := searchConfig()
		if maxResults > 0 {
			cfg.MaxResults = maxResults
		}

		provider := &search.SerpAPIProvider{
			Client: &http.Client{Timeout: cfg.Timeout},
			APIKey: apiKey,
		}

		fmt.Fprintf(os.Stderr, "Query: %s\n", query)

		out, err := search.Search(cmd.Context(), provider, query, regionCode, cfg, os.Stderr)
		if err != nil {
			return err
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		sess := session.Session{
			Query:      query,
			Regions:    regions,
			RegionCode: regionCode,
			CreatedAt:  time.Now(),
			Results:    out.Results,
		}
		if err := store.Replace(cmd.Context(), sess); err != nil {
			return fmt.Errorf("storing session: %w", err)
		}

		if outFile != "" {
			params := search.QueryParams{
				Regions:         regions,
				Topics:          topics,
				AdditionalTerms: strings.TrimSpace(terms),
				Text:            query,
			}
			if err := search.WriteQueryFile(outFile, params, regionCode, cfg, out); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Saved query file: %s\n", outFile)
		}

		if asJSON {
			return search.FormatJSON(out.Results, os.Stdout)
		}
		search.FormatTable(out.Results, os.Stdout)
		return nil
	},
}

func init() {
	searchCmd.Flags().String("regions", "", "region facets (comma-separated catalog names)")
	searchCmd.Flags().String("topics", "", "topic facets (comma-separated catalog keys)")
	searchCmd.Flags().String("terms", "", "additional free-text search terms")
	searchCmd.Flags().Int("max-results", 0, "number of results to request, 1-20 (default from config)")
	searchCmd.Flags().String("api-key", "", "SerpAPI key (overrides SERPAPI_KEY and .secrets/)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().String("out", "", "also save the query and results to a YAML file")

	rootCmd.AddCommand(searchCmd)
}
