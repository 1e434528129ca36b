// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the market-scout CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pleabargain/market-scout/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the market-scout CLI.
var rootCmd = &cobra.Command{
	Use:   "market-scout",
	Short: "Regional market-research web search with selection export",
	Long: `market-scout composes a web search from region and topic facets plus free
text, runs it against SerpAPI, and stores the results as the current session.
The user then marks individual results and exports the selection to a
timestamped CSV file.

Workflow: search, then select/deselect by rank, then export. The session
persists between invocations; each new search replaces it.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./market-scout.yaml or ~/.config/market-scout/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("market-scout")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "market-scout"))
		}
	}

	viper.SetEnvPrefix("MARKET_SCOUT")
	viper.AutomaticEnv()

	// SERPAPI_KEY is the conventional environment variable for the key, so
	// bind it alongside the prefixed form.
	viper.BindEnv("api_key", "MARKET_SCOUT_API_KEY", "SERPAPI_KEY")

	viper.SetDefault("max_results", 10)
	viper.SetDefault("summary_words", 50)
	viper.SetDefault("timeout", "30s")
	viper.SetDefault("user_agent", "market-scout/0.1")
	viper.SetDefault("export_dir", ".")
	viper.SetDefault("session_db", "market-scout.db")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
