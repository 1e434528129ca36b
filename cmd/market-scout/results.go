// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pleabargain/market-scout/internal/search"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show the current session's results and selection marks",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		sess, err := store.Load(cmd.Context())
		if err != nil {
			return err
		}

		if asJSON {
			return search.FormatJSON(sess.Results, os.Stdout)
		}

		fmt.Fprintf(os.Stdout, "Query: %s\n", sess.Query)
		if len(sess.Regions) > 0 {
			fmt.Fprintf(os.Stdout, "Regions: %s\n", strings.Join(sess.Regions, ", "))
		}
		fmt.Fprintf(os.Stdout, "Searched: %s\n\n", sess.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		search.FormatTable(sess.Results, os.Stdout)
		return nil
	},
}

func init() {
	resultsCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(resultsCmd)
}
