// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pleabargain/market-scout/internal/export"
	"github.com/pleabargain/market-scout/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the selected results to a timestamped CSV file",
	Long: `Export filters the current session to the rows marked with select and writes
them to a CSV file named after the regions, a sanitized query prefix, and a
timestamp. The file starts with a commented metadata block (query, regions,
timestamp) followed by the rows.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		if dir == "" {
			dir = viper.GetString("export_dir")
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		sess, err := store.Load(cmd.Context())
		if err != nil {
			return err
		}

		exporter := export.New(types.ExportConfig{Dir: dir})
		filename, err := exporter.Export(sess.Results, sess.Query, sess.Regions)
		if errors.Is(err, export.ErrNoSelection) {
			return fmt.Errorf("nothing to export: mark results first with market-scout select <rank>")
		}
		if err != nil {
			return err
		}

		fmt.Printf("Selected results saved to %s\n", filename)
		return nil
	},
}

func init() {
	exportCmd.Flags().String("dir", "", "output directory (default from config export_dir)")

	rootCmd.AddCommand(exportCmd)
}
