// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var selectCmd = &cobra.Command{
	Use:   "select <rank>...",
	Short: "Mark results for export by rank",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setSelection(cmd, args, true)
	},
}

var deselectCmd = &cobra.Command{
	Use:   "deselect <rank>...",
	Short: "Unmark results by rank",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setSelection(cmd, args, false)
	},
}

func setSelection(cmd *cobra.Command, args []string, selected bool) error {
	ranks, err := parseRanks(args)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SetSelected(cmd.Context(), ranks, selected); err != nil {
		return err
	}

	verb := "Selected"
	if !selected {
		verb = "Deselected"
	}
	fmt.Printf("%s %d result(s).\n", verb, len(ranks))
	return nil
}

// parseRanks converts the argument list into 1-based result ranks.
func parseRanks(args []string) ([]int, error) {
	ranks := make([]int, 0, len(args))
	for _, arg := range args {
		rank, err := strconv.Atoi(arg)
		if err != nil || rank < 1 {
			return nil, fmt.Errorf("invalid rank %q: expected a positive integer", arg)
		}
		ranks = append(ranks, rank)
	}
	return ranks, nil
}

func init() {
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(deselectCmd)
}
