package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var batchCommand = &cobra.Command{
	Use:   "batch <companies-file>",
	Short: "Analyze every company listed in a file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Batch analysis feature coming soon!")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(batchCommand)
}
