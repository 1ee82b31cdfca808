package main

import (
	"fmt"

	"github.com/cardio-onc/qtwizard"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of qtwizard",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "qtwizard version %s\n", qtwizard.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
