package main

import (
	"os"

	"github.com/cardio-onc/qtwizard/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the interactive checklist",
	Long:  `Starts the wizard in the terminal. Type a number to choose an option, n/b for next/back, < and > for history, q to quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := setup(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := signalContext(cmd.Context())
		defer cancel()
		return cli.RunSession(ctx, app, os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("plain", false, "Disable markdown rendering")

	// 'run' is the default when no command is provided.
	rootCmd.RunE = runCmd.RunE
	rootCmd.Flags().Bool("plain", false, "Disable markdown rendering")
}
