package main

import (
	"fmt"

	"github.com/cardio-onc/qtwizard/internal/validator"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the content for consistency",
	Long:  `Reports dead step pointers and steps no option or default next leads to.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := setup(cmd)
		if err != nil {
			return err
		}

		report := validator.ValidateRegistry(app.Document.Registry)
		fmt.Fprint(cmd.OutOrStdout(), report.String())
		if !report.OK() {
			return fmt.Errorf("validation failed with %d errors", len(report.Errors))
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Content is valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
