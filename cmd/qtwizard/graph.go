package main

import (
	"fmt"

	"github.com/cardio-onc/qtwizard/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the checklist graph visualization",
	Long:  `Outputs a Mermaid diagram (graph TD) of default-next and option edges.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := setup(cmd)
		if err != nil {
			return err
		}

		var overlay *graph.GraphOverlay
		if cmd.Flags().Changed("current") {
			current, _ := cmd.Flags().GetInt("current")
			overlay = &graph.GraphOverlay{CurrentStep: current, HasCurrent: true}
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(app.Document.Registry, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Int("current", 0, "Highlight this step")
}
