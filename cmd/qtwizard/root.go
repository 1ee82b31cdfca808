package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cardio-onc/qtwizard/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "qtwizard",
	Short: "QTcF assessment checklist for cardio-oncology",
	Long: `qtwizard walks a clinician through QTcF assessment one step at a time.
Options ending in "Proceed to Step N" jump straight to that step, and history
back/forward replays earlier steps.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a qtwizard YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("content", "", "Alternate YAML content file (default: built-in QTcF checklist)")
}

// setup loads the app from the persistent flags.
func setup(cmd *cobra.Command) (*cli.App, error) {
	configPath, _ := cmd.Flags().GetString("config")
	logLevel, _ := cmd.Flags().GetString("log-level")
	contentPath, _ := cmd.Flags().GetString("content")

	opts := cli.Options{
		ConfigPath:  configPath,
		LogLevel:    logLevel,
		ContentPath: contentPath,
	}
	if f := cmd.Flags().Lookup("plain"); f != nil {
		opts.Plain, _ = cmd.Flags().GetBool("plain")
	}
	return cli.Setup(opts)
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
