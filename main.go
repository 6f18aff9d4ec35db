package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var configPath string

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "moodwell",
		Short:   "Mood-aware wellness companion",
		Long:    `moodwell serves a mood-aware chat, the Mind Mirror journal and the Lowlands checklist from local storage.`,
		Version: version,
		// Running without a subcommand starts the server.
		RunE:          runServe,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "moodwell.json", "path to the config file")
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newSessionsCommand())
	rootCmd.AddCommand(newPatternsCommand())
	rootCmd.AddCommand(newLowlandsCommand())

	return rootCmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
