// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "techstack",
	Short: "A CLI tool to summarize a GitHub user's profile and tech stack.",
	Long: `techstack fetches a GitHub user's public profile and their most recently
updated repositories, estimates which languages they use most, and lists
their most popular repositories.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Persistent flags available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("config", "", "Path to a config file (default: techstack.yaml in . ./config ~/.config/techstack)")
}
