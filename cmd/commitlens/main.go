// Package main provides the entry point for the commitlens CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/commitlens/cmd/commitlens/commands"
	"github.com/Sumatoshi-tech/commitlens/pkg/version"
)

var (
	verbose bool
	quiet   bool
)

func main() {
	version.InitBinaryVersion()

	rootCmd := &cobra.Command{
		Use:   "commitlens",
		Short: "commitlens - commit language and habit analytics",
		Long: `commitlens classifies the language of each commit in a payload, derives
commit habit statistics and lays out the dashboard charts.

Commands:
  analyze   Classify commits and render the dashboard
  validate  Check a commit payload against the commit schema
  schema    Print the JSON schema of the geometry output`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output")

	rootCmd.AddCommand(commands.NewAnalyzeCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewSchemaCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
