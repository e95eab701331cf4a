// Package cmd contains all CLI commands for workflow.
package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/zevwings/workflow/internal/logging"
	"github.com/zevwings/workflow/internal/output"
)

var (
	verbose bool
	quiet   bool
)

// Execute builds the command tree and runs it.
func Execute(version, commit, date string) error {
	rootCmd := &cobra.Command{
		Use:          "workflow",
		Short:        "Developer workflow CLI",
		Long:         "workflow streamlines everyday development tasks and keeps itself up to date.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logging.SetVerbose()
			}
			if quiet {
				logging.SetQuiet()
				output.SetQuiet(true)
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")

	rootCmd.AddCommand(newUpdateCmd(version))
	rootCmd.AddCommand(newVersionCmd(version, commit, date))
	rootCmd.AddCommand(newCompletionCmd())

	return fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s (%s, built %s)", version, commit, date)),
	)
}
