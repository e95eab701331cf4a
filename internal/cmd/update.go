package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zevwings/workflow/internal/settings"
	"github.com/zevwings/workflow/internal/update"
)

func newUpdateCmd(currentVersion string) *cobra.Command {
	var (
		targetVersion string
		assumeYes     bool
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update workflow to the latest release",
		Long: `Download the latest release (or a specific version), verify it, and
install it over the current installation.

The previously installed binaries and completion scripts are backed up
before anything is replaced; if installation or verification fails, the
backup is restored automatically.

Examples:
  workflow update                  # Update to the latest release
  workflow update --version 1.2.0  # Install a specific version
  workflow update --yes            # Skip the confirmation prompt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := settings.Load()
			if err != nil {
				return err
			}

			orch := update.NewOrchestrator(currentVersion, st)
			orch.AssumeYes = assumeYes
			return orch.Run(targetVersion)
		},
	}

	cmd.Flags().StringVar(&targetVersion, "version", "", "Version to install (default: latest release)")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
