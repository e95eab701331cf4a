package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zevwings/workflow/internal/output"
	"github.com/zevwings/workflow/internal/settings"
	"github.com/zevwings/workflow/internal/update"
)

// versionInfo is the structured payload for version --check -o json|yaml.
type versionInfo struct {
	Current   string `json:"current" yaml:"current"`
	Latest    string `json:"latest,omitempty" yaml:"latest,omitempty"`
	Available bool   `json:"update_available" yaml:"update_available"`
}

func newVersionCmd(version, commit, date string) *cobra.Command {
	var (
		check        bool
		outputFormat string
	)

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information and check for updates",
		Long: `Display the current workflow version and optionally check whether a newer
release is available.

Examples:
  workflow version          # Show current version
  workflow version --check  # Check if an update is available`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !check {
				fmt.Printf("workflow version %s (%s, built %s)\n", version, commit, date)
				return nil
			}
			return runVersionCheck(version, outputFormat)
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Check for updates without installing")
	cmd.Flags().StringVarP(&outputFormat, "output", "o", "text", "Output format: text, json, yaml")

	return cmd
}

func runVersionCheck(current, outputFormat string) error {
	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return err
	}

	st, err := settings.Load()
	if err != nil {
		return err
	}

	resolver := update.NewGitHubResolver(st.GitHub.Owner, st.GitHub.Repo)
	if st.GitHub.Token != "" {
		resolver.WithToken(st.GitHub.Token)
	}

	release, err := resolver.Latest()
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}

	info := versionInfo{
		Current:   update.Normalize(current),
		Latest:    update.Normalize(release.TagName),
		Available: update.Compare(update.Normalize(current), update.Normalize(release.TagName)) == update.NeedsUpdate,
	}

	if format != output.FormatText {
		return output.NewWriter(os.Stdout, format).Write(info)
	}

	output.Info("Current version: v%s", info.Current)
	output.Info("Latest version:  v%s", info.Latest)
	if !info.Available {
		output.Success("Already running the latest version")
		return nil
	}

	output.Info("Update available: v%s -> v%s", info.Current, info.Latest)
	if release.Body != "" {
		output.Break()
		output.Info("Release notes:")
		output.Info("%s", release.Body)
	}
	output.Break()
	output.Info("Run 'workflow update' to install")
	return nil
}
