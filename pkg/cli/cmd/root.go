// Package cmd provides the kforge command line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/devantler-tech/kforge/pkg/cli/cmd/gen"
	"github.com/devantler-tech/kforge/pkg/di"
	"github.com/devantler-tech/kforge/pkg/ui/notify"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command for kforge.
func NewRootCmd(version, commit, date string) *cobra.Command {
	runtimeContainer := di.NewRuntime()

	cmd := &cobra.Command{
		Use:   "kforge",
		Short: "Generate and manage deployment bundles for stateful services",
		Long: "kforge scaffolds, validates, and applies Kubernetes deployment bundles\n" +
			"for single-replica stateful services backed by a persistent volume.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := cmd.Help()
			if err != nil {
				return fmt.Errorf("failed to show help: %w", err)
			}

			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)

	cmd.AddCommand(NewInitCmd(runtimeContainer))
	cmd.AddCommand(gen.NewGenCmd(runtimeContainer))
	cmd.AddCommand(NewValidateCmd(runtimeContainer))
	cmd.AddCommand(NewApplyCmd(runtimeContainer))
	cmd.AddCommand(NewStatusCmd(runtimeContainer))

	return cmd
}

// Execute runs the provided root command and reports any error to stderr.
func Execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	if err != nil {
		notify.Errorf(os.Stderr, "%v", err)

		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}
