package cmd

import (
	"fmt"

	"github.com/devantler-tech/kforge/pkg/apis/bundle/v1alpha1"
	"github.com/devantler-tech/kforge/pkg/di"
	configmanagerinterface "github.com/devantler-tech/kforge/pkg/io/configmanager"
	configmanager "github.com/devantler-tech/kforge/pkg/io/configmanager/bundle"
	"github.com/devantler-tech/kforge/pkg/io/scaffolder"
	"github.com/devantler-tech/kforge/pkg/ui/notify"
	"github.com/devantler-tech/kforge/pkg/ui/timer"
	"github.com/spf13/cobra"
)

// NewInitCmd creates and returns the init command. It scaffolds a bundle
// project in the output directory, consisting of a kforge.yaml, the rendered
// manifests, and a kustomization referencing them.
func NewInitCmd(runtimeContainer *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "init",
		Short:        "Scaffold a bundle project",
		Long:         "Scaffold a kforge.yaml, the deployment manifests, and a kustomization for a service bundle.",
		SilenceUsage: true,
	}

	fieldSelectors := configmanager.DefaultBundleFieldSelectors()
	fieldSelectors = append(fieldSelectors, configmanager.CredentialsFieldSelectors()...)
	cfgManager := configmanager.NewCommandConfigManager(cmd, fieldSelectors)

	var force bool

	var output string

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	cmd.Flags().StringVarP(&output, "output", "o", ".", "Directory to place the project in")

	cmd.RunE = di.RunEWithRuntime(runtimeContainer, di.WithTimer(
		func(cmd *cobra.Command, _ di.Injector, tmr timer.Timer) error {
			return HandleInitRunE(cmd, cfgManager, tmr, output, force)
		},
	))

	return cmd
}

// HandleInitRunE performs the init command logic.
func HandleInitRunE(
	cmd *cobra.Command,
	cfgManager configmanagerinterface.ConfigManager[v1alpha1.Bundle],
	tmr timer.Timer,
	output string,
	force bool,
) error {
	tmr.Start()

	bundle, err := cfgManager.Load(configmanagerinterface.LoadOptions{Timer: tmr})
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	notify.Titlef(cmd.OutOrStdout(), "📂", "Initialize project...")

	tmr.NewStage()

	err = scaffolder.NewScaffolder(bundle, cmd.OutOrStdout()).Scaffold(output, force)
	if err != nil {
		return fmt.Errorf("scaffold project: %w", err)
	}

	notify.SuccessWithTimerf(cmd.OutOrStdout(), tmr, "project initialized")

	return nil
}
