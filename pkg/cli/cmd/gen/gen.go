// Package gen provides commands for generating individual bundle resources.
package gen

import (
	"fmt"

	"github.com/devantler-tech/kforge/pkg/apis/bundle/v1alpha1"
	"github.com/devantler-tech/kforge/pkg/di"
	configmanagerinterface "github.com/devantler-tech/kforge/pkg/io/configmanager"
	configmanager "github.com/devantler-tech/kforge/pkg/io/configmanager/bundle"
	yamlgenerator "github.com/devantler-tech/kforge/pkg/io/generator/yaml"
	"github.com/spf13/cobra"
)

// NewGenCmd creates and returns the gen command with its resource
// subcommands.
func NewGenCmd(runtimeContainer *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "gen",
		Short:        "Generate individual bundle resources",
		Long:         "Generate a single bundle resource as YAML, to stdout or to a file.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := cmd.Help()
			if err != nil {
				return fmt.Errorf("failed to show help: %w", err)
			}

			return nil
		},
	}

	cmd.AddCommand(NewSecretCmd(runtimeContainer))
	cmd.AddCommand(NewPersistentVolumeCmd(runtimeContainer))
	cmd.AddCommand(NewPersistentVolumeClaimCmd(runtimeContainer))
	cmd.AddCommand(NewDeploymentCmd(runtimeContainer))
	cmd.AddCommand(NewServiceCmd(runtimeContainer))
	cmd.AddCommand(NewKustomizationCmd(runtimeContainer))

	return cmd
}

// renderFunc renders a bundle resource model ready for YAML marshalling.
type renderFunc func(bundle *v1alpha1.Bundle) (any, error)

// createResourceCmd builds a gen subcommand around a render function. All
// subcommands share the same config loading and output handling.
func createResourceCmd(
	runtimeContainer *di.Runtime,
	use, short string,
	render renderFunc,
) *cobra.Command {
	cmd := &cobra.Command{
		Use:          use,
		Short:        short,
		SilenceUsage: true,
	}

	fieldSelectors := configmanager.DefaultBundleFieldSelectors()
	fieldSelectors = append(fieldSelectors, configmanager.CredentialsFieldSelectors()...)
	cfgManager := configmanager.NewCommandConfigManager(cmd, fieldSelectors)

	var force bool

	var output string

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing output file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "File to write the resource to instead of stdout")

	cmd.RunE = di.RunEWithRuntime(runtimeContainer,
		func(cmd *cobra.Command, _ di.Injector) error {
			return handleResourceRunE(cmd, cfgManager, render, output, force)
		},
	)

	return cmd
}

func handleResourceRunE(
	cmd *cobra.Command,
	cfgManager configmanagerinterface.ConfigManager[v1alpha1.Bundle],
	render renderFunc,
	output string,
	force bool,
) error {
	bundle, err := cfgManager.Load(configmanagerinterface.LoadOptions{Silent: true})
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	model, err := render(bundle)
	if err != nil {
		return fmt.Errorf("render resource: %w", err)
	}

	generator := yamlgenerator.NewGenerator[any]()

	resourceYAML, err := generator.Generate(model, yamlgenerator.Options{
		Output: output,
		Force:  force,
		Writer: cmd.OutOrStdout(),
	})
	if err != nil {
		return fmt.Errorf("generate resource: %w", err)
	}

	if output == "" {
		_, err = fmt.Fprint(cmd.OutOrStdout(), resourceYAML)
		if err != nil {
			return fmt.Errorf("write resource to stdout: %w", err)
		}
	}

	return nil
}
