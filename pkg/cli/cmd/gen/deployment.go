package gen

import (
	"github.com/devantler-tech/kforge/pkg/apis/bundle/v1alpha1"
	"github.com/devantler-tech/kforge/pkg/di"
	"github.com/devantler-tech/kforge/pkg/io/generator/manifests"
	"github.com/spf13/cobra"
)

// NewDeploymentCmd creates the command generating the Deployment.
func NewDeploymentCmd(runtimeContainer *di.Runtime) *cobra.Command {
	return createResourceCmd(runtimeContainer, "deployment", "Generate the Deployment",
		func(bundle *v1alpha1.Bundle) (any, error) {
			return manifests.Deployment(bundle), nil
		},
	)
}
