package gen

import (
	"github.com/devantler-tech/kforge/pkg/apis/bundle/v1alpha1"
	"github.com/devantler-tech/kforge/pkg/di"
	kustomizationgenerator "github.com/devantler-tech/kforge/pkg/io/generator/kustomization"
	"github.com/spf13/cobra"
)

// NewKustomizationCmd creates the command generating the kustomization
// referencing all bundle manifests.
func NewKustomizationCmd(runtimeContainer *di.Runtime) *cobra.Command {
	return createResourceCmd(runtimeContainer, "kustomization", "Generate the kustomization",
		func(bundle *v1alpha1.Bundle) (any, error) {
			return kustomizationgenerator.Build(bundle), nil
		},
	)
}
