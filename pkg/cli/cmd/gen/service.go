package gen

import (
	"github.com/devantler-tech/kforge/pkg/apis/bundle/v1alpha1"
	"github.com/devantler-tech/kforge/pkg/di"
	"github.com/devantler-tech/kforge/pkg/io/generator/manifests"
	"github.com/spf13/cobra"
)

// NewServiceCmd creates the command generating the Service.
func NewServiceCmd(runtimeContainer *di.Runtime) *cobra.Command {
	return createResourceCmd(runtimeContainer, "service", "Generate the Service",
		func(bundle *v1alpha1.Bundle) (any, error) {
			return manifests.Service(bundle), nil
		},
	)
}
