package gen

import (
	"github.com/devantler-tech/kforge/pkg/apis/bundle/v1alpha1"
	"github.com/devantler-tech/kforge/pkg/di"
	"github.com/devantler-tech/kforge/pkg/io/generator/manifests"
	"github.com/spf13/cobra"
)

// NewSecretCmd creates the command generating the credentials Secret.
func NewSecretCmd(runtimeContainer *di.Runtime) *cobra.Command {
	return createResourceCmd(runtimeContainer, "secret", "Generate the credentials Secret",
		func(bundle *v1alpha1.Bundle) (any, error) {
			return manifests.Secret(bundle), nil
		},
	)
}
