package gen

import (
	"github.com/devantler-tech/kforge/pkg/apis/bundle/v1alpha1"
	"github.com/devantler-tech/kforge/pkg/di"
	"github.com/devantler-tech/kforge/pkg/io/generator/manifests"
	"github.com/spf13/cobra"
)

// NewPersistentVolumeClaimCmd creates the command generating the
// PersistentVolumeClaim.
func NewPersistentVolumeClaimCmd(runtimeContainer *di.Runtime) *cobra.Command {
	return createResourceCmd(runtimeContainer, "pvc", "Generate the PersistentVolumeClaim",
		func(bundle *v1alpha1.Bundle) (any, error) {
			return manifests.PersistentVolumeClaim(bundle)
		},
	)
}
