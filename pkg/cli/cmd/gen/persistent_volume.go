package gen

import (
	"github.com/devantler-tech/kforge/pkg/apis/bundle/v1alpha1"
	"github.com/devantler-tech/kforge/pkg/di"
	"github.com/devantler-tech/kforge/pkg/io/generator/manifests"
	"github.com/spf13/cobra"
)

// NewPersistentVolumeCmd creates the command generating the PersistentVolume.
func NewPersistentVolumeCmd(runtimeContainer *di.Runtime) *cobra.Command {
	return createResourceCmd(runtimeContainer, "pv", "Generate the PersistentVolume",
		func(bundle *v1alpha1.Bundle) (any, error) {
			return manifests.PersistentVolume(bundle)
		},
	)
}
