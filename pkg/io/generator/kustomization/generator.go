// Package kustomizationgenerator builds the kustomization.yaml tying a
// bundle's manifests together in apply order.
package kustomizationgenerator

import (
	"github.com/devantler-tech/kforge/pkg/apis/bundle/v1alpha1"
	"github.com/devantler-tech/kforge/pkg/io/generator/manifests"
	ktypes "sigs.k8s.io/kustomize/api/types"
)

// Build constructs the Kustomization model listing the bundle's manifest
// files in apply order.
func Build(bundle *v1alpha1.Bundle) *ktypes.Kustomization {
	return &ktypes.Kustomization{
		TypeMeta: ktypes.TypeMeta{
			APIVersion: ktypes.KustomizationVersion,
			Kind:       ktypes.KustomizationKind,
		},
		Resources: manifests.FileNames(bundle),
	}
}
