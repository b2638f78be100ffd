package kustomizationgenerator_test

import (
	"testing"

	"github.com/devantler-tech/kforge/pkg/apis/bundle/v1alpha1"
	kustomizationgenerator "github.com/devantler-tech/kforge/pkg/io/generator/kustomization"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildListsResourcesInApplyOrder(t *testing.T) {
	t.Parallel()

	bundle := v1alpha1.NewBundle()
	bundle.ApplyDefaults()

	kustomization := kustomizationgenerator.Build(bundle)

	require.NotNil(t, kustomization)
	assert.Equal(t, "kustomize.config.k8s.io/v1beta1", kustomization.APIVersion)
	assert.Equal(t, "Kustomization", kustomization.Kind)
	assert.Equal(t, []string{
		"jenkins-secret.yaml",
		"jenkins-pv.yaml",
		"jenkins-pvc.yaml",
		"jenkins-deployment.yaml",
		"jenkins-service.yaml",
	}, kustomization.Resources)
}
