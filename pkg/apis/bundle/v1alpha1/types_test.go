package v1alpha1_test

import (
	"testing"
	"time"

	v1alpha1 "github.com/devantler-tech/kforge/pkg/apis/bundle/v1alpha1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

func TestBundleDirectCreation(t *testing.T) {
	t.Parallel()

	bundle := &v1alpha1.Bundle{
		TypeMeta: metav1.TypeMeta{
			Kind:       v1alpha1.Kind,
			APIVersion: v1alpha1.APIVersion,
		},
		Spec: v1alpha1.Spec{
			Service: v1alpha1.ServiceSpec{
				Name:      "jenkins",
				Namespace: "ci",
				Replicas:  1,
			},
			Storage: v1alpha1.StorageSpec{
				Capacity:   "10Gi",
				AccessMode: v1alpha1.AccessModeReadWriteOnce,
			},
			Connection: v1alpha1.Connection{
				Kubeconfig: "/test",
				Context:    "test-ctx",
				Timeout:    metav1.Duration{Duration: 10 * time.Minute},
			},
		},
	}

	assert.Equal(t, v1alpha1.Kind, bundle.Kind)
	assert.Equal(t, "kforge.dev/v1alpha1", bundle.APIVersion)
	assert.Equal(t, "jenkins", bundle.Spec.Service.Name)
}

func TestNewBundleSetsTypeMeta(t *testing.T) {
	t.Parallel()

	bundle := v1alpha1.NewBundle()

	require.NotNil(t, bundle)
	assert.Equal(t, v1alpha1.Kind, bundle.Kind)
	assert.Equal(t, v1alpha1.APIVersion, bundle.APIVersion)
}

func TestDerivedNames(t *testing.T) {
	t.Parallel()

	bundle := v1alpha1.NewBundle()
	bundle.Spec.Service.Name = "jenkins"

	assert.Equal(t, "jenkins-secret", bundle.SecretName())
	assert.Equal(t, "jenkins-pv", bundle.PVName())
	assert.Equal(t, "jenkins-pvc", bundle.PVCName())
	assert.Equal(t, "jenkins-data", bundle.VolumeName())
}

func TestSelectorLabels(t *testing.T) {
	t.Parallel()

	bundle := v1alpha1.NewBundle()
	bundle.Spec.Service.Name = "gitea"

	assert.Equal(t, map[string]string{"app": "gitea"}, bundle.SelectorLabels())
}

func TestImageRef(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		image    v1alpha1.ImageSpec
		expected string
	}{
		{
			name:     "repository and tag",
			image:    v1alpha1.ImageSpec{Repository: "docker.io/bitnami/jenkins", Tag: "latest"},
			expected: "docker.io/bitnami/jenkins:latest",
		},
		{
			name:     "repository only",
			image:    v1alpha1.ImageSpec{Repository: "docker.io/bitnami/jenkins"},
			expected: "docker.io/bitnami/jenkins",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, testCase.image.Ref())
		})
	}
}
