package manifests_test

import (
	"testing"

	"github.com/devantler-tech/kforge/pkg/apis/bundle/v1alpha1"
	"github.com/devantler-tech/kforge/pkg/io/generator/manifests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	"sigs.k8s.io/yaml"
)

func testBundle(t *testing.T) *v1alpha1.Bundle {
	t.Helper()

	bundle := v1alpha1.NewBundle()
	bundle.Spec.Credentials.Username = "admin"
	bundle.Spec.Credentials.Password = "s3cret"
	bundle.ApplyDefaults()

	return bundle
}

func TestFileNamesApplyOrder(t *testing.T) {
	t.Parallel()

	names := manifests.FileNames(testBundle(t))

	assert.Equal(t, []string{
		"jenkins-secret.yaml",
		"jenkins-pv.yaml",
		"jenkins-pvc.yaml",
		"jenkins-deployment.yaml",
		"jenkins-service.yaml",
	}, names)
}

func TestSecretEncodesCredentials(t *testing.T) {
	t.Parallel()

	secret := manifests.Secret(testBundle(t))

	assert.Equal(t, "jenkins-secret", secret.Name)
	assert.Equal(t, "default", secret.Namespace)
	assert.Equal(t, corev1.SecretTypeOpaque, secret.Type)
	assert.Equal(t, []byte("admin"), secret.Data["JENKINS_USERNAME"])
	assert.Equal(t, []byte("s3cret"), secret.Data["JENKINS_PASSWORD"])

	// The wire format must carry base64 values, matching kubectl expectations.
	out, err := yaml.Marshal(secret)
	require.NoError(t, err)
	assert.Contains(t, string(out), "JENKINS_USERNAME: YWRtaW4=")
	assert.Contains(t, string(out), "JENKINS_PASSWORD: czNjcmV0")
}

func TestPersistentVolume(t *testing.T) {
	t.Parallel()

	pv, err := manifests.PersistentVolume(testBundle(t))

	require.NoError(t, err)
	assert.Equal(t, "jenkins-pv", pv.Name)
	assert.Empty(t, pv.Namespace)
	assert.Equal(t, resource.MustParse("10Gi"), pv.Spec.Capacity[corev1.ResourceStorage])
	assert.Equal(t, []corev1.PersistentVolumeAccessMode{corev1.ReadWriteOnce}, pv.Spec.AccessModes)
	assert.Equal(t, corev1.PersistentVolumeReclaimRetain, pv.Spec.PersistentVolumeReclaimPolicy)
	require.NotNil(t, pv.Spec.HostPath)
	assert.Equal(t, "/mnt/data/jenkins", pv.Spec.HostPath.Path)
}

func TestPersistentVolumeRejectsBadCapacity(t *testing.T) {
	t.Parallel()

	bundle := testBundle(t)
	bundle.Spec.Storage.Capacity = "bogus"

	_, err := manifests.PersistentVolume(bundle)

	require.ErrorIs(t, err, v1alpha1.ErrInvalidCapacity)
}

func TestPersistentVolumeClaimMatchesPV(t *testing.T) {
	t.Parallel()

	bundle := testBundle(t)

	pv, err := manifests.PersistentVolume(bundle)
	require.NoError(t, err)

	pvc, err := manifests.PersistentVolumeClaim(bundle)
	require.NoError(t, err)

	assert.Equal(t, "jenkins-pvc", pvc.Name)
	assert.Equal(t, pv.Spec.AccessModes, pvc.Spec.AccessModes)
	assert.Equal(t,
		pv.Spec.Capacity[corev1.ResourceStorage],
		pvc.Spec.Resources.Requests[corev1.ResourceStorage],
	)
	assert.Nil(t, pvc.Spec.StorageClassName)
}

func TestPersistentVolumeClaimSetsStorageClassWhenConfigured(t *testing.T) {
	t.Parallel()

	bundle := testBundle(t)
	bundle.Spec.Storage.StorageClassName = "fast-ssd"

	pvc, err := manifests.PersistentVolumeClaim(bundle)

	require.NoError(t, err)
	require.NotNil(t, pvc.Spec.StorageClassName)
	assert.Equal(t, "fast-ssd", *pvc.Spec.StorageClassName)
}

func TestDeployment(t *testing.T) {
	t.Parallel()

	bundle := testBundle(t)
	deployment := manifests.Deployment(bundle)

	require.NotNil(t, deployment.Spec.Replicas)
	assert.Equal(t, int32(1), *deployment.Spec.Replicas)
	assert.Equal(t, bundle.SelectorLabels(), deployment.Spec.Selector.MatchLabels)
	assert.Equal(t, bundle.SelectorLabels(), deployment.Spec.Template.Labels)

	require.Len(t, deployment.Spec.Template.Spec.Containers, 1)
	container := deployment.Spec.Template.Spec.Containers[0]

	assert.Equal(t, "docker.io/bitnami/jenkins:latest", container.Image)
	require.Len(t, container.Ports, 2)
	assert.Equal(t, int32(8080), container.Ports[0].ContainerPort)
	assert.Equal(t, int32(50000), container.Ports[1].ContainerPort)

	require.Len(t, container.Env, 2)

	for _, env := range container.Env {
		require.NotNil(t, env.ValueFrom)
		require.NotNil(t, env.ValueFrom.SecretKeyRef)
		assert.Equal(t, "jenkins-secret", env.ValueFrom.SecretKeyRef.Name)
		assert.Equal(t, env.Name, env.ValueFrom.SecretKeyRef.Key)
	}

	require.Len(t, container.VolumeMounts, 1)
	assert.Equal(t, "/bitnami/jenkins", container.VolumeMounts[0].MountPath)

	require.Len(t, deployment.Spec.Template.Spec.Volumes, 1)
	volume := deployment.Spec.Template.Spec.Volumes[0]
	require.NotNil(t, volume.PersistentVolumeClaim)
	assert.Equal(t, "jenkins-pvc", volume.PersistentVolumeClaim.ClaimName)
	assert.Equal(t, container.VolumeMounts[0].Name, volume.Name)
}

func TestServiceSelectorMatchesDeploymentLabels(t *testing.T) {
	t.Parallel()

	bundle := testBundle(t)

	service := manifests.Service(bundle)
	deployment := manifests.Deployment(bundle)

	assert.Equal(t, deployment.Spec.Template.Labels, service.Spec.Selector)
	assert.Equal(t, corev1.ServiceTypeLoadBalancer, service.Spec.Type)

	require.Len(t, service.Spec.Ports, 2)
	assert.Equal(t, int32(8080), service.Spec.Ports[0].Port)
	assert.Equal(t, "http", service.Spec.Ports[0].TargetPort.String())
	assert.Equal(t, int32(50000), service.Spec.Ports[1].Port)
	assert.Equal(t, "jnlp", service.Spec.Ports[1].TargetPort.String())
}
