package bundlevalidator_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/devantler-tech/kforge/pkg/apis/bundle/v1alpha1"
	"github.com/devantler-tech/kforge/pkg/io/generator/manifests"
	bundlevalidator "github.com/devantler-tech/kforge/pkg/io/validator/bundle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	"sigs.k8s.io/yaml"
)

func defaultedBundle(t *testing.T) *v1alpha1.Bundle {
	t.Helper()

	bundle := v1alpha1.NewBundle()
	bundle.Spec.Credentials.Username = "admin"
	bundle.Spec.Credentials.Password = "swordfish"
	bundle.ApplyDefaults()

	return bundle
}

func renderedManifests(t *testing.T) *bundlevalidator.Manifests {
	t.Helper()

	model, err := bundlevalidator.FromBundle(defaultedBundle(t))
	require.NoError(t, err)

	return model
}

func TestValidateGeneratedBundle(t *testing.T) {
	t.Parallel()

	model := renderedManifests(t)

	result := bundlevalidator.NewValidator().Validate(model)

	assert.True(t, result.Valid(), "generated bundle should be consistent: %s", result.Summary())
	assert.Empty(t, result.Errors)
}

func TestValidateMissingManifests(t *testing.T) {
	t.Parallel()

	result := bundlevalidator.NewValidator().Validate(&bundlevalidator.Manifests{})

	assert.False(t, result.Valid())
	assert.Len(t, result.Errors, 5)
}

func TestValidateSecretRefs(t *testing.T) {
	t.Parallel()

	t.Run("unresolved secret name", func(t *testing.T) {
		t.Parallel()

		model := renderedManifests(t)
		model.Deployment.Spec.Template.Spec.Containers[0].Env[0].ValueFrom.SecretKeyRef.Name = "other-secret"

		result := bundlevalidator.NewValidator().Validate(model)

		require.False(t, result.Valid())
		assert.Contains(t, result.Errors[0].Message, "does not resolve")
	})

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()

		model := renderedManifests(t)
		delete(model.Secret.Data, v1alpha1.DefaultPasswordKey)

		result := bundlevalidator.NewValidator().Validate(model)

		require.False(t, result.Valid())
		assert.Contains(t, result.Errors[0].Message, "does not exist in the Secret")
	})

	t.Run("key in stringData", func(t *testing.T) {
		t.Parallel()

		model := renderedManifests(t)
		delete(model.Secret.Data, v1alpha1.DefaultPasswordKey)
		model.Secret.StringData = map[string]string{v1alpha1.DefaultPasswordKey: "swordfish"}

		result := bundlevalidator.NewValidator().Validate(model)

		assert.True(t, result.Valid())
	})
}

func TestValidateClaimFitsVolume(t *testing.T) {
	t.Parallel()

	t.Run("claim larger than volume", func(t *testing.T) {
		t.Parallel()

		model := renderedManifests(t)
		model.PersistentVolumeClaim.Spec.Resources.Requests[corev1.ResourceStorage] = resource.MustParse("20Gi")

		result := bundlevalidator.NewValidator().Validate(model)

		require.False(t, result.Valid())
		assert.Contains(t, result.Errors[0].Message, "more storage than the volume provides")
		assert.Equal(t, "20Gi", result.Errors[0].CurrentValue)
	})

	t.Run("access mode not offered", func(t *testing.T) {
		t.Parallel()

		model := renderedManifests(t)
		model.PersistentVolumeClaim.Spec.AccessModes = []corev1.PersistentVolumeAccessMode{
			corev1.ReadWriteMany,
		}

		result := bundlevalidator.NewValidator().Validate(model)

		require.False(t, result.Valid())
		assert.Contains(t, result.Errors[0].Message, "not offered by the volume")
	})

	t.Run("storage class mismatch", func(t *testing.T) {
		t.Parallel()

		model := renderedManifests(t)
		class := "fast"
		model.PersistentVolumeClaim.Spec.StorageClassName = &class

		result := bundlevalidator.NewValidator().Validate(model)

		require.False(t, result.Valid())
		assert.Contains(t, result.Errors[0].Message, "storage classes differ")
	})
}

func TestValidateServiceSelectsPods(t *testing.T) {
	t.Parallel()

	t.Run("selector mismatch", func(t *testing.T) {
		t.Parallel()

		model := renderedManifests(t)
		model.Service.Spec.Selector = map[string]string{"app": "someone-else"}

		result := bundlevalidator.NewValidator().Validate(model)

		require.False(t, result.Valid())
		assert.Contains(t, result.Errors[0].Message, "does not match the Deployment's pod labels")
	})

	t.Run("empty selector", func(t *testing.T) {
		t.Parallel()

		model := renderedManifests(t)
		model.Service.Spec.Selector = nil

		result := bundlevalidator.NewValidator().Validate(model)

		require.False(t, result.Valid())
		assert.Contains(t, result.Errors[0].Message, "selects no pods")
	})

	t.Run("unresolved target port", func(t *testing.T) {
		t.Parallel()

		model := renderedManifests(t)
		model.Deployment.Spec.Template.Spec.Containers[0].Ports[0].Name = "web"

		result := bundlevalidator.NewValidator().Validate(model)

		require.False(t, result.Valid())
		assert.Contains(t, result.Errors[0].Message, "does not resolve to a declared container port")
	})
}

func TestValidateSingleReplica(t *testing.T) {
	t.Parallel()

	model := renderedManifests(t)
	replicas := int32(3)
	model.Deployment.Spec.Replicas = &replicas

	result := bundlevalidator.NewValidator().Validate(model)

	require.False(t, result.Valid())
	assert.Equal(t, "3", result.Errors[0].CurrentValue)
	assert.Equal(t, "1", result.Errors[0].ExpectedValue)
}

func TestValidateVolumeClaimRef(t *testing.T) {
	t.Parallel()

	model := renderedManifests(t)
	model.Deployment.Spec.Template.Spec.Volumes[0].PersistentVolumeClaim.ClaimName = "stray-claim"

	result := bundlevalidator.NewValidator().Validate(model)

	require.False(t, result.Valid())
	assert.Equal(t, "stray-claim", result.Errors[0].CurrentValue)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("round trips the generated bundle", func(t *testing.T) {
		t.Parallel()

		bundle := defaultedBundle(t)
		model := renderedManifests(t)
		dir := t.TempDir()

		writeManifest(t, dir, bundle.Spec.Service.Name+manifests.SecretFileSuffix, model.Secret)
		writeManifest(t, dir, bundle.Spec.Service.Name+manifests.PVFileSuffix, model.PersistentVolume)
		writeManifest(t, dir, bundle.Spec.Service.Name+manifests.PVCFileSuffix, model.PersistentVolumeClaim)
		writeManifest(t, dir, bundle.Spec.Service.Name+manifests.DeploymentFileSuffix, model.Deployment)
		writeManifest(t, dir, bundle.Spec.Service.Name+manifests.ServiceFileSuffix, model.Service)

		loaded, err := bundlevalidator.Load(dir, bundle)
		require.NoError(t, err)

		result := bundlevalidator.NewValidator().Validate(loaded)
		assert.True(t, result.Valid(), result.Summary())
	})

	t.Run("missing files load as nil", func(t *testing.T) {
		t.Parallel()

		loaded, err := bundlevalidator.Load(t.TempDir(), defaultedBundle(t))
		require.NoError(t, err)

		assert.Nil(t, loaded.Secret)
		assert.Nil(t, loaded.Deployment)
	})

	t.Run("malformed manifest errors", func(t *testing.T) {
		t.Parallel()

		bundle := defaultedBundle(t)
		dir := t.TempDir()
		path := filepath.Join(dir, bundle.Spec.Service.Name+manifests.SecretFileSuffix)
		require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0o600))

		_, err := bundlevalidator.Load(dir, bundle)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse manifest")
	})
}

func writeManifest(t *testing.T, dir, name string, obj any) {
	t.Helper()

	data, err := yaml.Marshal(obj)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o600))
}
