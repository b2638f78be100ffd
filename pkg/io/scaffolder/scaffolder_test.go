package scaffolder_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/devantler-tech/kforge/pkg/apis/bundle/v1alpha1"
	"github.com/devantler-tech/kforge/pkg/io/generator/manifests"
	"github.com/devantler-tech/kforge/pkg/io/scaffolder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestBundle(t *testing.T) *v1alpha1.Bundle {
	t.Helper()

	bundle := v1alpha1.NewBundle()
	bundle.Spec.Credentials.Username = "admin"
	bundle.Spec.Credentials.Password = "swordfish"
	bundle.ApplyDefaults()

	return bundle
}

func bundleFiles(bundle *v1alpha1.Bundle) []string {
	name := bundle.Spec.Service.Name
	dir := bundle.Spec.Manifests.Directory

	files := []string{scaffolder.ConfigFile}
	for _, suffix := range []string{
		manifests.SecretFileSuffix,
		manifests.PVFileSuffix,
		manifests.PVCFileSuffix,
		manifests.DeploymentFileSuffix,
		manifests.ServiceFileSuffix,
	} {
		files = append(files, filepath.Join(dir, name+suffix))
	}

	return append(files, filepath.Join(dir, scaffolder.KustomizationFile))
}

func TestNewScaffolder(t *testing.T) {
	t.Parallel()

	bundle := createTestBundle(t)
	instance := scaffolder.NewScaffolder(bundle, io.Discard)

	require.NotNil(t, instance)
	require.Equal(t, bundle, instance.Bundle)
	require.NotNil(t, instance.BundleYAMLGenerator)
	require.NotNil(t, instance.KustomizationGenerator)
}

func TestScaffoldCreatesAllFiles(t *testing.T) {
	t.Parallel()

	bundle := createTestBundle(t)
	tempDir := t.TempDir()

	err := scaffolder.NewScaffolder(bundle, io.Discard).Scaffold(tempDir, false)
	require.NoError(t, err)

	for _, file := range bundleFiles(bundle) {
		assert.FileExists(t, filepath.Join(tempDir, file))
	}
}

func TestScaffoldStripsCredentialsFromConfig(t *testing.T) {
	t.Parallel()

	bundle := createTestBundle(t)
	tempDir := t.TempDir()

	err := scaffolder.NewScaffolder(bundle, io.Discard).Scaffold(tempDir, false)
	require.NoError(t, err)

	config, err := os.ReadFile(filepath.Join(tempDir, scaffolder.ConfigFile))
	require.NoError(t, err)
	assert.NotContains(t, string(config), "admin")
	assert.NotContains(t, string(config), "swordfish")

	// The bundle instance keeps its credentials for manifest generation.
	assert.Equal(t, "admin", bundle.Spec.Credentials.Username)
}

func TestScaffoldSkipsExistingFiles(t *testing.T) {
	t.Parallel()

	bundle := createTestBundle(t)
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, scaffolder.ConfigFile)

	require.NoError(t, os.WriteFile(configPath, []byte("# hand edited\n"), 0o600))

	buffer := &bytes.Buffer{}

	err := scaffolder.NewScaffolder(bundle, buffer).Scaffold(tempDir, false)
	require.NoError(t, err)

	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, "# hand edited\n", string(content))
	assert.Contains(t, buffer.String(), "skipping")
}

func TestScaffoldForceOverwritesExistingFiles(t *testing.T) {
	t.Parallel()

	bundle := createTestBundle(t)
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, scaffolder.ConfigFile)

	require.NoError(t, os.WriteFile(configPath, []byte("# hand edited\n"), 0o600))

	buffer := &bytes.Buffer{}

	err := scaffolder.NewScaffolder(bundle, buffer).Scaffold(tempDir, true)
	require.NoError(t, err)

	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.NotEqual(t, "# hand edited\n", string(content))
	assert.Contains(t, buffer.String(), "overwriting")
}

func TestScaffoldRemovesStaleManifestsOnRename(t *testing.T) {
	t.Parallel()

	bundle := createTestBundle(t)
	tempDir := t.TempDir()

	err := scaffolder.NewScaffolder(bundle, io.Discard).Scaffold(tempDir, false)
	require.NoError(t, err)

	renamed := createTestBundle(t)
	renamed.Spec.Service.Name = "gitea"
	renamed.Spec.Storage.HostPath = ""
	renamed.ApplyDefaults()

	buffer := &bytes.Buffer{}

	err = scaffolder.NewScaffolder(renamed, buffer).Scaffold(tempDir, true)
	require.NoError(t, err)

	assert.Contains(t, buffer.String(), "removing stale manifest")
	assert.NoFileExists(t, filepath.Join(tempDir, "k8s", "jenkins-deployment.yaml"))
	assert.FileExists(t, filepath.Join(tempDir, "k8s", "gitea-deployment.yaml"))

	kustomization, err := os.ReadFile(filepath.Join(tempDir, "k8s", scaffolder.KustomizationFile))
	require.NoError(t, err)
	assert.NotContains(t, string(kustomization), "jenkins")
}

func TestScaffoldKeepsUnrelatedFilesInManifestsDir(t *testing.T) {
	t.Parallel()

	bundle := createTestBundle(t)
	tempDir := t.TempDir()
	extraPath := filepath.Join(tempDir, "k8s", "notes.yaml")

	require.NoError(t, os.MkdirAll(filepath.Dir(extraPath), 0o750))
	require.NoError(t, os.WriteFile(extraPath, []byte("# keep\n"), 0o600))

	err := scaffolder.NewScaffolder(bundle, io.Discard).Scaffold(tempDir, false)
	require.NoError(t, err)

	assert.FileExists(t, extraPath)
}

func TestScaffoldInvalidCapacity(t *testing.T) {
	t.Parallel()

	bundle := createTestBundle(t)
	bundle.Spec.Storage.Capacity = "not-a-quantity"

	err := scaffolder.NewScaffolder(bundle, io.Discard).Scaffold(t.TempDir(), false)

	require.Error(t, err)
	require.ErrorIs(t, err, scaffolder.ErrManifestGeneration)
}
