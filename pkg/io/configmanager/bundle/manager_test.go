package configmanager_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/devantler-tech/kforge/pkg/apis/bundle/v1alpha1"
	configmanagerinterface "github.com/devantler-tech/kforge/pkg/io/configmanager"
	configmanager "github.com/devantler-tech/kforge/pkg/io/configmanager/bundle"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) {
	t.Helper()

	tempDir := t.TempDir()
	t.Chdir(tempDir)

	err := os.WriteFile(filepath.Join(tempDir, "kforge.yaml"), []byte(content), 0o600)
	require.NoError(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	manager := configmanager.NewConfigManager(
		io.Discard,
		configmanager.DefaultBundleFieldSelectors()...,
	)

	config, err := manager.Load(configmanagerinterface.LoadOptions{Silent: true})
	require.NoError(t, err)

	assert.Equal(t, v1alpha1.DefaultServiceName, config.Spec.Service.Name)
	assert.Equal(t, v1alpha1.DefaultImageRepository, config.Spec.Image.Repository)
	assert.Equal(t, v1alpha1.DefaultHTTPPort, config.Spec.Expose.HTTPPort)
	assert.Equal(t, "/mnt/data/jenkins", config.Spec.Storage.HostPath)
	assert.Equal(t, v1alpha1.Kind, config.Kind)
}

func TestLoadFromConfigFile(t *testing.T) {
	writeConfigFile(t, `apiVersion: kforge.dev/v1alpha1
kind: Bundle
spec:
  service:
    name: gitea
  expose:
    httpPort: 3000
  connection:
    timeout: 5m
`)

	manager := configmanager.NewConfigManager(
		io.Discard,
		configmanager.DefaultBundleFieldSelectors()...,
	)

	config, err := manager.Load(configmanagerinterface.LoadOptions{Silent: true})
	require.NoError(t, err)

	assert.Equal(t, "gitea", config.Spec.Service.Name)
	assert.Equal(t, int32(3000), config.Spec.Expose.HTTPPort)
	assert.Equal(t, 5*time.Minute, config.Spec.Connection.Timeout.Duration)
	// Unset fields fall back to defaults derived from the configured name.
	assert.Equal(t, "/mnt/data/gitea", config.Spec.Storage.HostPath)
	assert.Equal(t, v1alpha1.DefaultAgentPort, config.Spec.Expose.AgentPort)
}

func TestLoadInvalidConfigFile(t *testing.T) {
	writeConfigFile(t, `apiVersion: kforge.dev/v1alpha1
kind: Bundle
spec:
  service:
    name: Not_A_DNS_Name
`)

	buffer := &bytes.Buffer{}
	manager := configmanager.NewConfigManager(
		buffer,
		configmanager.DefaultBundleFieldSelectors()...,
	)

	_, err := manager.Load(configmanagerinterface.LoadOptions{Silent: true})

	require.Error(t, err)
	require.ErrorIs(t, err, configmanagerinterface.ErrConfigInvalid)
	assert.Contains(t, buffer.String(), "DNS-1123")
}

func TestLoadWrongKind(t *testing.T) {
	writeConfigFile(t, `apiVersion: kforge.dev/v1alpha1
kind: Cluster
spec: {}
`)

	manager := configmanager.NewConfigManager(
		io.Discard,
		configmanager.DefaultBundleFieldSelectors()...,
	)

	_, err := manager.Load(configmanagerinterface.LoadOptions{Silent: true})

	require.ErrorIs(t, err, configmanagerinterface.ErrConfigInvalid)
}

func TestLoadSkipValidation(t *testing.T) {
	writeConfigFile(t, `apiVersion: kforge.dev/v1alpha1
kind: Cluster
spec: {}
`)

	manager := configmanager.NewConfigManager(
		io.Discard,
		configmanager.DefaultBundleFieldSelectors()...,
	)

	config, err := manager.Load(configmanagerinterface.LoadOptions{
		Silent:         true,
		SkipValidation: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "Cluster", config.Kind)
}

func TestLoadIgnoresConfigFile(t *testing.T) {
	writeConfigFile(t, `apiVersion: kforge.dev/v1alpha1
kind: Bundle
spec:
  service:
    name: gitea
`)

	manager := configmanager.NewConfigManager(
		io.Discard,
		configmanager.DefaultBundleFieldSelectors()...,
	)

	config, err := manager.Load(configmanagerinterface.LoadOptions{
		Silent:           true,
		IgnoreConfigFile: true,
	})

	require.NoError(t, err)
	assert.Equal(t, v1alpha1.DefaultServiceName, config.Spec.Service.Name)
}

func TestLoadCachesConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	manager := configmanager.NewConfigManager(
		io.Discard,
		configmanager.DefaultBundleFieldSelectors()...,
	)

	first, err := manager.Load(configmanagerinterface.LoadOptions{Silent: true})
	require.NoError(t, err)

	first.Spec.Service.Name = "mutated"

	second, err := manager.Load(configmanagerinterface.LoadOptions{Silent: true})
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, "mutated", second.Spec.Service.Name)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("KFORGE_SPEC_SERVICE_NAME", "artifactory")
	t.Setenv("KFORGE_SPEC_EXPOSE_HTTPPORT", "8081")

	manager := configmanager.NewConfigManager(
		io.Discard,
		configmanager.DefaultBundleFieldSelectors()...,
	)

	config, err := manager.Load(configmanagerinterface.LoadOptions{Silent: true})
	require.NoError(t, err)

	assert.Equal(t, "artifactory", config.Spec.Service.Name)
	assert.Equal(t, int32(8081), config.Spec.Expose.HTTPPort)
	// Defaults derived from the name track the env override.
	assert.Equal(t, "/mnt/data/artifactory", config.Spec.Storage.HostPath)
}

func TestLoadEnvironmentBeatenByFlags(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("KFORGE_SPEC_SERVICE_NAME", "artifactory")

	cmd := &cobra.Command{Use: "test"}
	cmd.SetOut(io.Discard)

	manager := configmanager.NewCommandConfigManager(
		cmd,
		configmanager.DefaultBundleFieldSelectors(),
	)

	require.NoError(t, cmd.Flags().Set("name", "nexus"))

	config, err := manager.Load(configmanagerinterface.LoadOptions{Silent: true})
	require.NoError(t, err)

	assert.Equal(t, "nexus", config.Spec.Service.Name)
}

func TestLoadFlagOverridesBeatConfigFile(t *testing.T) {
	writeConfigFile(t, `apiVersion: kforge.dev/v1alpha1
kind: Bundle
spec:
  service:
    name: gitea
  expose:
    httpPort: 3000
`)

	cmd := &cobra.Command{Use: "test"}
	cmd.SetOut(io.Discard)

	manager := configmanager.NewCommandConfigManager(
		cmd,
		configmanager.DefaultBundleFieldSelectors(),
	)

	require.NoError(t, cmd.Flags().Set("name", "nexus"))
	require.NoError(t, cmd.Flags().Set("http-port", "8081"))

	config, err := manager.Load(configmanagerinterface.LoadOptions{Silent: true})
	require.NoError(t, err)

	assert.Equal(t, "nexus", config.Spec.Service.Name)
	assert.Equal(t, int32(8081), config.Spec.Expose.HTTPPort)
}

func TestLoadNotifications(t *testing.T) {
	t.Chdir(t.TempDir())

	buffer := &bytes.Buffer{}
	manager := configmanager.NewConfigManager(
		buffer,
		configmanager.DefaultBundleFieldSelectors()...,
	)

	_, err := manager.Load(configmanagerinterface.LoadOptions{})
	require.NoError(t, err)

	output := buffer.String()
	assert.Contains(t, output, "Load config...")
	assert.Contains(t, output, "using default config")
	assert.Contains(t, output, "config loaded")
}
