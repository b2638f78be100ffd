// Package scaffolder generates kforge project files: the bundle configuration,
// the Kubernetes manifests and the kustomization tying them together.
package scaffolder

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/devantler-tech/kforge/pkg/apis/bundle/v1alpha1"
	"github.com/devantler-tech/kforge/pkg/io/generator"
	kustomizationgenerator "github.com/devantler-tech/kforge/pkg/io/generator/kustomization"
	"github.com/devantler-tech/kforge/pkg/io/generator/manifests"
	yamlgenerator "github.com/devantler-tech/kforge/pkg/io/generator/yaml"
	"github.com/devantler-tech/kforge/pkg/ui/notify"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	ktypes "sigs.k8s.io/kustomize/api/types"
)

// ConfigFile is the filename for the kforge bundle configuration.
const ConfigFile = "kforge.yaml"

// KustomizationFile is the filename for the generated kustomization.
const KustomizationFile = "kustomization.yaml"

var (
	// ErrBundleConfigGeneration wraps failures when creating kforge.yaml.
	ErrBundleConfigGeneration = errors.New("failed to generate kforge configuration")

	// ErrManifestGeneration wraps failures when creating a bundle manifest.
	ErrManifestGeneration = errors.New("failed to generate manifest")

	// ErrKustomizationGeneration wraps failures when creating kustomization.yaml.
	ErrKustomizationGeneration = errors.New("failed to generate kustomization configuration")

	// ErrStaleManifestCleanup wraps failures when removing manifests left over
	// from a previous service name.
	ErrStaleManifestCleanup = errors.New("failed to remove stale manifest")
)

// Scaffolder is responsible for generating kforge project files.
type Scaffolder struct {
	Bundle                 *v1alpha1.Bundle
	BundleYAMLGenerator    generator.Generator[*v1alpha1.Bundle, yamlgenerator.Options]
	SecretGenerator        generator.Generator[*corev1.Secret, yamlgenerator.Options]
	PVGenerator            generator.Generator[*corev1.PersistentVolume, yamlgenerator.Options]
	PVCGenerator           generator.Generator[*corev1.PersistentVolumeClaim, yamlgenerator.Options]
	DeploymentGenerator    generator.Generator[*appsv1.Deployment, yamlgenerator.Options]
	ServiceGenerator       generator.Generator[*corev1.Service, yamlgenerator.Options]
	KustomizationGenerator generator.Generator[*ktypes.Kustomization, yamlgenerator.Options]
	Writer                 io.Writer
}

// NewScaffolder creates a new Scaffolder instance for the provided bundle
// configuration.
func NewScaffolder(bundle *v1alpha1.Bundle, writer io.Writer) *Scaffolder {
	return &Scaffolder{
		Bundle:                 bundle,
		BundleYAMLGenerator:    yamlgenerator.NewGenerator[*v1alpha1.Bundle](),
		SecretGenerator:        yamlgenerator.NewGenerator[*corev1.Secret](),
		PVGenerator:            yamlgenerator.NewGenerator[*corev1.PersistentVolume](),
		PVCGenerator:           yamlgenerator.NewGenerator[*corev1.PersistentVolumeClaim](),
		DeploymentGenerator:    yamlgenerator.NewGenerator[*appsv1.Deployment](),
		ServiceGenerator:       yamlgenerator.NewGenerator[*corev1.Service](),
		KustomizationGenerator: yamlgenerator.NewGenerator[*ktypes.Kustomization](),
		Writer:                 writer,
	}
}

// Scaffold generates the project files for the bundle.
//
// This method orchestrates the generation of:
//   - kforge.yaml configuration
//   - the five bundle manifests in the manifests directory
//   - kustomization.yaml referencing the manifests in apply order
//
// Existing files are skipped unless force is set.
func (s *Scaffolder) Scaffold(output string, force bool) error {
	err := s.generateBundleConfig(output, force)
	if err != nil {
		return err
	}

	err = s.removeStaleManifests(output)
	if err != nil {
		return err
	}

	err = s.generateManifests(output, force)
	if err != nil {
		return err
	}

	return s.generateKustomizationConfig(output, force)
}

// removeStaleManifests deletes manifests generated for a previous service
// name. Without this a rename would leave the old files on disk next to the
// new ones, and the kustomization would silently stop referencing them.
func (s *Scaffolder) removeStaleManifests(output string) error {
	dir := filepath.Join(output, s.Bundle.Spec.Manifests.Directory)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}

		return fmt.Errorf("%w: read %s: %w", ErrStaleManifestCleanup, dir, err)
	}

	name := s.Bundle.Spec.Service.Name
	suffixes := []string{
		manifests.SecretFileSuffix,
		manifests.PVFileSuffix,
		manifests.PVCFileSuffix,
		manifests.DeploymentFileSuffix,
		manifests.ServiceFileSuffix,
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		fileName := entry.Name()
		if !isStaleManifest(fileName, name, suffixes) {
			continue
		}

		err = os.Remove(filepath.Join(dir, fileName))
		if err != nil {
			return fmt.Errorf("%w %s: %w", ErrStaleManifestCleanup, fileName, err)
		}

		notify.Activityf(s.Writer, "removing stale manifest '%s'", fileName)
	}

	return nil
}

// isStaleManifest reports whether fileName is a bundle manifest generated for
// a service name other than the current one.
func isStaleManifest(fileName, name string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if !strings.HasSuffix(fileName, suffix) {
			continue
		}

		return strings.TrimSuffix(fileName, suffix) != name
	}

	return false
}

func (s *Scaffolder) options(path string, force bool) yamlgenerator.Options {
	return yamlgenerator.Options{
		Output: path,
		Force:  force,
		Writer: s.Writer,
	}
}

// generateBundleConfig generates the kforge.yaml configuration file. The
// plaintext credentials are stripped first so they never land on disk.
func (s *Scaffolder) generateBundleConfig(output string, force bool) error {
	config := *s.Bundle
	config.Spec.Credentials.Username = ""
	config.Spec.Credentials.Password = ""

	opts := s.options(filepath.Join(output, ConfigFile), force)

	_, err := s.BundleYAMLGenerator.Generate(&config, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBundleConfigGeneration, err)
	}

	return nil
}

// generateManifests generates the five bundle manifests in apply order.
//
//nolint:cyclop // one short error branch per manifest kind
func (s *Scaffolder) generateManifests(output string, force bool) error {
	bundle := s.Bundle
	dir := filepath.Join(output, bundle.Spec.Manifests.Directory)
	name := bundle.Spec.Service.Name

	wrap := func(file string, err error) error {
		return fmt.Errorf("%w %s: %w", ErrManifestGeneration, file, err)
	}

	pv, err := manifests.PersistentVolume(bundle)
	if err != nil {
		return wrap(name+manifests.PVFileSuffix, err)
	}

	pvc, err := manifests.PersistentVolumeClaim(bundle)
	if err != nil {
		return wrap(name+manifests.PVCFileSuffix, err)
	}

	secretFile := name + manifests.SecretFileSuffix

	_, err = s.SecretGenerator.Generate(
		manifests.Secret(bundle), s.options(filepath.Join(dir, secretFile), force),
	)
	if err != nil {
		return wrap(secretFile, err)
	}

	pvFile := name + manifests.PVFileSuffix

	_, err = s.PVGenerator.Generate(pv, s.options(filepath.Join(dir, pvFile), force))
	if err != nil {
		return wrap(pvFile, err)
	}

	pvcFile := name + manifests.PVCFileSuffix

	_, err = s.PVCGenerator.Generate(pvc, s.options(filepath.Join(dir, pvcFile), force))
	if err != nil {
		return wrap(pvcFile, err)
	}

	deploymentFile := name + manifests.DeploymentFileSuffix

	_, err = s.DeploymentGenerator.Generate(
		manifests.Deployment(bundle), s.options(filepath.Join(dir, deploymentFile), force),
	)
	if err != nil {
		return wrap(deploymentFile, err)
	}

	serviceFile := name + manifests.ServiceFileSuffix

	_, err = s.ServiceGenerator.Generate(
		manifests.Service(bundle), s.options(filepath.Join(dir, serviceFile), force),
	)
	if err != nil {
		return wrap(serviceFile, err)
	}

	return nil
}

// generateKustomizationConfig generates the kustomization.yaml file next to
// the manifests.
func (s *Scaffolder) generateKustomizationConfig(output string, force bool) error {
	kustomization := kustomizationgenerator.Build(s.Bundle)

	opts := s.options(
		filepath.Join(output, s.Bundle.Spec.Manifests.Directory, KustomizationFile),
		force,
	)

	_, err := s.KustomizationGenerator.Generate(kustomization, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrKustomizationGeneration, err)
	}

	return nil
}
