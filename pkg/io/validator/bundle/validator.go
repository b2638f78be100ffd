// Package bundlevalidator cross-checks the manifests of a deployment bundle
// for referential consistency: secret references resolve, the claim fits the
// volume, and the service actually selects the deployment's pods.
package bundlevalidator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/devantler-tech/kforge/pkg/apis/bundle/v1alpha1"
	"github.com/devantler-tech/kforge/pkg/io/generator/manifests"
	"github.com/devantler-tech/kforge/pkg/io/validator"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"sigs.k8s.io/yaml"
)

// Manifests holds the decoded objects of one bundle directory.
type Manifests struct {
	Secret                *corev1.Secret
	PersistentVolume      *corev1.PersistentVolume
	PersistentVolumeClaim *corev1.PersistentVolumeClaim
	Deployment            *appsv1.Deployment
	Service               *corev1.Service
}

// Compile-time interface compliance verification.
var _ validator.Validator[*Manifests] = (*Validator)(nil)

// Validator validates the referential consistency of bundle manifests.
type Validator struct{}

// NewValidator creates a new bundle manifest validator.
func NewValidator() *Validator {
	return &Validator{}
}

// FromBundle renders the typed manifests for a bundle config in-memory.
// Used to validate a config before anything is written to disk.
func FromBundle(bundle *v1alpha1.Bundle) (*Manifests, error) {
	pv, err := manifests.PersistentVolume(bundle)
	if err != nil {
		return nil, err
	}

	pvc, err := manifests.PersistentVolumeClaim(bundle)
	if err != nil {
		return nil, err
	}

	return &Manifests{
		Secret:                manifests.Secret(bundle),
		PersistentVolume:      pv,
		PersistentVolumeClaim: pvc,
		Deployment:            manifests.Deployment(bundle),
		Service:               manifests.Service(bundle),
	}, nil
}

// Load reads a bundle's manifest files from a directory. The file names are
// derived from the bundle's service name, so hand-edited manifests are
// picked up and cross-checked as they are on disk.
func Load(dir string, bundle *v1alpha1.Bundle) (*Manifests, error) {
	loaded := &Manifests{}
	name := bundle.Spec.Service.Name

	targets := []struct {
		file string
		into any
	}{
		{name + manifests.SecretFileSuffix, &loaded.Secret},
		{name + manifests.PVFileSuffix, &loaded.PersistentVolume},
		{name + manifests.PVCFileSuffix, &loaded.PersistentVolumeClaim},
		{name + manifests.DeploymentFileSuffix, &loaded.Deployment},
		{name + manifests.ServiceFileSuffix, &loaded.Service},
	}

	for _, target := range targets {
		path := filepath.Join(dir, target.file)

		data, err := os.ReadFile(path) //nolint:gosec // path is rooted in the user's bundle directory
		if err != nil {
			if os.IsNotExist(err) {
				// Missing manifests surface as validation errors, not load failures.
				continue
			}

			return nil, fmt.Errorf("read manifest %s: %w", path, err)
		}

		err = yaml.Unmarshal(data, target.into)
		if err != nil {
			return nil, fmt.Errorf("parse manifest %s: %w", path, err)
		}
	}

	return loaded, nil
}

// Validate cross-checks the bundle manifests and accumulates every
// inconsistency found.
func (v *Validator) Validate(model *Manifests) *validator.ValidationResult {
	result := validator.NewValidationResult()

	v.validatePresence(model, result)

	if model.Deployment != nil && model.Secret != nil {
		v.validateSecretRefs(model, result)
	}

	if model.PersistentVolume != nil && model.PersistentVolumeClaim != nil {
		v.validateClaimFitsVolume(model, result)
	}

	if model.Deployment != nil && model.Service != nil {
		v.validateServiceSelectsPods(model, result)
	}

	if model.Deployment != nil {
		v.validateSingleReplica(model, result)
	}

	if model.Deployment != nil && model.PersistentVolumeClaim != nil {
		v.validateVolumeClaimRef(model, result)
	}

	return result
}

func (v *Validator) validatePresence(model *Manifests, result *validator.ValidationResult) {
	missing := func(kind string) {
		result.AddError(validator.ValidationError{
			Field:         kind,
			Message:       "manifest is missing from the bundle",
			FixSuggestion: "Run 'kforge init --force' to regenerate the bundle",
		})
	}

	if model.Secret == nil {
		missing("Secret")
	}

	if model.PersistentVolume == nil {
		missing("PersistentVolume")
	}

	if model.PersistentVolumeClaim == nil {
		missing("PersistentVolumeClaim")
	}

	if model.Deployment == nil {
		missing("Deployment")
	}

	if model.Service == nil {
		missing("Service")
	}
}

// validateSecretRefs checks that every secretKeyRef in the Deployment's
// containers resolves to the bundle's Secret and an existing data key.
func (v *Validator) validateSecretRefs(model *Manifests, result *validator.ValidationResult) {
	for _, container := range model.Deployment.Spec.Template.Spec.Containers {
		for _, env := range container.Env {
			if env.ValueFrom == nil || env.ValueFrom.SecretKeyRef == nil {
				continue
			}

			ref := env.ValueFrom.SecretKeyRef
			field := fmt.Sprintf("Deployment.spec.template.spec.containers[%s].env[%s]", container.Name, env.Name)

			if ref.Name != model.Secret.Name {
				result.AddError(validator.ValidationError{
					Field:         field,
					Message:       "secretKeyRef does not resolve to a Secret in the bundle",
					CurrentValue:  ref.Name,
					ExpectedValue: model.Secret.Name,
					FixSuggestion: "Point the secretKeyRef at the bundle's Secret",
				})

				continue
			}

			_, usernameOK := model.Secret.Data[ref.Key]
			_, stringOK := model.Secret.StringData[ref.Key]

			if !usernameOK && !stringOK {
				result.AddError(validator.ValidationError{
					Field:         field,
					Message:       "secretKeyRef key does not exist in the Secret",
					CurrentValue:  ref.Key,
					FixSuggestion: "Add the key to the Secret's data or fix the reference",
				})
			}
		}
	}
}

// validateClaimFitsVolume checks that the claim's request and access modes
// are satisfiable by the volume.
func (v *Validator) validateClaimFitsVolume(model *Manifests, result *validator.ValidationResult) {
	pv := model.PersistentVolume
	pvc := model.PersistentVolumeClaim

	capacity, capacityOK := pv.Spec.Capacity[corev1.ResourceStorage]
	request, requestOK := pvc.Spec.Resources.Requests[corev1.ResourceStorage]

	switch {
	case !capacityOK:
		result.AddError(validator.ValidationError{
			Field:         "PersistentVolume.spec.capacity",
			Message:       "volume declares no storage capacity",
			FixSuggestion: "Set spec.capacity.storage on the PersistentVolume",
		})
	case !requestOK:
		result.AddError(validator.ValidationError{
			Field:         "PersistentVolumeClaim.spec.resources",
			Message:       "claim requests no storage",
			FixSuggestion: "Set spec.resources.requests.storage on the claim",
		})
	case request.Cmp(capacity) > 0:
		result.AddError(validator.ValidationError{
			Field:         "PersistentVolumeClaim.spec.resources.requests.storage",
			Message:       "claim requests more storage than the volume provides",
			CurrentValue:  request.String(),
			ExpectedValue: "at most " + capacity.String(),
			FixSuggestion: "Lower the claim request or grow the volume capacity",
		})
	}

	for _, mode := range pvc.Spec.AccessModes {
		if !containsAccessMode(pv.Spec.AccessModes, mode) {
			result.AddError(validator.ValidationError{
				Field:         "PersistentVolumeClaim.spec.accessModes",
				Message:       "claim access mode is not offered by the volume",
				CurrentValue:  string(mode),
				FixSuggestion: "Align the claim's accessModes with the PersistentVolume",
			})
		}
	}

	pvcClass := ""
	if pvc.Spec.StorageClassName != nil {
		pvcClass = *pvc.Spec.StorageClassName
	}

	if pvcClass != pv.Spec.StorageClassName {
		result.AddError(validator.ValidationError{
			Field:         "PersistentVolumeClaim.spec.storageClassName",
			Message:       "claim and volume storage classes differ, so the claim will never bind",
			CurrentValue:  pvcClass,
			ExpectedValue: pv.Spec.StorageClassName,
			FixSuggestion: "Use the same storageClassName on volume and claim",
		})
	}
}

// validateServiceSelectsPods checks that the Service selector matches the
// Deployment's pod template labels and every targetPort resolves to a
// declared container port.
func (v *Validator) validateServiceSelectsPods(model *Manifests, result *validator.ValidationResult) {
	podLabels := model.Deployment.Spec.Template.Labels

	for key, value := range model.Service.Spec.Selector {
		if podLabels[key] != value {
			result.AddError(validator.ValidationError{
				Field:         "Service.spec.selector",
				Message:       "selector does not match the Deployment's pod labels",
				CurrentValue:  key + "=" + value,
				FixSuggestion: "Align the Service selector with the pod template labels",
			})
		}
	}

	if len(model.Service.Spec.Selector) == 0 {
		result.AddError(validator.ValidationError{
			Field:         "Service.spec.selector",
			Message:       "selector is empty, the Service selects no pods",
			FixSuggestion: "Set the selector to the Deployment's pod labels",
		})
	}

	for _, port := range model.Service.Spec.Ports {
		if !targetPortResolves(model.Deployment, port) {
			result.AddError(validator.ValidationError{
				Field:         "Service.spec.ports[" + port.Name + "].targetPort",
				Message:       "targetPort does not resolve to a declared container port",
				CurrentValue:  port.TargetPort.String(),
				FixSuggestion: "Declare the port on the container or fix the targetPort",
			})
		}
	}
}

// validateSingleReplica enforces the single-writer contract for bundles
// mounting a ReadWriteOnce volume.
func (v *Validator) validateSingleReplica(model *Manifests, result *validator.ValidationResult) {
	replicas := int32(1)
	if model.Deployment.Spec.Replicas != nil {
		replicas = *model.Deployment.Spec.Replicas
	}

	if replicas == 1 {
		return
	}

	result.AddError(validator.ValidationError{
		Field:         "Deployment.spec.replicas",
		Message:       "stateful bundle must run exactly one replica",
		CurrentValue:  fmt.Sprintf("%d", replicas),
		ExpectedValue: "1",
		FixSuggestion: "Set replicas to 1; the data volume is ReadWriteOnce",
	})
}

// validateVolumeClaimRef checks that the pod volume references the bundle's claim.
func (v *Validator) validateVolumeClaimRef(model *Manifests, result *validator.ValidationResult) {
	for _, volume := range model.Deployment.Spec.Template.Spec.Volumes {
		if volume.PersistentVolumeClaim == nil {
			continue
		}

		if volume.PersistentVolumeClaim.ClaimName != model.PersistentVolumeClaim.Name {
			result.AddError(validator.ValidationError{
				Field:         "Deployment.spec.template.spec.volumes[" + volume.Name + "]",
				Message:       "volume references a claim that is not part of the bundle",
				CurrentValue:  volume.PersistentVolumeClaim.ClaimName,
				ExpectedValue: model.PersistentVolumeClaim.Name,
				FixSuggestion: "Reference the bundle's PersistentVolumeClaim",
			})
		}
	}
}

func containsAccessMode(
	modes []corev1.PersistentVolumeAccessMode,
	mode corev1.PersistentVolumeAccessMode,
) bool {
	for _, candidate := range modes {
		if candidate == mode {
			return true
		}
	}

	return false
}

func targetPortResolves(deployment *appsv1.Deployment, port corev1.ServicePort) bool {
	target := port.TargetPort

	for _, container := range deployment.Spec.Template.Spec.Containers {
		for _, containerPort := range container.Ports {
			if target.StrVal != "" && containerPort.Name == target.StrVal {
				return true
			}

			if target.StrVal == "" {
				// An unset targetPort defaults to the service port number.
				candidate := target.IntVal
				if candidate == 0 {
					candidate = port.Port
				}

				if containerPort.ContainerPort == candidate {
					return true
				}
			}
		}
	}

	return false
}
