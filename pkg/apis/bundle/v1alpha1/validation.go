package v1alpha1

import (
	"fmt"
	"regexp"
	"strings"

	"k8s.io/apimachinery/pkg/api/resource"
)

// dnsNameRegex matches DNS-1123 label names: lowercase alphanumeric with
// optional hyphens, starting and ending with an alphanumeric character.
// See: https://kubernetes.io/docs/concepts/overview/working-with-objects/names/#dns-label-names
var dnsNameRegex = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

// secretKeyRegex matches valid Secret data keys (alphanumeric, '-', '_', '.').
var secretKeyRegex = regexp.MustCompile(`^[-._a-zA-Z0-9]+$`)

// ServiceNameMaxLength is the maximum length for a service name.
const ServiceNameMaxLength = 63

const (
	minPort = 1
	maxPort = 65535
)

// ValidateServiceName validates that a service name is DNS-1123 compliant.
// The name seeds every generated object name and the selector labels, which
// all require DNS-1123 subdomain names.
//
// Returns nil if the name is valid, or an error describing the failure.
func ValidateServiceName(name string) error {
	if name == "" {
		return nil // Empty names are allowed (means use default)
	}

	if len(name) > ServiceNameMaxLength {
		return fmt.Errorf(
			"%w: %q exceeds max %d characters (got %d)",
			ErrServiceNameTooLong, name, ServiceNameMaxLength, len(name),
		)
	}

	if !dnsNameRegex.MatchString(name) {
		return fmt.Errorf(
			"%w: %q must be DNS-1123 compliant "+
				"(lowercase letters, numbers, and hyphens; "+
				"must start and end with a letter or number)",
			ErrServiceNameInvalid, name,
		)
	}

	return nil
}

// ValidatePort validates that a port number is in the valid range.
func ValidatePort(field string, port int32) error {
	if port < minPort || port > maxPort {
		return fmt.Errorf("%w: %s %d is outside [%d, %d]", ErrInvalidPort, field, port, minPort, maxPort)
	}

	return nil
}

// ValidateCapacity validates that a storage capacity parses as a Kubernetes quantity.
func ValidateCapacity(capacity string) error {
	_, err := resource.ParseQuantity(capacity)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidCapacity, capacity, err)
	}

	return nil
}

// ValidateSecretKey validates that a credential key is a legal Secret data key.
func ValidateSecretKey(key string) error {
	if !secretKeyRegex.MatchString(key) {
		return fmt.Errorf(
			"%w: %q may only contain alphanumeric characters, '-', '_' and '.'",
			ErrInvalidSecretKey, key,
		)
	}

	return nil
}

// Validate checks the bundle spec for internally inconsistent or illegal
// values. It assumes defaults have been applied and returns the first error
// found.
//
//nolint:cyclop // field-by-field validation is inherently sequential
func (b *Bundle) Validate() error {
	spec := b.Spec

	err := ValidateServiceName(spec.Service.Name)
	if err != nil {
		return err
	}

	if spec.Service.Namespace != "" && !dnsNameRegex.MatchString(spec.Service.Namespace) {
		return fmt.Errorf("%w: %q must be DNS-1123 compliant", ErrNamespaceInvalid, spec.Service.Namespace)
	}

	if spec.Service.Replicas != 1 {
		return fmt.Errorf(
			"%w: %d (a bundle mounts a single %s volume and must run exactly 1 replica)",
			ErrInvalidReplicas, spec.Service.Replicas, spec.Storage.AccessMode.String(),
		)
	}

	if strings.TrimSpace(spec.Image.Repository) == "" {
		return ErrMissingImageRepository
	}

	err = validateCredentials(spec.Credentials)
	if err != nil {
		return err
	}

	err = validateStorage(spec.Storage)
	if err != nil {
		return err
	}

	return validateExpose(spec.Expose)
}

func validateCredentials(credentials CredentialsSpec) error {
	err := ValidateSecretKey(credentials.UsernameKey)
	if err != nil {
		return err
	}

	return ValidateSecretKey(credentials.PasswordKey)
}

func validateStorage(storage StorageSpec) error {
	err := ValidateCapacity(storage.Capacity)
	if err != nil {
		return err
	}

	if !storage.AccessMode.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidAccessMode, storage.AccessMode.String())
	}

	if !storage.ReclaimPolicy.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidReclaimPolicy, storage.ReclaimPolicy.String())
	}

	if !strings.HasPrefix(storage.HostPath, "/") {
		return fmt.Errorf("%w: %q", ErrHostPathNotAbsolute, storage.HostPath)
	}

	if !strings.HasPrefix(storage.MountPath, "/") {
		return fmt.Errorf("%w: %q", ErrMountPathNotAbsolute, storage.MountPath)
	}

	return nil
}

func validateExpose(expose ExposeSpec) error {
	if !expose.Type.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidExposeType, expose.Type.String())
	}

	err := ValidatePort("httpPort", expose.HTTPPort)
	if err != nil {
		return err
	}

	err = ValidatePort("agentPort", expose.AgentPort)
	if err != nil {
		return err
	}

	if expose.HTTPPort == expose.AgentPort {
		return fmt.Errorf("%w: both set to %d", ErrPortsConflict, expose.HTTPPort)
	}

	return nil
}
