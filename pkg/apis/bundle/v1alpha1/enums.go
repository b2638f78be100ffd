package v1alpha1

import (
	"fmt"
	"slices"
	"strings"

	corev1 "k8s.io/api/core/v1"
)

// --- Enum Interface ---

// EnumValuer is implemented by string-based enum types to provide their valid values.
type EnumValuer interface {
	// ValidValues returns all valid string values for this enum type.
	ValidValues() []string
}

// --- Access Mode ---

// AccessMode defines how the persistent volume may be mounted.
type AccessMode string

const (
	// AccessModeReadWriteOnce allows the volume to be mounted read-write by a single node.
	AccessModeReadWriteOnce AccessMode = "ReadWriteOnce"
	// AccessModeReadOnlyMany allows the volume to be mounted read-only by many nodes.
	AccessModeReadOnlyMany AccessMode = "ReadOnlyMany"
	// AccessModeReadWriteMany allows the volume to be mounted read-write by many nodes.
	AccessModeReadWriteMany AccessMode = "ReadWriteMany"
)

// ValidAccessModes returns supported access mode values.
func ValidAccessModes() []AccessMode {
	return []AccessMode{
		AccessModeReadWriteOnce,
		AccessModeReadOnlyMany,
		AccessModeReadWriteMany,
	}
}

// Set parses an access mode value (pflag.Value interface).
func (a *AccessMode) Set(value string) error {
	for _, mode := range ValidAccessModes() {
		if strings.EqualFold(value, string(mode)) {
			*a = mode

			return nil
		}
	}

	return fmt.Errorf(
		"%w: %s (valid options: %s, %s, %s)",
		ErrInvalidAccessMode,
		value,
		AccessModeReadWriteOnce,
		AccessModeReadOnlyMany,
		AccessModeReadWriteMany,
	)
}

// IsValid checks if the access mode value is supported.
func (a *AccessMode) IsValid() bool {
	return slices.Contains(ValidAccessModes(), *a)
}

// String returns the string representation of the AccessMode.
func (a *AccessMode) String() string {
	return string(*a)
}

// Type returns the type of the AccessMode.
func (a *AccessMode) Type() string {
	return "AccessMode"
}

// ValidValues returns all valid AccessMode values as strings.
func (a *AccessMode) ValidValues() []string {
	return []string{
		string(AccessModeReadWriteOnce),
		string(AccessModeReadOnlyMany),
		string(AccessModeReadWriteMany),
	}
}

// ToCoreV1 converts the access mode to its k8s.io/api representation.
func (a AccessMode) ToCoreV1() corev1.PersistentVolumeAccessMode {
	return corev1.PersistentVolumeAccessMode(a)
}

// --- Reclaim Policy ---

// ReclaimPolicy defines what happens to the persistent volume when released.
type ReclaimPolicy string

const (
	// ReclaimPolicyRetain keeps the volume and its data after the claim is deleted.
	ReclaimPolicyRetain ReclaimPolicy = "Retain"
	// ReclaimPolicyDelete removes the volume when the claim is deleted.
	ReclaimPolicyDelete ReclaimPolicy = "Delete"
	// ReclaimPolicyRecycle scrubs the volume for reuse (deprecated upstream, still accepted).
	ReclaimPolicyRecycle ReclaimPolicy = "Recycle"
)

// ValidReclaimPolicies returns supported reclaim policy values.
func ValidReclaimPolicies() []ReclaimPolicy {
	return []ReclaimPolicy{
		ReclaimPolicyRetain,
		ReclaimPolicyDelete,
		ReclaimPolicyRecycle,
	}
}

// Set parses a reclaim policy value (pflag.Value interface).
func (r *ReclaimPolicy) Set(value string) error {
	for _, policy := range ValidReclaimPolicies() {
		if strings.EqualFold(value, string(policy)) {
			*r = policy

			return nil
		}
	}

	return fmt.Errorf(
		"%w: %s (valid options: %s, %s, %s)",
		ErrInvalidReclaimPolicy,
		value,
		ReclaimPolicyRetain,
		ReclaimPolicyDelete,
		ReclaimPolicyRecycle,
	)
}

// IsValid checks if the reclaim policy value is supported.
func (r *ReclaimPolicy) IsValid() bool {
	return slices.Contains(ValidReclaimPolicies(), *r)
}

// String returns the string representation of the ReclaimPolicy.
func (r *ReclaimPolicy) String() string {
	return string(*r)
}

// Type returns the type of the ReclaimPolicy.
func (r *ReclaimPolicy) Type() string {
	return "ReclaimPolicy"
}

// ValidValues returns all valid ReclaimPolicy values as strings.
func (r *ReclaimPolicy) ValidValues() []string {
	return []string{
		string(ReclaimPolicyRetain),
		string(ReclaimPolicyDelete),
		string(ReclaimPolicyRecycle),
	}
}

// ToCoreV1 converts the reclaim policy to its k8s.io/api representation.
func (r ReclaimPolicy) ToCoreV1() corev1.PersistentVolumeReclaimPolicy {
	return corev1.PersistentVolumeReclaimPolicy(r)
}

// --- Expose Type ---

// ExposeType defines the Kubernetes Service type used to expose the bundle.
type ExposeType string

const (
	// ExposeTypeLoadBalancer provisions an external load balancer.
	ExposeTypeLoadBalancer ExposeType = "LoadBalancer"
	// ExposeTypeNodePort exposes the service on each node's IP at a static port.
	ExposeTypeNodePort ExposeType = "NodePort"
	// ExposeTypeClusterIP exposes the service on a cluster-internal IP only.
	ExposeTypeClusterIP ExposeType = "ClusterIP"
)

// ValidExposeTypes returns supported expose type values.
func ValidExposeTypes() []ExposeType {
	return []ExposeType{
		ExposeTypeLoadBalancer,
		ExposeTypeNodePort,
		ExposeTypeClusterIP,
	}
}

// Set parses an expose type value (pflag.Value interface).
func (e *ExposeType) Set(value string) error {
	for _, exposeType := range ValidExposeTypes() {
		if strings.EqualFold(value, string(exposeType)) {
			*e = exposeType

			return nil
		}
	}

	return fmt.Errorf(
		"%w: %s (valid options: %s, %s, %s)",
		ErrInvalidExposeType,
		value,
		ExposeTypeLoadBalancer,
		ExposeTypeNodePort,
		ExposeTypeClusterIP,
	)
}

// IsValid checks if the expose type value is supported.
func (e *ExposeType) IsValid() bool {
	return slices.Contains(ValidExposeTypes(), *e)
}

// String returns the string representation of the ExposeType.
func (e *ExposeType) String() string {
	return string(*e)
}

// Type returns the type of the ExposeType.
func (e *ExposeType) Type() string {
	return "ExposeType"
}

// ValidValues returns all valid ExposeType values as strings.
func (e *ExposeType) ValidValues() []string {
	return []string{
		string(ExposeTypeLoadBalancer),
		string(ExposeTypeNodePort),
		string(ExposeTypeClusterIP),
	}
}

// ToCoreV1 converts the expose type to its k8s.io/api representation.
func (e ExposeType) ToCoreV1() corev1.ServiceType {
	return corev1.ServiceType(e)
}
