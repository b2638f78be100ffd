package v1alpha1

import "errors"

// ErrInvalidAccessMode is returned when an invalid access mode is specified.
var ErrInvalidAccessMode = errors.New("invalid access mode")

// ErrInvalidReclaimPolicy is returned when an invalid reclaim policy is specified.
var ErrInvalidReclaimPolicy = errors.New("invalid reclaim policy")

// ErrInvalidExposeType is returned when an invalid expose type is specified.
var ErrInvalidExposeType = errors.New("invalid expose type")

// ErrServiceNameTooLong is returned when the service name exceeds the maximum length.
var ErrServiceNameTooLong = errors.New("service name is too long")

// ErrServiceNameInvalid is returned when the service name is not DNS-1123 compliant.
var ErrServiceNameInvalid = errors.New("service name is invalid")

// ErrNamespaceInvalid is returned when the namespace is not DNS-1123 compliant.
var ErrNamespaceInvalid = errors.New("namespace is invalid")

// ErrInvalidPort is returned when a port is outside the valid range.
var ErrInvalidPort = errors.New("invalid port")

// ErrPortsConflict is returned when the http and agent ports collide.
var ErrPortsConflict = errors.New("http and agent ports conflict")

// ErrInvalidCapacity is returned when the storage capacity cannot be parsed as a quantity.
var ErrInvalidCapacity = errors.New("invalid storage capacity")

// ErrInvalidSecretKey is returned when a credential key is not a valid secret data key.
var ErrInvalidSecretKey = errors.New("invalid secret key")

// ErrInvalidReplicas is returned when the replica count breaks the single-writer volume contract.
var ErrInvalidReplicas = errors.New("invalid replica count")

// ErrHostPathNotAbsolute is returned when the host path is not an absolute path.
var ErrHostPathNotAbsolute = errors.New("host path must be absolute")

// ErrMountPathNotAbsolute is returned when the mount path is not an absolute path.
var ErrMountPathNotAbsolute = errors.New("mount path must be absolute")

// ErrMissingImageRepository is returned when no image repository is configured.
var ErrMissingImageRepository = errors.New("image repository is required")
