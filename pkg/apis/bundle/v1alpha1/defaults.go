package v1alpha1

import "path"

// Default values reproducing the canonical Jenkins bundle.
const (
	// DefaultServiceName is the default bundle service name.
	DefaultServiceName = "jenkins"
	// DefaultNamespace is the default target namespace.
	DefaultNamespace = "default"
	// DefaultReplicas is the fixed replica count for stateful bundles.
	DefaultReplicas int32 = 1
	// DefaultImageRepository is the default container image repository.
	DefaultImageRepository = "docker.io/bitnami/jenkins"
	// DefaultImageTag is the default container image tag.
	DefaultImageTag = "latest"
	// DefaultUsernameKey is the default secret key carrying the admin username.
	DefaultUsernameKey = "JENKINS_USERNAME"
	// DefaultPasswordKey is the default secret key carrying the admin password.
	DefaultPasswordKey = "JENKINS_PASSWORD"
	// DefaultCapacity is the default persistent volume capacity.
	DefaultCapacity = "10Gi"
	// DefaultHostPathRoot is the directory under which default hostPath volumes are created.
	DefaultHostPathRoot = "/mnt/data"
	// DefaultMountPath is the default container mount path for the data volume.
	DefaultMountPath = "/bitnami/jenkins"
	// DefaultHTTPPort is the default web UI port.
	DefaultHTTPPort int32 = 8080
	// DefaultAgentPort is the default inbound agent (JNLP) port.
	DefaultAgentPort int32 = 50000
	// DefaultManifestsDirectory is the default directory for generated manifests.
	DefaultManifestsDirectory = "k8s"
)

// ApplyDefaults fills unset fields with the canonical bundle defaults.
// Explicitly configured values are left untouched.
func (b *Bundle) ApplyDefaults() {
	if b.Kind == "" {
		b.Kind = Kind
	}

	if b.APIVersion == "" {
		b.APIVersion = APIVersion
	}

	spec := &b.Spec

	if spec.Service.Name == "" {
		spec.Service.Name = DefaultServiceName
	}

	if spec.Service.Namespace == "" {
		spec.Service.Namespace = DefaultNamespace
	}

	if spec.Service.Replicas == 0 {
		spec.Service.Replicas = DefaultReplicas
	}

	if spec.Image.Repository == "" {
		spec.Image.Repository = DefaultImageRepository
	}

	if spec.Image.Tag == "" {
		spec.Image.Tag = DefaultImageTag
	}

	if spec.Credentials.UsernameKey == "" {
		spec.Credentials.UsernameKey = DefaultUsernameKey
	}

	if spec.Credentials.PasswordKey == "" {
		spec.Credentials.PasswordKey = DefaultPasswordKey
	}

	applyStorageDefaults(spec)
	applyExposeDefaults(spec)

	if spec.Manifests.Directory == "" {
		spec.Manifests.Directory = DefaultManifestsDirectory
	}
}

func applyStorageDefaults(spec *Spec) {
	if spec.Storage.Capacity == "" {
		spec.Storage.Capacity = DefaultCapacity
	}

	if spec.Storage.AccessMode == "" {
		spec.Storage.AccessMode = AccessModeReadWriteOnce
	}

	if spec.Storage.ReclaimPolicy == "" {
		spec.Storage.ReclaimPolicy = ReclaimPolicyRetain
	}

	// The host path tracks the service name so two bundles on the same
	// node never share state.
	if spec.Storage.HostPath == "" {
		spec.Storage.HostPath = path.Join(DefaultHostPathRoot, spec.Service.Name)
	}

	if spec.Storage.MountPath == "" {
		spec.Storage.MountPath = DefaultMountPath
	}
}

func applyExposeDefaults(spec *Spec) {
	if spec.Expose.Type == "" {
		spec.Expose.Type = ExposeTypeLoadBalancer
	}

	if spec.Expose.HTTPPort == 0 {
		spec.Expose.HTTPPort = DefaultHTTPPort
	}

	if spec.Expose.AgentPort == 0 {
		spec.Expose.AgentPort = DefaultAgentPort
	}
}
