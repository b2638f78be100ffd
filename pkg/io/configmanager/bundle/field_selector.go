package configmanager

import (
	"github.com/devantler-tech/kforge/pkg/apis/bundle/v1alpha1"
)

// FieldSelector defines a field and its metadata for configuration management.
type FieldSelector[T any] struct {
	Selector     func(*T) any // Function that returns a pointer to the field
	Description  string       // Human-readable description for CLI flags
	DefaultValue any          // Default value for the field
}

// DefaultNameFieldSelector creates a standard field selector for the service name.
func DefaultNameFieldSelector() FieldSelector[v1alpha1.Bundle] {
	return FieldSelector[v1alpha1.Bundle]{
		Selector:     func(b *v1alpha1.Bundle) any { return &b.Spec.Service.Name },
		Description:  "Name of the service to bundle",
		DefaultValue: v1alpha1.DefaultServiceName,
	}
}

// DefaultNamespaceFieldSelector creates a standard field selector for the namespace.
func DefaultNamespaceFieldSelector() FieldSelector[v1alpha1.Bundle] {
	return FieldSelector[v1alpha1.Bundle]{
		Selector:     func(b *v1alpha1.Bundle) any { return &b.Spec.Service.Namespace },
		Description:  "Kubernetes namespace to deploy into",
		DefaultValue: v1alpha1.DefaultNamespace,
	}
}

// DefaultImageFieldSelector creates a standard field selector for the image repository.
func DefaultImageFieldSelector() FieldSelector[v1alpha1.Bundle] {
	return FieldSelector[v1alpha1.Bundle]{
		Selector:     func(b *v1alpha1.Bundle) any { return &b.Spec.Image.Repository },
		Description:  "Container image repository for the service",
		DefaultValue: v1alpha1.DefaultImageRepository,
	}
}

// DefaultTagFieldSelector creates a standard field selector for the image tag.
func DefaultTagFieldSelector() FieldSelector[v1alpha1.Bundle] {
	return FieldSelector[v1alpha1.Bundle]{
		Selector:     func(b *v1alpha1.Bundle) any { return &b.Spec.Image.Tag },
		Description:  "Container image tag for the service",
		DefaultValue: v1alpha1.DefaultImageTag,
	}
}

// DefaultCapacityFieldSelector creates a standard field selector for storage capacity.
func DefaultCapacityFieldSelector() FieldSelector[v1alpha1.Bundle] {
	return FieldSelector[v1alpha1.Bundle]{
		Selector:     func(b *v1alpha1.Bundle) any { return &b.Spec.Storage.Capacity },
		Description:  "Storage capacity for the data volume (e.g. 10Gi)",
		DefaultValue: v1alpha1.DefaultCapacity,
	}
}

// DefaultAccessModeFieldSelector creates a standard field selector for the volume access mode.
func DefaultAccessModeFieldSelector() FieldSelector[v1alpha1.Bundle] {
	return FieldSelector[v1alpha1.Bundle]{
		Selector:     func(b *v1alpha1.Bundle) any { return &b.Spec.Storage.AccessMode },
		Description:  "Access mode for the data volume",
		DefaultValue: v1alpha1.AccessModeReadWriteOnce,
	}
}

// DefaultReclaimPolicyFieldSelector creates a standard field selector for the reclaim policy.
func DefaultReclaimPolicyFieldSelector() FieldSelector[v1alpha1.Bundle] {
	return FieldSelector[v1alpha1.Bundle]{
		Selector:     func(b *v1alpha1.Bundle) any { return &b.Spec.Storage.ReclaimPolicy },
		Description:  "Reclaim policy for the persistent volume",
		DefaultValue: v1alpha1.ReclaimPolicyRetain,
	}
}

// DefaultExposeTypeFieldSelector creates a standard field selector for the service expose type.
func DefaultExposeTypeFieldSelector() FieldSelector[v1alpha1.Bundle] {
	return FieldSelector[v1alpha1.Bundle]{
		Selector:     func(b *v1alpha1.Bundle) any { return &b.Spec.Expose.Type },
		Description:  "How to expose the service outside the cluster",
		DefaultValue: v1alpha1.ExposeTypeLoadBalancer,
	}
}

// DefaultHTTPPortFieldSelector creates a standard field selector for the HTTP port.
func DefaultHTTPPortFieldSelector() FieldSelector[v1alpha1.Bundle] {
	return FieldSelector[v1alpha1.Bundle]{
		Selector:     func(b *v1alpha1.Bundle) any { return &b.Spec.Expose.HTTPPort },
		Description:  "Port serving the web UI",
		DefaultValue: v1alpha1.DefaultHTTPPort,
	}
}

// DefaultAgentPortFieldSelector creates a standard field selector for the agent port.
func DefaultAgentPortFieldSelector() FieldSelector[v1alpha1.Bundle] {
	return FieldSelector[v1alpha1.Bundle]{
		Selector:     func(b *v1alpha1.Bundle) any { return &b.Spec.Expose.AgentPort },
		Description:  "Port accepting inbound agent connections",
		DefaultValue: v1alpha1.DefaultAgentPort,
	}
}

// DefaultManifestsDirectoryFieldSelector creates a standard field selector for
// the manifests output directory.
func DefaultManifestsDirectoryFieldSelector() FieldSelector[v1alpha1.Bundle] {
	return FieldSelector[v1alpha1.Bundle]{
		Selector:     func(b *v1alpha1.Bundle) any { return &b.Spec.Manifests.Directory },
		Description:  "Directory containing the generated manifests",
		DefaultValue: v1alpha1.DefaultManifestsDirectory,
	}
}

// DefaultContextFieldSelector creates a standard field selector for the
// kubernetes context. No default is set as the context depends on the target
// cluster.
func DefaultContextFieldSelector() FieldSelector[v1alpha1.Bundle] {
	return FieldSelector[v1alpha1.Bundle]{
		Selector:    func(b *v1alpha1.Bundle) any { return &b.Spec.Connection.Context },
		Description: "Kubernetes context to apply the bundle to",
	}
}

// DefaultKubeconfigFieldSelector creates a standard field selector for kubeconfig.
func DefaultKubeconfigFieldSelector() FieldSelector[v1alpha1.Bundle] {
	return FieldSelector[v1alpha1.Bundle]{
		Selector:     func(b *v1alpha1.Bundle) any { return &b.Spec.Connection.Kubeconfig },
		Description:  "Path to kubeconfig file",
		DefaultValue: "~/.kube/config",
	}
}

// DefaultTimeoutFieldSelector creates a standard field selector for the
// connection timeout.
func DefaultTimeoutFieldSelector() FieldSelector[v1alpha1.Bundle] {
	return FieldSelector[v1alpha1.Bundle]{
		Selector:    func(b *v1alpha1.Bundle) any { return &b.Spec.Connection.Timeout },
		Description: "Timeout for cluster operations (e.g. 5m)",
	}
}

// DefaultBundleFieldSelectors returns the default field selectors shared by
// bundle commands.
func DefaultBundleFieldSelectors() []FieldSelector[v1alpha1.Bundle] {
	return []FieldSelector[v1alpha1.Bundle]{
		DefaultNameFieldSelector(),
		DefaultNamespaceFieldSelector(),
		DefaultImageFieldSelector(),
		DefaultTagFieldSelector(),
		DefaultCapacityFieldSelector(),
		DefaultAccessModeFieldSelector(),
		DefaultReclaimPolicyFieldSelector(),
		DefaultExposeTypeFieldSelector(),
		DefaultHTTPPortFieldSelector(),
		DefaultAgentPortFieldSelector(),
		DefaultManifestsDirectoryFieldSelector(),
	}
}

// DefaultUsernameFieldSelector creates a standard field selector for the admin
// username. No default is set as credentials are provided per project.
func DefaultUsernameFieldSelector() FieldSelector[v1alpha1.Bundle] {
	return FieldSelector[v1alpha1.Bundle]{
		Selector:    func(b *v1alpha1.Bundle) any { return &b.Spec.Credentials.Username },
		Description: "Admin username stored in the generated Secret",
	}
}

// DefaultPasswordFieldSelector creates a standard field selector for the admin
// password. No default is set as credentials are provided per project.
func DefaultPasswordFieldSelector() FieldSelector[v1alpha1.Bundle] {
	return FieldSelector[v1alpha1.Bundle]{
		Selector:    func(b *v1alpha1.Bundle) any { return &b.Spec.Credentials.Password },
		Description: "Admin password stored in the generated Secret",
	}
}

// CredentialsFieldSelectors returns the field selectors for the admin
// credentials injected into the generated Secret.
func CredentialsFieldSelectors() []FieldSelector[v1alpha1.Bundle] {
	return []FieldSelector[v1alpha1.Bundle]{
		DefaultUsernameFieldSelector(),
		DefaultPasswordFieldSelector(),
	}
}

// ConnectionFieldSelectors returns the field selectors for commands talking
// to a cluster.
func ConnectionFieldSelectors() []FieldSelector[v1alpha1.Bundle] {
	return []FieldSelector[v1alpha1.Bundle]{
		DefaultContextFieldSelector(),
		DefaultKubeconfigFieldSelector(),
		DefaultTimeoutFieldSelector(),
	}
}
