package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// NewBundle creates a new Bundle instance with minimal required structure.
// Default values are applied separately by ApplyDefaults or the
// configuration system.
func NewBundle() *Bundle {
	return &Bundle{
		TypeMeta: metav1.TypeMeta{
			Kind:       Kind,
			APIVersion: APIVersion,
		},
		Spec: NewSpec(),
	}
}

// NewSpec creates a new Spec with empty sub-specs.
func NewSpec() Spec {
	return Spec{
		Service:     ServiceSpec{},
		Image:       ImageSpec{},
		Credentials: CredentialsSpec{},
		Storage:     StorageSpec{},
		Expose:      ExposeSpec{},
		Manifests:   ManifestsSpec{},
		Connection:  NewConnection(),
	}
}

// NewConnection creates a new Connection with default values.
func NewConnection() Connection {
	return Connection{
		Kubeconfig: "",
		Context:    "",
		Timeout:    metav1.Duration{Duration: 0},
	}
}
