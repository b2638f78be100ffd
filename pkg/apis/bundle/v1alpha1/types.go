package v1alpha1

import metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

const (
	// Group is the API group for kforge.
	Group = "kforge.dev"
	// Version is the API version for kforge.
	Version = "v1alpha1"
	// Kind is the kind for kforge bundles.
	Kind = "Bundle"
	// APIVersion is the full API version for kforge.
	APIVersion = Group + "/" + Version
)

// --- Core Types ---

// Bundle represents a kforge deployment bundle configuration including API
// metadata and the desired state of a stateful single-replica service.
type Bundle struct {
	metav1.TypeMeta `json:",inline" mapstructure:",squash"`

	Spec Spec `json:"spec,omitzero" mapstructure:"spec,omitempty"`
}

// Spec defines the desired state of a deployment bundle.
type Spec struct {
	Service     ServiceSpec     `json:"service,omitzero"`
	Image       ImageSpec       `json:"image,omitzero"`
	Credentials CredentialsSpec `json:"credentials,omitzero"`
	Storage     StorageSpec     `json:"storage,omitzero"`
	Expose      ExposeSpec      `json:"expose,omitzero"`
	Manifests   ManifestsSpec   `json:"manifests,omitzero"`
	Connection  Connection      `json:"connection,omitzero"`
}

// ServiceSpec identifies the service the bundle deploys.
type ServiceSpec struct {
	Name      string `default:"jenkins" json:"name,omitzero"`
	Namespace string `default:"default" json:"namespace,omitzero"`
	// Replicas is the desired pod count. Bundles mount a ReadWriteOnce
	// volume, so anything other than 1 fails validation.
	Replicas int32 `default:"1" json:"replicas,omitzero"`
}

// ImageSpec defines the container image to deploy.
type ImageSpec struct {
	Repository string `default:"docker.io/bitnami/jenkins" json:"repository,omitzero"`
	Tag        string `default:"latest"                    json:"tag,omitzero"`
}

// Ref returns the full image reference (repository:tag).
func (i ImageSpec) Ref() string {
	if i.Tag == "" {
		return i.Repository
	}

	return i.Repository + ":" + i.Tag
}

// CredentialsSpec defines the admin credentials injected via a Secret.
// Username and Password are plaintext in the config; the secret generator
// base64-encodes them into the Secret's data block.
type CredentialsSpec struct {
	UsernameKey string `default:"JENKINS_USERNAME" json:"usernameKey,omitzero"`
	PasswordKey string `default:"JENKINS_PASSWORD" json:"passwordKey,omitzero"`
	Username    string `                           json:"username,omitzero"`
	Password    string `                           json:"password,omitzero"`
}

// StorageSpec defines the persistent volume backing the service state.
type StorageSpec struct {
	Capacity         string        `default:"10Gi"            json:"capacity,omitzero"`
	AccessMode       AccessMode    `default:"ReadWriteOnce"   json:"accessMode,omitzero"`
	ReclaimPolicy    ReclaimPolicy `default:"Retain"          json:"reclaimPolicy,omitzero"`
	HostPath         string        `                          json:"hostPath,omitzero"`
	MountPath        string        `default:"/bitnami/jenkins" json:"mountPath,omitzero"`
	StorageClassName string        `                          json:"storageClassName,omitzero"`
}

// ExposeSpec defines how the service is exposed on the network.
type ExposeSpec struct {
	Type ExposeType `default:"LoadBalancer" json:"type,omitzero"`
	// HTTPPort serves the web UI and is the port reported by the status
	// command once an external IP is assigned.
	HTTPPort int32 `default:"8080" json:"httpPort,omitzero"`
	// AgentPort serves inbound agent (JNLP) connections.
	AgentPort int32 `default:"50000" json:"agentPort,omitzero"`
}

// ManifestsSpec defines where generated manifests live relative to the project root.
type ManifestsSpec struct {
	Directory string `default:"k8s" json:"directory,omitzero"`
}

// Connection defines how apply and status commands reach the cluster.
type Connection struct {
	Kubeconfig string          `default:"~/.kube/config" json:"kubeconfig,omitzero"`
	Context    string          `                         json:"context,omitzero"`
	Timeout    metav1.Duration `                         json:"timeout,omitzero"`
}

// --- Derived names and labels ---

// SecretName returns the name of the bundle's credentials Secret.
func (b *Bundle) SecretName() string {
	return b.Spec.Service.Name + "-secret"
}

// PVName returns the name of the bundle's PersistentVolume.
func (b *Bundle) PVName() string {
	return b.Spec.Service.Name + "-pv"
}

// PVCName returns the name of the bundle's PersistentVolumeClaim.
func (b *Bundle) PVCName() string {
	return b.Spec.Service.Name + "-pvc"
}

// VolumeName returns the name of the pod volume backed by the claim.
func (b *Bundle) VolumeName() string {
	return b.Spec.Service.Name + "-data"
}

// SelectorLabels returns the labels shared by the Deployment selector, the
// pod template, and the Service selector. Keeping these identical is what
// the bundle validator enforces.
func (b *Bundle) SelectorLabels() map[string]string {
	return map[string]string{"app": b.Spec.Service.Name}
}
