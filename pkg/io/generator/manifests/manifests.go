// Package manifests builds the typed Kubernetes objects that make up a
// deployment bundle. The builders are shared by the scaffolder and the gen
// commands so every code path emits identical manifests.
package manifests

import (
	"fmt"

	"github.com/devantler-tech/kforge/pkg/apis/bundle/v1alpha1"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
)

// Port names used across the Deployment and Service so targetPort references
// resolve by name.
const (
	// HTTPPortName names the web UI port.
	HTTPPortName = "http"
	// AgentPortName names the inbound agent (JNLP) port.
	AgentPortName = "jnlp"
)

// Manifest file name suffixes, in apply order.
const (
	SecretFileSuffix     = "-secret.yaml"
	PVFileSuffix         = "-pv.yaml"
	PVCFileSuffix        = "-pvc.yaml"
	DeploymentFileSuffix = "-deployment.yaml"
	ServiceFileSuffix    = "-service.yaml"
)

// FileNames returns the bundle's manifest file names in apply order
// (secret → pv → pvc → deployment → service). The order matters: the
// Deployment references the Secret and the claim, and the claim binds the
// volume.
func FileNames(bundle *v1alpha1.Bundle) []string {
	name := bundle.Spec.Service.Name

	return []string{
		name + SecretFileSuffix,
		name + PVFileSuffix,
		name + PVCFileSuffix,
		name + DeploymentFileSuffix,
		name + ServiceFileSuffix,
	}
}

// Secret builds the credentials Secret. Plaintext credential values from the
// bundle config end up base64 encoded in the data block via the []byte
// representation.
func Secret(bundle *v1alpha1.Bundle) *corev1.Secret {
	credentials := bundle.Spec.Credentials

	return &corev1.Secret{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "Secret",
		},
		ObjectMeta: objectMeta(bundle, bundle.SecretName()),
		Type:       corev1.SecretTypeOpaque,
		Data: map[string][]byte{
			credentials.UsernameKey: []byte(credentials.Username),
			credentials.PasswordKey: []byte(credentials.Password),
		},
	}
}

// PersistentVolume builds the hostPath-backed PersistentVolume.
func PersistentVolume(bundle *v1alpha1.Bundle) (*corev1.PersistentVolume, error) {
	capacity, err := parseCapacity(bundle.Spec.Storage.Capacity)
	if err != nil {
		return nil, err
	}

	storage := bundle.Spec.Storage

	pv := &corev1.PersistentVolume{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "PersistentVolume",
		},
		// PersistentVolumes are cluster-scoped; no namespace on purpose.
		ObjectMeta: metav1.ObjectMeta{
			Name:   bundle.PVName(),
			Labels: bundle.SelectorLabels(),
		},
		Spec: corev1.PersistentVolumeSpec{
			Capacity: corev1.ResourceList{
				corev1.ResourceStorage: capacity,
			},
			AccessModes:                   []corev1.PersistentVolumeAccessMode{storage.AccessMode.ToCoreV1()},
			PersistentVolumeReclaimPolicy: storage.ReclaimPolicy.ToCoreV1(),
			StorageClassName:              storage.StorageClassName,
			PersistentVolumeSource: corev1.PersistentVolumeSource{
				HostPath: &corev1.HostPathVolumeSource{
					Path: storage.HostPath,
				},
			},
		},
	}

	return pv, nil
}

// PersistentVolumeClaim builds the claim matching the bundle's
// PersistentVolume: same capacity request, same access mode, same storage
// class.
func PersistentVolumeClaim(bundle *v1alpha1.Bundle) (*corev1.PersistentVolumeClaim, error) {
	capacity, err := parseCapacity(bundle.Spec.Storage.Capacity)
	if err != nil {
		return nil, err
	}

	storage := bundle.Spec.Storage

	pvc := &corev1.PersistentVolumeClaim{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "PersistentVolumeClaim",
		},
		ObjectMeta: objectMeta(bundle, bundle.PVCName()),
		Spec: corev1.PersistentVolumeClaimSpec{
			AccessModes: []corev1.PersistentVolumeAccessMode{storage.AccessMode.ToCoreV1()},
			Resources: corev1.VolumeResourceRequirements{
				Requests: corev1.ResourceList{
					corev1.ResourceStorage: capacity,
				},
			},
		},
	}

	if storage.StorageClassName != "" {
		className := storage.StorageClassName
		pvc.Spec.StorageClassName = &className
	}

	return pvc, nil
}

// Deployment builds the single-replica Deployment running the service
// container with credentials injected from the Secret and state mounted from
// the claim.
func Deployment(bundle *v1alpha1.Bundle) *appsv1.Deployment {
	spec := bundle.Spec
	labels := bundle.SelectorLabels()
	replicas := spec.Service.Replicas

	return &appsv1.Deployment{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "apps/v1",
			Kind:       "Deployment",
		},
		ObjectMeta: objectMeta(bundle, spec.Service.Name),
		Spec: appsv1.DeploymentSpec{
			Replicas: &replicas,
			// Recreate avoids two pods fighting over the ReadWriteOnce volume
			// during a rollout.
			Strategy: appsv1.DeploymentStrategy{
				Type: appsv1.RecreateDeploymentStrategyType,
			},
			Selector: &metav1.LabelSelector{
				MatchLabels: labels,
			},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{
					Labels: labels,
				},
				Spec: corev1.PodSpec{
					Containers: []corev1.Container{container(bundle)},
					Volumes: []corev1.Volume{
						{
							Name: bundle.VolumeName(),
							VolumeSource: corev1.VolumeSource{
								PersistentVolumeClaim: &corev1.PersistentVolumeClaimVolumeSource{
									ClaimName: bundle.PVCName(),
								},
							},
						},
					},
				},
			},
		},
	}
}

// Service builds the Service exposing the http and agent ports under the
// bundle's selector labels.
func Service(bundle *v1alpha1.Bundle) *corev1.Service {
	expose := bundle.Spec.Expose

	return &corev1.Service{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "Service",
		},
		ObjectMeta: objectMeta(bundle, bundle.Spec.Service.Name),
		Spec: corev1.ServiceSpec{
			Type:     expose.Type.ToCoreV1(),
			Selector: bundle.SelectorLabels(),
			Ports: []corev1.ServicePort{
				{
					Name:       HTTPPortName,
					Port:       expose.HTTPPort,
					TargetPort: intstr.FromString(HTTPPortName),
				},
				{
					Name:       AgentPortName,
					Port:       expose.AgentPort,
					TargetPort: intstr.FromString(AgentPortName),
				},
			},
		},
	}
}

func container(bundle *v1alpha1.Bundle) corev1.Container {
	spec := bundle.Spec

	return corev1.Container{
		Name:  spec.Service.Name,
		Image: spec.Image.Ref(),
		Ports: []corev1.ContainerPort{
			{Name: HTTPPortName, ContainerPort: spec.Expose.HTTPPort},
			{Name: AgentPortName, ContainerPort: spec.Expose.AgentPort},
		},
		Env: []corev1.EnvVar{
			secretEnvVar(bundle, spec.Credentials.UsernameKey),
			secretEnvVar(bundle, spec.Credentials.PasswordKey),
		},
		VolumeMounts: []corev1.VolumeMount{
			{
				Name:      bundle.VolumeName(),
				MountPath: spec.Storage.MountPath,
			},
		},
		ReadinessProbe: httpProbe(),
		LivenessProbe:  httpProbe(),
	}
}

func secretEnvVar(bundle *v1alpha1.Bundle, key string) corev1.EnvVar {
	return corev1.EnvVar{
		Name: key,
		ValueFrom: &corev1.EnvVarSource{
			SecretKeyRef: &corev1.SecretKeySelector{
				LocalObjectReference: corev1.LocalObjectReference{
					Name: bundle.SecretName(),
				},
				Key: key,
			},
		},
	}
}

func httpProbe() *corev1.Probe {
	return &corev1.Probe{
		ProbeHandler: corev1.ProbeHandler{
			HTTPGet: &corev1.HTTPGetAction{
				Path: "/",
				Port: intstr.FromString(HTTPPortName),
			},
		},
		InitialDelaySeconds: 60,
		PeriodSeconds:       10,
		FailureThreshold:    6,
	}
}

func objectMeta(bundle *v1alpha1.Bundle, name string) metav1.ObjectMeta {
	return metav1.ObjectMeta{
		Name:      name,
		Namespace: bundle.Spec.Service.Namespace,
		Labels:    bundle.SelectorLabels(),
	}
}

func parseCapacity(capacity string) (resource.Quantity, error) {
	quantity, err := resource.ParseQuantity(capacity)
	if err != nil {
		return resource.Quantity{}, fmt.Errorf("%w: %q: %w", v1alpha1.ErrInvalidCapacity, capacity, err)
	}

	return quantity, nil
}
