// Package kube reads bundle status from a cluster through client-go.
package kube

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/devantler-tech/kforge/pkg/apis/bundle/v1alpha1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Client reads the live state of a deployed bundle.
type Client struct {
	clientset kubernetes.Interface
}

// NewClient creates a client from a kubeconfig path and context. Empty values
// fall back to the standard loading rules.
func NewClient(kubeconfig, kubeContext string) (*Client, error) {
	loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
	if kubeconfig != "" {
		loadingRules.ExplicitPath = expandHome(kubeconfig)
	}

	overrides := &clientcmd.ConfigOverrides{}
	if kubeContext != "" {
		overrides.CurrentContext = kubeContext
	}

	config, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
		loadingRules, overrides,
	).ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("load kubeconfig: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("create kubernetes client: %w", err)
	}

	return &Client{clientset: clientset}, nil
}

// NewClientFromClientset wraps an existing clientset. Used by tests with a
// fake clientset.
func NewClientFromClientset(clientset kubernetes.Interface) *Client {
	return &Client{clientset: clientset}
}

// BundleStatus describes the live state of a deployed bundle.
type BundleStatus struct {
	// DesiredReplicas is the replica count the Deployment asks for.
	DesiredReplicas int32
	// ReadyReplicas is the number of pods passing their readiness probe.
	ReadyReplicas int32
	// Ready is true when all desired replicas are ready.
	Ready bool
	// ExternalEndpoint is the load-balancer IP or hostname, empty while pending.
	ExternalEndpoint string
	// URL is the web UI address, empty until an external endpoint is assigned.
	URL string
}

// BundleStatus reads the Deployment readiness and Service ingress for a
// bundle. The URL is only populated once the load balancer has an external
// endpoint.
func (c *Client) BundleStatus(
	ctx context.Context,
	bundle *v1alpha1.Bundle,
) (*BundleStatus, error) {
	namespace := bundle.Spec.Service.Namespace
	name := bundle.Spec.Service.Name

	deployment, err := c.clientset.AppsV1().
		Deployments(namespace).
		Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("get deployment %s/%s: %w", namespace, name, err)
	}

	service, err := c.clientset.CoreV1().
		Services(namespace).
		Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("get service %s/%s: %w", namespace, name, err)
	}

	desired := int32(1)
	if deployment.Spec.Replicas != nil {
		desired = *deployment.Spec.Replicas
	}

	status := &BundleStatus{
		DesiredReplicas:  desired,
		ReadyReplicas:    deployment.Status.ReadyReplicas,
		Ready:            deployment.Status.ReadyReplicas >= desired,
		ExternalEndpoint: externalEndpoint(service),
	}

	if status.ExternalEndpoint != "" {
		status.URL = fmt.Sprintf("http://%s:%d", status.ExternalEndpoint, bundle.Spec.Expose.HTTPPort)
	}

	return status, nil
}

// externalEndpoint returns the first load-balancer ingress IP or hostname.
func externalEndpoint(service *corev1.Service) string {
	for _, ingress := range service.Status.LoadBalancer.Ingress {
		if ingress.IP != "" {
			return ingress.IP
		}

		if ingress.Hostname != "" {
			return ingress.Hostname
		}
	}

	return ""
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
