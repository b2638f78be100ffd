package di

import (
	"github.com/devantler-tech/kforge/pkg/client/kube"
	"github.com/devantler-tech/kforge/pkg/client/kubeconform"
	"github.com/devantler-tech/kforge/pkg/client/kubectl"
	"github.com/devantler-tech/kforge/pkg/client/kustomize"
	"github.com/devantler-tech/kforge/pkg/ui/timer"
	"github.com/samber/do/v2"
)

// KubectlFactory builds a kubectl client for a cluster connection.
type KubectlFactory func(kubeconfig, kubeContext string) *kubectl.Client

// KubeconformFactory builds a kubeconform client for a set of extra schema
// locations. Without locations the client validates against the upstream
// schema catalog only.
type KubeconformFactory func(schemaLocations ...string) *kubeconform.Client

// KubeFactory builds a client-go backed status client for a cluster connection.
type KubeFactory func(kubeconfig, kubeContext string) (*kube.Client, error)

// NewRuntime constructs the shared runtime container used by the root
// command and tests. It registers default implementations for the timer and
// the tool clients.
func NewRuntime() *Runtime {
	return New(
		provideTimer,
		provideKubeconformFactory,
		provideKustomizeClient,
		provideKubectlFactory,
		provideKubeFactory,
	)
}

// provideTimer registers the timer dependency with the injector.
func provideTimer(i Injector) error {
	do.Provide(i, func(Injector) (timer.Timer, error) {
		return timer.New(), nil
	})

	return nil
}

// provideKubeconformFactory registers the kubeconform client factory
// dependency.
func provideKubeconformFactory(i Injector) error {
	do.Provide(i, func(Injector) (KubeconformFactory, error) {
		return kubeconform.NewClientWithSchemaLocations, nil
	})

	return nil
}

// provideKustomizeClient registers the kustomize client dependency.
func provideKustomizeClient(i Injector) error {
	do.Provide(i, func(Injector) (*kustomize.Client, error) {
		return kustomize.NewClient(), nil
	})

	return nil
}

// provideKubectlFactory registers the kubectl client factory dependency.
func provideKubectlFactory(i Injector) error {
	do.Provide(i, func(Injector) (KubectlFactory, error) {
		return kubectl.NewClient, nil
	})

	return nil
}

// provideKubeFactory registers the status client factory dependency.
func provideKubeFactory(i Injector) error {
	do.Provide(i, func(Injector) (KubeFactory, error) {
		return kube.NewClient, nil
	})

	return nil
}
