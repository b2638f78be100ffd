package di

import (
	"fmt"

	"github.com/devantler-tech/kforge/pkg/client/kustomize"
	"github.com/devantler-tech/kforge/pkg/ui/timer"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

// ResolveTimer retrieves the timer dependency from the injector with
// consistent error handling.
func ResolveTimer(injector Injector) (timer.Timer, error) {
	tmr, err := do.Invoke[timer.Timer](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve timer dependency: %w", err)
	}

	return tmr, nil
}

// ResolveKubeconformFactory retrieves the kubeconform client factory
// dependency.
func ResolveKubeconformFactory(injector Injector) (KubeconformFactory, error) {
	factory, err := do.Invoke[KubeconformFactory](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve kubeconform factory dependency: %w", err)
	}

	return factory, nil
}

// ResolveKustomizeClient retrieves the kustomize client dependency.
func ResolveKustomizeClient(injector Injector) (*kustomize.Client, error) {
	client, err := do.Invoke[*kustomize.Client](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve kustomize client dependency: %w", err)
	}

	return client, nil
}

// ResolveKubectlFactory retrieves the kubectl client factory dependency.
func ResolveKubectlFactory(injector Injector) (KubectlFactory, error) {
	factory, err := do.Invoke[KubectlFactory](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve kubectl factory dependency: %w", err)
	}

	return factory, nil
}

// ResolveKubeFactory retrieves the status client factory dependency.
func ResolveKubeFactory(injector Injector) (KubeFactory, error) {
	factory, err := do.Invoke[KubeFactory](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve status client factory dependency: %w", err)
	}

	return factory, nil
}

// WithTimer decorates a handler to automatically resolve the timer
// dependency. This higher-order function simplifies command handlers that
// need timer access.
func WithTimer(
	handler func(cmd *cobra.Command, injector Injector, tmr timer.Timer) error,
) func(cmd *cobra.Command, injector Injector) error {
	return func(cmd *cobra.Command, injector Injector) error {
		tmr, err := ResolveTimer(injector)
		if err != nil {
			return err
		}

		return handler(cmd, injector, tmr)
	}
}
