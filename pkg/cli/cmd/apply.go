package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/devantler-tech/kforge/pkg/apis/bundle/v1alpha1"
	"github.com/devantler-tech/kforge/pkg/client/kubectl"
	"github.com/devantler-tech/kforge/pkg/di"
	configmanagerinterface "github.com/devantler-tech/kforge/pkg/io/configmanager"
	configmanager "github.com/devantler-tech/kforge/pkg/io/configmanager/bundle"
	"github.com/devantler-tech/kforge/pkg/ui/notify"
	"github.com/devantler-tech/kforge/pkg/ui/timer"
	"github.com/spf13/cobra"
)

// ErrNotConverged is returned when the cluster still diffs from the bundle
// right after an apply.
var ErrNotConverged = errors.New("apply did not converge")

// NewApplyCmd creates and returns the apply command. It applies the generated
// kustomization to the cluster and optionally verifies that a re-apply would
// be a no-op.
func NewApplyCmd(runtimeContainer *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "apply",
		Short:        "Apply the bundle to a cluster",
		Long:         "Apply the generated kustomization to the target cluster with kubectl.",
		SilenceUsage: true,
	}

	fieldSelectors := configmanager.DefaultBundleFieldSelectors()
	fieldSelectors = append(fieldSelectors, configmanager.ConnectionFieldSelectors()...)
	cfgManager := configmanager.NewCommandConfigManager(cmd, fieldSelectors)

	var verify bool

	cmd.Flags().BoolVar(&verify, "verify", false, "Diff against the cluster after applying to confirm convergence")

	cmd.RunE = di.RunEWithRuntime(runtimeContainer, di.WithTimer(
		func(cmd *cobra.Command, injector di.Injector, tmr timer.Timer) error {
			return HandleApplyRunE(cmd, injector, cfgManager, tmr, verify)
		},
	))

	return cmd
}

// HandleApplyRunE performs the apply command logic.
func HandleApplyRunE(
	cmd *cobra.Command,
	injector di.Injector,
	cfgManager configmanagerinterface.ConfigManager[v1alpha1.Bundle],
	tmr timer.Timer,
	verify bool,
) error {
	tmr.Start()

	bundle, err := cfgManager.Load(configmanagerinterface.LoadOptions{Timer: tmr})
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	kubectlFactory, err := di.ResolveKubectlFactory(injector)
	if err != nil {
		return err
	}

	notify.Titlef(cmd.OutOrStdout(), "🚀", "Apply bundle...")

	tmr.NewStage()

	ctx, cancel := connectionContext(cmd.Context(), bundle)
	defer cancel()

	client := kubectlFactory(bundle.Spec.Connection.Kubeconfig, bundle.Spec.Connection.Context)
	dir := filepath.Join(".", bundle.Spec.Manifests.Directory)

	notify.Activityf(cmd.OutOrStdout(), "applying '%s' to '%s'",
		bundle.Spec.Service.Name, bundle.Spec.Service.Namespace)

	output, err := client.ApplyKustomization(ctx, dir)
	if err != nil {
		return fmt.Errorf("apply kustomization: %w", err)
	}

	printToolOutput(cmd, output)

	if verify {
		err = verifyConvergence(cmd, ctx, client, dir)
		if err != nil {
			return err
		}
	}

	notify.SuccessWithTimerf(cmd.OutOrStdout(), tmr, "bundle applied")

	return nil
}

// verifyConvergence diffs the kustomization against the live cluster right
// after an apply. Any remaining diff means the apply did not converge.
func verifyConvergence(
	cmd *cobra.Command,
	ctx context.Context,
	client *kubectl.Client,
	dir string,
) error {
	notify.Activityf(cmd.OutOrStdout(), "verifying convergence")

	output, changed, err := client.DiffKustomization(ctx, dir)
	if err != nil {
		return fmt.Errorf("diff kustomization: %w", err)
	}

	if changed {
		printToolOutput(cmd, output)

		return fmt.Errorf("%w: re-applying would still change cluster state", ErrNotConverged)
	}

	notify.Successf(cmd.OutOrStdout(), "re-apply is a no-op, cluster converged")

	return nil
}

func connectionContext(
	parent context.Context,
	bundle *v1alpha1.Bundle,
) (context.Context, context.CancelFunc) {
	timeout := bundle.Spec.Connection.Timeout.Duration
	if timeout <= 0 {
		return context.WithCancel(parent)
	}

	return context.WithTimeout(parent, timeout)
}

func printToolOutput(cmd *cobra.Command, output string) {
	output = strings.TrimSpace(output)
	if output == "" {
		return
	}

	for _, line := range strings.Split(output, "\n") {
		notify.Infof(cmd.OutOrStdout(), "%s", line)
	}
}
