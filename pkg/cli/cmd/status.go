package cmd

import (
	"fmt"

	"github.com/devantler-tech/kforge/pkg/apis/bundle/v1alpha1"
	"github.com/devantler-tech/kforge/pkg/di"
	configmanagerinterface "github.com/devantler-tech/kforge/pkg/io/configmanager"
	configmanager "github.com/devantler-tech/kforge/pkg/io/configmanager/bundle"
	"github.com/devantler-tech/kforge/pkg/ui/notify"
	"github.com/devantler-tech/kforge/pkg/ui/timer"
	"github.com/spf13/cobra"
)

// NewStatusCmd creates and returns the status command. It reports the
// readiness of the deployed bundle and its external URL once the load
// balancer has an endpoint.
func NewStatusCmd(runtimeContainer *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "status",
		Short:        "Show the live status of the bundle",
		Long:         "Show Deployment readiness and the external URL of the deployed bundle.",
		SilenceUsage: true,
	}

	fieldSelectors := configmanager.DefaultBundleFieldSelectors()
	fieldSelectors = append(fieldSelectors, configmanager.ConnectionFieldSelectors()...)
	cfgManager := configmanager.NewCommandConfigManager(cmd, fieldSelectors)

	cmd.RunE = di.RunEWithRuntime(runtimeContainer, di.WithTimer(
		func(cmd *cobra.Command, injector di.Injector, tmr timer.Timer) error {
			return HandleStatusRunE(cmd, injector, cfgManager, tmr)
		},
	))

	return cmd
}

// HandleStatusRunE performs the status command logic.
func HandleStatusRunE(
	cmd *cobra.Command,
	injector di.Injector,
	cfgManager configmanagerinterface.ConfigManager[v1alpha1.Bundle],
	tmr timer.Timer,
) error {
	tmr.Start()

	bundle, err := cfgManager.Load(configmanagerinterface.LoadOptions{Timer: tmr})
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	kubeFactory, err := di.ResolveKubeFactory(injector)
	if err != nil {
		return err
	}

	notify.Titlef(cmd.OutOrStdout(), "📡", "Check status...")

	tmr.NewStage()

	client, err := kubeFactory(bundle.Spec.Connection.Kubeconfig, bundle.Spec.Connection.Context)
	if err != nil {
		return fmt.Errorf("create status client: %w", err)
	}

	ctx, cancel := connectionContext(cmd.Context(), bundle)
	defer cancel()

	status, err := client.BundleStatus(ctx, bundle)
	if err != nil {
		return fmt.Errorf("read bundle status: %w", err)
	}

	notify.Infof(cmd.OutOrStdout(), "replicas ready: %d/%d",
		status.ReadyReplicas, status.DesiredReplicas)

	if !status.Ready {
		notify.Warningf(cmd.OutOrStdout(), "'%s' is not ready yet",
			bundle.Spec.Service.Name)
	}

	switch {
	case status.URL != "":
		notify.Successf(cmd.OutOrStdout(), "'%s' is reachable at %s",
			bundle.Spec.Service.Name, status.URL)
	default:
		notify.Activityf(cmd.OutOrStdout(), "waiting for the load balancer to assign an external endpoint")
	}

	notify.SuccessWithTimerf(cmd.OutOrStdout(), tmr, "status checked")

	return nil
}
