package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/devantler-tech/kforge/pkg/apis/bundle/v1alpha1"
	"github.com/devantler-tech/kforge/pkg/client/kubeconform"
	"github.com/devantler-tech/kforge/pkg/client/kustomize"
	"github.com/devantler-tech/kforge/pkg/di"
	configmanagerinterface "github.com/devantler-tech/kforge/pkg/io/configmanager"
	configmanager "github.com/devantler-tech/kforge/pkg/io/configmanager/bundle"
	"github.com/devantler-tech/kforge/pkg/io/generator/manifests"
	bundlevalidator "github.com/devantler-tech/kforge/pkg/io/validator/bundle"
	"github.com/devantler-tech/kforge/pkg/ui/notify"
	"github.com/devantler-tech/kforge/pkg/ui/timer"
	"github.com/spf13/cobra"
)

// ErrBundleInvalid is returned when a bundle fails validation.
var ErrBundleInvalid = errors.New("bundle validation failed")

// ValidateOptions configures the validate command.
type ValidateOptions struct {
	SkipSecrets          bool
	Strict               bool
	IgnoreMissingSchemas bool
	Verbose              bool
	SchemaLocations      []string
	SchemaDownloadURL    string
}

// NewValidateCmd creates and returns the validate command. It checks the
// generated manifests for referential consistency and validates them against
// the Kubernetes schemas with kubeconform.
func NewValidateCmd(runtimeContainer *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "validate [path]",
		Short:        "Validate the bundle manifests",
		Long:         "Validate the generated manifests for cross-reference consistency and schema conformance.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
	}

	cfgManager := configmanager.NewCommandConfigManager(
		cmd,
		configmanager.DefaultBundleFieldSelectors(),
	)

	opts := &ValidateOptions{}
	cmd.Flags().BoolVar(&opts.SkipSecrets, "skip-secrets", true, "Skip schema validation of Secret resources")
	cmd.Flags().BoolVar(&opts.Strict, "strict", true, "Enable strict schema validation")
	cmd.Flags().BoolVar(&opts.IgnoreMissingSchemas, "ignore-missing-schemas", true, "Ignore resources without a known schema")
	cmd.Flags().BoolVar(&opts.Verbose, "verbose", false, "Enable verbose validation output")
	cmd.Flags().StringSliceVar(&opts.SchemaLocations, "schema-location", nil,
		"Additional kubeconform schema locations (directories or URL templates)")
	cmd.Flags().StringVar(&opts.SchemaDownloadURL, "schema-download", "",
		"URL of a tar.gz schema archive to download into the schema cache before validating")

	cmd.RunE = di.RunEWithRuntime(runtimeContainer, di.WithTimer(
		func(cmd *cobra.Command, injector di.Injector, tmr timer.Timer) error {
			return HandleValidateRunE(cmd, injector, cfgManager, tmr, opts)
		},
	))

	return cmd
}

// HandleValidateRunE performs the validate command logic.
func HandleValidateRunE(
	cmd *cobra.Command,
	injector di.Injector,
	cfgManager configmanagerinterface.ConfigManager[v1alpha1.Bundle],
	tmr timer.Timer,
	opts *ValidateOptions,
) error {
	tmr.Start()

	bundle, err := cfgManager.Load(configmanagerinterface.LoadOptions{Timer: tmr})
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	notify.Titlef(cmd.OutOrStdout(), "✅", "Validate bundle...")

	tmr.NewStage()

	root := "."
	if args := cmd.Flags().Args(); len(args) > 0 {
		root = args[0]
	}

	dir := filepath.Join(root, bundle.Spec.Manifests.Directory)

	err = validateReferences(cmd, dir, bundle)
	if err != nil {
		return err
	}

	err = validateSchemas(cmd, injector, dir, bundle, opts)
	if err != nil {
		return err
	}

	notify.SuccessWithTimerf(cmd.OutOrStdout(), tmr, "bundle is valid")

	return nil
}

func validateReferences(cmd *cobra.Command, dir string, bundle *v1alpha1.Bundle) error {
	notify.Activityf(cmd.OutOrStdout(), "checking manifest cross-references")

	model, err := bundlevalidator.Load(dir, bundle)
	if err != nil {
		return fmt.Errorf("load manifests: %w", err)
	}

	result := bundlevalidator.NewValidator().Validate(model)
	for _, warning := range result.Warnings {
		notify.Warningf(cmd.OutOrStdout(), "%s: %s", warning.Field, warning.Message)
	}

	if !result.Valid() {
		for _, validationErr := range result.Errors {
			notify.Errorf(cmd.OutOrStdout(), "%s: %s (%s)",
				validationErr.Field, validationErr.Message, validationErr.FixSuggestion)
		}

		return fmt.Errorf("%w: %s", ErrBundleInvalid, result.Summary())
	}

	return nil
}

func validateSchemas(
	cmd *cobra.Command,
	injector di.Injector,
	dir string,
	bundle *v1alpha1.Bundle,
	opts *ValidateOptions,
) error {
	kubeconformFactory, err := di.ResolveKubeconformFactory(injector)
	if err != nil {
		return err
	}

	kustomizeClient, err := di.ResolveKustomizeClient(injector)
	if err != nil {
		return err
	}

	schemaLocations, err := resolveSchemaLocations(cmd, kubeconformFactory, opts)
	if err != nil {
		return err
	}

	kubeconformClient := kubeconformFactory(schemaLocations...)

	validationOpts := &kubeconform.ValidationOptions{
		Strict:               opts.Strict,
		IgnoreMissingSchemas: opts.IgnoreMissingSchemas,
		Verbose:              opts.Verbose,
	}
	if opts.SkipSecrets {
		validationOpts.SkipKinds = []string{"Secret"}
	}

	tasks := make([]notify.ProgressTask, 0, len(manifests.FileNames(bundle)))

	for _, fileName := range manifests.FileNames(bundle) {
		filePath := filepath.Join(dir, fileName)

		tasks = append(tasks, notify.ProgressTask{
			Name: fileName,
			Fn: func(ctx context.Context) error {
				return kubeconformClient.ValidateFile(ctx, filePath, validationOpts)
			},
		})
	}

	progress := notify.NewProgressGroup(
		"Validating manifests", "📋", "validated", cmd.OutOrStdout(), nil,
	)

	err = progress.Run(cmd.Context(), tasks...)
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	return validateKustomization(cmd, kubeconformClient, kustomizeClient, dir, validationOpts)
}

// resolveSchemaLocations assembles the extra schema locations for kubeconform.
// When a download URL is set, the archive is fetched into the user cache and
// the cache is appended as a local schema location.
func resolveSchemaLocations(
	cmd *cobra.Command,
	kubeconformFactory di.KubeconformFactory,
	opts *ValidateOptions,
) ([]string, error) {
	locations := slices.Clone(opts.SchemaLocations)

	if opts.SchemaDownloadURL == "" {
		return locations, nil
	}

	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return nil, fmt.Errorf("locate schema cache: %w", err)
	}

	dest := filepath.Join(cacheDir, "kforge", "schemas")

	notify.Activityf(cmd.OutOrStdout(), "downloading schemas from '%s'", opts.SchemaDownloadURL)

	err = kubeconformFactory().DownloadSchemas(cmd.Context(), opts.SchemaDownloadURL, dest)
	if err != nil {
		return nil, fmt.Errorf("download schemas: %w", err)
	}

	return append(locations, filepath.Join(dest, "{{.ResourceKind}}{{.KindSuffix}}.json")), nil
}

// validateKustomization builds the kustomization and validates the rendered
// stream, catching issues the per-file pass cannot see.
func validateKustomization(
	cmd *cobra.Command,
	kubeconformClient *kubeconform.Client,
	kustomizeClient *kustomize.Client,
	dir string,
	opts *kubeconform.ValidationOptions,
) error {
	notify.Activityf(cmd.OutOrStdout(), "validating kustomization build")

	rendered, err := kustomizeClient.Build(cmd.Context(), dir)
	if err != nil {
		return fmt.Errorf("build kustomization: %w", err)
	}

	err = kubeconformClient.ValidateManifests(cmd.Context(), rendered, opts)
	if err != nil {
		return fmt.Errorf("validate kustomization output: %w", err)
	}

	return nil
}
