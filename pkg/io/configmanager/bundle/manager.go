package configmanager

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"time"

	"github.com/devantler-tech/kforge/pkg/apis/bundle/v1alpha1"
	configmanagerinterface "github.com/devantler-tech/kforge/pkg/io/configmanager"
	bundlevalidator "github.com/devantler-tech/kforge/pkg/io/validator/bundle"
	"github.com/devantler-tech/kforge/pkg/ui/notify"
	"github.com/devantler-tech/kforge/pkg/ui/timer"
	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ConfigFileName is the base name of the kforge configuration file.
const ConfigFileName = "kforge"

// envPrefix namespaces kforge environment variables (KFORGE_*).
const envPrefix = "KFORGE"

// ConfigManager implements configuration management for kforge
// v1alpha1.Bundle configurations.
type ConfigManager struct {
	Viper           *viper.Viper
	fieldSelectors  []FieldSelector[v1alpha1.Bundle]
	Config          *v1alpha1.Bundle
	configLoaded    bool
	configFileFound bool
	Writer          io.Writer
	command         *cobra.Command
}

// Compile-time interface compliance verification.
var _ configmanagerinterface.ConfigManager[v1alpha1.Bundle] = (*ConfigManager)(nil)

// NewConfigManager creates a new configuration manager with the specified
// field selectors. Initializes Viper with config paths and environment
// handling.
func NewConfigManager(
	writer io.Writer,
	fieldSelectors ...FieldSelector[v1alpha1.Bundle],
) *ConfigManager {
	manager := &ConfigManager{
		Viper:          InitializeViper(),
		fieldSelectors: fieldSelectors,
		Config:         v1alpha1.NewBundle(),
		configLoaded:   false,
		Writer:         writer,
	}
	manager.bindEnvironmentKeys()

	return manager
}

// NewCommandConfigManager constructs a ConfigManager bound to the provided
// Cobra command. It registers the supplied field selectors, binds flags from
// struct fields, and writes output to the command's standard output writer.
func NewCommandConfigManager(
	cmd *cobra.Command,
	selectors []FieldSelector[v1alpha1.Bundle],
) *ConfigManager {
	manager := NewConfigManager(cmd.OutOrStdout(), selectors...)
	manager.command = cmd
	manager.AddFlagsFromFields(cmd)

	return manager
}

// InitializeViper creates a Viper instance configured for kforge: it reads
// kforge.yaml from the working directory and maps KFORGE_* environment
// variables onto config keys.
func InitializeViper() *viper.Viper {
	viperInstance := viper.New()
	viperInstance.SetConfigName(ConfigFileName)
	viperInstance.SetConfigType("yaml")
	viperInstance.AddConfigPath(".")
	viperInstance.SetEnvPrefix(envPrefix)
	viperInstance.SetEnvKeyReplacer(envKeyReplacer())
	viperInstance.AutomaticEnv()

	return viperInstance
}

// Load loads the configuration from files, environment variables and flags.
// Returns the loaded config, either freshly loaded or previously cached.
// Configuration priority: defaults < config file < environment variables < flags.
func (m *ConfigManager) Load(opts configmanagerinterface.LoadOptions) (*v1alpha1.Bundle, error) {
	if !opts.Silent {
		notify.Titlef(m.Writer, "⏳", "Load config...")
	}

	if m.configLoaded {
		if !opts.Silent {
			notify.Successf(m.Writer, "config already loaded, reusing existing config")
		}

		return m.Config, nil
	}

	if !opts.Silent {
		notify.Activityf(m.Writer, "loading kforge config")
	}

	if !opts.IgnoreConfigFile {
		err := m.readConfig(opts.Silent)
		if err != nil {
			return nil, err
		}
	}

	flagOverrides := m.captureChangedFlagValues()

	err := m.unmarshalAndApplyDefaults()
	if err != nil {
		return nil, err
	}

	err = m.applyFlagOverrides(flagOverrides)
	if err != nil {
		return nil, err
	}

	m.Config.ApplyDefaults()

	if !opts.SkipValidation {
		err = m.validateConfig()
		if err != nil {
			return nil, err
		}
	}

	if !opts.Silent {
		notify.SuccessWithTimerf(m.Writer, opts.Timer, "config loaded")
	}

	m.configLoaded = true

	return m.Config, nil
}

// LoadSilent loads the configuration without outputting notifications.
func (m *ConfigManager) LoadSilent() (*v1alpha1.Bundle, error) {
	return m.Load(configmanagerinterface.LoadOptions{Silent: true})
}

// LoadWithTimer loads the configuration with progress notifications and
// timing output.
func (m *ConfigManager) LoadWithTimer(tmr timer.Timer) (*v1alpha1.Bundle, error) {
	return m.Load(configmanagerinterface.LoadOptions{Timer: tmr})
}

func (m *ConfigManager) readConfig(silent bool) error {
	err := m.Viper.ReadInConfig()
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read config file: %w", err)
		}

		m.configFileFound = false
		if !silent {
			notify.Activityf(m.Writer, "using default config")
		}
	} else {
		m.configFileFound = true
		if !silent {
			notify.Activityf(m.Writer, "'%s' found", m.Viper.ConfigFileUsed())
		}
	}

	return nil
}

func (m *ConfigManager) unmarshalAndApplyDefaults() error {
	decoderConfig := func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			metav1DurationDecodeHook(),
		)
		// Environment variables are strings, so numeric and boolean fields
		// need weak typing to decode.
		dc.WeaklyTypedInput = true
	}

	// Reset TypeMeta fields only if a config file was found.
	// This allows validation to catch incorrect values from config files
	// while preserving defaults when loading from environment variables only.
	if m.configFileFound {
		m.Config.APIVersion = ""
		m.Config.Kind = ""
	}

	err := m.Viper.Unmarshal(m.Config, decoderConfig)
	if err != nil {
		return fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	// Apply field selector defaults for empty fields
	for _, fieldSelector := range m.fieldSelectors {
		fieldPtr := fieldSelector.Selector(m.Config)
		if fieldPtr != nil && isFieldEmpty(fieldPtr) && fieldSelector.DefaultValue != nil {
			setFieldValue(fieldPtr, fieldSelector.DefaultValue)
		}
	}

	return nil
}

func (m *ConfigManager) captureChangedFlagValues() map[string]string {
	if m.command == nil {
		return nil
	}

	overrides := make(map[string]string)

	m.command.Flags().Visit(func(f *pflag.Flag) {
		overrides[f.Name] = f.Value.String()
	})

	return overrides
}

func (m *ConfigManager) applyFlagOverrides(overrides map[string]string) error {
	if overrides == nil {
		return nil
	}

	for _, selector := range m.fieldSelectors {
		fieldPtr := selector.Selector(m.Config)
		if fieldPtr == nil {
			continue
		}

		flagName := m.GenerateFlagName(fieldPtr)

		value, ok := overrides[flagName]
		if !ok {
			continue
		}

		err := setFieldValueFromFlag(fieldPtr, value)
		if err != nil {
			return fmt.Errorf("failed to apply flag override for %s: %w", flagName, err)
		}
	}

	return nil
}

func (m *ConfigManager) validateConfig() error {
	result := bundlevalidator.NewConfigValidator().Validate(m.Config)

	warnings := configmanagerinterface.FormatValidationWarnings(result)
	for _, warning := range warnings {
		notify.Warningf(m.Writer, "%s", warning)
	}

	if result.Valid() {
		return nil
	}

	notify.Errorf(m.Writer, "%s", configmanagerinterface.FormatValidationErrorsMultiline(result))

	return configmanagerinterface.NewValidationSummaryError(
		len(result.Errors), len(result.Warnings),
	)
}

// metav1DurationDecodeHook decodes duration strings like "5m" into
// metav1.Duration fields.
func metav1DurationDecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to != reflect.TypeOf(metav1.Duration{}) {
			return data, nil
		}

		raw, _ := data.(string)
		if raw == "" {
			return metav1.Duration{}, nil
		}

		duration, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("parse duration %q: %w", raw, err)
		}

		return metav1.Duration{Duration: duration}, nil
	}
}
