package configmanager

import (
	"reflect"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// flagNameOverrides maps config field paths to flag names where the bare
// field name would be ambiguous or unidiomatic on the command line.
var flagNameOverrides = map[string]string{
	"spec.image.repository":    "image",
	"spec.image.tag":           "tag",
	"spec.expose.type":         "expose-type",
	"spec.manifests.directory": "manifests-directory",
}

// flagShorthands maps flag names to their single-letter shorthand. Flags not
// listed here have no shorthand.
var flagShorthands = map[string]string{
	"name":                "n",
	"image":               "i",
	"context":             "c",
	"kubeconfig":          "k",
	"timeout":             "t",
	"manifests-directory": "d",
}

// AddFlagsFromFields registers a CLI flag on the command for every field
// selector. Flag types are derived from the field's Go type, so enum fields
// get their pflag.Value implementation with value completion via Type().
func (m *ConfigManager) AddFlagsFromFields(cmd *cobra.Command) {
	flags := cmd.Flags()

	for _, selector := range m.fieldSelectors {
		fieldPtr := selector.Selector(m.Config)
		if fieldPtr == nil {
			continue
		}

		flagName := m.GenerateFlagName(fieldPtr)
		if flagName == "" {
			continue
		}

		if selector.DefaultValue != nil && isFieldEmpty(fieldPtr) {
			setFieldValue(fieldPtr, selector.DefaultValue)
		}

		m.registerFlag(flags, fieldPtr, flagName, selector.Description)
	}
}

func (m *ConfigManager) registerFlag(
	flags *pflag.FlagSet,
	fieldPtr any,
	flagName string,
	description string,
) {
	shorthand := m.GenerateShorthand(flagName)

	if value, ok := fieldPtr.(pflag.Value); ok {
		flags.VarP(value, flagName, shorthand, description)

		return
	}

	switch ptr := fieldPtr.(type) {
	case *string:
		flags.StringVarP(ptr, flagName, shorthand, *ptr, description)
	case *int32:
		flags.Int32VarP(ptr, flagName, shorthand, *ptr, description)
	case *bool:
		flags.BoolVarP(ptr, flagName, shorthand, *ptr, description)
	case *metav1.Duration:
		flags.DurationVarP(&ptr.Duration, flagName, shorthand, ptr.Duration, description)
	}
}

// GenerateFlagName derives the CLI flag name for a config field pointer. The
// field is located by address in the managed config, its name is converted to
// kebab-case, and ambiguous names are replaced via flagNameOverrides.
func (m *ConfigManager) GenerateFlagName(fieldPtr any) string {
	path := m.fieldPath(fieldPtr)
	if len(path) == 0 {
		return ""
	}

	key := strings.ToLower(strings.Join(path, "."))
	if override, ok := flagNameOverrides[key]; ok {
		return override
	}

	return kebabCase(path[len(path)-1])
}

// GenerateConfigKey derives the dotted Viper key for a config field pointer
// (the Name field under Spec.Service becomes spec.service.name).
func (m *ConfigManager) GenerateConfigKey(fieldPtr any) string {
	path := m.fieldPath(fieldPtr)
	if len(path) == 0 {
		return ""
	}

	return strings.ToLower(strings.Join(path, "."))
}

// bindEnvironmentKeys registers the Viper key of every field selector.
// AutomaticEnv only resolves environment variables for keys Viper already
// knows about, so without this step KFORGE_* variables are ignored when no
// config file mentions the key.
func (m *ConfigManager) bindEnvironmentKeys() {
	for _, selector := range m.fieldSelectors {
		fieldPtr := selector.Selector(m.Config)
		if fieldPtr == nil {
			continue
		}

		key := m.GenerateConfigKey(fieldPtr)
		if key == "" {
			continue
		}

		_ = m.Viper.BindEnv(key)
	}
}

func (m *ConfigManager) fieldPath(fieldPtr any) []string {
	target := reflect.ValueOf(fieldPtr)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		return nil
	}

	return findFieldPath(
		reflect.ValueOf(m.Config).Elem(),
		target.Pointer(),
		target.Type().Elem(),
		nil,
	)
}

// GenerateShorthand returns the single-letter shorthand for a flag name, or
// an empty string when the flag has none.
func (m *ConfigManager) GenerateShorthand(flagName string) string {
	return flagShorthands[flagName]
}

// findFieldPath walks the config struct looking for the addressable field
// whose address and type match the target. Address alone is not enough: a
// struct and its first field share an address.
func findFieldPath(
	value reflect.Value,
	targetAddr uintptr,
	targetType reflect.Type,
	path []string,
) []string {
	if value.Kind() != reflect.Struct {
		return nil
	}

	valueType := value.Type()

	for i := range value.NumField() {
		field := value.Field(i)
		if !field.CanAddr() || !valueType.Field(i).IsExported() {
			continue
		}

		fieldPath := append(path[:len(path):len(path)], valueType.Field(i).Name)

		if field.Addr().Pointer() == targetAddr && field.Type() == targetType {
			return fieldPath
		}

		if field.Kind() == reflect.Struct && field.Type() != reflect.TypeOf(metav1.Duration{}) {
			if match := findFieldPath(field, targetAddr, targetType, fieldPath); match != nil {
				return match
			}
		}
	}

	return nil
}

// kebabCase converts a Go field name to its kebab-case flag form, keeping
// acronym runs together (HTTPPort becomes http-port).
func kebabCase(name string) string {
	runes := []rune(name)
	parts := []string{}
	start := 0

	for i := 1; i < len(runes); i++ {
		previousUpper := isUpper(runes[i-1])
		currentUpper := isUpper(runes[i])

		boundary := (currentUpper && !previousUpper) ||
			(previousUpper && currentUpper && i+1 < len(runes) && !isUpper(runes[i+1]))
		if boundary {
			parts = append(parts, strings.ToLower(string(runes[start:i])))
			start = i
		}
	}

	parts = append(parts, strings.ToLower(string(runes[start:])))

	return strings.Join(parts, "-")
}

func isUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

// envKeyReplacer maps nested config keys onto environment variable segments
// (spec.expose.http-port becomes SPEC_EXPOSE_HTTP_PORT).
func envKeyReplacer() *strings.Replacer {
	return strings.NewReplacer(".", "_", "-", "_")
}

// isFieldEmpty checks if a field pointer points to an empty/zero value.
func isFieldEmpty(fieldPtr any) bool {
	if fieldPtr == nil {
		return true
	}

	fieldVal := reflect.ValueOf(fieldPtr)
	if fieldVal.Kind() != reflect.Pointer || fieldVal.IsNil() {
		return true
	}

	return fieldVal.Elem().IsZero()
}

// setFieldValue assigns a default value to a field pointer, converting
// between compatible types (untyped int defaults onto int32 fields, string
// defaults onto enum fields).
func setFieldValue(fieldPtr any, value any) {
	fieldVal := reflect.ValueOf(fieldPtr)
	if fieldVal.Kind() != reflect.Pointer || fieldVal.IsNil() {
		return
	}

	field := fieldVal.Elem()
	newValue := reflect.ValueOf(value)

	if !newValue.IsValid() {
		return
	}

	if newValue.Type().ConvertibleTo(field.Type()) {
		field.Set(newValue.Convert(field.Type()))
	}
}
