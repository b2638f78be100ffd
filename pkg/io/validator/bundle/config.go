package bundlevalidator

import (
	"github.com/devantler-tech/kforge/pkg/apis/bundle/v1alpha1"
	"github.com/devantler-tech/kforge/pkg/io/validator"
)

var _ validator.Validator[*v1alpha1.Bundle] = (*ConfigValidator)(nil)

// ConfigValidator validates a kforge bundle configuration before any
// manifests are rendered from it.
type ConfigValidator struct{}

// NewConfigValidator creates a new bundle config validator.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// Validate checks the bundle's type metadata and spec.
func (v *ConfigValidator) Validate(bundle *v1alpha1.Bundle) *validator.ValidationResult {
	result := validator.NewValidationResult()

	validator.ValidateMetadata(
		bundle.Kind,
		bundle.APIVersion,
		v1alpha1.Kind,
		v1alpha1.APIVersion,
		result,
	)

	err := bundle.Validate()
	if err != nil {
		result.AddError(validator.ValidationError{
			Field:         "spec",
			Message:       err.Error(),
			FixSuggestion: "Fix the field in kforge.yaml and rerun",
		})
	}

	return result
}
