// Package validator provides interfaces and result types for configuration
// and manifest validation.
//
// Key functionality:
//   - Validator[T]: Generic interface for validation
//   - ValidationResult: Structured validation results with errors and warnings
//   - ValidationError: Detailed error with field, message, and fix suggestion
//   - ValidateMetadata: Common metadata validation for Kind/APIVersion fields
package validator

import (
	"strings"
)

// Validator validates models of type T.
type Validator[T any] interface {
	// Validate checks the model and returns a structured result.
	Validate(model T) *ValidationResult
}

// ValidationError describes a single validation failure.
type ValidationError struct {
	// Field is the configuration field that failed validation.
	Field string
	// Message describes what is wrong.
	Message string
	// CurrentValue is the offending value, if known.
	CurrentValue string
	// ExpectedValue is the value or shape the field should have, if known.
	ExpectedValue string
	// FixSuggestion tells the user how to resolve the error.
	FixSuggestion string
}

// ValidationResult accumulates errors and warnings from a validation pass.
// Validators accumulate rather than fail fast so users see every problem in
// one run.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// NewValidationResult creates an empty ValidationResult.
func NewValidationResult() *ValidationResult {
	return &ValidationResult{}
}

// AddError records a validation error.
func (r *ValidationResult) AddError(err ValidationError) {
	r.Errors = append(r.Errors, err)
}

// AddWarning records a validation warning.
func (r *ValidationResult) AddWarning(warning ValidationError) {
	r.Warnings = append(r.Warnings, warning)
}

// Valid reports whether the result contains no errors. Warnings do not make
// a result invalid.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Summary renders all errors as a multi-line string for user display.
func (r *ValidationResult) Summary() string {
	if r.Valid() {
		return ""
	}

	lines := make([]string, 0, len(r.Errors))

	for _, err := range r.Errors {
		line := err.Field + ": " + err.Message

		if err.CurrentValue != "" {
			line += " (got " + err.CurrentValue + ")"
		}

		if err.FixSuggestion != "" {
			line += ". " + err.FixSuggestion
		}

		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// ValidateMetadata validates Kind and APIVersion fields using provided
// expected values. This covers the Kubernetes-style metadata shared by every
// config the tool loads.
func ValidateMetadata(
	kind, apiVersion, expectedKind, expectedAPIVersion string,
	result *ValidationResult,
) {
	if kind == "" {
		result.AddError(ValidationError{
			Field:         "kind",
			Message:       "kind is required",
			ExpectedValue: expectedKind,
			FixSuggestion: "Set kind to '" + expectedKind + "'",
		})
	} else if kind != expectedKind {
		result.AddError(ValidationError{
			Field:         "kind",
			Message:       "kind does not match expected value",
			CurrentValue:  kind,
			ExpectedValue: expectedKind,
			FixSuggestion: "Set kind to '" + expectedKind + "'",
		})
	}

	if apiVersion == "" {
		result.AddError(ValidationError{
			Field:         "apiVersion",
			Message:       "apiVersion is required",
			ExpectedValue: expectedAPIVersion,
			FixSuggestion: "Set apiVersion to '" + expectedAPIVersion + "'",
		})
	} else if apiVersion != expectedAPIVersion {
		result.AddError(ValidationError{
			Field:         "apiVersion",
			Message:       "apiVersion does not match expected value",
			CurrentValue:  apiVersion,
			ExpectedValue: expectedAPIVersion,
			FixSuggestion: "Set apiVersion to '" + expectedAPIVersion + "'",
		})
	}
}
