package configmanager

import (
	"errors"
	"fmt"
	"strings"

	"github.com/devantler-tech/kforge/pkg/io/validator"
)

// ErrConfigInvalid is returned when the loaded configuration fails validation.
var ErrConfigInvalid = errors.New("config validation failed")

// NewValidationSummaryError builds a compact error summarizing validation
// failures without repeating the full error stack.
func NewValidationSummaryError(errorCount, warningCount int) error {
	if warningCount > 0 {
		return fmt.Errorf(
			"%w: %d error(s), %d warning(s)",
			ErrConfigInvalid, errorCount, warningCount,
		)
	}

	return fmt.Errorf("%w: %d error(s)", ErrConfigInvalid, errorCount)
}

// FormatValidationErrorsMultiline renders all validation errors as a single
// multiline string suitable for a notify error message.
func FormatValidationErrorsMultiline(result *validator.ValidationResult) string {
	lines := make([]string, 0, len(result.Errors))

	for _, validationError := range result.Errors {
		line := validationError.Field + ": " + validationError.Message
		if validationError.FixSuggestion != "" {
			line += " (" + validationError.FixSuggestion + ")"
		}

		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// FormatValidationWarnings renders each validation warning as its own line.
func FormatValidationWarnings(result *validator.ValidationResult) []string {
	warnings := make([]string, 0, len(result.Warnings))

	for _, warning := range result.Warnings {
		line := warning.Field + ": " + warning.Message
		if warning.FixSuggestion != "" {
			line += " (" + warning.FixSuggestion + ")"
		}

		warnings = append(warnings, line)
	}

	return warnings
}
