package configloader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/l0ser140/GDScript-formatter/pkg/config"
	"github.com/l0ser140/GDScript-formatter/pkg/lint"
	_ "github.com/l0ser140/GDScript-formatter/pkg/lint/rules" // register built-in rules
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "format.indent_size").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown rule names).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	if cfg == nil {
		return &ValidationResult{}
	}

	result := &ValidationResult{}

	if cfg.Format.IndentStyle != "" && !cfg.Format.IndentStyle.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format.indent_style",
			Value:   cfg.Format.IndentStyle,
			Message: fmt.Sprintf("invalid indent style %q; must be one of: tabs, spaces", cfg.Format.IndentStyle),
		})
	}

	if cfg.Format.IndentSize <= 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format.indent_size",
			Value:   cfg.Format.IndentSize,
			Message: "indent size must be positive",
		})
	}

	if cfg.Lint.MaxLineLength <= 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "lint.max_line_length",
			Value:   cfg.Lint.MaxLineLength,
			Message: "max line length must be positive",
		})
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	validateDisabledRules(cfg, result)
	validateIgnorePatterns(cfg, result)

	return result
}

// validateDisabledRules warns about disabled rule names the registry
// doesn't know.
func validateDisabledRules(cfg *config.Config, result *ValidationResult) {
	for _, name := range cfg.Lint.Disabled {
		if !lint.DefaultRegistry.Has(name) {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "lint.disable",
				Value:   name,
				Message: fmt.Sprintf("unknown rule %q; it will be ignored", name),
			})
		}
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		// filepath.Match returns an error only for malformed patterns
		_, err := filepath.Match(pattern, "")
		if err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
