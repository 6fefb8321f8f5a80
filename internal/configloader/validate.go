package configloader

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hbollon/go-edlib"

	"github.com/yaklabco/gosniff/pkg/config"
)

// minSuggestionSimilarity is the Jaro-Winkler score a known code needs to be
// offered as a suggestion for an unknown one.
const minSuggestionSimilarity = 0.8

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "sniffs.Generic.Files.OneClassPerFile.severity").
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

// Unwrap lets callers match ErrInvalidConfig with errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfig
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
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

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// knownBackupModes lists valid backup mode values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = []string{"sidecar", "none"}

// knownCodeFormats lists valid code format values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownCodeFormats = []config.CodeFormat{config.CodeFormatFull, config.CodeFormatSniff, config.CodeFormatLocal}

// Validate checks cfg for errors. knownCodes lists every registered sniff
// code; sniff codes outside it are errors carrying a suggestion when a known
// code is close. Zero numeric values mean "use the default".
func Validate(cfg *config.Config, knownCodes []string) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.SeverityDefault != "" && !config.Severity(cfg.SeverityDefault).IsValid() {
		result.fail("severity_default", cfg.SeverityDefault,
			"invalid severity %q; must be one of: error, warning", cfg.SeverityDefault)
	}
	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.fail("format", cfg.Format, "invalid format %q; must be one of: text, json, diff", cfg.Format)
	}
	if cfg.CodeFormat != "" && !slices.Contains(knownCodeFormats, cfg.CodeFormat) {
		result.fail("code_format", cfg.CodeFormat,
			"invalid code format %q; must be one of: full, sniff, local", cfg.CodeFormat)
	}
	if cfg.TabWidth < 0 {
		result.fail("tab_width", cfg.TabWidth, "tab_width must be positive")
	}
	if cfg.MaxPasses < 0 {
		result.fail("max_passes", cfg.MaxPasses, "max_passes must be positive")
	}
	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	if cfg.Backups.Mode != "" && !slices.Contains(knownBackupModes, cfg.Backups.Mode) {
		result.fail("backups.mode", cfg.Backups.Mode,
			"invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode)
	}

	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			result.fail(fmt.Sprintf("extensions[%d]", i), ext, "extension %q must start with a dot", ext)
		}
	}

	for i, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern %q", pattern)
		}
	}

	validateSniffs(cfg, knownCodes, result)

	return result
}

func validateSniffs(cfg *config.Config, knownCodes []string, result *ValidationResult) {
	checkCode := func(field, code string) bool {
		if slices.Contains(knownCodes, code) {
			return true
		}
		msg := fmt.Sprintf("unknown sniff %q", code)
		if suggestion := Suggest(code, knownCodes); suggestion != "" {
			msg += fmt.Sprintf("; did you mean %q?", suggestion)
		}
		result.fail(field, code, "%s", msg)
		return false
	}

	for _, code := range slices.Sorted(maps.Keys(cfg.Sniffs)) {
		sc := cfg.Sniffs[code]
		field := "sniffs." + code
		if !checkCode(field, code) {
			continue
		}
		if sc.Severity != nil && !config.Severity(*sc.Severity).IsValid() {
			result.fail(field+".severity", *sc.Severity,
				"invalid severity %q; must be one of: error, warning", *sc.Severity)
		}
	}

	lists := []struct {
		field string
		codes []string
	}{
		{"enable", cfg.EnableSniffs},
		{"disable", cfg.DisableSniffs},
		{"fix-sniffs", cfg.FixSniffs},
	}
	for _, list := range lists {
		for _, code := range list.codes {
			checkCode(list.field, code)
		}
	}

	for _, code := range cfg.EnableSniffs {
		if slices.Contains(cfg.DisableSniffs, code) {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "enable",
				Value:   code,
				Message: fmt.Sprintf("sniff %q is both enabled and disabled; disable wins", code),
			})
		}
	}
}

// Suggest returns the known code most similar to code, or "" when none is
// similar enough.
func Suggest(code string, knownCodes []string) string {
	best := ""
	var bestScore float32
	for _, known := range knownCodes {
		score, err := edlib.StringsSimilarity(strings.ToLower(code), strings.ToLower(known), edlib.JaroWinkler)
		if err != nil {
			continue
		}
		if score > bestScore {
			best, bestScore = known, score
		}
	}
	if bestScore < minSuggestionSimilarity {
		return ""
	}
	return best
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string, knownCodes []string) *ValidationResult {
	result := Validate(cfg, knownCodes)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}
