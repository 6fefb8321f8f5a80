package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/gosniff/pkg/config"
)

// envVarPrefix is the prefix for all gosniff environment variables.
const envVarPrefix = "GOSNIFF_"

// envVar binds one environment variable to a config field.
type envVar struct {
	suffix      string
	description string
	apply       func(cfg *config.Config, value string) error
}

// envVars lists the supported environment variables.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envVars = []envVar{
	{"SEVERITY_DEFAULT", "Severity for every violation: error or warning", func(cfg *config.Config, v string) error {
		cfg.SeverityDefault = v
		return nil
	}},
	{"TAB_WIDTH", "Columns a tab advances to", intField(func(cfg *config.Config, n int) { cfg.TabWidth = n })},
	{"MAX_PASSES", "Maximum fix passes per file", intField(func(cfg *config.Config, n int) { cfg.MaxPasses = n })},
	{"FIX", "Enable auto-fix: true or false", boolField(func(cfg *config.Config, b bool) { cfg.Fix = b })},
	{"DRY_RUN", "Dry-run mode: true or false", boolField(func(cfg *config.Config, b bool) { cfg.DryRun = b })},
	{"JOBS", "Number of parallel workers (0 = auto)", intField(func(cfg *config.Config, n int) { cfg.Jobs = n })},
	{"FORMAT", "Output format: text, json or diff", func(cfg *config.Config, v string) error {
		cfg.Format = config.OutputFormat(v)
		return nil
	}},
	{"BACKUPS_ENABLED", "Enable backups when fixing: true or false", boolField(func(cfg *config.Config, b bool) { cfg.Backups.Enabled = b })},
	{"BACKUPS_MODE", "Backup mode: sidecar or none", func(cfg *config.Config, v string) error {
		cfg.Backups.Mode = v
		return nil
	}},
	{"NO_BACKUPS", "Disable backups: true or false", boolField(func(cfg *config.Config, b bool) { cfg.NoBackups = b })},
	{"IGNORE", "Comma-separated ignore globs", func(cfg *config.Config, v string) error {
		cfg.Ignore = parseSliceValue(v)
		return nil
	}},
	{"EXTENSIONS", "Comma-separated file extensions to discover", func(cfg *config.Config, v string) error {
		cfg.Extensions = parseSliceValue(v)
		return nil
	}},
}

func boolField(set func(*config.Config, bool)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %q is not a boolean (expected true/false/1/0)", ErrInvalidEnv, value)
		}
		set(cfg, b)
		return nil
	}
}

func intField(set func(*config.Config, int)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %q is not an integer", ErrInvalidEnv, value)
		}
		set(cfg, n)
		return nil
	}
}

// LoadFromEnv applies GOSNIFF_* environment overrides to cfg.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, ev := range envVars {
		name := envVarPrefix + ev.suffix
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		if err := ev.apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	return nil
}

// parseSliceValue splits a comma-separated value, dropping blank elements.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ListEnvVars returns the supported environment variables with their
// descriptions, sorted by name.
func ListEnvVars() [][2]string {
	out := make([][2]string, 0, len(envVars))
	for _, ev := range envVars {
		out = append(out, [2]string{envVarPrefix + ev.suffix, ev.description})
	}
	slices.SortFunc(out, func(a, b [2]string) int { return strings.Compare(a[0], b[0]) })
	return out
}
