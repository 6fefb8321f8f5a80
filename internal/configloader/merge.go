package configloader

import (
	"maps"

	"github.com/yaklabco/gosniff/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Maps: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.TabWidth != 0 {
		result.TabWidth = override.TabWidth
	}
	if override.MaxPasses != 0 {
		result.MaxPasses = override.MaxPasses
	}
	if override.SeverityDefault != "" {
		result.SeverityDefault = override.SeverityDefault
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.CodeFormat != "" {
		result.CodeFormat = override.CodeFormat
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// False is the zero value, so a later source can only switch these on.
	if override.Fix {
		result.Fix = true
	}
	if override.DryRun {
		result.DryRun = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}

	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}
	if override.Backups.Enabled {
		result.Backups.Enabled = true
	}

	result.Sniffs = mergeSniffs(base.Sniffs, override.Sniffs)

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}
	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.EnableSniffs != nil {
		result.EnableSniffs = override.EnableSniffs
	}
	if override.DisableSniffs != nil {
		result.DisableSniffs = override.DisableSniffs
	}
	if override.FixSniffs != nil {
		result.FixSniffs = override.FixSniffs
	}

	return &result
}

// mergeSniffs performs a deep merge of per-sniff configuration.
func mergeSniffs(base, override map[string]config.SniffConfig) map[string]config.SniffConfig {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]config.SniffConfig, len(base)+len(override))
	maps.Copy(result, base)

	for code, sc := range override {
		if existing, ok := result[code]; ok {
			result[code] = mergeSniffConfig(existing, sc)
		} else {
			result[code] = sc
		}
	}

	return result
}

// mergeSniffConfig merges one sniff's settings. Properties merge key by key;
// an override's exclude list replaces the base list.
func mergeSniffConfig(base, override config.SniffConfig) config.SniffConfig {
	result := base

	if override.Enabled != nil {
		result.Enabled = override.Enabled
	}
	if override.Severity != nil {
		result.Severity = override.Severity
	}
	if override.AutoFix != nil {
		result.AutoFix = override.AutoFix
	}
	if override.Exclude != nil {
		result.Exclude = override.Exclude
	}

	if override.Properties != nil {
		props := make(map[string]any, len(base.Properties)+len(override.Properties))
		maps.Copy(props, base.Properties)
		maps.Copy(props, override.Properties)
		result.Properties = props
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, cfg := range configs[1:] {
		result = merge(result, cfg)
	}
	return result
}
