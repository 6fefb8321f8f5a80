// Package config defines core configuration types for gosniff.
// These types are pure data structures; discovery and merging live in internal/configloader.
package config

// Severity represents the severity level of a violation.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// IsValid reports whether s is a known severity.
func (s Severity) IsValid() bool {
	return s == SeverityError || s == SeverityWarning
}

// Defaults for the core engine.
const (
	DefaultTabWidth  = 4
	DefaultMaxPasses = 10
)

// SniffConfig holds per-sniff configuration.
type SniffConfig struct {
	Enabled  *bool   `yaml:"enabled,omitempty" toml:"enabled,omitempty"`
	Severity *string `yaml:"severity,omitempty" toml:"severity,omitempty"`
	AutoFix  *bool   `yaml:"auto_fix,omitempty" toml:"auto_fix,omitempty"`

	// Exclude lists local codes (e.g. "MultipleClasses") or full codes whose
	// violations are suppressed.
	Exclude []string `yaml:"exclude,omitempty" toml:"exclude,omitempty"`

	// Properties are passed to configurable sniffs before a run.
	Properties map[string]any `yaml:"properties,omitempty" toml:"properties,omitempty"`
}

// BackupsConfig controls backup behavior when fixing files.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Mode    string `yaml:"mode" toml:"mode"` // "sidecar" or "none"
}

// OutputFormat specifies the output format for reports.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
)

// IsValid reports whether f is a known output format.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatDiff, FormatSummary:
		return true
	default:
		return false
	}
}

// Config is the root configuration structure for gosniff.
type Config struct {
	// TabWidth is the number of columns a tab advances to when computing positions.
	TabWidth int `yaml:"tab_width" toml:"tab_width"`

	// MaxPasses caps the number of fix passes per file.
	MaxPasses int `yaml:"max_passes" toml:"max_passes"`

	// SeverityDefault, when set, overrides the severity of every violation from
	// sniffs without their own severity setting.
	SeverityDefault string `yaml:"severity_default,omitempty" toml:"severity_default,omitempty"`

	// Sniffs contains per-sniff configuration keyed by sniff code.
	Sniffs map[string]SniffConfig `yaml:"sniffs,omitempty" toml:"sniffs,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty" toml:"ignore,omitempty"`

	// Extensions lists file extensions to discover when walking directories.
	Extensions []string `yaml:"extensions,omitempty" toml:"extensions,omitempty"`

	// Backups configures backup behavior when fixing.
	Backups BackupsConfig `yaml:"backups" toml:"backups"`

	// CLI-level options (not persisted to config files).

	// Fix enables auto-fixing of violations.
	Fix bool `yaml:"-" toml:"-"`

	// DryRun shows what would be fixed without writing files.
	DryRun bool `yaml:"-" toml:"-"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"-" toml:"-"`

	// CodeFormat controls how violation codes appear in output.
	CodeFormat CodeFormat `yaml:"-" toml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-" toml:"-"`

	// EnableSniffs contains sniff codes to explicitly enable.
	EnableSniffs []string `yaml:"-" toml:"-"`

	// DisableSniffs contains sniff codes to explicitly disable.
	DisableSniffs []string `yaml:"-" toml:"-"`

	// FixSniffs limits auto-fixing to specific sniff codes.
	FixSniffs []string `yaml:"-" toml:"-"`

	// NoBackups disables backup creation when fixing.
	NoBackups bool `yaml:"-" toml:"-"`
}

// DefaultExtensions are discovered when no extensions are configured.
//
//nolint:gochecknoglobals // Read-only defaults.
var DefaultExtensions = []string{".php", ".inc", ".md", ".markdown"}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		TabWidth:   DefaultTabWidth,
		MaxPasses:  DefaultMaxPasses,
		Sniffs:     make(map[string]SniffConfig),
		Extensions: append([]string(nil), DefaultExtensions...),
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
		Format:     FormatText,
		CodeFormat: CodeFormatFull,
		Jobs:       0, // 0 means use GOMAXPROCS
	}
}

// EffectiveTabWidth returns TabWidth, or the default when unset.
func (c *Config) EffectiveTabWidth() int {
	if c == nil || c.TabWidth <= 0 {
		return DefaultTabWidth
	}
	return c.TabWidth
}

// EffectiveMaxPasses returns MaxPasses, or the default when unset.
func (c *Config) EffectiveMaxPasses() int {
	if c == nil || c.MaxPasses <= 0 {
		return DefaultMaxPasses
	}
	return c.MaxPasses
}
