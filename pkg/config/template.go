package config

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full includes every sniff with its documentation.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "toml".
	Format string

	// Sniffs describes the available sniffs for the full template.
	Sniffs []SniffInfo
}

// SniffInfo contains sniff metadata for template generation.
type SniffInfo struct {
	Code        string
	Description string
	Enabled     bool
	Severity    Severity
	Fixable     bool
	Kinds       []string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	switch opts.Format {
	case "", "yaml", "yml":
		return generateYAMLTemplate(opts), nil
	case "toml":
		return generateTOMLTemplate(opts), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownConfigFormat, opts.Format)
	}
}

func sortedSniffs(opts TemplateOptions) []SniffInfo {
	sniffs := slices.Clone(opts.Sniffs)
	slices.SortFunc(sniffs, func(a, b SniffInfo) int {
		return strings.Compare(a.Code, b.Code)
	})
	return sniffs
}

func generateYAMLTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Columns a tab advances to when computing token positions
tab_width: 4

# Maximum fix passes per file before giving up on convergence
max_passes: 10

# Default severity for sniffs: error or warning
# severity_default: error

# File patterns to ignore (glob patterns, ** supported)
# ignore:
#   - "vendor/**"

# Backup configuration for fix mode
backups:
  enabled: true
  mode: sidecar
`)

	if !opts.Full {
		buf.WriteString(`
# Sniff-specific configuration
# sniffs:
#   Generic.Files.OneClassPerFile:
#     enabled: true
#     severity: error
#   Generic.WhiteSpace.TrailingWhitespace:
#     properties:
#       ignoreBlankLines: "true"
`)
		return buf.Bytes()
	}

	buf.WriteString("\n# Sniff-specific configuration\nsniffs:\n")
	for _, s := range sortedSniffs(opts) {
		fmt.Fprintf(&buf, "\n  # %s\n", wrapComment(s.Description, commentWrapWidth, "  # "))
		if len(s.Kinds) > 0 {
			fmt.Fprintf(&buf, "  # File kinds: %s\n", strings.Join(s.Kinds, ", "))
		}
		if s.Fixable {
			buf.WriteString("  # Auto-fix: yes\n")
		}
		fmt.Fprintf(&buf, "  %s:\n", s.Code)
		fmt.Fprintf(&buf, "    enabled: %t\n", s.Enabled)
		if s.Severity != "" {
			fmt.Fprintf(&buf, "    severity: %s\n", s.Severity)
		}
		buf.WriteString("    # exclude: []\n")
	}

	return buf.Bytes()
}

func generateTOMLTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Columns a tab advances to when computing token positions
tab_width = 4

# Maximum fix passes per file before giving up on convergence
max_passes = 10

# Default severity for sniffs: error or warning
# severity_default = "error"

# File patterns to ignore (glob patterns, ** supported)
# ignore = ["vendor/**"]

[backups]
enabled = true
mode = "sidecar"
`)

	if !opts.Full {
		buf.WriteString(`
# [sniffs."Generic.Files.OneClassPerFile"]
# enabled = true
# severity = "error"
`)
		return buf.Bytes()
	}

	for _, s := range sortedSniffs(opts) {
		fmt.Fprintf(&buf, "\n# %s\n", wrapComment(s.Description, commentWrapWidth, "# "))
		if s.Fixable {
			buf.WriteString("# Auto-fix: yes\n")
		}
		fmt.Fprintf(&buf, "[sniffs.%q]\n", s.Code)
		fmt.Fprintf(&buf, "enabled = %t\n", s.Enabled)
		if s.Severity != "" {
			fmt.Fprintf(&buf, "severity = %q\n", string(s.Severity))
		}
	}

	return buf.Bytes()
}

// wrapComment wraps a comment to fit within maxWidth characters,
// continuing each wrapped line with prefix.
func wrapComment(text string, maxWidth int, prefix string) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n"+prefix)
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# gosniff configuration
# See: https://github.com/yaklabco/gosniff`
}
