package config

import "strings"

// CodeFormat controls how violation codes appear in output.
type CodeFormat string

const (
	CodeFormatFull  CodeFormat = "full"  // "Generic.Files.OneClassPerFile.MultipleClasses"
	CodeFormatSniff CodeFormat = "sniff" // "Generic.Files.OneClassPerFile"
	CodeFormatLocal CodeFormat = "local" // "MultipleClasses"
)

// FormatCode formats a violation code for display.
// Falls back to the sniff code when the local code is empty.
func FormatCode(format CodeFormat, sniffCode, localCode string) string {
	if localCode == "" {
		return sniffCode
	}

	switch format {
	case CodeFormatSniff:
		return sniffCode
	case CodeFormatLocal:
		return localCode
	default:
		return sniffCode + "." + localCode
	}
}

// SplitCode splits a full code into its sniff code and local code.
// Sniff codes have exactly three dot-separated parts.
func SplitCode(full string) (string, string) {
	parts := strings.Split(full, ".")
	if len(parts) <= 3 {
		return full, ""
	}
	return strings.Join(parts[:3], "."), strings.Join(parts[3:], ".")
}
