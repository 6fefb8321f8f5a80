package pretty

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/gosniff/pkg/config"
	"github.com/yaklabco/gosniff/pkg/sniff"
)

// sourceIndent aligns source context under the violation line.
const sourceIndent = "        "

// ViolationFormat controls FormatViolation.
type ViolationFormat struct {
	// CodeFormat selects how the violation code is shown.
	CodeFormat config.CodeFormat

	// SourceLine is shown under the violation when non-empty.
	SourceLine string

	// Width truncates the source line. Zero disables truncation.
	Width int
}

// FormatViolation formats a single violation for terminal output.
func (s *Styles) FormatViolation(path string, v *sniff.Violation, opts ViolationFormat) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d", s.FilePath.Render(path), v.Line, v.Column)
	code := s.Code.Render("(" + config.FormatCode(opts.CodeFormat, v.Sniff, v.Code) + ")")

	fixable := ""
	if v.Fixable {
		fixable = " " + s.Fixable.Render("[fixable]")
	}

	fmt.Fprintf(&builder, "  %s  %s  %s  %s%s\n",
		location,
		s.FormatSeverity(v.Severity),
		s.Message.Render(v.Message),
		code,
		fixable,
	)

	if opts.SourceLine != "" {
		builder.WriteString(s.FormatSourceContext(opts.SourceLine, v.Column, opts.Width))
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	default:
		return string(sev)
	}
}

// FormatSourceContext formats the source line with a caret under column.
// Columns are display columns, so the caret lines up under wide runes.
// The line is cut to width when width is positive.
func (s *Styles) FormatSourceContext(line string, column, width int) string {
	var builder strings.Builder

	line = strings.TrimRight(line, "\r\n")
	if width > 0 {
		line = runewidth.Truncate(line, max(width-len(sourceIndent), 1), "…")
	}

	builder.WriteString(sourceIndent + s.SourceLine.Render(line) + "\n")

	if column > 0 && column-1 <= runewidth.StringWidth(line) {
		builder.WriteString(sourceIndent + strings.Repeat(" ", column-1) + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, count int, status string) string {
	header := s.FilePath.Render(path)
	if count > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", count, plural(count, "issue", "issues")))
	}
	if status != "" {
		header += " " + s.Warning.Render(status)
	}
	return header
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
