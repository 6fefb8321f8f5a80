package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gosniff/pkg/runner"
)

const summaryDividerWidth = 40

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "5 issues (3 errors, 2 warnings) in 2 files, 4 fixable".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var parts []string

	total := stats.Violations()
	if total == 0 {
		parts = append(parts, s.Success.Render("No issues found")+
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesProcessed, plural(stats.FilesProcessed, "file", "files"))))
	} else {
		var severityParts []string
		if stats.Errors > 0 {
			severityParts = append(severityParts, s.Error.Render(fmt.Sprintf("%d %s", stats.Errors, plural(stats.Errors, "error", "errors"))))
		}
		if stats.Warnings > 0 {
			severityParts = append(severityParts, s.Warning.Render(fmt.Sprintf("%d %s", stats.Warnings, plural(stats.Warnings, "warning", "warnings"))))
		}
		parts = append(parts, fmt.Sprintf("%d %s (%s) in %d %s",
			total, plural(total, "issue", "issues"),
			strings.Join(severityParts, ", "),
			stats.FilesWithIssues, plural(stats.FilesWithIssues, "file", "files"),
		))
		if stats.Fixable > 0 {
			parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixable", stats.Fixable)))
		}
	}

	if stats.FilesModified > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d %s applied in %d %s",
			stats.EditsApplied, plural(stats.EditsApplied, "edit", "edits"),
			stats.FilesModified, plural(stats.FilesModified, "file", "files"))))
	}
	if stats.FilesNotFullyFixed > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d not fully fixed", stats.FilesNotFullyFixed)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d %s failed", stats.FilesErrored, plural(stats.FilesErrored, "file", "files"))))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	row := func(label string, style func(...string) string, value int) {
		fmt.Fprintf(&builder, "  %-19s%s\n", label+":", style(strconv.Itoa(value)))
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row("Files checked", s.SummaryValue.Render, stats.FilesProcessed)
	if stats.FilesWithIssues > 0 {
		row("Files with issues", s.Failure.Render, stats.FilesWithIssues)
	}
	if stats.FilesModified > 0 {
		row("Files modified", s.Success.Render, stats.FilesModified)
	}
	if stats.FilesNotFullyFixed > 0 {
		row("Not fully fixed", s.Warning.Render, stats.FilesNotFullyFixed)
	}
	if stats.FilesErrored > 0 {
		row("Files failed", s.Failure.Render, stats.FilesErrored)
	}

	builder.WriteString("\n")
	row("Total issues", s.SummaryValue.Render, stats.Violations())
	if stats.Errors > 0 {
		row("  Errors", s.Error.Render, stats.Errors)
	}
	if stats.Warnings > 0 {
		row("  Warnings", s.Warning.Render, stats.Warnings)
	}
	if stats.Conflicts > 0 {
		row("Fix conflicts", s.Dim.Render, stats.Conflicts)
	}

	builder.WriteString("\n")
	switch {
	case stats.Errors > 0:
		builder.WriteString(s.Failure.Render("Check failed with errors"))
	case stats.Warnings > 0:
		builder.WriteString(s.Warning.Render("Check completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Check passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
