package reporter

import (
	"bufio"
	"bytes"
	"context"
	"fmt"

	"github.com/yaklabco/gosniff/internal/ui/pretty"
	"github.com/yaklabco/gosniff/pkg/runner"
	"github.com/yaklabco/gosniff/pkg/sniff"
)

// TextReporter formats results as styled terminal output grouped by file.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	width  int
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		width:  pretty.TerminalWidth(opts.Writer),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. It returns the number of violations written.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		total += r.reportFile(file)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

func (r *TextReporter) reportFile(file runner.FileOutcome) int {
	path := displayPath(file.Path, r.opts.WorkingDir)

	if file.Error != nil {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(path),
			r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
		)
		return 0
	}

	pr := file.Result
	if pr == nil || pr.FileResult == nil {
		return 0
	}

	status := ""
	if pr.Status == sniff.StatusNotFullyFixed || pr.Skipped {
		status = pr.Summary()
	}
	if len(pr.Violations) == 0 && status == "" {
		return 0
	}

	fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(pr.Violations), status))

	var lines [][]byte
	if r.opts.ShowContext {
		lines = bytes.SplitAfter(pr.Content, []byte("\n"))
	}

	for i := range pr.Violations {
		v := &pr.Violations[i]
		format := pretty.ViolationFormat{CodeFormat: r.opts.CodeFormat, Width: r.width}
		if v.Line >= 1 && v.Line <= len(lines) {
			format.SourceLine = string(lines[v.Line-1])
		}
		fmt.Fprint(r.bw, r.styles.FormatViolation(path, v, format))
	}

	fmt.Fprintln(r.bw)
	return len(pr.Violations)
}
