package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strconv"

	"github.com/yaklabco/gosniff/internal/ui/pretty"
	"github.com/yaklabco/gosniff/pkg/analysis"
	"github.com/yaklabco/gosniff/pkg/runner"
)

// SummaryReporter writes aggregate tables instead of individual violations:
// one row per sniff, one row per file, then the run statistics.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	width  int
	bw     *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		width:  pretty.TerminalWidth(opts.Writer),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. It returns the number of violations summarized.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	report := analysis.Analyze(result, analysis.Options{
		SortBy:     analysis.SortByCount,
		SortDesc:   true,
		WorkingDir: r.opts.WorkingDir,
	})

	if len(report.BySniff) > 0 {
		table := pretty.NewTable(r.styles, r.width, "SNIFF", "ERRORS", "WARNINGS", "FIXABLE", "FILES")
		for _, s := range report.BySniff {
			table.AddRow(s.Code, strconv.Itoa(s.Errors), strconv.Itoa(s.Warnings),
				strconv.Itoa(s.Fixable), strconv.Itoa(len(s.Files)))
		}
		fmt.Fprintln(r.bw, table.String())
	}

	if len(report.ByFile) > 0 {
		table := pretty.NewTable(r.styles, r.width, "ERRORS", "WARNINGS", "FIXABLE", "FILE")
		for _, f := range report.ByFile {
			table.AddRow(strconv.Itoa(f.Errors), strconv.Itoa(f.Warnings), strconv.Itoa(f.Fixable), f.Path)
		}
		fmt.Fprint(r.bw, table.String())
	}

	if result != nil {
		for _, file := range result.Files {
			if file.Error != nil {
				fmt.Fprintf(r.bw, "%s: %s\n",
					r.styles.FilePath.Render(displayPath(file.Path, r.opts.WorkingDir)),
					r.styles.Error.Render(file.Error.Error()),
				)
			}
		}
		fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))
	}

	return report.Totals.Violations, nil
}
