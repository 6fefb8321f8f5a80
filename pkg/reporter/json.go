package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/gosniff/pkg/runner"
)

// jsonVersion identifies the JSON document layout.
const jsonVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path       string          `json:"path"`
	Kind       string          `json:"kind,omitempty"`
	Violations []JSONViolation `json:"violations"`
	Status     string          `json:"status,omitempty"`
	Modified   bool            `json:"modified,omitempty"`
	FixPasses  int             `json:"fixPasses,omitempty"`
	Edits      int             `json:"edits,omitempty"`
	SkipReason string          `json:"skipReason,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// JSONViolation represents a single violation.
type JSONViolation struct {
	Source   string `json:"source"`
	Sniff    string `json:"sniff"`
	Code     string `json:"code"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Fixable  bool   `json:"fixable"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked       int `json:"filesChecked"`
	FilesWithIssues    int `json:"filesWithIssues"`
	FilesModified      int `json:"filesModified"`
	FilesNotFullyFixed int `json:"filesNotFullyFixed"`
	FilesErrored       int `json:"filesErrored"`
	Errors             int `json:"errors"`
	Warnings           int `json:"warnings"`
	Fixable            int `json:"fixable"`
	EditsApplied       int `json:"editsApplied"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. It returns the number of violations written.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.Errors + output.Summary.Warnings, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonVersion,
		Files:   make([]JSONFileResult, 0),
	}
	if result == nil {
		return output
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesChecked:       stats.FilesProcessed,
		FilesWithIssues:    stats.FilesWithIssues,
		FilesModified:      stats.FilesModified,
		FilesNotFullyFixed: stats.FilesNotFullyFixed,
		FilesErrored:       stats.FilesErrored,
		Errors:             stats.Errors,
		Warnings:           stats.Warnings,
		Fixable:            stats.Fixable,
		EditsApplied:       stats.EditsApplied,
	}

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:       displayPath(file.Path, r.opts.WorkingDir),
			Violations: make([]JSONViolation, 0),
		}

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}

		if pr := file.Result; pr != nil {
			fileResult.Status = pr.Status.String()
			fileResult.Modified = pr.Written
			fileResult.FixPasses = pr.FixPasses
			fileResult.Edits = pr.TotalEdits
			fileResult.SkipReason = pr.SkipReason

			if pr.FileResult != nil {
				fileResult.Kind = string(pr.Kind)
				for _, v := range pr.Violations {
					fileResult.Violations = append(fileResult.Violations, JSONViolation{
						Source:   v.FullCode(),
						Sniff:    v.Sniff,
						Code:     v.Code,
						Severity: string(v.Severity),
						Message:  v.Message,
						Line:     v.Line,
						Column:   v.Column,
						Fixable:  v.Fixable,
					})
				}
			}
		}

		output.Files = append(output.Files, fileResult)
	}

	return output
}
