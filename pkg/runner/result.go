package runner

import "github.com/yaklabco/gosniff/pkg/sniff"

// FileOutcome is the result of processing one file.
type FileOutcome struct {
	// Path is the absolute path of the file.
	Path string

	// Result is nil when Error is set.
	Result *sniff.PipelineResult

	// Error is set when the file could not be processed. A sniff failure
	// abandons only its file.
	Error error
}

// Stats aggregates a run.
type Stats struct {
	FilesDiscovered    int
	FilesProcessed     int
	FilesSkipped       int
	FilesErrored       int
	FilesWithIssues    int
	FilesModified      int
	FilesNotFullyFixed int

	// Errors, Warnings and Fixable count the violations left after fixing.
	Errors   int
	Warnings int
	Fixable  int

	// EditsApplied counts token edits committed across all fix passes.
	EditsApplied int

	// Conflicts counts edits that overwrote another sniff's edit.
	Conflicts int
}

// Violations returns the number of violations left after fixing.
func (s Stats) Violations() int {
	return s.Errors + s.Warnings
}

// Result is the outcome of a run.
type Result struct {
	// Files holds one outcome per discovered file, sorted by path.
	Files []FileOutcome

	Stats Stats
}

// HasFailures reports whether an error-severity violation remains.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.Errors > 0
}

// HasIssues reports whether any violation remains.
func (r *Result) HasIssues() bool {
	return r != nil && r.Stats.Violations() > 0
}

// HasFileErrors reports whether any file could not be processed.
func (r *Result) HasFileErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// Violations returns every remaining violation paired with its file path, in
// file order.
func (r *Result) Violations() []FileViolation {
	var out []FileViolation
	for _, outcome := range r.Files {
		if outcome.Result == nil || outcome.Result.FileResult == nil {
			continue
		}
		for _, v := range outcome.Result.Violations {
			out = append(out, FileViolation{Path: outcome.Path, Violation: v})
		}
	}
	return out
}

// FileViolation is a violation with the path of its file.
type FileViolation struct {
	Path string
	sniff.Violation
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	pr := outcome.Result
	if pr == nil {
		return
	}

	r.Stats.FilesProcessed++
	if pr.Skipped {
		r.Stats.FilesSkipped++
	}
	if pr.Written {
		r.Stats.FilesModified++
	}
	if pr.Status == sniff.StatusNotFullyFixed {
		r.Stats.FilesNotFullyFixed++
	}
	r.Stats.EditsApplied += pr.TotalEdits
	r.Stats.Conflicts += len(pr.Conflicts)

	if pr.FileResult == nil {
		return
	}
	if pr.HasIssues() {
		r.Stats.FilesWithIssues++
	}
	r.Stats.Errors += pr.Errors
	r.Stats.Warnings += pr.Warnings
	r.Stats.Fixable += pr.Fixable
}
