package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Run fields.
	FieldFix       = "fix"
	FieldDryRun    = "dry_run"
	FieldJobs      = "jobs"
	FieldKind      = "kind"
	FieldPass      = "pass"
	FieldEdits     = "edits"
	FieldMaxPasses = "max_passes"
	FieldStatus    = "status"
	FieldFirstPass = "first_pass"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesErrored    = "files_errored"
	FieldViolations      = "violations"
	FieldFilesModified   = "files_modified"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Sniff and fixer fields.
	FieldSniff    = "sniff"
	FieldIndex    = "index"
	FieldLine     = "line"
	FieldPrevious = "previous"
)
