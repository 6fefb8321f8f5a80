package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/gosniff/internal/configloader"
	"github.com/yaklabco/gosniff/pkg/config"
	"github.com/yaklabco/gosniff/pkg/fsutil"
	"github.com/yaklabco/gosniff/pkg/reporter"
	"github.com/yaklabco/gosniff/pkg/runner"
	"github.com/yaklabco/gosniff/pkg/sniff"
)

// Exit codes for gosniff.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitCheckErrors indicates the check completed but found errors.
	ExitCheckErrors = 1

	// ExitCheckWarnings indicates the check found warnings (when strict mode).
	ExitCheckWarnings = 2

	// ExitNotFullyFixed indicates a fix run hit the pass limit on some file.
	ExitNotFullyFixed = 3

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrIssuesFound signals a completed run whose result maps to a non-zero exit code.
var ErrIssuesFound = errors.New("issues found")

// ExitError carries the exit code of a command.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCodeFromResult determines the exit code based on result and strict mode.
// Errors outrank non-convergence, which outranks strict warnings.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	stats := result.Stats
	switch {
	case stats.Errors > 0:
		return ExitCheckErrors
	case stats.FilesNotFullyFixed > 0:
		return ExitNotFullyFixed
	case strict && stats.Warnings > 0:
		return ExitCheckWarnings
	case stats.FilesErrored > 0:
		return fileFailureCode(result.Files)
	default:
		return ExitSuccess
	}
}

// fileFailureCode maps per-file failures to an exit code. Known pipeline
// failures such as unreadable files or failing sniffs count as I/O errors;
// anything else is internal.
func fileFailureCode(files []runner.FileOutcome) int {
	for _, outcome := range files {
		if outcome.Error != nil && !sniff.IsPipelineError(outcome.Error) {
			return ExitInternalError
		}
	}
	return ExitIOError
}

// ExitCodeFromError maps a command error to an exit code.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	switch {
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.Is(err, configloader.ErrInvalidConfig), errors.Is(err, configloader.ErrInvalidEnv),
		errors.Is(err, config.ErrUnknownConfigFormat):
		return ExitConfigError
	case errors.Is(err, runner.ErrInvalidGlob), errors.Is(err, reporter.ErrUnknownFormat):
		return ExitInvalidUsage
	case errors.Is(err, fsutil.ErrNotFound), errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, sniff.ErrFileNotFound), errors.Is(err, sniff.ErrPermissionDenied),
		errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
