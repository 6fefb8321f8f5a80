package sniff

import (
	"errors"
	"fmt"
)

// Pipeline and engine error types for categorization.
var (
	// ErrFileNotFound indicates the file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrParseFailure indicates the tokenizer failed or produced malformed output.
	ErrParseFailure = errors.New("parse failure")

	// ErrWriteFailure indicates a write error.
	ErrWriteFailure = errors.New("write failure")

	// ErrFileKindUnsupported indicates no tokenizer handles the file.
	ErrFileKindUnsupported = errors.New("unsupported file kind")

	// ErrSniffPanic wraps a panic recovered from a sniff.
	ErrSniffPanic = errors.New("sniff panicked")

	// ErrUnclosedChangeset indicates a sniff returned with a changeset still open.
	ErrUnclosedChangeset = errors.New("changeset left open")

	// ErrNotConfigurable indicates properties were set on a sniff without any.
	ErrNotConfigurable = errors.New("sniff has no properties")

	// ErrUnknownProperty indicates a property name the sniff does not define.
	ErrUnknownProperty = errors.New("unknown property")
)

// SniffError is a fatal failure raised while a sniff processed a token.
// It aborts the file being analyzed.
type SniffError struct {
	Sniff string
	Path  string
	Index int
	Line  int
	Err   error
}

func (e *SniffError) Error() string {
	return fmt.Sprintf("%s:%d: sniff %s failed at token %d: %v", e.Path, e.Line, e.Sniff, e.Index, e.Err)
}

func (e *SniffError) Unwrap() error {
	return e.Err
}

// IsPipelineError checks if an error is a known pipeline error type.
func IsPipelineError(err error) bool {
	var sniffErr *SniffError
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrParseFailure) ||
		errors.Is(err, ErrWriteFailure) ||
		errors.Is(err, ErrFileKindUnsupported) ||
		errors.As(err, &sniffErr)
}
