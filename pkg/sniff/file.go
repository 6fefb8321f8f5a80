package sniff

import (
	"context"
	"fmt"

	"github.com/yaklabco/gosniff/pkg/config"
	"github.com/yaklabco/gosniff/pkg/filekind"
	"github.com/yaklabco/gosniff/pkg/fixer"
	"github.com/yaklabco/gosniff/pkg/token"
)

// File is the context a sniff receives for one pass over one file.
type File struct {
	// Path is the file path as given to the engine.
	Path string

	// Kind is the detected file kind.
	Kind filekind.Kind

	// Tokens is the read-only Token Store for this pass.
	Tokens *token.Store

	// Fixer collects edits for this pass. Read in-progress content through
	// Fixer.TokenContent when fixing.
	Fixer *fixer.Fixer

	ctx        context.Context
	fixMode    bool
	tabWidth   int
	violations *ViolationLog

	current *ResolvedSniff
	err     error
}

// NewFile creates the per-pass context.
func NewFile(ctx context.Context, path string, kind filekind.Kind, store *token.Store, fixMode bool, tabWidth int) *File {
	return &File{
		Path:       path,
		Kind:       kind,
		Tokens:     store,
		Fixer:      fixer.New(ctx, store),
		ctx:        ctx,
		fixMode:    fixMode,
		tabWidth:   tabWidth,
		violations: NewViolationLog(),
	}
}

// Context returns the run context.
func (f *File) Context() context.Context {
	return f.ctx
}

// FixMode reports whether fixes are being applied in this pass.
func (f *File) FixMode() bool {
	return f.fixMode
}

// TabWidth returns the configured tab width.
func (f *File) TabWidth() int {
	return f.tabWidth
}

// End returns the skip index that ends processing of the file.
func (f *File) End() int {
	return f.Tokens.Len()
}

// Violations returns the pass's violation log.
func (f *File) Violations() *ViolationLog {
	return f.violations
}

// AddError records an error at the token idx. args are interpolated into
// format with fmt.Sprintf.
func (f *File) AddError(idx int, code, format string, args ...any) {
	f.addAt(idx, code, config.SeverityError, false, format, args)
}

// AddWarning records a warning at the token idx.
func (f *File) AddWarning(idx int, code, format string, args ...any) {
	f.addAt(idx, code, config.SeverityWarning, false, format, args)
}

// AddErrorOnLine records an error on a line when no token is known.
func (f *File) AddErrorOnLine(line int, code, format string, args ...any) {
	f.add(line, 1, code, config.SeverityError, false, format, args)
}

// AddWarningOnLine records a warning on a line when no token is known.
func (f *File) AddWarningOnLine(line int, code, format string, args ...any) {
	f.add(line, 1, code, config.SeverityWarning, false, format, args)
}

// AddFixableError records a fixable error and reports whether the caller
// should apply its fix now.
func (f *File) AddFixableError(idx int, code, format string, args ...any) bool {
	return f.addAt(idx, code, config.SeverityError, true, format, args)
}

// AddFixableWarning records a fixable warning and reports whether the caller
// should apply its fix now.
func (f *File) AddFixableWarning(idx int, code, format string, args ...any) bool {
	return f.addAt(idx, code, config.SeverityWarning, true, format, args)
}

func (f *File) addAt(idx int, code string, severity config.Severity, fixable bool, format string, args []any) bool {
	tok, err := f.Tokens.At(idx)
	if err != nil {
		f.fail(fmt.Errorf("report %s: %w", code, err))
		return false
	}
	return f.add(tok.Line, tok.Column, code, severity, fixable, format, args)
}

func (f *File) add(line, column int, code string, severity config.Severity, fixable bool, format string, args []any) bool {
	var sniffCode string
	autoFix := false
	if rs := f.current; rs != nil {
		if rs.Excluded(code) {
			return false
		}
		sniffCode = rs.Sniff.Code()
		autoFix = rs.AutoFix
		if rs.Severity != "" {
			severity = rs.Severity
		}
	}

	message := format
	if len(args) > 0 {
		message = fmt.Sprintf(format, args...)
	}

	f.violations.Add(Violation{
		Line:     line,
		Column:   column,
		Sniff:    sniffCode,
		Code:     code,
		Message:  message,
		Severity: severity,
		Fixable:  fixable,
	})

	return fixable && autoFix && f.fixMode
}

// fail records the first fatal error raised through the violation API.
func (f *File) fail(err error) {
	if f.err == nil {
		f.err = err
	}
}

// takeErr returns and clears the recorded fatal error.
func (f *File) takeErr() error {
	err := f.err
	f.err = nil
	return err
}
