// Package sniff runs rule checkers ("sniffs") over a tokenized file.
//
// A sniff registers the token kinds it wants to see. The Dispatcher walks
// the Token Store in index order and calls every interested sniff for each
// token; sniffs report through the File's violation methods and propose
// edits through its Fixer. The Pipeline repeats tokenize and dispatch passes
// until fixes converge.
package sniff

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/yaklabco/gosniff/pkg/filekind"
	"github.com/yaklabco/gosniff/pkg/token"
)

// Sniff is a rule checker over a token stream.
//
// Instances hold no state across files; per-instance properties are set
// before a run through Configurable.
type Sniff interface {
	// Code is the dotted sniff code, e.g. "Generic.Files.OneClassPerFile".
	Code() string

	// Description explains what the sniff checks.
	Description() string

	// Register returns the token kinds the sniff wants to process.
	Register() []token.Kind

	// Process handles one token occurrence. Returning an index greater than
	// idx skips every token before it for all sniffs; any other value
	// continues with the next token.
	Process(f *File, idx int) (int, error)

	// SupportedKinds lists the file kinds the sniff applies to; empty means all.
	SupportedKinds() []filekind.Kind

	// DefaultEnabled reports whether the sniff runs when nothing configures it.
	DefaultEnabled() bool

	// CanFix reports whether the sniff proposes fixes.
	CanFix() bool
}

// Configurable is implemented by sniffs that accept properties.
type Configurable interface {
	SetProperty(name, value string) error
}

// Factory constructs a fresh sniff instance.
type Factory func() Sniff

// Base provides the metadata half of the Sniff interface.
// Embed it in sniff implementations and add Register and Process.
type Base struct {
	code    string
	desc    string
	fixable bool
	kinds   []filekind.Kind
}

// NewBase creates a Base. With no kinds, the sniff applies to every file kind.
func NewBase(code, desc string, fixable bool, kinds ...filekind.Kind) Base {
	return Base{
		code:    code,
		desc:    desc,
		fixable: fixable,
		kinds:   kinds,
	}
}

// Code returns the sniff code.
func (b *Base) Code() string {
	return b.code
}

// Description returns what the sniff checks.
func (b *Base) Description() string {
	return b.desc
}

// SupportedKinds returns the file kinds the sniff applies to.
func (b *Base) SupportedKinds() []filekind.Kind {
	return b.kinds
}

// DefaultEnabled returns true. Override to ship a sniff disabled.
func (b *Base) DefaultEnabled() bool {
	return true
}

// CanFix returns whether the sniff proposes fixes.
func (b *Base) CanFix() bool {
	return b.fixable
}

// Supports reports whether s applies to files of kind.
func Supports(s Sniff, kind filekind.Kind) bool {
	kinds := s.SupportedKinds()
	return len(kinds) == 0 || slices.Contains(kinds, kind)
}

// ParseBoolProperty parses a boolean property value.
func ParseBoolProperty(name, value string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("property %s: %q is not a boolean", name, value)
	}
	return b, nil
}
