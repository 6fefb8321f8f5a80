package sniffs

import (
	"github.com/yaklabco/gosniff/pkg/filekind"
	"github.com/yaklabco/gosniff/pkg/sniff"
	"github.com/yaklabco/gosniff/pkg/token"
)

// MethodScopeSniff requires class methods to declare a visibility.
type MethodScopeSniff struct {
	sniff.Base
}

// NewMethodScopeSniff creates the method scope sniff.
func NewMethodScopeSniff() *MethodScopeSniff {
	return &MethodScopeSniff{
		Base: sniff.NewBase(
			"Squiz.Scope.MethodScope",
			"Visibility must be declared on all methods",
			false,
			filekind.PHP,
		),
	}
}

// Register listens for named functions.
func (s *MethodScopeSniff) Register() []token.Kind {
	return []token.Kind{token.TokFunction}
}

// Process reports methods without public, protected or private.
func (s *MethodScopeSniff) Process(f *sniff.File, idx int) (int, error) {
	store := f.Tokens
	if !sniff.IsMethod(store, idx) {
		return 0, nil
	}

	name := sniff.DeclarationName(store, idx)
	if name == "" {
		return 0, nil
	}

	if mods := sniff.MemberModifiers(store, idx); mods.Visibility == "" {
		f.AddError(idx, "Missing", "Visibility must be declared on method %q", name)
	}
	return 0, nil
}
