package sniff

import (
	"github.com/yaklabco/gosniff/pkg/token"
)

// Traversal helpers shared by sniffs. Sniffs reuse behavior by calling these
// rather than by embedding one another.

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	// DeclarationKinds are the named top-level declarations.
	DeclarationKinds = token.NewKindSet(token.TokClass, token.TokInterface, token.TokTrait)

	memberModifierKinds = token.NewKindSet(
		token.TokPublic, token.TokProtected, token.TokPrivate,
		token.TokStatic, token.TokAbstract, token.TokFinal,
	)
)

// IsTopLevel reports whether idx is outside every scope other than namespaces.
func IsTopLevel(store *token.Store, idx int) bool {
	for _, c := range store.Conditions(idx) {
		if c.Kind != token.TokNamespace {
			return false
		}
	}
	return true
}

// DeclarationName returns the name following a class, interface, trait or
// function keyword at idx, or "" for anonymous declarations.
func DeclarationName(store *token.Store, idx int) string {
	next, ok := store.FindNextNonEmpty(idx + 1)
	if !ok {
		return ""
	}
	if store.Content(next) == "&" {
		if next, ok = store.FindNextNonEmpty(next + 1); !ok {
			return ""
		}
	}
	if store.Kind(next) != token.TokString {
		return ""
	}
	return store.Content(next)
}

// EnclosingScope returns the innermost scope owner around idx whose kind is
// in kinds.
func EnclosingScope(store *token.Store, idx int, kinds token.KindSet) (int, bool) {
	conds := store.Conditions(idx)
	for i := len(conds) - 1; i >= 0; i-- {
		if kinds.Has(conds[i].Kind) {
			return conds[i].Index, true
		}
	}
	return token.None, false
}

// IsMethod reports whether the function keyword at idx declares a class member:
// its innermost scope is a class-like scope.
func IsMethod(store *token.Store, idx int) bool {
	conds := store.Conditions(idx)
	return len(conds) > 0 && token.OOScopes.Has(conds[len(conds)-1].Kind)
}

// Modifiers are the keywords preceding a class member.
type Modifiers struct {
	// Visibility is "public", "protected", "private" or "" when absent.
	Visibility string

	// VisibilityIndex is the index of the visibility keyword, or token.None.
	VisibilityIndex int

	Static   bool
	Abstract bool
	Final    bool

	// First is the index of the first modifier, or the member keyword itself
	// when there are none.
	First int
}

// MemberModifiers collects the modifiers written before the member keyword at idx.
func MemberModifiers(store *token.Store, idx int) Modifiers {
	mods := Modifiers{VisibilityIndex: token.None, First: idx}

	for cur := idx; ; {
		prev, ok := store.FindPreviousNonEmpty(cur - 1)
		if !ok || !memberModifierKinds.Has(store.Kind(prev)) {
			break
		}

		switch store.Kind(prev) {
		case token.TokPublic, token.TokProtected, token.TokPrivate:
			mods.Visibility = store.Content(prev)
			mods.VisibilityIndex = prev
		case token.TokStatic:
			mods.Static = true
		case token.TokAbstract:
			mods.Abstract = true
		case token.TokFinal:
			mods.Final = true
		}
		mods.First = prev
		cur = prev
	}

	return mods
}
