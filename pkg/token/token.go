// Package token provides the token model shared by tokenizers, sniffs and the fixer:
// a Token record, an immutable indexed Store for one file version, and the
// navigation queries sniffs use to walk it.
package token

import "slices"

// None marks an unset structural link.
const None = -1

// Condition is one entry of a token's enclosing-scope stack.
type Condition struct {
	// Index is the index of the scope owner token (e.g. the T_CLASS token).
	Index int

	// Kind is the kind of the scope owner.
	Kind Kind
}

// Token is a classified span of source text with its position and the
// structural links resolved by the tokenizer.
//
// Links are token indices into the same Store, or None when unset.
type Token struct {
	// Index is the position of the token in its Store.
	Index int

	// Kind classifies the token.
	Kind Kind

	// Content is the exact source text of the token.
	Content string

	// Line is the 1-based line the token starts on.
	Line int

	// Column is the 1-based display column the token starts at.
	Column int

	ScopeCondition int
	ScopeOpener    int
	ScopeCloser    int

	BracketOpener int
	BracketCloser int

	ParenthesisOpener int
	ParenthesisCloser int
	ParenthesisOwner  int

	// Conditions lists the scope owners enclosing this token, outermost first.
	Conditions []Condition
}

// New returns a token of the given kind and content with every link unset.
func New(kind Kind, content string) Token {
	return Token{
		Kind:              kind,
		Content:           content,
		ScopeCondition:    None,
		ScopeOpener:       None,
		ScopeCloser:       None,
		BracketOpener:     None,
		BracketCloser:     None,
		ParenthesisOpener: None,
		ParenthesisCloser: None,
		ParenthesisOwner:  None,
	}
}

// HasScope reports whether the token carries a resolved scope opener and closer.
func (t Token) HasScope() bool {
	return t.ScopeOpener != None && t.ScopeCloser != None
}

// HasParenthesis reports whether the token carries resolved parentheses.
func (t Token) HasParenthesis() bool {
	return t.ParenthesisOpener != None && t.ParenthesisCloser != None
}

// HasBracket reports whether the token is part of a resolved bracket pair.
func (t Token) HasBracket() bool {
	return t.BracketOpener != None && t.BracketCloser != None
}

// Len returns the content length in bytes.
func (t Token) Len() int {
	return len(t.Content)
}

// clone returns t with its own copy of Conditions, so callers cannot reach
// the store's backing arrays.
func (t Token) clone() Token {
	t.Conditions = slices.Clone(t.Conditions)
	return t
}

// links returns every structural link held by the token, for validation.
func (t Token) links() []int {
	out := []int{
		t.ScopeCondition, t.ScopeOpener, t.ScopeCloser,
		t.BracketOpener, t.BracketCloser,
		t.ParenthesisOpener, t.ParenthesisCloser, t.ParenthesisOwner,
	}
	for _, c := range t.Conditions {
		out = append(out, c.Index)
	}
	return out
}
