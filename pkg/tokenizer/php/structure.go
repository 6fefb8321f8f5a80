package php

import (
	"slices"

	"github.com/yaklabco/gosniff/pkg/token"
)

// pendingOwner is a scope owner keyword still waiting for its opening brace.
type pendingOwner struct {
	index int
	depth int // parenthesis depth the keyword was seen at
}

// closerFor maps closing bracket kinds to the opener kinds they pair with.
//
//nolint:gochecknoglobals // Read-only lookup table.
var closerFor = map[token.Kind]token.Kind{
	token.TokCloseCurlyBracket:  token.TokOpenCurlyBracket,
	token.TokCloseSquareBracket: token.TokOpenSquareBracket,
	token.TokCloseShortArray:    token.TokOpenShortArray,
}

// resolveLinks pairs parentheses, brackets and scopes in place.
// Unbalanced input is tolerated: unmatched tokens simply keep unset links.
func resolveLinks(toks []token.Token) {
	var (
		parens   []int
		brackets []int
		pending  []pendingOwner
		scopeOf  = map[int]int{}
	)

	for i := range toks {
		kind := toks[i].Kind

		switch {
		case token.ScopeOwners.Has(kind):
			if n := len(pending); n > 0 && kind == token.TokIf &&
				toks[pending[n-1].index].Kind == token.TokElse && pending[n-1].depth == len(parens) {
				// "else if": the if owns the brace.
				pending = pending[:n-1]
			}
			pending = append(pending, pendingOwner{index: i, depth: len(parens)})

		case kind == token.TokOpenParenthesis:
			parens = append(parens, i)

		case kind == token.TokCloseParenthesis:
			n := len(parens)
			if n == 0 {
				continue
			}
			opener := parens[n-1]
			parens = parens[:n-1]
			pairParens(toks, opener, i)

		case kind == token.TokOpenCurlyBracket || kind == token.TokOpenSquareBracket ||
			kind == token.TokOpenShortArray:
			brackets = append(brackets, i)
			if n := len(pending); kind == token.TokOpenCurlyBracket && n > 0 && pending[n-1].depth == len(parens) {
				scopeOf[i] = pending[n-1].index
				pending = pending[:n-1]
			}

		case closerFor[kind] != token.TokUnknown:
			at := -1
			for j := len(brackets) - 1; j >= 0; j-- {
				if toks[brackets[j]].Kind == closerFor[kind] {
					at = j
					break
				}
			}
			if at < 0 {
				continue
			}
			opener := brackets[at]
			brackets = brackets[:at]

			for _, idx := range []int{opener, i} {
				toks[idx].BracketOpener = opener
				toks[idx].BracketCloser = i
			}

			if owner, ok := scopeOf[opener]; ok {
				for _, idx := range []int{owner, opener, i} {
					toks[idx].ScopeCondition = owner
					toks[idx].ScopeOpener = opener
					toks[idx].ScopeCloser = i
				}
				// Owners seen inside the closed scope can no longer open it.
				pending = slices.DeleteFunc(pending, func(p pendingOwner) bool { return p.index > opener })
			}

		case kind == token.TokSemicolon:
			for n := len(pending); n > 0 && pending[n-1].depth >= len(parens); n = len(pending) {
				pending = pending[:n-1]
			}
		}
	}
}

// pairParens links a parenthesis pair and, when present, its owner.
func pairParens(toks []token.Token, opener, closer int) {
	owner := parenOwner(toks, opener)
	for _, idx := range []int{opener, closer, owner} {
		if idx == token.None {
			continue
		}
		toks[idx].ParenthesisOpener = opener
		toks[idx].ParenthesisCloser = closer
		toks[idx].ParenthesisOwner = owner
	}
}

// parenOwner returns the token owning the parenthesis at opener, or None.
// Named functions own their parameter list across the name: function foo(.
func parenOwner(toks []token.Token, opener int) int {
	prev := prevCode(toks, opener)
	if prev == token.None {
		return token.None
	}
	if token.ParenthesisOwners.Has(toks[prev].Kind) {
		return prev
	}
	if toks[prev].Kind != token.TokString {
		return token.None
	}

	fn := prevCode(toks, prev)
	if fn != token.None && toks[fn].Content == "&" {
		fn = prevCode(toks, fn)
	}
	if fn != token.None && toks[fn].Kind == token.TokFunction {
		return fn
	}
	return token.None
}

// resolveConditions fills every token's enclosing-scope stack. A scope's own
// braces and owner sit outside that scope.
func resolveConditions(toks []token.Token) {
	var stack []token.Condition

	for i := range toks {
		tok := &toks[i]

		if tok.Kind == token.TokCloseCurlyBracket && tok.ScopeCondition != token.None {
			if n := len(stack); n > 0 && stack[n-1].Index == tok.ScopeCondition {
				stack = stack[:n-1]
			}
		}

		if len(stack) > 0 {
			tok.Conditions = slices.Clone(stack)
		}

		if tok.Kind == token.TokOpenCurlyBracket && tok.ScopeCondition != token.None {
			stack = append(stack, token.Condition{
				Index: tok.ScopeCondition,
				Kind:  toks[tok.ScopeCondition].Kind,
			})
		}
	}
}
