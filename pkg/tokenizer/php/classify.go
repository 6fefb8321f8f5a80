package php

import (
	"github.com/yaklabco/gosniff/pkg/token"
)

// squareAfter are kinds after which "[" indexes rather than opens a short array.
//
//nolint:gochecknoglobals // Read-only lookup table.
var squareAfter = token.NewKindSet(
	token.TokVariable, token.TokString, token.TokConstantEncapsedString,
	token.TokCloseSquareBracket, token.TokCloseShortArray,
	token.TokCloseParenthesis, token.TokCloseCurlyBracket,
)

// memberAccess are kinds after which any word is a plain name, never a keyword.
//
//nolint:gochecknoglobals // Read-only lookup table.
var memberAccess = token.NewKindSet(
	token.TokObjectOperator, token.TokDoubleColon, token.TokFunction, token.TokConst,
)

// prevCode returns the index of the closest non-empty token before i, or None.
func prevCode(toks []token.Token, i int) int {
	for j := i - 1; j >= 0; j-- {
		if !token.EmptyKinds.Has(toks[j].Kind) {
			return j
		}
	}
	return token.None
}

// nextCode returns the index of the closest non-empty token after i, or None.
func nextCode(toks []token.Token, i int) int {
	for j := i + 1; j < len(toks); j++ {
		if !token.EmptyKinds.Has(toks[j].Kind) {
			return j
		}
	}
	return token.None
}

// classify rewrites kinds that depend on surrounding tokens:
// closures, anonymous classes, short arrays, and keywords used as names.
func classify(toks []token.Token) {
	var squares []int

	for i := range toks {
		tok := &toks[i]
		prev := prevCode(toks, i)

		if token.Keywords.Has(tok.Kind) || tok.Kind == token.TokTrue ||
			tok.Kind == token.TokFalse || tok.Kind == token.TokNull {
			if prev != token.None && memberAccess.Has(toks[prev].Kind) {
				// ->list, Foo::class, function list(), const DEFAULT.
				tok.Kind = token.TokString
				continue
			}
		}

		switch tok.Kind {
		case token.TokFunction:
			next := nextCode(toks, i)
			if next != token.None && toks[next].Content == "&" {
				next = nextCode(toks, next)
			}
			if next != token.None && toks[next].Kind == token.TokOpenParenthesis {
				tok.Kind = token.TokClosure
			}
		case token.TokClass:
			if prev != token.None && toks[prev].Kind == token.TokNew {
				tok.Kind = token.TokAnonClass
			}
		case token.TokArray:
			// "array" as a type declaration is a plain name.
			if next := nextCode(toks, i); next == token.None || toks[next].Kind != token.TokOpenParenthesis {
				tok.Kind = token.TokString
			}
		case token.TokOpenSquareBracket:
			if prev == token.None || !squareAfter.Has(toks[prev].Kind) {
				tok.Kind = token.TokOpenShortArray
			}
			squares = append(squares, i)
		case token.TokCloseSquareBracket:
			if n := len(squares); n > 0 {
				if toks[squares[n-1]].Kind == token.TokOpenShortArray {
					tok.Kind = token.TokCloseShortArray
				}
				squares = squares[:n-1]
			}
		}
	}
}
