// Package php tokenizes PHP source into the gosniff token model.
//
// The output is lossless (token contents concatenate to the input) and
// deterministic. Parentheses, brackets and curly-brace scopes are paired and
// every token carries the stack of scope owners enclosing it.
package php

import (
	"context"
	"fmt"

	"github.com/yaklabco/gosniff/pkg/token"
)

// DefaultTabWidth is used when no tab width is configured.
const DefaultTabWidth = 4

// Tokenizer converts PHP source to tokens.
type Tokenizer struct {
	tabWidth int
}

// New creates a PHP tokenizer. Columns expand tabs to tabWidth; values below
// one fall back to DefaultTabWidth.
func New(tabWidth int) *Tokenizer {
	if tabWidth < 1 {
		tabWidth = DefaultTabWidth
	}
	return &Tokenizer{tabWidth: tabWidth}
}

// Tokenize splits content into tokens with resolved structural links.
func (t *Tokenizer) Tokenize(ctx context.Context, content []byte) ([]token.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("tokenize cancelled: %w", err)
	}

	lx := &lexer{src: string(content)}
	toks := lx.run()

	classify(toks)
	resolveLinks(toks)
	resolveConditions(toks)
	token.AssignPositions(toks, t.tabWidth)
	return toks, nil
}
