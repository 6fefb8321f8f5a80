// Package tokenizer selects the tokenizer variant for a file kind.
package tokenizer

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/gosniff/pkg/filekind"
	"github.com/yaklabco/gosniff/pkg/token"
	"github.com/yaklabco/gosniff/pkg/tokenizer/markdown"
	"github.com/yaklabco/gosniff/pkg/tokenizer/php"
)

// ErrUnsupportedKind is returned for file kinds without a tokenizer.
var ErrUnsupportedKind = errors.New("no tokenizer for file kind")

// Tokenizers dispatches to the PHP or Markdown tokenizer by file kind.
type Tokenizers struct {
	php      *php.Tokenizer
	markdown *markdown.Tokenizer
}

// New creates the tokenizer set. tabWidth controls column computation.
func New(tabWidth int) *Tokenizers {
	return &Tokenizers{
		php:      php.New(tabWidth),
		markdown: markdown.New(tabWidth),
	}
}

// Tokenize tokenizes content as the given kind.
func (t *Tokenizers) Tokenize(ctx context.Context, content []byte, kind filekind.Kind) ([]token.Token, error) {
	switch kind {
	case filekind.PHP:
		return t.php.Tokenize(ctx, content)
	case filekind.Markdown:
		return t.markdown.Tokenize(ctx, content)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, kind)
	}
}
