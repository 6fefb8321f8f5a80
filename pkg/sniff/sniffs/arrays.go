package sniffs

import (
	"github.com/yaklabco/gosniff/pkg/filekind"
	"github.com/yaklabco/gosniff/pkg/sniff"
	"github.com/yaklabco/gosniff/pkg/token"
)

// DisallowLongArraySyntaxSniff replaces array(...) with [...].
type DisallowLongArraySyntaxSniff struct {
	sniff.Base
}

// NewDisallowLongArraySyntaxSniff creates the long array syntax sniff.
func NewDisallowLongArraySyntaxSniff() *DisallowLongArraySyntaxSniff {
	return &DisallowLongArraySyntaxSniff{
		Base: sniff.NewBase(
			"Generic.Arrays.DisallowLongArraySyntax",
			"Short array syntax must be used to define arrays",
			true,
			filekind.PHP,
		),
	}
}

// Register listens for the array keyword.
func (s *DisallowLongArraySyntaxSniff) Register() []token.Kind {
	return []token.Kind{token.TokArray}
}

// Process reports the keyword and rewrites the whole array in one changeset.
func (s *DisallowLongArraySyntaxSniff) Process(f *sniff.File, idx int) (int, error) {
	store := f.Tokens
	opener := store.ParenthesisOpener(idx)
	closer := store.ParenthesisCloser(idx)
	if opener == token.None || closer == token.None {
		return 0, nil
	}

	if !f.AddFixableError(idx, "Found", "Short array syntax must be used to define arrays") {
		return 0, nil
	}

	fx := f.Fixer
	if err := fx.BeginChangeset(); err != nil {
		return 0, err
	}

	var err error
	if _, found := store.FindNextNonEmpty(opener+1, token.Until(closer)); !found {
		err = fx.ReplaceToken(idx, "[]")
		if err == nil {
			err = clearTokens(f, idx+1, closer)
		}
	} else {
		err = fx.ReplaceToken(idx, "")
		if err == nil {
			err = clearTokens(f, idx+1, opener-1)
		}
		if err == nil {
			err = fx.ReplaceToken(opener, "[")
		}
		if err == nil {
			err = fx.ReplaceToken(closer, "]")
		}
	}
	if err != nil {
		fx.Rollback()
		return 0, err
	}

	return 0, fx.EndChangeset()
}

// pending returns the content of idx as edited so far in this pass, or ""
// when idx is out of range.
func pending(f *sniff.File, idx int) string {
	content, err := f.Fixer.TokenContent(idx)
	if err != nil {
		return ""
	}
	return content
}

// clearTokens empties the tokens from..to inclusive.
func clearTokens(f *sniff.File, from, to int) error {
	for i := from; i <= to; i++ {
		if err := f.Fixer.ReplaceToken(i, ""); err != nil {
			return err
		}
	}
	return nil
}
