package sniffs

import (
	"strings"

	"github.com/yaklabco/gosniff/pkg/filekind"
	"github.com/yaklabco/gosniff/pkg/sniff"
	"github.com/yaklabco/gosniff/pkg/token"
)

// LowerCaseKeywordSniff requires PHP keywords to be written in lowercase.
type LowerCaseKeywordSniff struct {
	sniff.Base
}

// NewLowerCaseKeywordSniff creates the keyword case sniff.
func NewLowerCaseKeywordSniff() *LowerCaseKeywordSniff {
	return &LowerCaseKeywordSniff{
		Base: sniff.NewBase(
			"Generic.PHP.LowerCaseKeyword",
			"PHP keywords must be lowercase",
			true,
			filekind.PHP,
		),
	}
}

// Register listens for every keyword kind.
func (s *LowerCaseKeywordSniff) Register() []token.Kind {
	return token.Keywords.Kinds()
}

// Process reports and lowercases a keyword written in any other case. It reads
// through the fixer, so a keyword another sniff already rewrote is judged by
// its pending content.
func (s *LowerCaseKeywordSniff) Process(f *sniff.File, idx int) (int, error) {
	content, err := f.Fixer.TokenContent(idx)
	if err != nil {
		return 0, err
	}
	lower := strings.ToLower(content)
	if content == lower {
		return 0, nil
	}

	if f.AddFixableError(idx, "Found", "PHP keywords must be lowercase; expected %q but found %q", lower, content) {
		return 0, f.Fixer.ReplaceToken(idx, lower)
	}
	return 0, nil
}
