package sniffs

import (
	"strings"

	"github.com/yaklabco/gosniff/pkg/filekind"
	"github.com/yaklabco/gosniff/pkg/sniff"
	"github.com/yaklabco/gosniff/pkg/token"
)

// OneClassPerFileSniff allows a single class, interface or trait per file.
type OneClassPerFileSniff struct {
	sniff.Base
}

// NewOneClassPerFileSniff creates the one-class-per-file sniff.
func NewOneClassPerFileSniff() *OneClassPerFileSniff {
	return &OneClassPerFileSniff{
		Base: sniff.NewBase(
			"Generic.Files.OneClassPerFile",
			"There should only be one class, interface or trait defined in a file",
			false,
			filekind.PHP,
		),
	}
}

// Register listens for named declarations.
func (s *OneClassPerFileSniff) Register() []token.Kind {
	return sniff.DeclarationKinds.Kinds()
}

// Process reports a declaration when an earlier top-level one exists, so the
// first declaration in the file is never flagged.
func (s *OneClassPerFileSniff) Process(f *sniff.File, idx int) (int, error) {
	store := f.Tokens
	if !sniff.IsTopLevel(store, idx) {
		return 0, nil
	}

	for prev := idx - 1; prev >= 0; prev-- {
		found, ok := store.FindPrevious(sniff.DeclarationKinds, prev)
		if !ok {
			return 0, nil
		}
		if sniff.IsTopLevel(store, found) {
			name := sniff.DeclarationName(store, idx)
			f.AddError(idx, "MultipleClasses",
				"Only one class, interface or trait is allowed in a file; %q follows %q on line %d",
				name, sniff.DeclarationName(store, found), store.Line(found))
			return 0, nil
		}
		prev = found
	}
	return 0, nil
}

// EndFileNewlineSniff requires exactly one newline at the end of a file.
type EndFileNewlineSniff struct {
	sniff.Base
}

// NewEndFileNewlineSniff creates the end-of-file newline sniff.
func NewEndFileNewlineSniff() *EndFileNewlineSniff {
	return &EndFileNewlineSniff{
		Base: sniff.NewBase(
			"Generic.Files.EndFileNewline",
			"Files must end with a single newline character",
			true,
			filekind.PHP, filekind.Markdown,
		),
	}
}

// Register listens for every kind a file can end with.
func (s *EndFileNewlineSniff) Register() []token.Kind {
	return []token.Kind{
		token.TokWhitespace, token.TokInlineHTML, token.TokCloseTag,
		token.TokSemicolon, token.TokCloseCurlyBracket,
		token.TokComment, token.TokDocComment,
		token.TokMDText, token.TokMDHeading, token.TokMDCode, token.TokMDCodeFence,
	}
}

// Process inspects the file ending when idx is the last token. Contents are
// read through the fixer so endings other sniffs already edited are counted
// as they will render.
func (s *EndFileNewlineSniff) Process(f *sniff.File, idx int) (int, error) {
	if idx != f.Tokens.Len()-1 {
		return 0, nil
	}

	// content is the last token holding more than blanks.
	content := idx
	for content >= 0 && strings.TrimSpace(pending(f, content)) == "" {
		content--
	}
	if content < 0 {
		return 0, nil
	}

	newlines := strings.Count(blankTail(pending(f, content)), "\n")
	for i := content + 1; i <= idx; i++ {
		newlines += strings.Count(pending(f, i), "\n")
	}

	switch {
	case newlines == 0:
		if f.AddFixableError(idx, "NotFound", "Expected 1 newline at end of file; 0 found") {
			return 0, f.Fixer.AddNewline(idx)
		}
	case newlines > 1:
		if f.AddFixableError(idx, "TooMany", "Expected 1 newline at end of file; %d found", newlines) {
			return 0, trimFileEnd(f, content, idx)
		}
	}
	return 0, nil
}

// blankTail returns the run of blanks and line breaks ending text.
func blankTail(text string) string {
	return text[len(strings.TrimRight(text, " \t\r\n")):]
}

// trimFileEnd leaves a single newline after the text of the token at content.
func trimFileEnd(f *sniff.File, content, last int) error {
	fx := f.Fixer
	if err := fx.BeginChangeset(); err != nil {
		return err
	}

	from := content + 1
	text := pending(f, content)
	var err error
	if tail := blankTail(text); strings.Contains(tail, "\n") {
		err = fx.ReplaceToken(content, text[:len(text)-len(tail)]+"\n")
	} else {
		err = fx.ReplaceToken(from, "\n")
		from++
	}
	if err == nil {
		err = clearTokens(f, from, last)
	}
	if err != nil {
		fx.Rollback()
		return err
	}

	return fx.EndChangeset()
}
