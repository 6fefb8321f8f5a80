package sniffs

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gosniff/pkg/filekind"
	"github.com/yaklabco/gosniff/pkg/sniff"
	"github.com/yaklabco/gosniff/pkg/token"
)

// hardBreak is the Markdown line break written as two trailing spaces.
const hardBreak = "  "

// TrailingWhitespaceSniff removes blanks at the end of lines.
//
// Properties:
//   - ignoreBlankLines: do not report lines holding only blanks (default false)
//   - allowHardBreaks: in Markdown, keep exactly two trailing spaces after
//     text since they mark a line break (default true)
type TrailingWhitespaceSniff struct {
	sniff.Base

	ignoreBlankLines bool
	allowHardBreaks  bool
}

// NewTrailingWhitespaceSniff creates the trailing whitespace sniff.
func NewTrailingWhitespaceSniff() *TrailingWhitespaceSniff {
	return &TrailingWhitespaceSniff{
		Base: sniff.NewBase(
			"Generic.WhiteSpace.TrailingWhitespace",
			"Lines must not end with whitespace",
			true,
			filekind.PHP, filekind.Markdown,
		),
		allowHardBreaks: true,
	}
}

// SetProperty implements sniff.Configurable.
func (s *TrailingWhitespaceSniff) SetProperty(name, value string) error {
	var err error
	switch name {
	case "ignoreBlankLines":
		s.ignoreBlankLines, err = sniff.ParseBoolProperty(name, value)
	case "allowHardBreaks":
		s.allowHardBreaks, err = sniff.ParseBoolProperty(name, value)
	default:
		err = fmt.Errorf("%w: %s", sniff.ErrUnknownProperty, name)
	}
	return err
}

// Register listens for whitespace, the open tag and comments, since PHP
// attaches a blank after "<?php" to the tag and a comment runs to the end
// of its line.
func (s *TrailingWhitespaceSniff) Register() []token.Kind {
	return []token.Kind{token.TokWhitespace, token.TokOpenTag, token.TokComment, token.TokDocComment}
}

// Process reports one violation per token that leaves blanks before a line end.
func (s *TrailingWhitespaceSniff) Process(f *sniff.File, idx int) (int, error) {
	content := pending(f, idx)

	var fixed string
	switch f.Tokens.Kind(idx) {
	case token.TokWhitespace:
		fixed = s.trimWhitespace(f, idx, content)
	default:
		fixed = trimLines(content, endsLine(f, idx))
	}
	if fixed == content {
		return 0, nil
	}

	if f.AddFixableError(idx, "Found", "Whitespace found at end of line") {
		return 0, f.Fixer.ReplaceToken(idx, fixed)
	}
	return 0, nil
}

// trimWhitespace returns the whitespace token at idx without its blanks
// before the line ending, or content when nothing should change.
func (s *TrailingWhitespaceSniff) trimWhitespace(f *sniff.File, idx int, content string) string {
	store := f.Tokens
	body := strings.TrimRight(content, "\r\n")
	ending := content[len(body):]
	if ending == "" && idx != store.Len()-1 {
		// Indentation or blanks between tokens on the same line.
		return content
	}

	blank := idx == 0 || strings.HasSuffix(pending(f, idx-1), "\n")
	if blank && s.ignoreBlankLines {
		return content
	}
	if !blank && s.allowHardBreaks && f.Kind == filekind.Markdown &&
		store.Kind(idx-1) != token.TokMDCode && body == hardBreak {
		return content
	}

	// A whitespace token may itself span lines, as a Markdown blank line does not.
	return trimLines(content, true)
}

// endsLine reports whether the token after idx starts a new line or there is none.
func endsLine(f *sniff.File, idx int) bool {
	if idx+1 >= f.Tokens.Len() {
		return true
	}
	next := pending(f, idx+1)
	return strings.HasPrefix(next, "\n") || strings.HasPrefix(next, "\r\n") || strings.HasSuffix(pending(f, idx), "\n")
}

// trimLines strips blanks before every newline in text, and at the very end
// when atLineEnd is set.
func trimLines(text string, atLineEnd bool) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		last := i == len(lines)-1
		if last && !atLineEnd {
			continue
		}
		cr := strings.HasSuffix(line, "\r")
		line = strings.TrimRight(strings.TrimSuffix(line, "\r"), " \t")
		if cr {
			line += "\r"
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
