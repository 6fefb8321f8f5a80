package sniffs

import (
	"strings"

	"github.com/yaklabco/gosniff/pkg/filekind"
	"github.com/yaklabco/gosniff/pkg/sniff"
	"github.com/yaklabco/gosniff/pkg/token"
)

// FenceLanguageSniff requires fenced code blocks to name their language.
//
// Fenced content is code, not prose: the sniff skips to the closing fence so
// no sniff processes the lines inside a block.
type FenceLanguageSniff struct {
	sniff.Base
}

// NewFenceLanguageSniff creates the fence language sniff.
func NewFenceLanguageSniff() *FenceLanguageSniff {
	return &FenceLanguageSniff{
		Base: sniff.NewBase(
			"Markdown.CodeBlocks.FenceLanguage",
			"Fenced code blocks should have a language specified",
			true,
			filekind.Markdown,
		),
	}
}

// Register listens for code fences.
func (s *FenceLanguageSniff) Register() []token.Kind {
	return []token.Kind{token.TokMDCodeFence}
}

// Process checks an opening fence and returns its closer.
func (s *FenceLanguageSniff) Process(f *sniff.File, idx int) (int, error) {
	store := f.Tokens
	closer := store.ScopeCloser(idx)
	if closer == idx {
		return 0, nil
	}

	fence := store.Content(idx)
	if strings.TrimSpace(strings.TrimLeft(fence, fence[:1])) == "" {
		lang := filekind.DetectSnippet([]byte(blockText(store, idx, closer)))
		if f.AddFixableWarning(idx, "Missing", "Fenced code block has no language; detected %q", lang) {
			if err := f.Fixer.AddContent(idx, lang); err != nil {
				return 0, err
			}
		}
	}

	if closer == token.None {
		return 0, nil
	}
	return closer, nil
}

// blockText returns the source between an opening fence and its closer, or
// to the end of the file for an unclosed fence.
func blockText(store *token.Store, opener, closer int) string {
	end := closer
	if end == token.None {
		end = store.Len()
	}

	var sb strings.Builder
	for i := opener + 1; i < end; i++ {
		sb.WriteString(store.Content(i))
	}
	return sb.String()
}
