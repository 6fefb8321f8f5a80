package markdown_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gosniff/pkg/token"
	"github.com/yaklabco/gosniff/pkg/tokenizer/markdown"
)

func tokenize(t *testing.T, src string) []token.Token {
	t.Helper()

	toks, err := markdown.New(4).Tokenize(context.Background(), []byte(src))
	require.NoError(t, err)

	_, err = token.NewStore(toks)
	require.NoError(t, err)
	return toks
}

func contents(toks []token.Token, kind token.Kind) []string {
	var out []string
	for _, tok := range toks {
		if tok.Kind == kind {
			out = append(out, tok.Content)
		}
	}
	return out
}

func TestTokenize_Lossless(t *testing.T) {
	t.Parallel()

	for _, src := range []string{
		"",
		"plain",
		"# Title\n\nSome text.  \n",
		"```go\npackage main\n```\n",
		"Windows\r\nline endings\r\n",
		"  indented\t\n\n\n",
	} {
		var b strings.Builder
		for _, tok := range tokenize(t, src) {
			b.WriteString(tok.Content)
		}
		assert.Equal(t, src, b.String())
	}
}

func TestTokenize_Classification(t *testing.T) {
	t.Parallel()

	src := "# Title\n\nIntro text   \n\n```php\n<?php echo 1;\n```\n\nSetext\n------\n"
	toks := tokenize(t, src)

	assert.Equal(t, []string{"# Title", "Setext"}, contents(toks, token.TokMDHeading))
	assert.Equal(t, []string{"```php", "```"}, contents(toks, token.TokMDCodeFence))
	assert.Equal(t, []string{"<?php echo 1;"}, contents(toks, token.TokMDCode))
	assert.Contains(t, contents(toks, token.TokMDText), "Intro text")
	assert.Contains(t, contents(toks, token.TokWhitespace), "   \n")
}

func TestTokenize_FenceScopes(t *testing.T) {
	t.Parallel()

	src := "````md\n```\nnested\n```\n````\n"
	toks := tokenize(t, src)

	fences := make([]int, 0, 2)
	for i, tok := range toks {
		if tok.Kind == token.TokMDCodeFence {
			fences = append(fences, i)
		}
	}
	require.Len(t, fences, 2, "inner backticks are code, not fences")

	open, closing := fences[0], fences[1]
	assert.Equal(t, open, toks[open].ScopeOpener)
	assert.Equal(t, closing, toks[open].ScopeCloser)
	assert.Equal(t, open, toks[closing].ScopeCondition)

	for i := open + 1; i < closing; i++ {
		assert.Equal(t, []token.Condition{{Index: open, Kind: token.TokMDCodeFence}}, toks[i].Conditions)
	}
	assert.Empty(t, toks[closing].Conditions)
}

func TestTokenize_UnclosedFence(t *testing.T) {
	t.Parallel()

	toks := tokenize(t, "```\ncode\n")

	require.NotEmpty(t, toks)
	assert.Equal(t, token.TokMDCodeFence, toks[0].Kind)
	assert.False(t, toks[0].HasScope())
}

func TestTokenize_Positions(t *testing.T) {
	t.Parallel()

	toks := tokenize(t, "a\n\tb\n")

	var b token.Token
	for _, tok := range toks {
		if tok.Content == "b" {
			b = tok
		}
	}
	assert.Equal(t, 2, b.Line)
	assert.Equal(t, 5, b.Column)
}
