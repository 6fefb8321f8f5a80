package php_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gosniff/pkg/token"
	"github.com/yaklabco/gosniff/pkg/tokenizer/php"
)

func tokenize(t *testing.T, src string) []token.Token {
	t.Helper()

	toks, err := php.New(4).Tokenize(context.Background(), []byte(src))
	require.NoError(t, err)

	_, err = token.NewStore(toks)
	require.NoError(t, err, "tokenizer output must pass store validation")
	return toks
}

// indexOf returns the n-th (0-based) token with the given content.
func indexOf(t *testing.T, toks []token.Token, content string, n int) int {
	t.Helper()

	for i, tok := range toks {
		if tok.Content == content {
			if n == 0 {
				return i
			}
			n--
		}
	}
	t.Fatalf("token %q not found", content)
	return token.None
}

func TestTokenize_Lossless(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"<html><body>plain</body></html>",
		"<?php\n$a = array(1, 2);\n",
		"<?php\r\nclass A {\r\n\tpublic function b() {}\r\n}\r\n",
		"<p><?= $title ?></p>\n<?php if ($x): ?>yes<?php endif; ?>\n",
		"<?php\n$s = <<<EOT\nline {$a}\n  EOT;\n$n = 0x1F + 1.5e3 + .5;\n",
		"<?php /* unterminated",
		"<?php $s = 'unterminated",
		"<?php echo \"ünïcödé 日本\";\n",
	}

	for _, src := range inputs {
		toks := tokenize(t, src)

		var b strings.Builder
		for _, tok := range toks {
			b.WriteString(tok.Content)
		}
		assert.Equal(t, src, b.String())
	}
}

func TestTokenize_ArrayCall(t *testing.T) {
	t.Parallel()

	toks := tokenize(t, "<?php\n$a = array(1, 2);\n")

	kinds := make([]token.Kind, 0, len(toks))
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []token.Kind{
		token.TokOpenTag, token.TokVariable, token.TokWhitespace, token.TokEqual, token.TokWhitespace,
		token.TokArray, token.TokOpenParenthesis, token.TokLNumber, token.TokComma, token.TokWhitespace,
		token.TokLNumber, token.TokCloseParenthesis, token.TokSemicolon, token.TokWhitespace,
	}, kinds)

	for _, idx := range []int{5, 6, 11} {
		assert.Equal(t, 6, toks[idx].ParenthesisOpener)
		assert.Equal(t, 11, toks[idx].ParenthesisCloser)
		assert.Equal(t, 5, toks[idx].ParenthesisOwner)
	}
	assert.Equal(t, 2, toks[1].Line)
	assert.Equal(t, 1, toks[1].Column)
}

func TestTokenize_ClassScopes(t *testing.T) {
	t.Parallel()

	src := "<?php\nclass Foo {\n    public function bar() {\n        return 1;\n    }\n}\n"
	toks := tokenize(t, src)

	class := indexOf(t, toks, "class", 0)
	fn := indexOf(t, toks, "function", 0)
	ret := indexOf(t, toks, "return", 0)
	classOpen := indexOf(t, toks, "{", 0)
	fnOpen := indexOf(t, toks, "{", 1)
	fnClose := indexOf(t, toks, "}", 0)
	classClose := indexOf(t, toks, "}", 1)

	assert.Equal(t, token.TokClass, toks[class].Kind)
	assert.Equal(t, classOpen, toks[class].ScopeOpener)
	assert.Equal(t, classClose, toks[class].ScopeCloser)
	assert.Equal(t, class, toks[classClose].ScopeCondition)

	assert.Equal(t, token.TokFunction, toks[fn].Kind)
	assert.Equal(t, fnOpen, toks[fn].ScopeOpener)
	assert.Equal(t, fnClose, toks[fn].ScopeCloser)
	assert.Equal(t, fn, toks[indexOf(t, toks, "(", 0)].ParenthesisOwner, "named function owns its parameters")

	assert.Equal(t, []token.Condition{
		{Index: class, Kind: token.TokClass},
		{Index: fn, Kind: token.TokFunction},
	}, toks[ret].Conditions)
	assert.Equal(t, []token.Condition{{Index: class, Kind: token.TokClass}}, toks[fn].Conditions)
	assert.Empty(t, toks[class].Conditions)
	assert.Empty(t, toks[classOpen].Conditions, "scope opener sits outside its own scope")
	assert.Empty(t, toks[classClose].Conditions, "scope closer sits outside its own scope")

	assert.Equal(t, 4, toks[ret].Line)
	assert.Equal(t, 9, toks[ret].Column)
	assert.Equal(t, 5, toks[indexOf(t, toks, "public", 0)].Column)
}

func TestTokenize_ContextualKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		content string
		nth     int
		want    token.Kind
	}{
		{name: "closure", src: "<?php $f = function ($x) { return $x; };", content: "function", want: token.TokClosure},
		{name: "by-ref closure", src: "<?php $f = function &($x) {};", content: "function", want: token.TokClosure},
		{name: "named function", src: "<?php function foo() {}", content: "function", want: token.TokFunction},
		{name: "anonymous class", src: "<?php $o = new class {};", content: "class", want: token.TokAnonClass},
		{name: "class constant", src: "<?php $n = Foo::class;", content: "class", want: token.TokString},
		{name: "method call named like keyword", src: "<?php $x->default();", content: "default", want: token.TokString},
		{name: "method named like keyword", src: "<?php class A { public function new() {} }", content: "new", want: token.TokString},
		{name: "array type hint", src: "<?php function f(array $a) {}", content: "array", want: token.TokString},
		{name: "short array", src: "<?php $a = [1];", content: "[", want: token.TokOpenShortArray},
		{name: "short array closer", src: "<?php $a = [1];", content: "]", want: token.TokCloseShortArray},
		{name: "index", src: "<?php $a = $b[0];", content: "[", want: token.TokOpenSquareBracket},
		{name: "index closer", src: "<?php $a = $b[0];", content: "]", want: token.TokCloseSquareBracket},
		{name: "nested index in short array", src: "<?php $a = [$b[0]];", content: "[", nth: 1, want: token.TokOpenSquareBracket},
		{name: "upper case keyword", src: "<?php IF ($a) { ECHO 1; }", content: "ECHO", want: token.TokEcho},
		{name: "mixed case true", src: "<?php $a = True;", content: "True", want: token.TokTrue},
		{name: "doc comment", src: "<?php /** doc */", content: "/** doc */", want: token.TokDocComment},
		{name: "empty block comment", src: "<?php /**/", content: "/**/", want: token.TokComment},
		{name: "hash comment", src: "<?php # note\n", content: "# note", want: token.TokComment},
		{name: "float", src: "<?php $a = 1.5;", content: "1.5", want: token.TokDNumber},
		{name: "hex", src: "<?php $a = 0xFF;", content: "0xFF", want: token.TokLNumber},
		{name: "object operator", src: "<?php $a?->b;", content: "?->", want: token.TokObjectOperator},
		{name: "double arrow", src: "<?php $a = ['k' => 1];", content: "=>", want: token.TokDoubleArrow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			toks := tokenize(t, tt.src)
			idx := indexOf(t, toks, tt.content, tt.nth)
			assert.Equal(t, tt.want, toks[idx].Kind)
		})
	}
}

func TestTokenize_ElseIf(t *testing.T) {
	t.Parallel()

	toks := tokenize(t, "<?php if ($a) {} else if ($b) {} else {}")

	firstIf := indexOf(t, toks, "if", 0)
	elseIf := indexOf(t, toks, "else", 0)
	secondIf := indexOf(t, toks, "if", 1)
	lastElse := indexOf(t, toks, "else", 1)

	assert.True(t, toks[firstIf].HasScope())
	assert.False(t, toks[elseIf].HasScope(), "else followed by if owns nothing")
	assert.Equal(t, indexOf(t, toks, "{", 1), toks[secondIf].ScopeOpener)
	assert.Equal(t, indexOf(t, toks, "{", 2), toks[lastElse].ScopeOpener)
}

func TestTokenize_ScopeCancelledBySemicolon(t *testing.T) {
	t.Parallel()

	toks := tokenize(t, "<?php interface I { public function a(); }\nif ($x) { $y = 1; }")

	fn := indexOf(t, toks, "function", 0)
	iface := indexOf(t, toks, "interface", 0)
	ifTok := indexOf(t, toks, "if", 0)

	assert.False(t, toks[fn].HasScope())
	assert.Equal(t, indexOf(t, toks, "{", 0), toks[iface].ScopeOpener)
	assert.Equal(t, indexOf(t, toks, "{", 1), toks[ifTok].ScopeOpener)
	assert.True(t, toks[fn].HasParenthesis())
}

func TestTokenize_ClosureScopes(t *testing.T) {
	t.Parallel()

	toks := tokenize(t, "<?php if (array_map(function ($x) use ($y) { return $x; }, $a)) { echo 1; }")

	ifTok := indexOf(t, toks, "if", 0)
	closure := indexOf(t, toks, "function", 0)
	use := indexOf(t, toks, "use", 0)
	echo := indexOf(t, toks, "echo", 0)
	ret := indexOf(t, toks, "return", 0)

	assert.Equal(t, token.TokClosure, toks[closure].Kind)
	assert.Equal(t, indexOf(t, toks, "{", 0), toks[closure].ScopeOpener)
	assert.Equal(t, indexOf(t, toks, "{", 1), toks[ifTok].ScopeOpener)
	assert.Equal(t, use, toks[indexOf(t, toks, "(", 3)].ParenthesisOwner)
	assert.Equal(t, []token.Condition{{Index: closure, Kind: token.TokClosure}}, toks[ret].Conditions)
	assert.Equal(t, []token.Condition{{Index: ifTok, Kind: token.TokIf}}, toks[echo].Conditions)
}

func TestTokenize_WhitespaceNeverSpansNewline(t *testing.T) {
	t.Parallel()

	toks := tokenize(t, "<?php\n\n\n  $a = 1;   \n\t\n")

	for _, tok := range toks {
		if tok.Kind != token.TokWhitespace {
			continue
		}
		nl := strings.Count(tok.Content, "\n")
		assert.LessOrEqual(t, nl, 1, "%q", tok.Content)
		if nl == 1 {
			assert.True(t, strings.HasSuffix(tok.Content, "\n"), "%q", tok.Content)
		}
	}

	trailing := indexOf(t, toks, "   \n", 0)
	assert.Equal(t, 4, toks[trailing].Line)
}

func TestTokenize_InlineHTML(t *testing.T) {
	t.Parallel()

	toks := tokenize(t, "<html>\n<?= $a ?>\n</html>")

	kinds := make([]token.Kind, 0, len(toks))
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []token.Kind{
		token.TokInlineHTML, token.TokOpenTagWithEcho, token.TokWhitespace, token.TokVariable,
		token.TokWhitespace, token.TokCloseTag, token.TokInlineHTML,
	}, kinds)
	assert.Equal(t, "?>\n", toks[5].Content)
	assert.Equal(t, 3, toks[6].Line)
}

func TestTokenize_TabColumns(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		width int
		want  int
	}{
		{width: 4, want: 5},
		{width: 8, want: 9},
		{width: 0, want: 5},
	} {
		toks, err := php.New(tt.width).Tokenize(context.Background(), []byte("<?php\n\t$a;"))
		require.NoError(t, err)
		assert.Equal(t, tt.want, toks[indexOf(t, toks, "$a", 0)].Column, "width %d", tt.width)
	}

	toks := tokenize(t, "<?php '日本'; $b;")
	assert.Equal(t, 15, toks[indexOf(t, toks, "$b", 0)].Column, "wide runes take two columns")
}

func TestTokenize_Unbalanced(t *testing.T) {
	t.Parallel()

	toks := tokenize(t, "<?php if ($a) { echo (1;\n} }")

	ifTok := indexOf(t, toks, "if", 0)
	assert.True(t, toks[ifTok].HasScope())
	assert.False(t, toks[indexOf(t, toks, "(", 1)].HasParenthesis())
	assert.False(t, toks[indexOf(t, toks, "}", 1)].HasBracket())
}

func TestTokenize_Deterministic(t *testing.T) {
	t.Parallel()

	src := "<?php\nnamespace App;\nclass A { function b() { return [1, 2]; } }\n"
	assert.Equal(t, tokenize(t, src), tokenize(t, src))
}

func TestTokenize_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := php.New(4).Tokenize(ctx, []byte("<?php"))
	require.ErrorIs(t, err, context.Canceled)
}
