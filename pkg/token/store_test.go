package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gosniff/pkg/token"
)

// arrayCall builds the tokens of `$a = array(1, 2);` with links resolved.
func arrayCall(t *testing.T) *token.Store {
	t.Helper()

	toks := []token.Token{
		token.New(token.TokVariable, "$a"),                 // 0
		token.New(token.TokWhitespace, " "),                // 1
		token.New(token.TokEqual, "="),                     // 2
		token.New(token.TokWhitespace, " "),                // 3
		token.New(token.TokArray, "array"),                 // 4
		token.New(token.TokOpenParenthesis, "("),           // 5
		token.New(token.TokLNumber, "1"),                   // 6
		token.New(token.TokComma, ","),                     // 7
		token.New(token.TokWhitespace, " "),                // 8
		token.New(token.TokLNumber, "2"),                   // 9
		token.New(token.TokCloseParenthesis, ")"),          // 10
		token.New(token.TokSemicolon, ";"),                 // 11
		token.New(token.TokComment, "// trailing comment"), // 12
	}
	for i := range toks {
		toks[i].Line = 1
	}
	for _, i := range []int{4, 5, 10} {
		toks[i].ParenthesisOpener = 5
		toks[i].ParenthesisCloser = 10
		toks[i].ParenthesisOwner = 4
	}

	store, err := token.NewStore(toks)
	require.NoError(t, err)
	return store
}

func TestNewStore_AssignsIndices(t *testing.T) {
	t.Parallel()

	toks := []token.Token{
		token.New(token.TokOpenTag, "<?php\n"),
		token.New(token.TokEcho, "echo"),
	}
	toks[0].Index = 42

	store, err := token.NewStore(toks)
	require.NoError(t, err)

	for i := range store.Len() {
		tok, err := store.At(i)
		require.NoError(t, err)
		assert.Equal(t, i, tok.Index)
	}
	assert.Equal(t, 42, toks[0].Index, "input slice must not be mutated")
}

func TestNewStore_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*token.Token)
	}{
		{
			name:   "link past end",
			mutate: func(tok *token.Token) { tok.ScopeCloser, tok.ScopeOpener = 9, 0 },
		},
		{
			name:   "negative link other than None",
			mutate: func(tok *token.Token) { tok.BracketOpener, tok.BracketCloser = -5, 1 },
		},
		{
			name:   "half resolved pair",
			mutate: func(tok *token.Token) { tok.ParenthesisOpener = 1 },
		},
		{
			name:   "opener after closer",
			mutate: func(tok *token.Token) { tok.BracketOpener, tok.BracketCloser = 1, 0 },
		},
		{
			name: "condition outside store",
			mutate: func(tok *token.Token) {
				tok.Conditions = []token.Condition{{Index: 7, Kind: token.TokClass}}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			toks := []token.Token{
				token.New(token.TokOpenCurlyBracket, "{"),
				token.New(token.TokCloseCurlyBracket, "}"),
			}
			tt.mutate(&toks[0])

			_, err := token.NewStore(toks)
			require.ErrorIs(t, err, token.ErrMalformed)
		})
	}
}

func TestStore_At(t *testing.T) {
	t.Parallel()

	store := arrayCall(t)

	tok, err := store.At(4)
	require.NoError(t, err)
	assert.Equal(t, token.TokArray, tok.Kind)
	assert.Equal(t, "array", tok.Content)

	_, err = store.At(-1)
	require.ErrorIs(t, err, token.ErrIndexOutOfRange)

	_, err = store.At(store.Len())
	require.ErrorIs(t, err, token.ErrIndexOutOfRange)
}

func TestStore_Accessors(t *testing.T) {
	t.Parallel()

	store := arrayCall(t)

	assert.Equal(t, "$a = array(1, 2);// trailing comment", store.Text())
	assert.Equal(t, 5, store.ParenthesisOpener(4))
	assert.Equal(t, 10, store.ParenthesisCloser(5))
	assert.Equal(t, 4, store.ParenthesisOwner(10))
	assert.Equal(t, token.None, store.ScopeOpener(4))
	assert.Equal(t, token.None, store.BracketCloser(99))
	assert.Empty(t, store.Content(99))
	assert.Equal(t, token.TokUnknown, store.Kind(-3))
	assert.Equal(t, 1, store.Line(0))
}

func TestStore_LineContent(t *testing.T) {
	t.Parallel()

	toks := []token.Token{
		token.New(token.TokOpenTag, "<?php\n"),
		token.New(token.TokEcho, "echo"),
		token.New(token.TokWhitespace, " "),
		token.New(token.TokLNumber, "1"),
		token.New(token.TokSemicolon, ";"),
		token.New(token.TokWhitespace, "\r\n"),
	}
	toks[0].Line = 1
	for i := 1; i < len(toks); i++ {
		toks[i].Line = 2
	}

	store, err := token.NewStore(toks)
	require.NoError(t, err)

	assert.Equal(t, "<?php", store.LineContent(1))
	assert.Equal(t, "echo 1;", store.LineContent(2))
	assert.Equal(t, 3, store.LineCount())
}

func TestKind_StringRoundTrip(t *testing.T) {
	t.Parallel()

	for _, k := range []token.Kind{token.TokArray, token.TokClass, token.TokWhitespace, token.TokMDCodeFence} {
		got, ok := token.ParseKind(k.String())
		require.True(t, ok, k.String())
		assert.Equal(t, k, got)
	}

	_, ok := token.ParseKind("T_NOPE")
	assert.False(t, ok)

	got, ok := token.ParseKind(" t_array ")
	require.True(t, ok)
	assert.Equal(t, token.TokArray, got)
}

func TestKindSet(t *testing.T) {
	t.Parallel()

	a := token.NewKindSet(token.TokClass, token.TokTrait)
	b := token.NewKindSet(token.TokInterface)

	u := a.Union(b)
	assert.Equal(t, []token.Kind{token.TokClass, token.TokInterface, token.TokTrait}, u.Kinds())
	assert.True(t, u.Has(token.TokInterface))
	assert.False(t, a.Has(token.TokInterface))
}
