package sniff_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gosniff/pkg/filekind"
	"github.com/yaklabco/gosniff/pkg/sniff"
	"github.com/yaklabco/gosniff/pkg/token"
	"github.com/yaklabco/gosniff/pkg/tokenizer"
)

const helperSource = `<?php
namespace App;

abstract class Foo {
    final public static function &bar() {}
    abstract protected function baz();
}

function qux() {
    $x = 1;
}
`

func phpStore(t *testing.T, src string) *token.Store {
	t.Helper()

	toks, err := tokenizer.New(4).Tokenize(context.Background(), []byte(src), filekind.PHP)
	require.NoError(t, err)
	store, err := token.NewStore(toks)
	require.NoError(t, err)
	return store
}

// nth returns the index of the n-th token (0-based) with the given content.
func nth(t *testing.T, store *token.Store, content string, n int) int {
	t.Helper()

	idx := -1
	for range n + 1 {
		next, ok := findContent(store, content, idx+1)
		require.True(t, ok, "token %q #%d", content, n)
		idx = next
	}
	return idx
}

func findContent(store *token.Store, content string, start int) (int, bool) {
	for i := start; i < store.Len(); i++ {
		if store.Content(i) == content {
			return i, true
		}
	}
	return token.None, false
}

func TestIsTopLevelAndDeclarationName(t *testing.T) {
	t.Parallel()

	store := phpStore(t, helperSource)
	class, _ := findContent(store, "class", 0)
	qux := nth(t, store, "function", 2)
	variable, _ := findContent(store, "$x", 0)

	assert.True(t, sniff.IsTopLevel(store, class))
	assert.Equal(t, "Foo", sniff.DeclarationName(store, class))
	assert.True(t, sniff.IsTopLevel(store, qux))
	assert.False(t, sniff.IsTopLevel(store, variable))
}

func TestIsMethodAndModifiers(t *testing.T) {
	t.Parallel()

	store := phpStore(t, helperSource)
	class, _ := findContent(store, "class", 0)
	bar := nth(t, store, "function", 0)
	baz := nth(t, store, "function", 1)
	qux := nth(t, store, "function", 2)

	assert.True(t, sniff.IsMethod(store, bar))
	assert.True(t, sniff.IsMethod(store, baz))
	assert.False(t, sniff.IsMethod(store, qux))

	assert.Equal(t, "bar", sniff.DeclarationName(store, bar))
	assert.Equal(t, "qux", sniff.DeclarationName(store, qux))

	owner, ok := sniff.EnclosingScope(store, bar, sniff.DeclarationKinds)
	require.True(t, ok)
	assert.Equal(t, class, owner)
	_, ok = sniff.EnclosingScope(store, qux, sniff.DeclarationKinds)
	assert.False(t, ok)

	final, _ := findContent(store, "final", 0)
	public, _ := findContent(store, "public", 0)
	mods := sniff.MemberModifiers(store, bar)
	assert.Equal(t, sniff.Modifiers{
		Visibility:      "public",
		VisibilityIndex: public,
		Static:          true,
		Final:           true,
		First:           final,
	}, mods)

	mods = sniff.MemberModifiers(store, baz)
	assert.Equal(t, "protected", mods.Visibility)
	assert.True(t, mods.Abstract)
	assert.False(t, mods.Static)

	mods = sniff.MemberModifiers(store, qux)
	assert.Equal(t, sniff.Modifiers{VisibilityIndex: token.None, First: qux}, mods)
}
