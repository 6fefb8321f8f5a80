package sniff_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gosniff/pkg/filekind"
	"github.com/yaklabco/gosniff/pkg/sniff"
	"github.com/yaklabco/gosniff/pkg/token"
)

// fakeSniff is a sniff whose behavior is supplied by the test.
type fakeSniff struct {
	sniff.Base
	kinds   []token.Kind
	process func(f *sniff.File, idx int) (int, error)
	props   map[string]string
}

func (s *fakeSniff) Register() []token.Kind {
	return s.kinds
}

func (s *fakeSniff) Process(f *sniff.File, idx int) (int, error) {
	if s.process == nil {
		return 0, nil
	}
	return s.process(f, idx)
}

// configurableSniff accepts any property.
type configurableSniff struct {
	fakeSniff
}

func (s *configurableSniff) SetProperty(name, value string) error {
	if s.props == nil {
		s.props = make(map[string]string)
	}
	s.props[name] = value
	return nil
}

func fake(code string, kinds []token.Kind, process func(f *sniff.File, idx int) (int, error)) sniff.Factory {
	return func() sniff.Sniff {
		return &fakeSniff{
			Base:    sniff.NewBase(code, "fake "+code, true),
			kinds:   kinds,
			process: process,
		}
	}
}

// newStore builds a store of plain string tokens with positions assigned.
func newStore(t *testing.T, contents ...string) *token.Store {
	t.Helper()

	toks := make([]token.Token, 0, len(contents))
	for _, c := range contents {
		toks = append(toks, token.New(token.TokString, c))
	}
	token.AssignPositions(toks, 4)

	store, err := token.NewStore(toks)
	require.NoError(t, err)
	return store
}

// resolve instantiates the given factories with default configuration.
func resolve(t *testing.T, factories ...sniff.Factory) []*sniff.ResolvedSniff {
	t.Helper()

	registry := sniff.NewRegistry()
	for _, f := range factories {
		registry.Register(f)
	}
	resolved, err := sniff.ResolveSniffs(registry, nil)
	require.NoError(t, err)
	return resolved
}

// newFile creates a PHP file context over store.
func newFile(store *token.Store, fix bool) *sniff.File {
	return sniff.NewFile(context.Background(), "a.php", filekind.PHP, store, fix, 4)
}

func TestBase(t *testing.T) {
	t.Parallel()

	b := sniff.NewBase("Std.Cat.Name", "checks things", true, filekind.Markdown)
	assert.Equal(t, "Std.Cat.Name", b.Code())
	assert.Equal(t, "checks things", b.Description())
	assert.True(t, b.CanFix())
	assert.True(t, b.DefaultEnabled())
	assert.Equal(t, []filekind.Kind{filekind.Markdown}, b.SupportedKinds())
}

func TestSupports(t *testing.T) {
	t.Parallel()

	all := fake("Std.Cat.All", nil, nil)()
	assert.True(t, sniff.Supports(all, filekind.PHP))
	assert.True(t, sniff.Supports(all, filekind.Markdown))

	mdOnly := &fakeSniff{Base: sniff.NewBase("Std.Cat.Md", "", false, filekind.Markdown)}
	assert.False(t, sniff.Supports(mdOnly, filekind.PHP))
	assert.True(t, sniff.Supports(mdOnly, filekind.Markdown))
}

func TestParseBoolProperty(t *testing.T) {
	t.Parallel()

	got, err := sniff.ParseBoolProperty("x", "true")
	require.NoError(t, err)
	assert.True(t, got)

	_, err = sniff.ParseBoolProperty("x", "maybe")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `property x: "maybe"`)
}
