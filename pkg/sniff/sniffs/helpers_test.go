package sniffs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gosniff/pkg/config"
	"github.com/yaklabco/gosniff/pkg/filekind"
	"github.com/yaklabco/gosniff/pkg/sniff"
	"github.com/yaklabco/gosniff/pkg/token"
)

// runSniffs processes input with only the given sniffs registered.
func runSniffs(
	t *testing.T,
	path, input string,
	fix bool,
	cfg *config.Config,
	factories ...sniff.Factory,
) *sniff.PipelineResult {
	t.Helper()

	registry := sniff.NewRegistry()
	for _, factory := range factories {
		registry.Register(factory)
	}
	if cfg == nil {
		cfg = config.NewConfig()
	}

	pipeline := sniff.NewPipeline(sniff.NewEngine(registry, nil))
	result, err := pipeline.ProcessContent(context.Background(), path, []byte(input), cfg, sniff.PipelineOptions{
		Fix:       fix,
		MaxPasses: config.DefaultMaxPasses,
	})
	require.NoError(t, err)
	return result
}

// fixed returns the content after fixing, or the input when nothing changed.
func fixed(result *sniff.PipelineResult, input string) string {
	if !result.Modified {
		return input
	}
	return string(result.ModifiedContent)
}

// withProperties returns a config that sets properties on one sniff.
func withProperties(code string, props map[string]any) *config.Config {
	cfg := config.NewConfig()
	cfg.Sniffs = map[string]config.SniffConfig{code: {Properties: props}}
	return cfg
}

// codes returns the full codes of the violations in order.
func codes(vs []sniff.Violation) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.FullCode())
	}
	return out
}

// whitespaceRewrite replaces whitespace tokens holding exactly from with to,
// standing in for another sniff that edits a token earlier in the pass.
type whitespaceRewrite struct {
	sniff.Base
	from, to string
}

func rewriteWhitespace(from, to string) sniff.Factory {
	return func() sniff.Sniff {
		return &whitespaceRewrite{
			Base: sniff.NewBase("Test.WhiteSpace.Rewrite", "rewrites whitespace", true, filekind.PHP),
			from: from,
			to:   to,
		}
	}
}

func (s *whitespaceRewrite) Register() []token.Kind {
	return []token.Kind{token.TokWhitespace}
}

func (s *whitespaceRewrite) Process(f *sniff.File, idx int) (int, error) {
	if f.Tokens.Content(idx) != s.from {
		return 0, nil
	}
	return 0, f.Fixer.ReplaceToken(idx, s.to)
}
