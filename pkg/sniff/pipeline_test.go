package sniff_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gosniff/pkg/config"
	"github.com/yaklabco/gosniff/pkg/fsutil"
	"github.com/yaklabco/gosniff/pkg/sniff"
	"github.com/yaklabco/gosniff/pkg/token"
)

func builtinPipeline() *sniff.Pipeline {
	return sniff.NewPipeline(sniff.NewEngine(builtinRegistry(), nil))
}

func fixOptions() sniff.PipelineOptions {
	opts := sniff.DefaultPipelineOptions()
	opts.Fix = true
	return opts
}

// rewriter always rewrites the first token to want.
func rewriter(code, want string) sniff.Factory {
	return fake(code, []token.Kind{token.TokInlineHTML}, func(f *sniff.File, idx int) (int, error) {
		if f.Tokens.Content(idx) == want {
			return 0, nil
		}
		if f.AddFixableError(idx, "Rewrite", "content should be %q", want) {
			return 0, f.Fixer.ReplaceToken(idx, want)
		}
		return 0, nil
	})
}

func TestPipeline_ShortArrayFix(t *testing.T) {
	t.Parallel()

	input := "<?php\n$a = array(1, 2, 3);\n"
	result, err := builtinPipeline().ProcessContent(context.Background(), "a.php", []byte(input), nil, fixOptions())
	require.NoError(t, err)

	assert.True(t, result.Modified)
	assert.Equal(t, "<?php\n$a = [1, 2, 3];\n", string(result.ModifiedContent))
	assert.Equal(t, sniff.StatusConverged, result.Status)
	assert.Equal(t, 1, result.FixPasses)
	assert.Equal(t, 3, result.TotalEdits)
	assert.Empty(t, result.Violations)
	assert.Nil(t, result.Diff)
}

func TestPipeline_DuplicateClass(t *testing.T) {
	t.Parallel()

	input := "<?php\nclass A {}\n\nclass B {}\n"
	result, err := builtinPipeline().ProcessContent(context.Background(), "a.php", []byte(input), nil, sniff.DefaultPipelineOptions())
	require.NoError(t, err)

	assert.Equal(t, sniff.StatusChecked, result.Status)
	require.Len(t, result.Violations, 1)
	v := result.Violations[0]
	assert.Equal(t, "Generic.Files.OneClassPerFile.MultipleClasses", v.FullCode())
	assert.Equal(t, 4, v.Line)
	assert.Equal(t, 1, v.Column)
}

func TestPipeline_Idempotent(t *testing.T) {
	t.Parallel()

	input := "<?php\nCLASS A {  \n    public function f() { return ARRAY(ARRAY()); }\n}\n\n\n"
	pipeline := builtinPipeline()

	first, err := pipeline.ProcessContent(context.Background(), "a.php", []byte(input), nil, fixOptions())
	require.NoError(t, err)
	require.True(t, first.Modified)
	assert.Equal(t, "<?php\nclass A {\n    public function f() { return [[]]; }\n}\n", string(first.ModifiedContent))

	second, err := pipeline.ProcessContent(context.Background(), "a.php", first.ModifiedContent, nil, fixOptions())
	require.NoError(t, err)
	assert.False(t, second.Modified)
	assert.Equal(t, sniff.StatusConverged, second.Status)
	assert.Zero(t, second.FixPasses)
}

func TestPipeline_NonConvergence(t *testing.T) {
	t.Parallel()

	registry := sniff.NewRegistry()
	registry.Register(rewriter("Loop.Rewrite.ToA", "a"))
	registry.Register(rewriter("Loop.Rewrite.ToB", "b"))
	pipeline := sniff.NewPipeline(sniff.NewEngine(registry, tokenizerFunc(wholeFile)))

	tests := []struct {
		name         string
		maxPasses    int
		wantModified bool
		wantContent  string
	}{
		{name: "even passes end where they started", maxPasses: 4, wantModified: false},
		{name: "odd passes end on the other value", maxPasses: 3, wantModified: true, wantContent: "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := fixOptions()
			opts.MaxPasses = tt.maxPasses
			result, err := pipeline.ProcessContent(context.Background(), "loop.php", []byte("b"), nil, opts)
			require.NoError(t, err)

			assert.Equal(t, sniff.StatusNotFullyFixed, result.Status)
			assert.Equal(t, "not fully fixed", result.Summary())
			assert.Equal(t, tt.maxPasses, result.FixPasses)
			assert.Equal(t, tt.maxPasses, result.TotalEdits)
			assert.Equal(t, tt.wantModified, result.Modified)
			if tt.wantModified {
				assert.Equal(t, tt.wantContent, string(result.ModifiedContent))
			}
			assert.Len(t, result.Violations, 1)
		})
	}
}

func TestPipeline_DryRunDiff(t *testing.T) {
	t.Parallel()

	opts := fixOptions()
	opts.DryRun = true
	input := "<?php\n$a = array();\n"

	result, err := builtinPipeline().ProcessContent(context.Background(), "a.php", []byte(input), nil, opts)
	require.NoError(t, err)
	require.NotNil(t, result.Diff)
	assert.True(t, result.Diff.HasChanges())
	assert.Equal(t, 1, result.Diff.Insertions)
	assert.Equal(t, 1, result.Diff.Deletions)
	assert.Contains(t, result.Diff.Unified(), "+$a = [];")
}

func TestPipeline_ProcessFile(t *testing.T) {
	t.Parallel()

	const input = "<?php\n$a = array(1);\n"
	const want = "<?php\n$a = [1];\n"

	tests := []struct {
		name        string
		opts        func() sniff.PipelineOptions
		wantContent string
		wantSummary string
		wantBackup  bool
	}{
		{
			name:        "check only",
			opts:        sniff.DefaultPipelineOptions,
			wantContent: input,
			wantSummary: "issues found",
		},
		{
			name:        "fix",
			opts:        fixOptions,
			wantContent: want,
			wantSummary: "fixed",
		},
		{
			name: "fix with backup",
			opts: func() sniff.PipelineOptions {
				opts := fixOptions()
				opts.Backup = fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}
				return opts
			},
			wantContent: want,
			wantSummary: "fixed (backup created)",
			wantBackup:  true,
		},
		{
			name: "dry run",
			opts: func() sniff.PipelineOptions {
				opts := fixOptions()
				opts.DryRun = true
				return opts
			},
			wantContent: input,
			wantSummary: "changes pending",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "a.php")
			require.NoError(t, os.WriteFile(path, []byte(input), 0o600))

			result, err := builtinPipeline().ProcessFile(context.Background(), path, nil, tt.opts())
			require.NoError(t, err)
			assert.Equal(t, tt.wantSummary, result.Summary())
			require.NotNil(t, result.OriginalInfo)

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.wantContent, string(got))
			assert.Equal(t, tt.wantBackup, fsutil.BackupExists(path, fsutil.BackupModeSidecar))
		})
	}
}

func TestPipeline_ProcessFileMissing(t *testing.T) {
	t.Parallel()

	_, err := builtinPipeline().ProcessFile(context.Background(), filepath.Join(t.TempDir(), "gone.php"), nil, fixOptions())
	require.ErrorIs(t, err, sniff.ErrFileNotFound)
	assert.True(t, sniff.IsPipelineError(err))
}

func TestPipelineOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Fix = true
	cfg.DryRun = true
	cfg.MaxPasses = 3
	cfg.Backups.Enabled = true
	cfg.Backups.Mode = "sidecar"

	opts := sniff.PipelineOptionsFromConfig(cfg)
	assert.True(t, opts.Fix)
	assert.True(t, opts.DryRun)
	assert.Equal(t, 3, opts.MaxPasses)
	assert.True(t, opts.Backup.Enabled)

	cfg.NoBackups = true
	assert.False(t, sniff.PipelineOptionsFromConfig(cfg).Backup.Enabled)

	assert.Equal(t, sniff.DefaultPipelineOptions(), sniff.PipelineOptionsFromConfig(nil))
}

func TestStatus_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "checked", sniff.StatusChecked.String())
	assert.Equal(t, "converged", sniff.StatusConverged.String())
	assert.Equal(t, "not fully fixed", sniff.StatusNotFullyFixed.String())
}
