package cli_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gosniff/internal/cli"
	"github.com/yaklabco/gosniff/pkg/reporter"
)

const (
	phpClean    = "<?php\n$a = 1;\n"
	phpTrailing = "<?php\n$a = 1; \n"
	mdNoLang    = "# Doc\n\n```\npackage main\n```\n"
)

func exitCode(err error) int {
	return cli.ExitCodeFromError(err)
}

func TestCheck_ExitCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
		extra   []string
		want    int
	}{
		{name: "clean php", file: "a.php", content: phpClean, want: cli.ExitSuccess},
		{name: "trailing whitespace", file: "a.php", content: phpTrailing, want: cli.ExitCheckErrors},
		{name: "warning only", file: "doc.md", content: mdNoLang, want: cli.ExitSuccess},
		{name: "warning strict", file: "doc.md", content: mdNoLang, extra: []string{"--strict"}, want: cli.ExitCheckWarnings},
		{
			name:    "disabled sniff",
			file:    "a.php",
			content: phpTrailing,
			extra:   []string{"--disable", "Generic.WhiteSpace.TrailingWhitespace"},
			want:    cli.ExitSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeFile(t, tt.file, tt.content)
			args := append([]string{"check", "--no-config", "--color", "never"}, tt.extra...)
			args = append(args, path)

			_, err := execute(t, args...)
			assert.Equal(t, tt.want, exitCode(err))
			if tt.want != cli.ExitSuccess {
				assert.ErrorIs(t, err, cli.ErrIssuesFound)
			}
		})
	}
}

func TestCheck_TextOutput(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "a.php", phpTrailing)

	out, err := execute(t, "check", "--no-config", "--color", "never", path)
	require.Error(t, err)

	assert.Contains(t, out, "Generic.WhiteSpace.TrailingWhitespace.Found")
	assert.Contains(t, out, "Whitespace found at end of line")
	assert.Contains(t, out, ":2:")

	out, err = execute(t, "check", "--no-config", "--color", "never", "--code-format", "local", path)
	require.Error(t, err)
	assert.NotContains(t, out, "Generic.WhiteSpace")
	assert.Contains(t, out, "Found")
}

func TestCheck_JSONOutput(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "a.php", phpTrailing)

	out, err := execute(t, "check", "--no-config", "--format", "json", path)
	assert.Equal(t, cli.ExitCheckErrors, exitCode(err))

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &output))

	require.Len(t, output.Files, 1)
	require.Len(t, output.Files[0].Violations, 1)
	v := output.Files[0].Violations[0]
	assert.Equal(t, "Generic.WhiteSpace.TrailingWhitespace.Found", v.Source)
	assert.Equal(t, "error", v.Severity)
	assert.Equal(t, 2, v.Line)
	assert.True(t, v.Fixable)

	assert.Equal(t, 1, output.Summary.FilesChecked)
	assert.Equal(t, 1, output.Summary.Errors)
	assert.Equal(t, 1, output.Summary.Fixable)
}

func TestCheck_Fix(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "a.php", phpTrailing)

	_, err := execute(t, "check", "--no-config", "--color", "never", "--fix", "--no-backups", path)
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, phpClean, string(got))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no backup expected")
}

func TestCheck_FixCreatesBackup(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "a.php", phpTrailing)

	_, err := execute(t, "check", "--no-config", "--color", "never", "--fix", path)
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestCheck_DryRunShowsDiff(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "a.php", phpTrailing)

	out, err := execute(t, "check", "--no-config", "--color", "never", "--fix", "--dry-run", path)
	require.NoError(t, err)

	assert.Contains(t, out, "--- a/")
	assert.Contains(t, out, "+++ b/")
	assert.Contains(t, out, "-$a = 1; ")
	assert.Contains(t, out, "+$a = 1;")

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, phpTrailing, string(got), "dry run must not write")
}

func TestCheck_ExplicitConfig(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "a.php", phpTrailing)
	cfgPath := filepath.Join(filepath.Dir(path), "rules.yml")
	cfg := "sniffs:\n  Generic.WhiteSpace.TrailingWhitespace:\n    severity: warning\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	_, err := execute(t, "check", "--no-config", "--config", cfgPath, path)
	require.NoError(t, err)

	_, err = execute(t, "check", "--no-config", "--config", cfgPath, "--strict", path)
	assert.Equal(t, cli.ExitCheckWarnings, exitCode(err))
}

func TestCheck_UsageErrors(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "a.php", phpClean)

	tests := []struct {
		name string
		args []string
		want int
	}{
		{name: "unknown format", args: []string{"--format", "xml", path}, want: cli.ExitConfigError},
		{name: "unknown sniff", args: []string{"--enable", "Generic.Nope.Nothing", path}, want: cli.ExitConfigError},
		{name: "bad glob", args: []string{"--include", "[", path}, want: cli.ExitInvalidUsage},
		{name: "missing path", args: []string{filepath.Join(filepath.Dir(path), "missing.php")}, want: cli.ExitIOError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			args := append([]string{"check", "--no-config"}, tt.args...)
			_, err := execute(t, args...)
			require.Error(t, err)
			assert.False(t, errors.Is(err, cli.ErrIssuesFound))
			assert.Equal(t, tt.want, exitCode(err))
		})
	}
}
