package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gosniff/internal/cli"
	"github.com/yaklabco/gosniff/pkg/config"
)

func TestInitCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		file   string
		args   []string
		checks []string
	}{
		{name: "minimal yaml", file: "gosniff.yml", checks: []string{"tab_width: 4", "max_passes:"}},
		{
			name:   "full yaml",
			file:   "gosniff.yml",
			args:   []string{"--full"},
			checks: []string{"Generic.Files.OneClassPerFile:", "enabled: true"},
		},
		{
			name:   "full toml",
			file:   "gosniff.toml",
			args:   []string{"--full", "--format", "toml"},
			checks: []string{`[sniffs."Generic.Files.OneClassPerFile"]`, "enabled = true"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), tt.file)
			args := append([]string{"init", "--output", path}, tt.args...)
			_, err := execute(t, args...)
			require.NoError(t, err)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			for _, want := range tt.checks {
				assert.Contains(t, string(data), want)
			}

			// The generated file must load back.
			cfg, err := config.Decode(path, data)
			require.NoError(t, err)
			assert.Equal(t, config.DefaultTabWidth, cfg.TabWidth)
		})
	}
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".gosniff.yml")
	require.NoError(t, os.WriteFile(path, []byte("tab_width: 2\n"), 0o644))

	_, err := execute(t, "init", "--output", path)
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCodeFromError(err))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "tab_width: 2\n", string(data))

	_, err = execute(t, "init", "--output", path, "--force")
	require.NoError(t, err)
}

func TestInitCommand_InvalidFormat(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "init", "--output", filepath.Join(t.TempDir(), "x"), "--format", "json")
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCodeFromError(err))
}
