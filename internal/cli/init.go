package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gosniff/internal/logging"
	"github.com/yaklabco/gosniff/pkg/config"
	"github.com/yaklabco/gosniff/pkg/fsutil"
	"github.com/yaklabco/gosniff/pkg/sniff"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new gosniff configuration file",
		Long: `Create a new .gosniff.yml configuration file in the current directory
with sensible defaults. The file can be customized to enable or disable
sniffs, change severities, and set sniff properties.

Examples:
  gosniff init                       Create minimal .gosniff.yml
  gosniff init --full                Create full config listing every sniff
  gosniff init --format toml         Create .gosniff.toml instead
  gosniff init --output custom.yml   Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runInit(ctx, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "list every registered sniff in the template")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "output format: yaml or toml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file path (default: .gosniff.yml or .gosniff.toml)")

	return cmd
}

func runInit(ctx context.Context, flags *initFlags) error {
	logger := logging.NewInteractive()

	if flags.format != "yaml" && flags.format != "toml" {
		return &ExitError{
			Code: ExitInvalidUsage,
			Err:  fmt.Errorf("invalid format %q: must be yaml or toml", flags.format),
		}
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".gosniff.yml"
		if flags.format == "toml" {
			outputPath = ".gosniff.toml"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return &ExitError{
				Code: ExitInvalidUsage,
				Err:  fmt.Errorf("file %q already exists; use --force to overwrite", outputPath),
			}
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
		Sniffs: templateSniffs(sniff.DefaultRegistry),
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := fsutil.WriteAtomic(ctx, absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'gosniff sniffs' to see all available sniffs")

	return nil
}

func templateSniffs(registry *sniff.Registry) []config.SniffInfo {
	infos := collectSniffs(registry)
	out := make([]config.SniffInfo, 0, len(infos))
	for _, info := range infos {
		out = append(out, config.SniffInfo{
			Code:        info.Code,
			Description: info.Description,
			Enabled:     info.Enabled,
			Fixable:     info.Fixable,
			Kinds:       info.Kinds,
		})
	}
	return out
}
