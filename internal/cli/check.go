package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gosniff/internal/configloader"
	"github.com/yaklabco/gosniff/internal/logging"
	"github.com/yaklabco/gosniff/pkg/config"
	"github.com/yaklabco/gosniff/pkg/reporter"
	"github.com/yaklabco/gosniff/pkg/runner"
	"github.com/yaklabco/gosniff/pkg/sniff"
)

type checkFlags struct {
	format     string
	codeFormat string
	include    []string
	strict     bool
	noConfig   bool
	noContext  bool
	compact    bool
	follow     bool
}

func newCheckCommand() *cobra.Command {
	cfg := &config.Config{}
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check files against the coding standard",
		Long:  checkLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, cfg, flags)
		},
	}

	addCheckFlags(cmd, cfg, flags)

	return cmd
}

const checkLongDescription = `Check PHP and Markdown files for coding standard violations.

By default, checks all .php, .inc, .md and .markdown files in the current
directory and subdirectories. Specify paths to check specific files or
directories.

Exit codes: 0 clean, 1 errors found, 2 warnings found (with --strict),
3 fixes did not converge within --max-passes.

Examples:
  gosniff check                    # Check current directory
  gosniff check src/               # Check src directory
  gosniff check index.php          # Check a single file
  gosniff check --fix              # Check and fix violations
  gosniff check --fix --dry-run    # Show fixes as a diff without writing
  gosniff check --format json      # Output as JSON for CI
  gosniff check --strict           # Fail on warnings too`

func runCheck(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *checkFlags) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	if cmd.Flags().Changed("format") {
		cliCfg.Format = config.OutputFormat(flags.format)
	}
	if cmd.Flags().Changed("code-format") {
		cliCfg.CodeFormat = config.CodeFormat(flags.codeFormat)
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:          workDir,
		ExplicitPath:        configPath,
		IgnoreSystemConfig:  flags.noConfig,
		IgnoreUserConfig:    flags.noConfig,
		IgnoreProjectConfig: flags.noConfig,
		Registry:            sniff.DefaultRegistry,
		CLIConfig:           cliCfg,
	})
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	finalCfg := loadResult.Config
	if finalCfg.DryRun {
		finalCfg.Fix = true
	}
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, loadResult.LoadedFrom)
	}
	logger.Debug("configuration resolved",
		logging.FieldFix, finalCfg.Fix,
		logging.FieldDryRun, finalCfg.DryRun,
		logging.FieldJobs, finalCfg.Jobs,
		logging.FieldMaxPasses, finalCfg.EffectiveMaxPasses(),
	)

	// An explicit --format wins; otherwise a dry run reads best as a diff.
	format := finalCfg.Format
	if finalCfg.DryRun && !cmd.Flags().Changed("format") && format == config.FormatText {
		format = config.FormatDiff
	}

	rep, err := newCheckReporter(cmd, format, finalCfg, flags, workDir)
	if err != nil {
		return err
	}

	logger.Debug("starting check run",
		logging.FieldPaths, args,
		logging.FieldWorkingDir, workDir,
		logging.FieldOutput, format,
	)

	pipeline := sniff.NewPipeline(sniff.NewEngine(sniff.DefaultRegistry, nil))
	result, err := runner.New(pipeline).Run(ctx, runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		Extensions:     finalCfg.Extensions,
		IncludeGlobs:   flags.include,
		ExcludeGlobs:   finalCfg.Ignore,
		FollowSymlinks: flags.follow,
		Jobs:           finalCfg.Jobs,
		Config:         finalCfg,
	})
	if err != nil {
		return fmt.Errorf("check run failed: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	for _, outcome := range result.Files {
		if outcome.Error != nil {
			logger.Error("file failed", logging.FieldPath, outcome.Path, logging.FieldError, outcome.Error)
		}
	}

	if code := ExitCodeFromResult(result, flags.strict); code != ExitSuccess {
		return &ExitError{Code: code, Err: ErrIssuesFound}
	}
	return nil
}

func newCheckReporter(
	cmd *cobra.Command,
	format config.OutputFormat,
	cfg *config.Config,
	flags *checkFlags,
	workDir string,
) (reporter.Reporter, error) {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       colorMode,
		ShowContext: !flags.noContext,
		ShowSummary: true,
		Compact:     flags.compact,
		CodeFormat:  cfg.CodeFormat,
		WorkingDir:  workDir,
	})
	if err != nil {
		return nil, fmt.Errorf("create reporter: %w", err)
	}
	return rep, nil
}

func addCheckFlags(cmd *cobra.Command, cfg *config.Config, flags *checkFlags) {
	cmd.Flags().BoolVar(&cfg.Fix, "fix", false, "automatically fix violations")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "show fixes as a unified diff without writing files")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, diff, summary")
	cmd.Flags().StringVar(&flags.codeFormat, "code-format", "full",
		"violation code format in text output: full, sniff, local")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().IntVar(&cfg.MaxPasses, "max-passes", 0, "maximum fix passes per file (0 = default)")
	cmd.Flags().IntVar(&cfg.TabWidth, "tab-width", 0, "columns a tab advances to (0 = default)")
	cmd.Flags().StringSliceVar(&cfg.Ignore, "ignore", nil, "glob patterns to exclude")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "glob patterns a file must match to be checked")
	cmd.Flags().StringSliceVar(&cfg.Extensions, "extensions", nil, "file extensions to discover, e.g. .php,.md")
	cmd.Flags().StringSliceVar(&cfg.EnableSniffs, "enable", nil, "sniff codes to enable")
	cmd.Flags().StringSliceVar(&cfg.DisableSniffs, "disable", nil, "sniff codes to disable")
	cmd.Flags().StringSliceVar(&cfg.FixSniffs, "fix-sniffs", nil, "limit fixing to specific sniff codes")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation when fixing")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for the exit code")
	cmd.Flags().BoolVar(&flags.noConfig, "no-config", false, "ignore system, user and project config files")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in text output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "write minified JSON")
	cmd.Flags().BoolVar(&flags.follow, "follow-symlinks", false, "follow symlinked directories")
}
