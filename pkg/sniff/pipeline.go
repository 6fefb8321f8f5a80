package sniff

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/gosniff/internal/logging"
	"github.com/yaklabco/gosniff/pkg/config"
	"github.com/yaklabco/gosniff/pkg/fixer"
	"github.com/yaklabco/gosniff/pkg/fsutil"
)

// Status is the outcome of the run loop for one file.
type Status int

const (
	// StatusChecked means no fixes were requested.
	StatusChecked Status = iota

	// StatusConverged means a fix pass committed no edits.
	StatusConverged

	// StatusNotFullyFixed means the pass limit was reached while passes
	// still committed edits.
	StatusNotFullyFixed
)

func (s Status) String() string {
	switch s {
	case StatusChecked:
		return "checked"
	case StatusConverged:
		return "converged"
	case StatusNotFullyFixed:
		return "not fully fixed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// PipelineResult contains the result of processing a single file.
type PipelineResult struct {
	// FileResult holds the violations of the final content.
	*FileResult

	// Path is the file path that was processed.
	Path string

	// Status is the run loop outcome.
	Status Status

	// OriginalInfo is the file state before processing.
	OriginalInfo *fsutil.FileInfo

	// Modified is true if the file content was changed.
	Modified bool

	// ModifiedContent is the new content after applying fixes (nil if not modified).
	ModifiedContent []byte

	// Content is the text the violations refer to: the fixed content when
	// fixing, the original otherwise.
	Content []byte

	// Diff is the unified diff for dry-run mode (nil if not in dry-run).
	Diff *fixer.Diff

	// Skipped is true if the file was skipped (e.g., due to concurrent modification).
	Skipped bool

	// SkipReason explains why the file was skipped.
	SkipReason string

	// BackupCreated is true if a backup was created for this file.
	BackupCreated bool

	// Written is true if the file was written to disk.
	Written bool

	// FixPasses is the number of passes that committed edits.
	FixPasses int

	// TotalEdits is the number of token edits committed across all passes.
	TotalEdits int

	// Conflicts lists fix conflicts across all passes.
	Conflicts []fixer.Conflict
}

// Summary returns a human-readable summary of the pipeline result.
func (pr *PipelineResult) Summary() string {
	switch {
	case pr.Skipped:
		return "skipped: " + pr.SkipReason
	case pr.Status == StatusNotFullyFixed:
		return "not fully fixed"
	case pr.Written && pr.BackupCreated:
		return "fixed (backup created)"
	case pr.Written:
		return "fixed"
	case pr.Modified:
		return "changes pending"
	case pr.FileResult != nil && pr.HasIssues():
		return "issues found"
	default:
		return "ok"
	}
}

// PipelineOptions controls run loop behavior.
type PipelineOptions struct {
	// Fix enables the fix loop.
	Fix bool

	// DryRun computes diffs without writing files.
	DryRun bool

	// Backup configures backup behavior.
	Backup fsutil.BackupConfig

	// StrictRaceDetection uses hash comparison for modification detection.
	// When false, only mod time and size are checked.
	StrictRaceDetection bool

	// MaxPasses limits the number of fix passes.
	// Zero uses config.DefaultMaxPasses.
	MaxPasses int
}

// DefaultPipelineOptions returns sensible defaults.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		Backup:              fsutil.DefaultBackupConfig(),
		StrictRaceDetection: true,
		MaxPasses:           config.DefaultMaxPasses,
	}
}

// Pipeline runs the fix loop for one file and writes the result safely.
type Pipeline struct {
	// Engine runs single passes.
	Engine *Engine
}

// NewPipeline creates a new pipeline with the given engine.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// ProcessFile runs the run loop for a single file on disk.
//
// The pipeline performs the following steps:
//  1. Read and hash the original file.
//  2. Run passes: tokenize, dispatch, render; repeat while fixing until a
//     pass commits no edit or MaxPasses is reached.
//  3. Generate a diff (dry-run) or check for concurrent modification.
//  4. Create a backup (if enabled).
//  5. Write the fixed content atomically.
func (p *Pipeline) ProcessFile(
	ctx context.Context,
	path string,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	originalContent, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	result, err := p.ProcessContent(ctx, path, originalContent, cfg, opts)
	if err != nil {
		return nil, err
	}
	result.OriginalInfo = info

	if !result.Modified || opts.DryRun {
		return result, nil
	}

	modified, err := p.checkModified(ctx, info, opts.StrictRaceDetection)
	if err != nil {
		return nil, err
	}
	if modified {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return result, nil
	}

	if opts.Backup.Enabled {
		created, err := fsutil.CreateBackup(ctx, path, opts.Backup)
		if err != nil {
			return nil, fmt.Errorf("create backup: %w", err)
		}
		result.BackupCreated = created
	}

	if err := fsutil.WriteAtomic(ctx, path, result.ModifiedContent, info.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true

	return result, nil
}

// ProcessContent runs the run loop over in-memory content without file I/O.
// In dry-run mode the result carries a diff of the fixes.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	originalContent []byte,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	ctx, _ = logging.WithFile(ctx, path)

	kind, err := DetectKind(path, originalContent)
	if err != nil {
		return nil, err
	}

	sniffs, err := ResolveSniffs(p.Engine.Registry, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve sniffs: %w", err)
	}

	in := passInput{
		path:       path,
		kind:       kind,
		content:    originalContent,
		dispatcher: NewDispatcher(sniffs, kind),
		fixMode:    opts.Fix,
		tabWidth:   cfg.EffectiveTabWidth(),
	}
	result := &PipelineResult{Path: path}

	if !opts.Fix {
		final, err := p.Engine.runPass(ctx, in)
		if err != nil {
			return nil, err
		}
		result.FileResult = final
		result.Status = StatusChecked
		result.Content = originalContent
		return result, nil
	}

	if err := p.fixLoop(ctx, &in, opts.MaxPasses, result); err != nil {
		return nil, err
	}

	// Report on the final content with fixing off, so the log reflects what
	// remains rather than what the last pass changed.
	in.fixMode = false
	final, err := p.Engine.runPass(ctx, in)
	if err != nil {
		return nil, err
	}
	result.FileResult = final
	result.Content = in.content

	if string(in.content) != string(originalContent) {
		result.Modified = true
		result.ModifiedContent = in.content
		if opts.DryRun {
			result.Diff = fixer.Compare(path, string(originalContent), string(in.content))
		}
	}

	return result, nil
}

// fixLoop runs fix passes, advancing in.content to each pass's rendering.
func (p *Pipeline) fixLoop(ctx context.Context, in *passInput, maxPasses int, result *PipelineResult) error {
	if maxPasses <= 0 {
		maxPasses = config.DefaultMaxPasses
	}
	logger := logging.FromContext(ctx)

	seen := map[uint64]int{fsutil.HashContent(in.content): 0}
	result.Status = StatusNotFullyFixed

	for pass := 1; pass <= maxPasses; pass++ {
		select {
		case <-ctx.Done():
			return fmt.Errorf("processing cancelled: %w", ctx.Err())
		default:
		}

		res, err := p.Engine.runPass(ctx, *in)
		if err != nil {
			return err
		}
		if res.FixCount == 0 {
			result.Status = StatusConverged
			return nil
		}

		result.FixPasses++
		result.TotalEdits += res.FixCount
		result.Conflicts = append(result.Conflicts, res.Conflicts...)
		in.content = res.Rendered

		logger.Debug("fix pass",
			logging.FieldPass, pass,
			logging.FieldEdits, res.FixCount,
		)

		hash := fsutil.HashContent(in.content)
		if first, ok := seen[hash]; ok {
			logger.Debug("fix passes oscillate",
				logging.FieldPass, pass,
				logging.FieldFirstPass, first,
			)
		} else {
			seen[hash] = pass
		}
	}

	logger.Debug("fix loop did not converge", logging.FieldMaxPasses, maxPasses)
	return nil
}

// checkModified checks if a file has been modified since it was read.
func (p *Pipeline) checkModified(ctx context.Context, info *fsutil.FileInfo, strict bool) (bool, error) {
	var modified bool
	var err error

	if strict {
		modified, err = fsutil.CheckModified(ctx, info)
	} else {
		modified, err = fsutil.CheckModifiedQuick(ctx, info)
	}

	if err != nil {
		return false, fmt.Errorf("check modified: %w", err)
	}
	return modified, nil
}

// categorizeError wraps an error with the appropriate pipeline error type.
func categorizeError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}

	if errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}

	return err
}

// BackupConfigFromConfig creates an fsutil.BackupConfig from config.Config.
func BackupConfigFromConfig(cfg *config.Config) fsutil.BackupConfig {
	if cfg == nil {
		return fsutil.DefaultBackupConfig()
	}
	return fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
}

// PipelineOptionsFromConfig creates PipelineOptions from config.Config.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	if cfg == nil {
		return DefaultPipelineOptions()
	}
	return PipelineOptions{
		Fix:                 cfg.Fix,
		DryRun:              cfg.DryRun,
		Backup:              BackupConfigFromConfig(cfg),
		StrictRaceDetection: true,
		MaxPasses:           cfg.EffectiveMaxPasses(),
	}
}
