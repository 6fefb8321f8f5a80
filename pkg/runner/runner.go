package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/gosniff/internal/logging"
	"github.com/yaklabco/gosniff/pkg/sniff"
)

// Runner processes many files through one Pipeline.
type Runner struct {
	Pipeline *sniff.Pipeline
}

// New creates a Runner.
func New(pipeline *sniff.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers files under opts.Paths and processes them concurrently.
// Every worker owns its file's token store, violation log and fixer, so
// workers share nothing but the read-only configuration. Outcomes are
// returned in path order regardless of completion order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	logger := logging.FromContext(ctx)
	logger.Debug("processing files",
		logging.FieldFiles, len(files),
		logging.FieldJobs, jobs,
	)

	pipelineOpts := sniff.PipelineOptionsFromConfig(opts.Config)

	// Each goroutine writes only its own slot.
	outcomes := make([]FileOutcome, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			fctx, flog := logging.WithFile(gctx, path)
			outcome := FileOutcome{Path: path}
			pr, err := r.Pipeline.ProcessFile(fctx, path, opts.Config, pipelineOpts)
			if err != nil {
				flog.Debug("file failed", logging.FieldError, err)
				outcome.Error = err
			} else {
				flog.Debug("file processed",
					logging.FieldKind, pr.Kind,
					logging.FieldStatus, pr.Status,
				)
				outcome.Result = pr
			}
			outcomes[i] = outcome
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}

	logger.Debug("run complete",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
		logging.FieldViolations, result.Stats.Violations(),
		logging.FieldFilesModified, result.Stats.FilesModified,
	)

	return result, nil
}
