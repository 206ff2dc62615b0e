package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/logstat/internal/model"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of files analyzed at the same time
// when WithConcurrency is not given.
const DefaultConcurrency = 4

// BatchProcessor handles concurrent analysis of multiple log files.
// It uses errgroup to manage goroutines and respect concurrency limits.
//
// Design decision: We use a separate BatchProcessor rather than adding batch
// functionality to Pipeline because it keeps the Pipeline focused on one
// sequential file while concurrency lives only at the file level.
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each file.
	// We use a factory to ensure each file gets a fresh pipeline instance.
	pipelineFactory func() *Pipeline

	// concurrency is the maximum number of files analyzed at once.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of files analyzed at once.
// Values that are not positive are ignored.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
//
// The pipelineFactory function is called for each file to create a fresh
// pipeline instance, so no state leaks between files.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch analyzes the files concurrently and returns one report per
// file, in the order of paths.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because errgroup already bounds the goroutines and propagates the first
// error. The first failure cancels the shared context so the remaining
// files stop between lines, and no reports are returned.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, paths []string) ([]model.FileReport, error) {
	bp.logger.Info("starting batch processing",
		"total_files", len(paths),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	// Each goroutine writes only its own index.
	results := make([]model.FileReport, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			bp.logger.Debug("analyzing file",
				"file", path,
				"index", i+1,
				"total", len(paths),
			)

			report, err := bp.pipelineFactory().Run(ctx, path)
			if err != nil {
				bp.logger.Debug("file analysis failed",
					"file", path,
					"error", err,
				)
				return err
			}

			results[i] = model.FileReport{File: path, Report: report}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	bp.logger.Info("batch processing complete",
		"total_files", len(paths),
		"elapsed", time.Since(startTime),
	)

	return results, nil
}
