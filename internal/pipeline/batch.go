package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nao1215/xorcrack/internal/model"
	"github.com/nao1215/xorcrack/internal/source"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of lines processed at once.
const DefaultConcurrency = 8

// BatchProcessor processes many lines concurrently, one fresh pipeline per
// line.
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each line.
	pipelineFactory func() *Pipeline

	concurrency int

	// strict makes the first failing line cancel the batch.
	strict bool

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

// WithConcurrency sets the maximum number of lines processed at once.
// Non-positive values are ignored.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithStrict makes the first failing line abort the batch, the way
// cracker.CrackBest does.
func WithStrict(strict bool) BatchOption {
	return func(b *BatchProcessor) {
		b.strict = strict
	}
}

// NewBatchProcessor creates a new BatchProcessor.
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

// ProcessBatch runs every line through its own pipeline.
//
// The returned slice has one result per line in input order, including
// failed lines. Lines that never started because the batch was cancelled
// stay pending. The error is non-nil when ctx was cancelled or, in strict
// mode, when a line failed.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, lines []source.Line) ([]*model.LineResult, error) {
	bp.logger.Debug("starting batch processing",
		"total_lines", len(lines),
		"concurrency", bp.concurrency,
		"strict", bp.strict,
	)

	startTime := time.Now()

	results := make([]*model.LineResult, len(lines))
	for i, line := range lines {
		results[i] = model.NewLineResult(line.Source, line.Number, line.Text)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i := range lines {
		result := results[i]
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			err := bp.pipelineFactory().Execute(gctx, result)
			if err == nil {
				return nil
			}

			bp.logger.Warn("line failed",
				"source", result.Source,
				"line", result.Line,
				"outcome", result.Outcome.String(),
				"error", err,
			)

			if bp.strict {
				return fmt.Errorf("%s:%d: %w", result.Source, result.Line, err)
			}
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		// Lines swallow their own errors outside strict mode, so a
		// cancellation that hit running pipelines only shows up here.
		err = ctx.Err()
	}

	bp.logger.Debug("batch processing complete",
		"total_lines", len(lines),
		"elapsed", time.Since(startTime),
	)

	return results, err
}
