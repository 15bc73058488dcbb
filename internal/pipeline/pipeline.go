package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/xorcrack/internal/model"
)

// Step is one stage of line processing.
type Step interface {
	// Do executes the step against result. A returned error stops the
	// pipeline unless it was built WithContinueOnError.
	Do(ctx context.Context, result *model.LineResult) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline executes steps in order.
type Pipeline struct {
	steps []Step

	logger *slog.Logger

	// continueOnError keeps executing the remaining steps after a failure.
	continueOnError bool
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError configures the pipeline to run later steps even when
// one fails. The error is still recorded in the result.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates a new Pipeline with the given options.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step to the pipeline.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all steps in sequence against result.
// Cancellation is checked before each step. The first step error is
// recorded in result and returned unless continueOnError is set.
func (p *Pipeline) Execute(ctx context.Context, result *model.LineResult) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"source", result.Source,
				"line", result.Line,
				"reason", ctx.Err(),
			)
			result.SetError(ctx.Err())
			return ctx.Err()
		default:
		}

		p.logger.Debug("executing step",
			"step", step.Name(),
			"source", result.Source,
			"line", result.Line,
		)

		if err := step.Do(ctx, result); err != nil {
			p.logger.Debug("step failed",
				"step", step.Name(),
				"source", result.Source,
				"line", result.Line,
				"error", err,
			)

			result.SetError(err)

			if !p.continueOnError {
				result.PerformedSteps = append(result.PerformedSteps, step.Name())
				return err
			}
		}

		result.PerformedSteps = append(result.PerformedSteps, step.Name())
	}

	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
