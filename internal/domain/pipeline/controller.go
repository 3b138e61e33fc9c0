// Package pipeline runs an ordered list of provisioning stages with
// abort-on-first-failure semantics.
package pipeline

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/felixgeelhaar/dockerup/internal/ports"
)

// Hook runs after the stage loop, whatever the outcome.
type Hook func(ctx RunContext, report Report)

// Controller runs stages in order.
type Controller struct {
	logger  ports.Logger
	finally []Hook
}

// NewController creates a new Controller.
func NewController(logger ports.Logger) *Controller {
	return &Controller{logger: logger}
}

// WithFinally returns a Controller that also runs hooks after every run.
func (c *Controller) WithFinally(hooks ...Hook) *Controller {
	finally := make([]Hook, 0, len(c.finally)+len(hooks))
	finally = append(finally, c.finally...)
	finally = append(finally, hooks...)
	return &Controller{
		logger:  c.logger,
		finally: finally,
	}
}

// Execute runs every stage in order and stops at the first stage that
// fails or halts. Finally hooks run even if a stage panics.
func (c *Controller) Execute(ctx context.Context, stages []Stage) (report Report) {
	start := time.Now()
	runCtx := NewRunContext(ctx, c.logger)

	report = Report{
		results: make([]Result, 0, len(stages)),
		outcome: OutcomeFailed,
	}

	defer func() {
		report.duration = time.Since(start)
		for _, hook := range c.finally {
			hook(runCtx, report)
		}
	}()

	for i, stage := range stages {
		if err := ctx.Err(); err != nil {
			report.outcome = OutcomeInterrupted
			report.err = err
			report.results = append(report.results, skipped(stages[i:])...)
			c.logger.Error(ctx, "interrupted before "+stage.Describe())
			return report
		}

		result := c.runStage(runCtx, stage)
		report.results = append(report.results, result)

		if !result.Status().Stops() {
			continue
		}

		report.err = result.Error()
		report.results = append(report.results, skipped(stages[i+1:])...)

		switch {
		case result.Status() == StatusHalted:
			report.outcome = OutcomeHalted
			c.logger.Info(ctx, errorMessage(result.Error()))
		case ctx.Err() != nil:
			report.outcome = OutcomeInterrupted
			c.logger.Error(ctx, "interrupted during "+stage.Describe())
		default:
			report.outcome = OutcomeFailed
			c.reportFailure(ctx, result.Error())
		}
		return report
	}

	report.outcome = OutcomeSucceeded
	return report
}

func (c *Controller) runStage(ctx RunContext, stage Stage) Result {
	started := time.Now()
	err := stage.Run(ctx.WithLogger(ctx.Logger().With(ports.F("stage", stage.ID().String()))))
	duration := time.Since(started)

	status := StatusSucceeded
	switch {
	case err == nil:
	case IsHalt(err):
		status = StatusHalted
	default:
		status = StatusFailed
		var se *StageError
		if errors.As(err, &se) && se.StageID == "" {
			err = se.WithStageID(stage.ID().String())
		}
	}

	return NewResult(stage.ID(), status, err).
		WithStage(stage).
		WithDuration(duration)
}

func (c *Controller) reportFailure(ctx context.Context, err error) {
	var se *StageError
	if !errors.As(err, &se) {
		c.logger.Error(ctx, err.Error())
		return
	}

	msg := se.Message
	if se.Underlying != nil {
		msg += ": " + se.Underlying.Error()
	}
	c.logger.Error(ctx, msg, ports.F("code", se.Code), ports.F("stage", se.StageID))
	if se.Suggestion != "" {
		c.logger.Info(ctx, se.Suggestion)
	}
}

func skipped(stages []Stage) []Result {
	out := make([]Result, 0, len(stages))
	for _, s := range stages {
		out = append(out, NewResult(s.ID(), StatusSkipped, nil).WithStage(s))
	}
	return out
}

// errorMessage strips the halt sentinel from a halt reason.
func errorMessage(err error) string {
	if err == nil {
		return ""
	}
	return strings.TrimSuffix(err.Error(), ": "+ErrHalted.Error())
}
