package script

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GriffinCanCode/litepro/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/litepro/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/litepro/internal/logging"
	"github.com/GriffinCanCode/litepro/internal/shared/id"
	"github.com/GriffinCanCode/litepro/internal/shared/types"
	"go.uber.org/zap"
)

// ErrStepFailed is returned when a step fails and the script does not
// continue on error
var ErrStepFailed = errors.New("script step failed")

// Executor runs one tool call. *service.Registry satisfies it.
type Executor interface {
	Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error)
}

// StepResult is the outcome of one step
type StepResult struct {
	Index   int                    `json:"index"`
	Tool    string                 `json:"tool"`
	Success bool                   `json:"success"`
	Error   string                 `json:"error,omitempty"`
	Kind    string                 `json:"kind,omitempty"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

// Report summarizes a run
type Report struct {
	RunID     string        `json:"run_id"`
	Script    string        `json:"script"`
	Steps     []StepResult  `json:"steps"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Skipped   int           `json:"skipped"`
	Duration  time.Duration `json:"duration_ns"`
}

// Runner executes scripts one step at a time
type Runner struct {
	exec    Executor
	metrics *monitoring.Metrics
	tracer  *tracing.Tracer
	logger  *logging.Logger
}

// NewRunner creates a runner. metrics may be nil.
func NewRunner(exec Executor, metrics *monitoring.Metrics, logger *logging.Logger) *Runner {
	return &Runner{exec: exec, metrics: metrics, logger: logger.Named("script")}
}

// WithTracer records a span per step
func (r *Runner) WithTracer(t *tracing.Tracer) *Runner {
	r.tracer = t
	return r
}

// Run executes every step in order. It stops at the first failed step
// unless the script continues on error; the report covers every step that
// ran. Cancellation is checked between steps.
func (r *Runner) Run(ctx context.Context, s *Script) (*Report, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	runID := id.NewRunID().String()
	report := &Report{RunID: runID, Script: s.Name, Steps: make([]StepResult, 0, len(s.Steps))}
	appCtx := &types.Context{RunID: &runID}
	if s.Target != "" {
		target := s.Target
		appCtx.Target = &target
	}

	log := r.logger.With(zap.String("run_id", runID), zap.String("script", s.Name))
	log.Info("script started", zap.Int("steps", len(s.Steps)))
	start := time.Now()
	defer func() { report.Duration = time.Since(start) }()

	var failed error
	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			report.Skipped = len(s.Steps) - i
			return report, err
		}

		res := r.step(ctx, i, step, appCtx)
		report.Steps = append(report.Steps, res)
		r.metrics.RecordScriptStep(res.Tool, res.Success)
		if res.Success {
			report.Succeeded++
			continue
		}

		report.Failed++
		log.Warn("script step failed",
			zap.Int("step", i+1),
			zap.String("tool", res.Tool),
			zap.String("error", res.Error),
		)
		if failed == nil {
			failed = fmt.Errorf("%w: step %d (%s): %s", ErrStepFailed, i+1, res.Tool, res.Error)
		}
		if !s.ContinueOnError {
			report.Skipped = len(s.Steps) - i - 1
			return report, failed
		}
	}

	log.Info("script finished",
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed),
		zap.Duration("duration", time.Since(start)),
	)
	return report, failed
}

func (r *Runner) step(ctx context.Context, i int, step Step, appCtx *types.Context) StepResult {
	toolID := step.ToolID()
	res := StepResult{Index: i, Tool: toolID}

	span, ctx := r.tracer.StartSpan(ctx, "script.step")
	span.SetTag("tool", toolID)
	span.SetTag("run_id", *appCtx.RunID)
	defer func() {
		if !res.Success {
			span.SetError(errors.New(res.Error))
		}
		r.tracer.End(span)
	}()

	result, err := r.exec.Execute(ctx, toolID, step.Params, appCtx)
	switch {
	case result != nil:
		res.Success = result.Success && err == nil
		res.Data = result.Data
		res.Kind = result.Kind
		if result.Error != nil {
			res.Error = *result.Error
		}
	case err == nil:
		res.Error = "no result"
	}
	if err != nil && res.Error == "" {
		res.Error = err.Error()
	}
	return res
}
