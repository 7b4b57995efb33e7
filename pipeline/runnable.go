package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kbukum/linqkit/enumerable"
	"github.com/kbukum/linqkit/errors"
	"github.com/kbukum/linqkit/logger"
	"github.com/kbukum/linqkit/observability"
	"github.com/kbukum/linqkit/validation"
)

// maxNameLength bounds pipeline names, which become span and metric
// attribute values.
const maxNameLength = 128

// Runnable is a named, reusable list of stages.
type Runnable[T any] struct {
	name    string
	stages  []Stage[T]
	metrics *observability.Metrics
	log     *logger.Logger
}

// Compose creates a Runnable. Stages are validated when it runs.
func Compose[T any](name string, stages ...Stage[T]) *Runnable[T] {
	return &Runnable[T]{name: name, stages: stages}
}

// Name returns the pipeline name.
func (r *Runnable[T]) Name() string { return r.name }

// Len returns the number of stages.
func (r *Runnable[T]) Len() int { return len(r.stages) }

// WithMetrics returns a copy of r that records runs on m.
func (r *Runnable[T]) WithMetrics(m *observability.Metrics) *Runnable[T] {
	c := *r
	c.metrics = m
	return &c
}

// WithLogger returns a copy of r that logs to l instead of the "pipeline"
// registry logger.
func (r *Runnable[T]) WithLogger(l *logger.Logger) *Runnable[T] {
	c := *r
	c.log = l
	return &c
}

// Run pipes e through the stages. The run ID is taken from ctx when set
// with logger.ContextWithRunID and must then be a UUID; otherwise a new one
// is generated. ctx is checked before each stage. A panic from a stage ends
// the run span and is re-raised unchanged.
func (r *Runnable[T]) Run(ctx context.Context, e *enumerable.Enumerable[T]) (res Result[T]) {
	runID, supplied := logger.RunIDFromContext(ctx)
	args := validation.NewArgs().
		Required("name", r.name).
		MaxLength("name", r.name, maxNameLength).
		OptionalUUID("run_id", runID).
		Check(e != nil, "view", "is required")
	for i, s := range r.stages {
		args.Check(s != nil, fmt.Sprintf("stages[%d]", i), "is nil")
	}
	if appErr := args.Validate(); appErr != nil {
		return Result[T]{err: appErr}
	}
	if !supplied {
		runID = uuid.NewString()
		ctx = logger.ContextWithRunID(ctx, runID)
	}

	rc := observability.NewRunContext(r.name, runID, len(r.stages), r.metrics)
	ctx, span := rc.StartSpan(ctx)
	log := r.logger().WithContext(ctx).WithFields(logger.Fields(logger.FieldPipeline, r.name))

	defer func() {
		if p := recover(); p != nil {
			rc.End(ctx, span, string(errors.ErrCodeInternal), fmt.Errorf("stage panicked: %v", p))
			log.Debug("run panicked", logger.DurationFields("run", rc.Duration()))
			panic(p)
		}
	}()

	res = start(e)
	for i, s := range r.stages {
		if err := ctx.Err(); err != nil {
			res.err = err
			break
		}
		res = r.stage(ctx, i, s, res)
		rc.RecordDispatch(ctx, res.route.String())
		if log.DebugEnabled() {
			log.Debug("stage dispatched", logger.Fields(
				logger.FieldStage, i,
				logger.FieldRoute, res.route.String(),
			))
		}
		if res.err != nil {
			break
		}
	}

	code := errorCode(res.err)
	rc.End(ctx, span, code, res.err)
	fields := logger.DurationFields("run", rc.Duration())
	if res.err != nil {
		fields = logger.MergeWithError(fields, res.err)
		fields[logger.FieldCode] = code
	}
	log.Debug("run finished", fields)
	return res
}

// stage dispatches s inside its own span. The span is ended before a stage
// panic reaches the run.
func (r *Runnable[T]) stage(ctx context.Context, index int, s Stage[T], in Result[T]) (out Result[T]) {
	ctx, _ = observability.StartStage(ctx, index, s.route().String())
	defer func() {
		if p := recover(); p != nil {
			observability.EndStage(ctx, fmt.Errorf("stage panicked: %v", p))
			panic(p)
		}
	}()
	out = in.step(s)
	observability.EndStage(ctx, out.err)
	return out
}

func (r *Runnable[T]) logger() *logger.Logger {
	if r.log != nil {
		return r.log
	}
	return logger.Get("pipeline")
}

func errorCode(err error) string {
	if err == nil {
		return ""
	}
	if appErr, ok := errors.AsAppError(err); ok {
		return string(appErr.Code)
	}
	return string(errors.ErrCodeInternal)
}
