package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Run statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// RunContext holds observability state for one pipeline run.
type RunContext struct {
	Pipeline   string
	RunID      string
	StageCount int
	StartTime  time.Time
	Metrics    *Metrics
}

// NewRunContext creates a run context. If metrics is nil, metric recording
// is silently skipped.
func NewRunContext(pipeline, runID string, stageCount int, metrics *Metrics) *RunContext {
	return &RunContext{
		Pipeline:   pipeline,
		RunID:      runID,
		StageCount: stageCount,
		StartTime:  time.Now(),
		Metrics:    metrics,
	}
}

type runContextKey struct{}

// WithRunContext stores a RunContext in the context.
func WithRunContext(ctx context.Context, rc *RunContext) context.Context {
	return context.WithValue(ctx, runContextKey{}, rc)
}

// RunContextFromContext retrieves the RunContext from context, or nil.
func RunContextFromContext(ctx context.Context) *RunContext {
	if rc, ok := ctx.Value(runContextKey{}).(*RunContext); ok {
		return rc
	}
	return nil
}

// StartSpan starts the run span and stores rc in the returned context.
func (rc *RunContext) StartSpan(ctx context.Context) (context.Context, trace.Span) {
	ctx, span := StartSpan(ctx, SpanPipelineRun)
	span.SetAttributes(
		attribute.String(AttrPipelineName, rc.Pipeline),
		attribute.String(AttrRunID, rc.RunID),
		attribute.Int(AttrStageCount, rc.StageCount),
	)
	return WithRunContext(ctx, rc), span
}

// StartStage starts a child span for the stage at index. The pipeline and
// run ID are taken from the RunContext stored in ctx, if any.
func StartStage(ctx context.Context, index int, route string) (context.Context, trace.Span) {
	ctx, span := StartSpan(ctx, SpanStage)
	span.SetAttributes(
		attribute.Int(AttrStageIndex, index),
		attribute.String(AttrRoute, route),
	)
	if rc := RunContextFromContext(ctx); rc != nil {
		span.SetAttributes(
			attribute.String(AttrPipelineName, rc.Pipeline),
			attribute.String(AttrRunID, rc.RunID),
		)
	}
	return ctx, span
}

// EndStage ends the stage span in ctx, recording err if the stage failed.
func EndStage(ctx context.Context, err error) {
	if err != nil {
		SetSpanError(ctx, err)
		SetSpanAttributes(ctx, attribute.String(AttrStatus, StatusError))
	} else {
		SetSpanAttributes(ctx, attribute.String(AttrStatus, StatusOK))
	}
	SpanFromContext(ctx).End()
}

// RecordDispatch counts a routed stage against this run's pipeline.
func (rc *RunContext) RecordDispatch(ctx context.Context, route string) {
	rc.Metrics.RecordDispatch(ctx, rc.Pipeline, route)
}

// End ends the span and records the run metrics. code is the error code of
// err, or empty.
func (rc *RunContext) End(ctx context.Context, span trace.Span, code string, err error) {
	duration := time.Since(rc.StartTime)
	status := StatusOK

	if err != nil {
		status = StatusError
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(
			attribute.String(AttrErrorCode, code),
			attribute.String(AttrErrorMessage, err.Error()),
		)
		rc.Metrics.RecordError(ctx, code, "pipeline")
	}

	span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	span.End()

	rc.Metrics.RecordRun(ctx, rc.Pipeline, status, duration)
}

// Duration returns the elapsed time since the run started.
func (rc *RunContext) Duration() time.Duration {
	return time.Since(rc.StartTime)
}
