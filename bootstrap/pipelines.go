package bootstrap

import (
	"github.com/kbukum/linqkit/logger"
	"github.com/kbukum/linqkit/pipeline"
)

// Register lists r in the startup summary and returns a copy of r that
// records runs on the app's metrics. Register pipelines before RunTask for
// them to appear in the summary.
func Register[T any](a *App, r *pipeline.Runnable[T]) *pipeline.Runnable[T] {
	a.Summary.TrackPipeline(r.Name(), r.Len())
	a.Logger.Debug("pipeline registered", logger.Fields(
		logger.FieldPipeline, r.Name(),
		"stages", r.Len(),
	))
	return r.WithMetrics(a.Metrics)
}
