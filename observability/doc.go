// Package observability provides OpenTelemetry tracing and metrics for
// linqkit pipelines and views.
//
// Tracing, given a Config with defaults applied:
//
//	tp, err := observability.InitTracer(ctx, cfg.TracerConfig())
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, cfg.MeterConfig())
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("linqkit"))
//	view := enumerable.FromSlice(rows, enumerable.WithMetrics(metrics))
//
// Both providers can be set up in one call from a Config:
//
//	shutdown, err := observability.Init(ctx, cfg)
//	defer shutdown(ctx)
package observability
