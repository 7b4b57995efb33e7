package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/linqkit/logger"
)

// Instrument names.
const (
	MetricEvaluationTotal = "linqkit.evaluation.total"
	MetricDispatchTotal   = "linqkit.pipeline.dispatch.total"
	MetricRunTotal        = "linqkit.pipeline.run.total"
	MetricRunDuration     = "linqkit.pipeline.run.duration"
	MetricErrorTotal      = "linqkit.error.total"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the instruments recorded by views and pipelines.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	evaluationTotal metric.Int64Counter
	dispatchTotal   metric.Int64Counter
	runTotal        metric.Int64Counter
	runDuration     metric.Float64Histogram
	errorTotal      metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	evaluationTotal, err := meter.Int64Counter(MetricEvaluationTotal,
		metric.WithDescription("Terminal operations evaluated on views"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricEvaluationTotal, err)
	}

	dispatchTotal, err := meter.Int64Counter(MetricDispatchTotal,
		metric.WithDescription("Pipeline stages dispatched by route"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricDispatchTotal, err)
	}

	runTotal, err := meter.Int64Counter(MetricRunTotal,
		metric.WithDescription("Composed pipeline runs by status"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricRunTotal, err)
	}

	runDuration, err := meter.Float64Histogram(MetricRunDuration,
		metric.WithDescription("Duration of composed pipeline runs in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricRunDuration, err)
	}

	errorTotal, err := meter.Int64Counter(MetricErrorTotal,
		metric.WithDescription("Errors by code and component"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricErrorTotal, err)
	}

	return &Metrics{
		evaluationTotal: evaluationTotal,
		dispatchTotal:   dispatchTotal,
		runTotal:        runTotal,
		runDuration:     runDuration,
		errorTotal:      errorTotal,
	}, nil
}

// RecordEvaluation counts one terminal operation on a view.
func (m *Metrics) RecordEvaluation(ctx context.Context, operation string) {
	if m == nil {
		return
	}
	m.evaluationTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrOperation, operation),
	))
}

// RecordDispatch counts one stage routed by a pipeline.
func (m *Metrics) RecordDispatch(ctx context.Context, pipeline, route string) {
	if m == nil {
		return
	}
	m.dispatchTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrPipelineName, pipeline),
		attribute.String(AttrRoute, route),
	))
}

// RecordRun records a finished pipeline run.
func (m *Metrics) RecordRun(ctx context.Context, pipeline, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.runTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrPipelineName, pipeline),
		attribute.String(AttrStatus, status),
	))
	m.runDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String(AttrPipelineName, pipeline),
	))
}

// RecordError records an error by code and component.
func (m *Metrics) RecordError(ctx context.Context, code, component string) {
	if m == nil {
		return
	}
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrErrorCode, code),
		attribute.String(AttrComponent, component),
	))
}
