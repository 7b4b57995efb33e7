package enumerable

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/kbukum/linqkit/errors"
	"github.com/kbukum/linqkit/logger"
	"github.com/kbukum/linqkit/observability"
)

func TestConfig_ApplyDefaultsAndValidate(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Isolation != string(IsolationAliasing) {
		t.Errorf("default isolation = %q", cfg.Isolation)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}

	bad := Config{Isolation: "copy"}
	err := bad.Validate()
	if !errors.HasCode(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("expected INVALID_CONFIG, got %v", err)
	}
}

func TestWithConfig(t *testing.T) {
	e := Range(0, 3, WithConfig(Config{Isolation: "snapshot"}))
	if e.Isolation() != IsolationSnapshot {
		t.Errorf("isolation = %q", e.Isolation())
	}
	if d := e.Where(isEven); d.Isolation() != IsolationSnapshot {
		t.Error("derived views should inherit options")
	}
	if d := Select(e, func(n int) string { return "" }); d.Isolation() != IsolationSnapshot {
		t.Error("type-changing views should inherit options")
	}

	if e := Range(0, 3, WithConfig(Config{})); e.Isolation() != IsolationAliasing {
		t.Errorf("empty config isolation = %q", e.Isolation())
	}
}

func TestWithLogger_RecordsOperations(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, "enumerable", &buf)

	e := Range(0, 5, WithLogger(l))
	e.Where(isEven).Count()
	_, _ = Empty[int](WithLogger(l)).Aggregate(add)

	out := buf.String()
	if !strings.Contains(out, `"operation":"count"`) {
		t.Errorf("expected a count record, got %s", out)
	}
	if !strings.Contains(out, `"code":"EMPTY_SEQUENCE"`) {
		t.Errorf("expected a failed aggregate record, got %s", out)
	}
}

func TestWithoutLogOperations_Silent(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, "enumerable", &buf)
	logger.Register("enumerable", l)
	t.Cleanup(func() { logger.Register("enumerable", logger.GetGlobalLogger().WithComponent("enumerable")) })

	Range(0, 5).Count()
	if buf.Len() != 0 {
		t.Errorf("expected no records without LogOperations, got %s", buf.String())
	}

	Range(0, 5, WithConfig(Config{LogOperations: true})).Count()
	if !strings.Contains(buf.String(), `"operation":"count"`) {
		t.Errorf("expected the registry logger to receive records, got %s", buf.String())
	}
}

func TestWithMetrics_CountsEvaluations(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	m, err := observability.NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}

	e := Range(0, 5, WithMetrics(m))
	e.Count()
	e.Where(isEven).Count()
	e.First()
	_, _ = e.Where(func(int) bool { return false }).Aggregate(add)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	counts := map[string]int64{}
	var failures int64
	for _, sm := range rm.ScopeMetrics {
		for _, metric := range sm.Metrics {
			sum, ok := metric.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				switch metric.Name {
				case observability.MetricEvaluationTotal:
					op, _ := dp.Attributes.Value(attribute.Key(observability.AttrOperation))
					counts[op.AsString()] += dp.Value
				case observability.MetricErrorTotal:
					failures += dp.Value
				}
			}
		}
	}
	if counts["count"] != 2 || counts["first"] != 1 || counts["aggregate"] != 1 {
		t.Errorf("evaluations = %v", counts)
	}
	if failures != 1 {
		t.Errorf("errors = %d, want 1", failures)
	}
}
