package observability

import (
	"context"
	stderrors "errors"
)

// ShutdownFunc flushes and stops the providers started by Init.
type ShutdownFunc func(context.Context) error

// Init starts the tracer and meter providers enabled in cfg and returns a
// function that shuts them down. With neither enabled it is a no-op.
func Init(ctx context.Context, cfg Config) (ShutdownFunc, error) {
	cfg.ApplyDefaults()

	var shutdowns []ShutdownFunc
	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return stderrors.Join(errs...)
	}

	if cfg.TracingEnabled {
		tp, err := InitTracer(ctx, cfg.TracerConfig())
		if err != nil {
			return shutdown, err
		}
		shutdowns = append(shutdowns, tp.Shutdown)
	}
	if cfg.MetricsEnabled {
		mc := cfg.MeterConfig()
		mp, err := InitMeter(ctx, &mc)
		if err != nil {
			return shutdown, err
		}
		shutdowns = append(shutdowns, mp.Shutdown)
	}
	return shutdown, nil
}
