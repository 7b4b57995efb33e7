package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/linqkit/enumerable"
	"github.com/kbukum/linqkit/logger"
	"github.com/kbukum/linqkit/observability"
)

// loggerComponents are registered with the logger registry on startup.
var loggerComponents = []string{"enumerable", "pipeline", "config", "bootstrap"}

// App runs a finite linqkit workload with logging and telemetry configured
// from Settings.
//
//	settings, err := bootstrap.Load("reports")
//	app, err := bootstrap.NewApp(settings)
//	totals := bootstrap.Register(app, pipeline.Compose[int]("totals", double, sum))
//	err = app.RunTask(ctx, func(ctx context.Context) error {
//	    return totals.Run(ctx, enumerable.Range(0, 10, app.EnumerableOptions()...)).Err()
//	})
type App struct {
	Name     string
	Version  string
	Settings *Settings
	Logger   *logger.Logger
	Metrics  *observability.Metrics
	Summary  *Summary

	gracefulTimeout time.Duration
	summaryOut      io.Writer
	shutdown        observability.ShutdownFunc

	onStart []Hook
	onStop  []Hook
}

// NewApp applies defaults to settings, validates them and initializes the
// logger. Metrics are created on the global meter, which starts exporting
// once RunTask or Start installs the provider.
func NewApp(settings *Settings, opts ...Option) (*App, error) {
	if settings == nil {
		settings = &Settings{}
	}
	settings.ApplyDefaults()
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("settings validation: %w", err)
	}

	app := &App{
		Name:            settings.Base.Name,
		Version:         settings.Base.Version,
		Settings:        settings,
		gracefulTimeout: 15 * time.Second,
		summaryOut:      os.Stdout,
	}

	o := resolveOptions(opts)
	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}
	if o.summaryOut != nil {
		app.summaryOut = o.summaryOut
	}

	if o.logger != nil {
		app.Logger = o.logger
		logger.SetGlobalLogger(o.logger)
	} else {
		logger.Init(&settings.Logger)
		app.Logger = logger.GetGlobalLogger()
	}
	logger.RegisterDefaults(loggerComponents...)

	metrics, err := observability.NewMetrics(observability.Meter(settings.Observability.ServiceName))
	if err != nil {
		return nil, fmt.Errorf("metrics initialization failed: %w", err)
	}
	app.Metrics = metrics

	app.Summary = NewSummary(app.Name, app.Version)
	return app, nil
}

// EnumerableOptions returns the view options implied by the settings: the
// configured isolation mode, operation logging and the app's metrics.
func (a *App) EnumerableOptions() []enumerable.Option {
	opts := []enumerable.Option{
		enumerable.WithConfig(a.Settings.Enumerable),
		enumerable.WithMetrics(a.Metrics),
	}
	if a.Settings.Enumerable.LogOperations {
		opts = append(opts, enumerable.WithLogger(logger.Get("enumerable")))
	}
	return opts
}

// RunTask starts telemetry, runs the start hooks, then task. The task's
// context is canceled on SIGINT or SIGTERM. Shutdown runs whether or not
// startup or the task fails; their error takes precedence.
func (a *App) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	if err := a.startup(ctx); err != nil {
		// stop logs its own failures
		_ = a.stop()
		return err
	}

	taskCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			a.Logger.Info("Received signal, canceling task", map[string]interface{}{
				"signal": sig.String(),
			})
			cancel()
		case <-taskCtx.Done():
		}
	}()

	taskErr := task(taskCtx)

	if stopErr := a.stop(); stopErr != nil {
		if taskErr != nil {
			return taskErr
		}
		return stopErr
	}
	return taskErr
}

// Shutdown runs stop hooks and flushes telemetry. Use when managing your own
// lifecycle instead of RunTask.
func (a *App) Shutdown(ctx context.Context) error {
	return a.stop()
}

// Start performs startup without running a task. Pair it with Shutdown.
func (a *App) Start(ctx context.Context) error {
	return a.startup(ctx)
}

func (a *App) startup(ctx context.Context) error {
	start := time.Now()
	obs := a.Settings.Observability

	a.Logger.Info("Starting application", map[string]interface{}{
		"name":    a.Name,
		"version": a.Version,
	})

	shutdown, err := observability.Init(ctx, obs)
	a.shutdown = shutdown
	if err != nil {
		return fmt.Errorf("telemetry initialization failed: %w", err)
	}

	if err := runHooks(ctx, a.onStart); err != nil {
		return fmt.Errorf("onStart hook failed: %w", err)
	}

	a.Summary.SetStartupDuration(time.Since(start))
	a.Summary.SetSettings(a.Settings)
	a.Summary.Display(a.summaryOut)
	return nil
}

// stop runs stop hooks and flushes telemetry within the graceful timeout.
func (a *App) stop() error {
	a.Logger.Info("Shutting down application", map[string]interface{}{
		"timeout": a.gracefulTimeout.String(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	var shutdownErr error

	if err := runHooks(ctx, a.onStop); err != nil {
		a.Logger.Error("OnStop hook error", logger.ErrorFields("on_stop", err))
		shutdownErr = err
	}

	if a.shutdown != nil {
		if err := a.shutdown(ctx); err != nil {
			a.Logger.Error("Telemetry shutdown error", logger.ErrorFields("telemetry_shutdown", err))
			if shutdownErr == nil {
				shutdownErr = err
			}
		}
		a.shutdown = nil
	}

	a.Logger.Info("Application shutdown complete")
	return shutdownErr
}
