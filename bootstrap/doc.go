// Package bootstrap wires linqkit's ambient stack for an application.
//
// Load reads a Settings value from linqkit.yml and LINQKIT_* / LOG_*
// environment variables. NewApp validates it and initializes the logger.
// RunTask starts tracing and metrics, runs a task with signal-based
// cancellation, then flushes telemetry.
//
//	settings, err := bootstrap.Load("reports")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	app, err := bootstrap.NewApp(settings)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	totals := bootstrap.Register(app, pipeline.Compose[int]("totals", double, big, sum))
//	err = app.RunTask(ctx, func(ctx context.Context) error {
//	    view := enumerable.Range(0, 10, app.EnumerableOptions()...)
//	    return totals.Run(ctx, view).Err()
//	})
package bootstrap
