// Package observability provides OpenTelemetry tracing and metrics for
// wirekit.
//
// Resolution tracing and metrics:
//
//	obs, err := observability.NewObserver(observability.Tracer(""), observability.Meter(""), logger.Get("container"))
//	c, err := di.New(spec, registry, di.WithObserver(obs))
//
// Exporting from the command line:
//
//	shutdown, err := observability.Init(ctx, observability.DefaultConfig("wirekit"))
//	defer shutdown(ctx)
package observability
