// Package observability wires OpenTelemetry tracing and metrics for the
// storefront.
//
// Both providers export over OTLP/HTTP and are only installed when
// enabled in configuration; otherwise the global no-op providers stay in
// place and instrumentation costs nothing.
//
//	providers, err := observability.Setup(ctx, cfg, log)
//	defer providers.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter(observability.InstrumentationName))
//	ctx, op := observability.StartOperation(ctx, observability.Tracer(observability.InstrumentationName), metrics, "cart.add")
//	defer op.End(ctx, err)
package observability
