// Package observability provides OpenTelemetry tracing and metrics for the
// registry.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("my-service"))
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("my-service"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("my-service"))
//	reg := di.New(di.WithMetrics(metrics))
//
// Every top-level lookup then produces a di.get span and di.resolve.* metrics.
package observability
