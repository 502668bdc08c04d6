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

	"github.com/kbukum/dingu/logger"
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

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       defaultEndpoint,
		Insecure:       true,
		Interval:       defaultInterval,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
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

// Metric instrument names.
const (
	MetricResolveTotal      = "di.resolve.total"
	MetricResolveDuration   = "di.resolve.duration"
	MetricFactoryCalls      = "di.factory.calls"
	MetricRegistrationTotal = "di.registration.total"
	MetricErrorTotal        = "di.error.total"
)

// Metrics holds the instruments recorded by a registry. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	resolveTotal      metric.Int64Counter
	resolveDuration   metric.Float64Histogram
	factoryCalls      metric.Int64Counter
	registrationTotal metric.Int64Counter
	errorTotal        metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	resolveTotal, err := meter.Int64Counter(MetricResolveTotal,
		metric.WithDescription("Top-level registry lookups by entry and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricResolveTotal, err)
	}

	resolveDuration, err := meter.Float64Histogram(MetricResolveDuration,
		metric.WithDescription("Duration of top-level registry lookups in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricResolveDuration, err)
	}

	factoryCalls, err := meter.Int64Counter(MetricFactoryCalls,
		metric.WithDescription("Factory invocations by entry"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricFactoryCalls, err)
	}

	registrationTotal, err := meter.Int64Counter(MetricRegistrationTotal,
		metric.WithDescription("Registration attempts by mode and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricRegistrationTotal, err)
	}

	errorTotal, err := meter.Int64Counter(MetricErrorTotal,
		metric.WithDescription("Registry errors by type"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricErrorTotal, err)
	}

	return &Metrics{
		resolveTotal:      resolveTotal,
		resolveDuration:   resolveDuration,
		factoryCalls:      factoryCalls,
		registrationTotal: registrationTotal,
		errorTotal:        errorTotal,
	}, nil
}

// RecordResolve records a completed top-level lookup.
func (m *Metrics) RecordResolve(ctx context.Context, registry, entry, mode, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.resolveTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrRegistry, registry),
		attribute.String(AttrEntry, entry),
		attribute.String(AttrMode, mode),
		attribute.String(AttrStatus, status),
	))
	m.resolveDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String(AttrRegistry, registry),
		attribute.String(AttrEntry, entry),
	))
}

// RecordFactoryCall records one factory invocation.
func (m *Metrics) RecordFactoryCall(ctx context.Context, registry, entry, mode string) {
	if m == nil {
		return
	}
	m.factoryCalls.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrRegistry, registry),
		attribute.String(AttrEntry, entry),
		attribute.String(AttrMode, mode),
	))
}

// RecordRegistration records a registration attempt.
func (m *Metrics) RecordRegistration(ctx context.Context, registry, mode, status string) {
	if m == nil {
		return
	}
	m.registrationTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrRegistry, registry),
		attribute.String(AttrMode, mode),
		attribute.String(AttrStatus, status),
	))
}

// RecordError records an error by type.
func (m *Metrics) RecordError(ctx context.Context, registry, errType string) {
	if m == nil {
		return
	}
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrRegistry, registry),
		attribute.String(AttrErrorType, errType),
	))
}
