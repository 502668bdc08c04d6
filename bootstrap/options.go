package bootstrap

import (
	"io"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/kbukum/dingu/di"
	"github.com/kbukum/dingu/logger"
)

// Option configures the App during creation.
// Options are non-generic so they can be used with any config type.
type Option func(*appOptions)

// appOptions collects all option values before applying to App.
type appOptions struct {
	logger          *logger.Logger
	registry        *di.Registry
	meterProvider   metric.MeterProvider
	summaryOut      io.Writer
	gracefulTimeout *time.Duration
}

// resolveOptions applies all options and returns the collected values.
func resolveOptions(opts []Option) *appOptions {
	o := &appOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets a custom logger for the application.
// If not set, the logger is auto-initialized from the config's Logging field.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) {
		o.logger = l
	}
}

// WithGracefulTimeout sets the maximum duration for graceful shutdown.
func WithGracefulTimeout(d time.Duration) Option {
	return func(o *appOptions) {
		o.gracefulTimeout = &d
	}
}

// WithRegistry uses r instead of building one from the container config.
func WithRegistry(r *di.Registry) Option {
	return func(o *appOptions) {
		o.registry = r
	}
}

// WithMeterProvider records registry metrics on mp, whether or not
// telemetry export is enabled.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *appOptions) {
		o.meterProvider = mp
	}
}

// WithSummaryWriter sets where the startup summary is printed (stdout by default).
func WithSummaryWriter(w io.Writer) Option {
	return func(o *appOptions) {
		o.summaryOut = w
	}
}
