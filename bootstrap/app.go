package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/dingu/di"
	"github.com/kbukum/dingu/logger"
	"github.com/kbukum/dingu/observability"
)

const meterName = "github.com/kbukum/dingu"

// Telemetry constructors, replaced in tests.
var (
	initTracer = observability.InitTracer
	initMeter  = observability.InitMeter
)

// App represents an application whose dependencies live in a dingu registry.
// The type parameter C is the config type, which must satisfy the Config interface.
// Any struct embedding config.ServiceConfig automatically satisfies Config.
//
// Example:
//
//	app, err := bootstrap.NewApp(&myConfig)
//	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*MyConfig]) error {
//	    // a.Cfg is *MyConfig, fully typed
//	    return a.Registry.RegisterValue("dsn", a.Cfg.DSN)
//	})
//	app.Run(context.Background())
type App[C Config] struct {
	Name     string
	Version  string
	Cfg      C
	Registry *di.Registry
	Logger   *logger.Logger
	Summary  *Summary

	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider

	gracefulTimeout time.Duration
	onConfigure     []func(ctx context.Context, app *App[C]) error

	onStart []Hook
	onReady []Hook
	onStop  []Hook
}

// NewApp creates a new application instance from a typed config.
// It applies defaults, validates the config, initializes the logger and
// telemetry, and builds the registry.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	base := cfg.GetServiceConfig()
	o := resolveOptions(opts)

	app := &App[C]{
		Name:            base.Name,
		Version:         base.Version,
		Cfg:             cfg,
		gracefulTimeout: 15 * time.Second,
	}
	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}

	// Logger: use custom if provided, otherwise init from config.
	if o.logger != nil {
		app.Logger = o.logger
	} else {
		logger.Init(base.Logging)
		app.Logger = logger.GetGlobalLogger()
	}

	metrics, err := app.initTelemetry(o)
	if err != nil {
		return nil, fmt.Errorf("telemetry: %w", err)
	}

	if o.registry != nil {
		app.Registry = o.registry
	} else {
		r, err := di.NewFromConfig(base.Container,
			di.WithLogger(app.Logger.WithComponent("di")),
			di.WithMetrics(metrics),
		)
		if err != nil {
			return nil, fmt.Errorf("registry: %w", err)
		}
		app.Registry = r
	}

	app.Summary = NewSummary(base.Name, base.Version, o.summaryOut)
	return app, nil
}

// initTelemetry starts the OTLP exporters when telemetry is enabled and
// returns the registry instruments.
func (a *App[C]) initTelemetry(o *appOptions) (*observability.Metrics, error) {
	base := a.Cfg.GetServiceConfig()
	tel := base.Telemetry
	ctx := context.Background()

	if tel.Enabled {
		tp, err := initTracer(ctx, tel.TracerConfig(base.Name, base.Version, base.Environment))
		if err != nil {
			return nil, err
		}

		mp, err := initMeter(ctx, tel.MeterConfig(base.Name, base.Version, base.Environment))
		if err != nil {
			if shutdownErr := tp.Shutdown(ctx); shutdownErr != nil {
				a.Logger.WithError(shutdownErr).Error("Tracer shutdown error")
			}
			return nil, err
		}
		a.tracerProvider = tp
		a.meterProvider = mp
	}

	switch {
	case o.meterProvider != nil:
		return observability.NewMetrics(o.meterProvider.Meter(meterName))
	case a.meterProvider != nil:
		return observability.NewMetrics(a.meterProvider.Meter(meterName))
	default:
		return nil, nil
	}
}

// OnConfigure registers a callback to run during the configure phase.
// Use this to register entries in the registry.
func (a *App[C]) OnConfigure(fn func(ctx context.Context, app *App[C]) error) {
	a.onConfigure = append(a.onConfigure, fn)
}

// ReadyCheck verifies the declared dependency graph: every dependency is
// registered and no entry depends on itself.
func (a *App[C]) ReadyCheck(ctx context.Context) error {
	return a.Registry.Verify()
}

// Run executes the full application lifecycle for long-running services:
// OnStart hooks → Configure → ReadyCheck → Lock → OnReady hooks →
// Block on signal → OnStop hooks → Graceful Shutdown.
func (a *App[C]) Run(ctx context.Context) error {
	if err := a.Start(ctx); err != nil {
		return err
	}

	a.Logger.Info("Application ready, waiting for shutdown signal")
	a.WaitForSignal(ctx)

	return a.stop()
}

// RunTask executes a finite task with the full bootstrap lifecycle.
// Unlike Run(), it does not block on shutdown signals. It runs the task
// function and gracefully shuts down when the task completes or the context
// is canceled (e.g., via SIGINT/SIGTERM).
//
// Example:
//
//	app, _ := bootstrap.NewApp(&cfg)
//	app.RunTask(ctx, func(ctx context.Context) error {
//	    job := di.MustResolve[*Job](app.Registry, "job")
//	    return job.Run(ctx)
//	})
func (a *App[C]) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	if err := a.Start(ctx); err != nil {
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
			a.Logger.Info("Received signal, canceling task", logger.Fields("signal", sig.String()))
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

// Start runs the startup sequence without blocking. Use with Shutdown when
// managing your own lifecycle.
func (a *App[C]) Start(ctx context.Context) error {
	start := time.Now()

	a.Logger.Info("Starting application", logger.Fields(
		"name", a.Name,
		"version", a.Version,
	))

	if err := runHooks(ctx, a.onStart); err != nil {
		return fmt.Errorf("onStart hook failed: %w", err)
	}

	if err := a.configure(ctx); err != nil {
		return fmt.Errorf("configuration failed: %w", err)
	}

	if err := a.ReadyCheck(ctx); err != nil {
		return fmt.Errorf("ready check failed: %w", err)
	}

	if a.Cfg.GetServiceConfig().Container.LockOnStart {
		a.Registry.Lock()
	}

	if err := runHooks(ctx, a.onReady); err != nil {
		return fmt.Errorf("onReady hook failed: %w", err)
	}

	a.Summary.SetStartupDuration(time.Since(start))
	a.DisplaySummary()
	return nil
}

// configure runs registered configuration callbacks.
func (a *App[C]) configure(ctx context.Context) error {
	if len(a.onConfigure) == 0 {
		return nil
	}

	a.Logger.Info("Running configuration callbacks", logger.Fields(logger.FieldCount, len(a.onConfigure)))
	for _, fn := range a.onConfigure {
		if err := fn(ctx, a); err != nil {
			return err
		}
	}
	a.Logger.Info("Configuration complete", logger.Fields(logger.FieldCount, a.Registry.Len()))
	return nil
}

// DisplaySummary prints the startup summary for the registry.
func (a *App[C]) DisplaySummary() {
	a.Summary.Display(a.Registry)
}

// WaitForSignal blocks until an OS interrupt/term signal or context cancellation.
func (a *App[C]) WaitForSignal(ctx context.Context) os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.Logger.Info("Received shutdown signal, graceful shutdown starting", logger.Fields("signal", sig.String()))
		return sig
	case <-ctx.Done():
		a.Logger.Info("Context canceled, shutting down")
		return nil
	}
}

// Shutdown performs graceful shutdown. Use when managing your own lifecycle.
func (a *App[C]) Shutdown(ctx context.Context) error {
	return a.stop()
}

// stop runs OnStop hooks and flushes telemetry within the graceful timeout.
func (a *App[C]) stop() error {
	a.Logger.Info("Shutting down application", logger.Fields("timeout", a.gracefulTimeout.String()))

	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	var errs []error
	if err := runHooks(ctx, a.onStop); err != nil {
		a.Logger.WithError(err).Error("OnStop hook error")
		errs = append(errs, err)
	}

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			a.Logger.WithError(err).Error("Tracer shutdown error")
			errs = append(errs, err)
		}
	}
	if a.meterProvider != nil {
		if err := a.meterProvider.Shutdown(ctx); err != nil {
			a.Logger.WithError(err).Error("Meter shutdown error")
			errs = append(errs, err)
		}
	}

	a.Logger.Info("Application shutdown complete")
	return errors.Join(errs...)
}
