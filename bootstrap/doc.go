// Package bootstrap orchestrates the lifecycle of a service wired through a
// dingu registry.
//
// NewApp validates the typed configuration, initializes logging and optional
// telemetry, and builds the registry from the container section. Configure
// callbacks then register entries, after which the registry is verified and,
// if configured, locked.
//
// # Quick Start
//
//	app, err := bootstrap.NewApp(&cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*AppConfig]) error {
//	    return a.Registry.RegisterSingleton("db", openDB, "dsn")
//	})
//	if err := app.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package bootstrap
