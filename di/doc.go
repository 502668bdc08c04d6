// Package di provides a name-keyed dependency injection registry.
//
// Entries are registered under a string name in one of three modes:
//
//   - Value: a precomputed constant returned as-is.
//   - Singleton: a factory invoked at most once; the result is cached.
//   - Instance: a factory invoked on every resolution.
//
// Factories are plain functions returning (T) or (T, error). Their
// parameters are supplied positionally from the named dependencies, which
// are resolved recursively. Cycles are reported with the full chain.
//
// # Registration
//
//	r := di.New()
//	_ = r.RegisterValue("dsn", "postgres://localhost/app")
//	_ = r.RegisterSingleton("db", func(dsn string) (*sql.DB, error) {
//	    return sql.Open("pgx", dsn)
//	}, "dsn")
//
// # Resolution
//
//	db := di.MustResolve[*sql.DB](r, "db")
//
// A factory whose first parameter is a context.Context receives a context
// carrying the active resolution chain. Passing it to GetContext keeps
// cycle detection intact for lookups made during construction. A plain Get
// from inside a factory starts a new chain; if it reaches the singleton that
// is still being built, it blocks on that entry forever.
//
// Goroutines building singletons that depend on each other do not block:
// the one that would wait on its own resolution gets *CircularDependencyError.
//
// # Locking
//
// Lock freezes the set of entries. Later registrations and Reset are
// ignored with a warning, or rejected with *LockedError when the registry
// was built WithStrictLock(true). Resolution is unaffected.
package di
