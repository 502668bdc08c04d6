package di

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/kbukum/dingu/errors"
	"github.com/kbukum/dingu/logger"
	"github.com/kbukum/dingu/observability"
)

const (
	statusOK    = "ok"
	statusError = "error"
)

// resolution identifies one top-level lookup together with everything it
// constructs, including reentrant lookups made with a factory's context.
type resolution struct {
	waitingOn *entry // guarded by Registry.buildMu
}

// build is an in-flight singleton construction. done is closed when it ends.
type build struct {
	owner *resolution
	done  chan struct{}
}

// trail is what a context carries between a factory and the registry.
type trail struct {
	chain []string
	res   *resolution
}

// chainKey scopes an in-progress resolution to one registry.
type chainKey struct{ r *Registry }

func (r *Registry) trailFrom(ctx context.Context) trail {
	t, _ := ctx.Value(chainKey{r}).(trail)
	return t
}

func (r *Registry) withTrail(ctx context.Context, t trail) context.Context {
	return context.WithValue(ctx, chainKey{r}, t)
}

// Get resolves name. Absent names fail with *ItemNotFoundError.
func (r *Registry) Get(name string) (any, error) {
	return r.GetContext(context.Background(), name)
}

// GetContext resolves name. When ctx is the context handed to a factory, the
// lookup continues that factory's resolution chain.
func (r *Registry) GetContext(ctx context.Context, name string) (any, error) {
	v, _, err := r.get(ctx, name, false)
	return v, err
}

// Lookup resolves name, reporting absence through the boolean instead of an
// error. Failures further down the graph are still returned.
func (r *Registry) Lookup(name string) (any, bool, error) {
	return r.LookupContext(context.Background(), name)
}

// LookupContext is Lookup with a context, see GetContext.
func (r *Registry) LookupContext(ctx context.Context, name string) (any, bool, error) {
	return r.get(ctx, name, true)
}

func (r *Registry) get(ctx context.Context, name string, suppressNotFound bool) (any, bool, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	t := r.trailFrom(ctx)

	e := r.entry(name)
	if e == nil {
		switch {
		case suppressNotFound:
			return nil, false, nil
		case len(t.chain) > 0:
			return nil, false, &DependencyNotFoundError{Name: name, RequestedBy: t.chain[len(t.chain)-1]}
		default:
			r.observeError(ctx, name, &ItemNotFoundError{Name: name})
			return nil, false, &ItemNotFoundError{Name: name}
		}
	}

	// Nested lookups belong to the outer span.
	if len(t.chain) > 0 {
		v, err := r.resolve(ctx, e, t)
		return v, err == nil, err
	}
	if t.res == nil {
		t.res = &resolution{}
	}

	start := time.Now()
	ctx, span := observability.StartSpan(ctx, observability.SpanGet, trace.WithAttributes(
		attribute.String(observability.AttrRegistry, r.name),
		attribute.String(observability.AttrEntry, name),
		attribute.String(observability.AttrMode, e.mode.String()),
	))
	v, err := r.resolve(ctx, e, t)
	duration := time.Since(start)

	status := statusOK
	if err != nil {
		status = statusError
		r.observeError(ctx, name, err)
		span.SetAttributes(attribute.String(observability.AttrErrorType, errorKind(err)))
	}
	span.SetAttributes(attribute.String(observability.AttrStatus, status))
	observability.EndSpan(span, err)
	r.metrics.RecordResolve(ctx, r.name, name, e.mode.String(), status, duration)

	if err != nil {
		return nil, false, err
	}
	r.log.Debug("Entry resolved", logger.Fields(logger.FieldEntry, name), logger.DurationFields("get", duration))
	return v, true, nil
}

// resolve produces the value of e. t.chain holds the ancestors currently
// being constructed on this path; e appearing in it is a cycle.
func (r *Registry) resolve(ctx context.Context, e *entry, t trail) (any, error) {
	for _, ancestor := range t.chain {
		if ancestor == e.name {
			return nil, &CircularDependencyError{Root: e.name, Chain: append([]string(nil), t.chain...)}
		}
	}

	switch e.mode {
	case Value:
		return e.value, nil

	case Singleton:
		return r.resolveSingleton(ctx, e, t)

	case Instance:
		v, err := r.construct(ctx, e, t)
		if err != nil {
			return nil, err
		}
		r.buildMu.Lock()
		e.value = v
		r.buildMu.Unlock()
		e.initialized.Store(true)
		return v, nil

	default:
		return nil, &FactoryError{Name: e.name, Cause: stderrors.New("unknown registration mode")}
	}
}

// resolveSingleton returns the cached value of e, building it if nobody is.
// When another resolution is already building e, it waits for that build
// unless the builder is itself waiting, directly or transitively, on
// something this resolution is building. That wait could never end, so it
// is reported as a cycle instead.
func (r *Registry) resolveSingleton(ctx context.Context, e *entry, t trail) (any, error) {
	for {
		if e.initialized.Load() {
			return e.value, nil
		}

		r.buildMu.Lock()
		// Double-check after acquiring the lock
		if e.initialized.Load() {
			r.buildMu.Unlock()
			return e.value, nil
		}
		b := e.building
		if b == nil {
			b = &build{owner: t.res, done: make(chan struct{})}
			e.building = b
			r.buildMu.Unlock()
			return r.buildSingleton(ctx, e, t, b)
		}
		if cycle := r.waitCycle(e, b.owner, t); cycle != nil {
			r.buildMu.Unlock()
			return nil, cycle
		}
		t.res.waitingOn = e
		r.buildMu.Unlock()

		<-b.done

		r.buildMu.Lock()
		t.res.waitingOn = nil
		r.buildMu.Unlock()
		// A failed build leaves e unset; the next pass builds it here.
	}
}

func (r *Registry) buildSingleton(ctx context.Context, e *entry, t trail, b *build) (v any, err error) {
	ok := false
	defer func() {
		r.buildMu.Lock()
		if ok {
			e.value = v
			e.initialized.Store(true)
		}
		e.building = nil
		r.buildMu.Unlock()
		close(b.done)
	}()

	v, err = r.construct(ctx, e, t)
	ok = err == nil
	return v, err
}

// waitCycle follows the wait-for edges starting at owner, the resolution
// building e. Must be called with buildMu held.
func (r *Registry) waitCycle(e *entry, owner *resolution, t trail) *CircularDependencyError {
	seen := make(map[*resolution]bool)
	for o := owner; o != nil && !seen[o]; {
		if o == t.res {
			return &CircularDependencyError{Root: e.name, Chain: append([]string(nil), t.chain...)}
		}
		seen[o] = true

		w := o.waitingOn
		if w == nil || w.building == nil {
			return nil
		}
		if w.building.owner == t.res {
			return cycleThrough(w.name, e.name, t.chain)
		}
		o = w.building.owner
	}
	return nil
}

// cycleThrough reports the cycle that starts at root, an ancestor in chain,
// and closes when want is needed again by another resolution.
func cycleThrough(root, want string, chain []string) *CircularDependencyError {
	for i, name := range chain {
		if name == root {
			path := make([]string, 0, len(chain)-i+1)
			path = append(path, chain[i:]...)
			return &CircularDependencyError{Root: root, Chain: append(path, want)}
		}
	}
	return &CircularDependencyError{Root: want, Chain: append([]string(nil), chain...)}
}

// construct resolves the dependencies of e in order and calls its factory.
func (r *Registry) construct(ctx context.Context, e *entry, t trail) (any, error) {
	next := make([]string, len(t.chain), len(t.chain)+1)
	copy(next, t.chain)
	next = append(next, e.name)
	inner := trail{chain: next, res: t.res}

	args := make([]any, len(e.deps))
	for i, dep := range e.deps {
		d := r.entry(dep)
		if d == nil {
			return nil, &DependencyNotFoundError{Name: dep, RequestedBy: e.name}
		}
		v, err := r.resolve(ctx, d, inner)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	r.metrics.RecordFactoryCall(ctx, r.name, e.name, e.mode.String())
	r.log.Debug("Invoking factory", logger.Fields(
		logger.FieldEntry, e.name,
		logger.FieldMode, e.mode.String(),
		logger.FieldChain, strings.Join(next, "->"),
	))
	return e.invoke(r.withTrail(ctx, inner), args)
}

func (r *Registry) observeError(ctx context.Context, name string, err error) {
	r.metrics.RecordError(ctx, r.name, errorKind(err))
	fields := logger.Fields(logger.FieldEntry, name)
	var cycle *CircularDependencyError
	if stderrors.As(err, &cycle) {
		fields[logger.FieldChain] = cycle.Path()
	}
	r.log.WithContext(ctx).WithError(err).Debug("Resolution failed", fields)
}

// errorKind is the lower-cased application error code of err.
func errorKind(err error) string {
	return strings.ToLower(string(apperrors.From(err).Code))
}
