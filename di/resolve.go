package di

import (
	"context"
	"fmt"
)

// Resolve resolves name and asserts the result to T.
//
// Example:
//
//	db, err := di.Resolve[*sql.DB](r, "db")
//	if err != nil {
//	    return fmt.Errorf("failed to get database: %w", err)
//	}
func Resolve[T any](r *Registry, name string) (T, error) {
	return ResolveContext[T](context.Background(), r, name)
}

// ResolveContext is Resolve with a context, see Registry.GetContext.
func ResolveContext[T any](ctx context.Context, r *Registry, name string) (T, error) {
	var zero T
	instance, err := r.GetContext(ctx, name)
	if err != nil {
		return zero, err
	}
	return assertType[T](name, instance)
}

// MustResolve resolves name with type safety, panics on error.
// Use this during wiring, where a missing dependency is a programming error.
func MustResolve[T any](r *Registry, name string) T {
	result, err := Resolve[T](r, name)
	if err != nil {
		panic(fmt.Sprintf("di: failed to resolve %s: %v", name, err))
	}
	return result
}

// TryResolve resolves an optional entry. It returns false when name is
// absent, fails to resolve, or is not a T.
//
// Example:
//
//	if cache, ok := di.TryResolve[Cache](r, "cache"); ok {
//	    cache.Warm()
//	}
func TryResolve[T any](r *Registry, name string) (T, bool) {
	var zero T
	instance, found, err := r.Lookup(name)
	if err != nil || !found {
		return zero, false
	}
	result, err := assertType[T](name, instance)
	if err != nil {
		return zero, false
	}
	return result, true
}

func assertType[T any](name string, instance any) (T, error) {
	if instance == nil {
		var zero T
		// A nil value satisfies interface and pointer-like targets.
		if _, err := argValue(nil, typeOf[T]()); err == nil {
			return zero, nil
		}
		return zero, fmt.Errorf("di: entry %s is nil, expected %s", name, typeOf[T]())
	}
	result, ok := instance.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("di: entry %s is %T, expected %s", name, instance, typeOf[T]())
	}
	return result, nil
}
