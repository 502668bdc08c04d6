package di

import (
	"context"
	"fmt"
	"reflect"
	"sync/atomic"
)

// entry is the record stored per registered name.
type entry struct {
	name  string
	mode  RegistrationMode
	fn    reflect.Value // zero for Value entries
	deps  []string      // nil only for Value entries
	value any

	// building is the in-flight singleton construction, guarded by
	// Registry.buildMu. initialized publishes value to lock-free readers.
	building    *build
	initialized atomic.Bool
	calls       atomic.Int64
}

func newValueEntry(name string, value any) *entry {
	e := &entry{name: name, mode: Value, value: value}
	e.initialized.Store(true)
	return e
}

func newFactoryEntry(name string, mode RegistrationMode, fn reflect.Value, deps []string) *entry {
	return &entry{name: name, mode: mode, fn: fn, deps: deps}
}

// RegistrationInfo describes a registered entry for introspection.
type RegistrationInfo struct {
	Name         string           `json:"name"`
	Mode         RegistrationMode `json:"mode"`
	Dependencies []string         `json:"dependencies"`
	Initialized  bool             `json:"initialized"`
	Calls        int64            `json:"calls"`
}

func (e *entry) info() RegistrationInfo {
	var deps []string
	if e.deps != nil {
		deps = make([]string, len(e.deps))
		copy(deps, e.deps)
	}
	return RegistrationInfo{
		Name:         e.name,
		Mode:         e.mode,
		Dependencies: deps,
		Initialized:  e.initialized.Load(),
		Calls:        e.calls.Load(),
	}
}

// invoke calls the factory with ctx (when it accepts one) and the resolved
// dependency values in order.
func (e *entry) invoke(ctx context.Context, args []any) (any, error) {
	t := e.fn.Type()
	offset := 0
	in := make([]reflect.Value, 0, len(args)+1)
	if takesContext(t) {
		in = append(in, reflect.ValueOf(&ctx).Elem())
		offset = 1
	}

	for i, arg := range args {
		pos := offset + i
		var target reflect.Type
		if t.IsVariadic() && pos >= t.NumIn()-1 {
			target = t.In(t.NumIn() - 1).Elem()
		} else {
			target = t.In(pos)
		}
		v, err := argValue(arg, target)
		if err != nil {
			return nil, &FactoryError{Name: e.name, Cause: fmt.Errorf("dependency %s: %w", e.deps[i], err)}
		}
		in = append(in, v)
	}

	e.calls.Add(1)
	results := e.fn.Call(in)
	return handleFactoryResults(e.name, results)
}

func argValue(arg any, target reflect.Type) (reflect.Value, error) {
	if arg == nil {
		switch target.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(target), nil
		}
		return reflect.Value{}, fmt.Errorf("nil is not assignable to %s", target)
	}
	v := reflect.ValueOf(arg)
	if !v.Type().AssignableTo(target) {
		return reflect.Value{}, fmt.Errorf("%s is not assignable to %s", v.Type(), target)
	}
	return v, nil
}

func handleFactoryResults(name string, results []reflect.Value) (any, error) {
	switch len(results) {
	case 1:
		return results[0].Interface(), nil
	case 2:
		if errVal := results[1].Interface(); errVal != nil {
			return nil, &FactoryError{Name: name, Cause: errVal.(error)}
		}
		return results[0].Interface(), nil
	default:
		return nil, &FactoryError{Name: name, Cause: fmt.Errorf("factory returned %d values", len(results))}
	}
}
