package di

import (
	"context"
	"reflect"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/kbukum/dingu/logger"
	"github.com/kbukum/dingu/observability"
	"github.com/kbukum/dingu/validation"
)

const (
	opRegisterValue     = "register_value"
	opRegisterSingleton = "register_singleton"
	opRegisterInstance  = "register_instance"
	opReset             = "reset"
)

const (
	registrationAccepted = "accepted"
	registrationIgnored  = "ignored"
	registrationRejected = "rejected"
)

// Registry maps names to entries and resolves them on demand. It is safe for
// concurrent use. The zero value is not usable; call New.
type Registry struct {
	id         string
	name       string
	strictLock bool
	log        *logger.Logger
	metrics    *observability.Metrics

	mu      sync.RWMutex
	entries map[string]*entry
	locked  bool

	// buildMu guards singleton construction state across entries so a
	// waiter can follow who is blocked on whom.
	buildMu sync.Mutex
}

// New creates an empty, unlocked registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		id:      uuid.NewString(),
		name:    defaultRegistryName,
		entries: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = logger.WithComponent("di")
	}
	r.log = r.log.WithFields(logger.Fields(
		logger.FieldRegistry, r.name,
		logger.FieldRegistryID, r.id,
	))
	return r
}

// NewFromConfig creates a registry from cfg. Options override the config.
func NewFromConfig(cfg Config, opts ...Option) (*Registry, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	base := []Option{WithName(cfg.Name), WithStrictLock(cfg.StrictLock)}
	if cfg.ID != "" {
		base = append(base, WithID(cfg.ID))
	}
	return New(append(base, opts...)...), nil
}

// ID returns the unique identifier assigned at construction.
func (r *Registry) ID() string { return r.id }

// Name returns the registry name.
func (r *Registry) Name() string { return r.name }

// RegisterValue stores a precomputed value under name.
func (r *Registry) RegisterValue(name string, value any) error {
	if err := validation.EntryName("name", name); err != nil {
		r.metrics.RecordRegistration(context.Background(), r.name, Value.String(), registrationRejected)
		return err
	}
	return r.put(opRegisterValue, newValueEntry(name, value))
}

// RegisterSingleton stores a factory that is invoked on first resolution;
// its result is cached until Reset or replacement.
func (r *Registry) RegisterSingleton(name string, factory any, names ...string) error {
	return r.registerFactory(opRegisterSingleton, Singleton, name, factory, names)
}

// RegisterInstance stores a factory that is invoked on every resolution.
func (r *Registry) RegisterInstance(name string, factory any, names ...string) error {
	return r.registerFactory(opRegisterInstance, Instance, name, factory, names)
}

func (r *Registry) registerFactory(op string, mode RegistrationMode, name string, factory any, names []string) error {
	if err := validation.EntryName("name", name); err != nil {
		r.metrics.RecordRegistration(context.Background(), r.name, mode.String(), registrationRejected)
		return err
	}

	deps, err := ExtractNames(factory, names...)
	if err == nil {
		fn := reflect.ValueOf(unwrapFactory(factory))
		if reason := checkFactory(fn, deps); reason != "" {
			err = &ExtractionError{Reason: reason}
		} else {
			return r.put(op, newFactoryEntry(name, mode, fn, deps))
		}
	}

	if extErr, ok := err.(*ExtractionError); ok {
		extErr.Name = name
	}
	r.metrics.RecordRegistration(context.Background(), r.name, mode.String(), registrationRejected)
	r.log.Debug("Registration rejected",
		logger.Fields(logger.FieldEntry, name, logger.FieldMode, mode.String()),
		logger.ErrorFields(op, err),
	)
	return err
}

// put stores e unless the registry is locked. Re-registering a name replaces
// the previous entry.
func (r *Registry) put(op string, e *entry) error {
	r.mu.Lock()
	if r.locked {
		r.mu.Unlock()
		return r.lockedMutation(op, e.name, e.mode.String())
	}
	_, replaced := r.entries[e.name]
	r.entries[e.name] = e
	r.mu.Unlock()

	r.metrics.RecordRegistration(context.Background(), r.name, e.mode.String(), registrationAccepted)
	r.log.Debug("Entry registered", logger.Fields(
		logger.FieldEntry, e.name,
		logger.FieldMode, e.mode.String(),
		logger.FieldDependencies, e.deps,
		"replaced", replaced,
	))
	return nil
}

func (r *Registry) lockedMutation(op, name, mode string) error {
	status := registrationIgnored
	if r.strictLock {
		status = registrationRejected
	}
	if op != opReset {
		r.metrics.RecordRegistration(context.Background(), r.name, mode, status)
	}
	r.log.Warn("Registry is locked, mutation "+status, logger.Fields(
		logger.FieldOperation, op,
		logger.FieldEntry, name,
	))
	if r.strictLock {
		return &LockedError{Operation: op, Name: name}
	}
	return nil
}

// Lock freezes the registry: later registrations and Reset change nothing.
// Resolution is unaffected. Locking is permanent for the registry's lifetime.
func (r *Registry) Lock() {
	r.mu.Lock()
	already := r.locked
	r.locked = true
	count := len(r.entries)
	r.mu.Unlock()

	if !already {
		r.log.Info("Registry locked", logger.Fields(logger.FieldCount, count))
	}
}

// Locked reports whether Lock has been called.
func (r *Registry) Locked() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.locked
}

// Reset removes every entry, including cached singletons. It is a no-op on a
// locked registry.
func (r *Registry) Reset() error {
	r.mu.Lock()
	if r.locked {
		r.mu.Unlock()
		return r.lockedMutation(opReset, "", "")
	}
	count := len(r.entries)
	r.entries = make(map[string]*entry)
	r.mu.Unlock()

	r.log.Debug("Registry reset", logger.Fields(logger.FieldCount, count))
	return nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	return r.entry(name) != nil
}

// Len returns the number of registered entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Registrations returns a snapshot of all entries sorted by name. It never
// triggers resolution.
func (r *Registry) Registrations() []RegistrationInfo {
	r.mu.RLock()
	result := make([]RegistrationInfo, 0, len(r.entries))
	for _, e := range r.entries {
		result = append(result, e.info())
	}
	r.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// Registration returns the snapshot of a single entry.
func (r *Registry) Registration(name string) (RegistrationInfo, bool) {
	e := r.entry(name)
	if e == nil {
		return RegistrationInfo{}, false
	}
	return e.info(), true
}

func (r *Registry) entry(name string) *entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.entries[name]
}
