package di

import (
	"github.com/kbukum/dingu/logger"
	"github.com/kbukum/dingu/observability"
)

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for registry events.
func WithLogger(l *logger.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// WithName names the registry in logs, metrics and spans.
func WithName(name string) Option {
	return func(r *Registry) {
		if name != "" {
			r.name = name
		}
	}
}

// WithID overrides the generated registry ID.
func WithID(id string) Option {
	return func(r *Registry) {
		if id != "" {
			r.id = id
		}
	}
}

// WithStrictLock makes mutations of a locked registry return *LockedError
// instead of being ignored.
func WithStrictLock(strict bool) Option {
	return func(r *Registry) {
		r.strictLock = strict
	}
}

// WithMetrics records registrations and resolutions.
func WithMetrics(m *observability.Metrics) Option {
	return func(r *Registry) {
		r.metrics = m
	}
}
