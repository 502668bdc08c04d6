package di

import "github.com/kbukum/dingu/validation"

const defaultRegistryName = "default"

// Config configures a Registry from the service configuration.
type Config struct {
	// Name identifies the registry in logs, metrics and spans.
	Name string `yaml:"name" mapstructure:"name" validate:"required,entryname"`
	// ID pins the registry identifier; a random UUID is used when empty.
	ID string `yaml:"id" mapstructure:"id"`
	// StrictLock returns *LockedError for mutations after Lock.
	StrictLock bool `yaml:"strict_lock" mapstructure:"strict_lock"`
	// LockOnStart locks the registry once the application has started.
	LockOnStart bool `yaml:"lock_on_start" mapstructure:"lock_on_start"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = defaultRegistryName
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if appErr := validation.New().OptionalUUID("id", c.ID).Validate(); appErr != nil {
		return appErr
	}
	return nil
}
