// Package config loads service configuration for applications built on a
// dingu registry.
//
// LoadConfig reads a YAML file, an optional .env file and the process
// environment through Viper, then unmarshals into the caller's struct.
// Services embed ServiceConfig to get logging, container and telemetry
// sections.
//
// # Usage
//
//	var cfg AppConfig
//	if err := config.LoadConfig("billing", &cfg, config.WithEnvPrefix("BILLING")); err != nil {
//	    return err
//	}
//
// Environment variables map onto nested keys by splitting on underscores,
// so CONTAINER_STRICT_LOCK sets container.strict_lock.
package config
