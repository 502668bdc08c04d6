// Package logger provides structured logging on top of zerolog.
//
// It supports JSON and console output, level configuration, component-scoped
// loggers and field maps. The registry logs through a "di" component logger
// derived from the global logger unless it is given one with di.WithLogger.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.WithComponent("di")
//	log.WithContext(ctx).Debug("entry resolved", logger.Fields(logger.FieldEntry, "db"))
package logger
