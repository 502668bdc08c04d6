// Package errors provides the structured error type shared by the registry,
// its validation layer and the introspection handlers.
//
// Every failure carries a machine-readable ErrorCode, a message and an HTTP
// status hint. Domain errors from package di implement Coder, so From maps
// them onto AppError without the caller switching on concrete types.
package errors
