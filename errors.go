package redoxlog

import "errors"

// Sentinel errors for use with errors.Is().
//
// Dispatch-path failures (endpoint writes, flushes, panics) are deliberately
// absent: they are swallowed so that logging can never crash or back-pressure
// the application. Only construction, configuration, and lifecycle misuse
// surface errors.
var (
	// ErrInstalled is returned when Install is called after a logger has
	// already been installed, or when Close is called on the installed
	// logger.
	ErrInstalled = errors.New("logger already installed")

	// ErrNilEndpoint is returned by Build when the builder holds no endpoint.
	ErrNilEndpoint = errors.New("endpoint cannot be nil")

	// ErrEmptyPath is returned when a file path is required but empty.
	ErrEmptyPath = errors.New("file path cannot be empty")

	// ErrInvalidSeverity is returned when a severity name cannot be parsed.
	ErrInvalidSeverity = errors.New("invalid severity")

	// ErrConfig is returned, wrapped with detail, for structural
	// configuration violations.
	ErrConfig = errors.New("invalid configuration")
)
