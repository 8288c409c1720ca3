// Package logging provides a minimal logging interface and adapters.
//
// The Logger interface defines the standard logging methods (Debug, Info,
// Warn, Error) that the command adapter and transport use for observability.
// This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter / NewLogger wrapping Go's structured logging
//   - ZapAdapter wrapping go.uber.org/zap (used by the CLI)
//   - NoOpLogger for silent operation (testing, library defaults)
//
// Usage:
//
//	logger := logging.NewLogger(&logging.LoggerConfig{Level: logging.LogLevelDebug, Format: "text"})
//	qc := qconnect.New(func(o *qconnect.Options) { o.Logger = logger })
package logging
