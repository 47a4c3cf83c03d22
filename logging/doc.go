// Package logging provides a minimal logging interface and adapters for the
// Sentinel voice engine.
//
// The Logger interface defines the standard logging methods (Debug, Info,
// Warn, Error) that the session driver, router, executor, scheduler and
// automation manager use for observability. This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - NoOpLogger for silent operation (testing, minimal setups)
//   - SentinelLogger with component/session scoping on top of log/slog
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelInfo, "text", false)
//	assistant := sentinel.New(rec, spk, func(o *sentinel.Options) { o.Logger = logger })
//
// The interface is intentionally small so callers can plug any structured
// logger without this module taking a hard dependency on one.
package logging
