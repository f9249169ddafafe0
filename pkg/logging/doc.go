// Package logging provides structured logging for gridrun.
//
// It wraps the standard library slog package with project defaults: JSON
// records to stderr, level selection via the LOG_LEVEL environment variable
// or an explicit flag, module and version context on every record, and
// source location tracking at debug level. An optional rotating file sink
// is available for long-running experiment campaigns.
//
// Typical setup in main:
//
//	logging.SetDefaultStructuredLoggerWithLevel("gridrun", version, logLevel)
//	slog.Info("starting", "version", version)
//
// The default logger is process wide; packages log through slog directly
// rather than threading a logger value.
package logging
