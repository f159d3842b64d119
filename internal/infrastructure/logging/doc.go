// Package logging provides structured logging for Ember Home Core.
//
// This package wraps Go's standard log/slog package to provide
// consistent, structured logging across the entire application.
//
// # Features
//
//   - Text output for interactive use (human-readable)
//   - JSON output when log aggregation is wanted
//   - Default fields (service, version) on all log entries
//   - Level-based filtering (debug, info, warn, error)
//   - Thread-safe for concurrent use
//
// # Configuration
//
// Logging is configured via the LoggingConfig in config.yaml:
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "text"     # json, text
//	  output: "stderr"   # stdout, stderr
//
// # Usage
//
//	logger := logging.New(cfg.Logging, "1.0.0")
//	logger.Info("device created", "id", dev.ID())
//	logger.Error("subscriber failed", "error", err)
//
// Packages that need a logger declare their own small Logger interface and
// accept anything satisfying it; this Logger does.
package logging
