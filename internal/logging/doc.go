// Package logging provides structured logging with per-module log level
// configuration.
//
// The logging system uses Go's slog package with automatic output routing:
//   - Logs to systemd journal when available (Linux systems with journald)
//   - Logs to stdout when a terminal, pipe, or file is connected
//   - Logs to both when both are available
//
// Initialize the logging system once at startup:
//
//	logging.Initialize(logging.Config{
//		Level:  "info",      // Global log level: debug, info, warn, error
//		Format: "text",      // Output format: text or json
//		Modules: map[string]string{
//			"strip":  "debug", // Per-module overrides
//			"serial": "warn",
//		},
//	})
//
// Get a logger for your module:
//
//	logger := logging.GetLogger("strip")
//	logger.Info("Segment committed", "sid", 2)
//
// When running as a systemd service:
//
//	journalctl -t neoctl -f
//	journalctl -t neoctl MODULE=strip
//
// Module-specific levels override the global level for that module only.
// Example TOML configuration:
//
//	[logging]
//	level = "info"
//	format = "text"
//
//	[logging.modules]
//	strip = "debug"
//	serial = "warn"
package logging
