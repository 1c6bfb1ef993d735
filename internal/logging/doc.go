// Package logging provides structured logging for spnavcfg.
//
// This package wraps a zap logger with convenience functions for the
// diagnostics produced while reading and writing the spacenav configuration
// file. The config store never aborts on a bad line; it reports the problem
// here and carries on, so the default level keeps warnings visible.
//
// # Log Levels
//
//   - Debug: lock contention, file replacement details
//   - Info: successful loads and saves
//   - Warn: skipped config lines, unreadable config file (defaults used)
//   - Error: failed saves
//
// # Structured Logging
//
//	logging.Warn("Skipping config line",
//	    zap.String("path", "/etc/spnavrc"),
//	    zap.Int("line", 12),
//	    zap.String("reason", "unrecognized config option"),
//	)
//
// # Configuration
//
// The level comes from the --log-level flag or SPNAV_LOG_LEVEL:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// Output always goes to stderr so it never mixes with command output.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use.
package logging
