// Package logging provides a structured logging system for the Infisical SDK
// with unified log handling and level filtering.
//
// This package implements a logging system built on Go's standard slog package,
// providing consistent logging behavior with structured output and level filtering.
//
// # Architecture
//
// The logging system is built around these core concepts:
//
// ## Log Levels
//   - **Debug**: Detailed information for debugging and development
//   - **Info**: General informational messages about application operation
//   - **Warn**: Warning messages that indicate potential issues
//   - **Error**: Error messages for failures and exceptional conditions
//
// ## Structured Logging
// All log entries include:
//   - Timestamp with nanosecond precision
//   - Log level (Debug, Info, Warn, Error)
//   - Subsystem identifier for categorization
//   - Message content with optional formatting
//   - Optional error information
//
// # Usage Examples
//
// ## Initialization
//
//	import "infisical/pkg/logging"
//
//	// Initialize with Info level logging to stderr
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//
//	// Log messages
//	logging.Info("Chain", "Resolving credentials")
//	logging.Debug("Keyring", "Loaded CLI config from %s", configPath)
//	logging.Warn("Keyring", "Only the 'file' vault backend is supported")
//	logging.Error("Credentials", err, "Universal-auth login failed")
//
// ## Custom Output Writer
//
//	// CLI mode with custom writer
//	logFile, _ := os.OpenFile("sdk.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
//	logging.InitForCLI(logging.LevelDebug, logFile)
//
// # Subsystem Organization
//
// Logs are organized by subsystem to enable filtering and categorization:
//
//   - **Credentials**: Token lifecycle, claim validation, universal-auth login
//   - **Provider**: Per-source credential discovery
//   - **Chain**: Provider ordering and resolution
//   - **Keyring**: Infisical CLI config and encrypted session store access
//
// Library code never logs token values, client secrets, or decrypted keyring
// material; only endpoints, provider names, and outcomes appear in log output.
//
// # Integration with slog
//
// The logging system integrates with Go's standard slog package:
//   - Uses slog.Handler implementations for output formatting
//   - Converts custom LogLevel to slog.Level for compatibility
//   - Provides fallback to global slog logger when needed
//
// # Thread Safety
//
// The logging system is fully thread-safe:
//   - Safe concurrent logging from multiple goroutines
//   - Protected access to shared logging state
//   - No data races in configuration
package logging
