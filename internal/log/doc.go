// Package log provides secure logging functionality with automatic sanitization
// of sensitive information, built on top of the standard slog package.
//
// Access logs routinely carry credentials in request targets, for example
// "/login?password=hunter2" or "/api?access_token=...". Those values end up in
// log attributes whenever logstat reports a request path or a malformed line.
// This package extends slog to provide:
//   - Masking of attributes whose key names a secret (cookie, token, password)
//   - Masking of URL user info and Authorization credentials inside text
//   - Masking of sensitive query parameters inside paths and raw log lines
//   - Configurable log levels with verbose mode support
//
// # Usage
//
//	// Create a secure logger
//	logger := log.NewSecureLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Info("request",
//	    "path", "/login?user=bob&password=hunter2", // password value is masked
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
