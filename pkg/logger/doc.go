// Package logger builds configured slog.Logger instances through functional
// options, plus small helpers for commonly logged attributes.
//
// Defaults are production-safe (JSON at info level); WithDevelopment switches
// to human-readable text output at debug level.
package logger
