// Package log builds the slog loggers used for diagnostics.
//
// Diagnostics always go to stderr so that stdout carries only the report.
// Verbosity follows the --verbose and --quiet flags:
//
//	verbose  -> debug and above
//	default  -> warnings and errors
//	quiet    -> errors only
//
// Attribute values that carry terminal escape sequences, such as output
// captured from an external validator, are stripped before they reach the
// underlying handler.
package log
