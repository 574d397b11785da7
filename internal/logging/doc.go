// Package logging assembles structured slog loggers used across skillsetl.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context helpers so stage code tags log lines with the
// run ID and stage automatically. When a log directory is configured, every
// record is also appended as JSON to skillsetl.log regardless of the console
// format. A no-op logger is provided for tests and wiring code that cannot
// fail.
package logging
