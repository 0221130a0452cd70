// Package logging assembles structured slog loggers and formatting helpers used
// across vidconv.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so engine code can tag log lines
// with run IDs, queue positions, and stages. The package also provides a
// no-op logger for tests and wiring code that cannot fail.
package logging
