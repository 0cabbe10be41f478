// Package logging constructs the application's slog loggers.
//
// Two output formats are supported: "console" renders compact
// timestamp/level/component lines for interactive use, "json" emits one JSON
// object per record for log collection. Helper constructors (String, Int,
// Error, ...) keep call sites terse, and standardized field keys keep
// resolution decisions greppable across components.
package logging
