// Package logging assembles structured slog loggers and formatting helpers
// used across subfuse components.
//
// It owns the configurable console/JSON handlers, centralizes level and
// output plumbing, and standardizes field keys so every stage of the fusion
// pipeline emits data with the same shape. The package also provides a no-op
// logger for tests and wiring code that cannot fail.
package logging
