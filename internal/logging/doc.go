// Package logging assembles the structured slog loggers used across ristab.
//
// It owns the console and JSON handlers, centralizes level plumbing, and
// provides component-tagging helpers so every diagnostic the converters emit
// carries a consistent shape. A no-op logger is available for tests.
package logging
