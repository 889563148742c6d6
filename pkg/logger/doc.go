// Package logger provides a slog factory with environment presets and
// context-aware attribute injection, plus attr helpers shared across services.
package logger
