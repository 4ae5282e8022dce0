// Package logger builds configured log/slog loggers with JSON or text
// output and optional context-driven attribute injection. Security-relevant
// events in the session and CSRF packages are emitted through loggers
// produced here.
package logger
