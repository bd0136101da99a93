// Package logger provides structured logging for the application.
//
// It builds a log/slog handler from configuration (JSON for production, plain
// text, or colored tint output for local development) and carries
// request-scoped loggers through context.Context.
package logger
