// Package logger provides structured logging for the service.
//
// It builds a JSON log/slog handler at the configured level, installs it as
// the process default, and carries request-scoped loggers through
// context.Context so every log line for a request shares its trace_id.
package logger
