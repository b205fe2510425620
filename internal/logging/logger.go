// Package logging defines the structured-logging contract used across
// juridik and its slog and zerolog adapters.
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "conversation selected", "conversation_id", id)
type Logger interface {
	// Debug logs diagnostic detail (outbound calls, state transitions).
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs best-effort failures that are not surfaced to the user.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}
