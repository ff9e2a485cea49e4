package logger

import "context"

type contextKey string

const (
	loggerKey    contextKey = "slackctl.logger"
	requestIDKey contextKey = "slackctl.request_id"
	commandKey   contextKey = "slackctl.command"
)

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext extracts the logger from context.
// Returns the default logger if none is set.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerKey).(Logger); ok {
		return l
	}
	return Default()
}

// WithRequestID tags the context with the id of one dispatcher run.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext extracts the request ID from context.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// WithCommand tags the context with the resolved command path.
func WithCommand(ctx context.Context, command string) context.Context {
	return context.WithValue(ctx, commandKey, command)
}

// CommandFromContext extracts the command path from context.
func CommandFromContext(ctx context.Context) string {
	if c, ok := ctx.Value(commandKey).(string); ok {
		return c
	}
	return ""
}

// L returns the context logger enriched with the request ID and command
// path, when present.
func L(ctx context.Context) Logger {
	l := FromContext(ctx)
	if reqID := RequestIDFromContext(ctx); reqID != "" {
		l = l.With("request_id", reqID)
	}
	if cmd := CommandFromContext(ctx); cmd != "" {
		l = l.With("command", cmd)
	}
	return l
}
