package logging

import (
	"context"

	"github.com/rs/zerolog"
)

type contextKey int

const (
	loggerKey contextKey = iota
	requestIDKey
)

// WithLogger stores logger in ctx. A nil logger stores the default.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger stored in ctx, or the default logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey).(*zerolog.Logger); ok && logger != nil {
			return logger
		}
	}
	return Default()
}

// Seed stores logger in ctx unless ctx already carries one.
func Seed(ctx context.Context, logger *zerolog.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Value(loggerKey).(*zerolog.Logger); ok {
		return ctx
	}
	return WithLogger(ctx, logger)
}

// withStr derives a logger carrying key=value and stores it in ctx.
func withStr(ctx context.Context, key, value string) context.Context {
	logger := FromContext(ctx).With().Str(key, value).Logger()
	return WithLogger(ctx, &logger)
}

// WithRequestID records the request id in ctx and on its logger.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	ctx = context.WithValue(ctx, requestIDKey, requestID)
	return withStr(ctx, "request_id", requestID)
}

// RequestID returns the request id recorded in ctx, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithOperation tags the context logger with the catalog operation name
// (sync, submit, delete).
func WithOperation(ctx context.Context, operation string) context.Context {
	return withStr(ctx, "operation", operation)
}

// WithProperty tags the context logger with a property id.
func WithProperty(ctx context.Context, propertyID string) context.Context {
	return withStr(ctx, "property_id", propertyID)
}
