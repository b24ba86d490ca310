package log

import (
	"context"

	"go.uber.org/zap"
)

// RequestIDHeader содержит идентификатор запроса во входящих и исходящих заголовках
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// WithRequestID сохраняет идентификатор запроса в контексте
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID извлекает идентификатор запроса из контекста
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// FromContext добавляет к логгеру идентификатор запроса, если он есть в контексте
func FromContext(ctx context.Context, logger *zap.Logger) *zap.Logger {
	if id := RequestID(ctx); id != "" {
		return logger.With(zap.String("request_id", id))
	}
	return logger
}
