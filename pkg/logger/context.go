package logger

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// EchoKey is where the request-scoped logger lives on an echo.Context
const EchoKey = "logger"

type ctxKey struct{}

// FromContext returns the request logger carried by ctx, or the global one
func FromContext(ctx context.Context) *zap.Logger {
	if scoped, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok {
		return scoped
	}
	return GetLogger()
}

func WithContext(ctx context.Context, scoped *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, scoped)
}

// Attach stores scoped on the echo context and on its request context so
// handlers and the services they call log with the same fields
func Attach(c echo.Context, scoped *zap.Logger) {
	c.Set(EchoKey, scoped)
	c.SetRequest(c.Request().WithContext(WithContext(c.Request().Context(), scoped)))
}

// FromEcho returns the request logger set by Attach, or the global one
func FromEcho(c echo.Context) *zap.Logger {
	if scoped, ok := c.Get(EchoKey).(*zap.Logger); ok {
		return scoped
	}
	return GetLogger()
}
