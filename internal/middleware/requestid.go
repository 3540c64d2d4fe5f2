package middleware

import (
	"storefront-service/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const RequestIDHeader = "X-Request-ID"

// RequestID tags each request with an id and a logger carrying it. The logger
// is stored on the echo context and on the request context so services see it.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.New().String()
				c.Request().Header.Set(RequestIDHeader, requestID)
			}
			c.Response().Header().Set(RequestIDHeader, requestID)

			logger.Attach(c, logger.GetLogger().With(zap.String("request_id", requestID)))

			return next(c)
		}
	}
}
