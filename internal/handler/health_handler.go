package handler

import (
	"net/http"
	"storefront-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// HealthCheck reports whether the service can reach its database
func (h *Handler) HealthCheck(c echo.Context) error {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request().Context())
	}
	if err != nil {
		logger.FromEcho(c).Error("Health check failed", zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, echo.Map{
			"status":  "unhealthy",
			"service": h.serviceName,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "healthy",
		"service": h.serviceName,
	})
}
