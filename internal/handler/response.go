package handler

import (
	"errors"
	"net/http"
	"storefront-service/internal/revalidate"
	"storefront-service/internal/service"
	"storefront-service/internal/validation"
	"storefront-service/pkg/logger"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func respond(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, echo.Map{"success": true, "data": data})
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{"success": false, "error": message})
}

// failWith maps a service error onto a response. Unexpected errors are logged
// and reported with the operation's generic message.
func failWith(c echo.Context, err error, fallback string) error {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"error":   verr.Error(),
			"campos":  verr.Fields,
		})
	case errors.Is(err, service.ErrNotFound):
		return fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrConflict):
		return fail(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		return fail(c, http.StatusUnauthorized, err.Error())
	}

	logger.FromEcho(c).Error(fallback, zap.Error(err))
	return fail(c, http.StatusInternalServerError, fallback)
}

func invalidRequest(c echo.Context, err error) error {
	logger.FromEcho(c).Warn("Invalid request data", zap.Error(err))
	return fail(c, http.StatusBadRequest, "Dados inválidos")
}

func parseID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func invalidID(c echo.Context) error {
	return fail(c, http.StatusBadRequest, "ID inválido")
}

// cachedList serves a list view with an ETag and answers 304 when the client
// already holds the current version
func (h *Handler) cachedList(c echo.Context, view revalidate.View, fallback string, load func() (interface{}, error)) error {
	tag := h.views.ETag(view)
	c.Response().Header().Set("ETag", tag)
	c.Response().Header().Set("Cache-Control", "no-cache")
	if c.Request().Header.Get("If-None-Match") == tag {
		return c.NoContent(http.StatusNotModified)
	}

	data, err := load()
	if err != nil {
		return failWith(c, err, fallback)
	}
	return respond(c, http.StatusOK, data)
}
