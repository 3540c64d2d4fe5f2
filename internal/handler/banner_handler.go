package handler

import (
	"net/http"
	"storefront-service/internal/revalidate"
	"storefront-service/internal/service"

	"github.com/labstack/echo/v4"
)

// ListActiveBanners serves the home page carousel
func (h *Handler) ListActiveBanners(c echo.Context) error {
	return h.cachedList(c, revalidate.ViewBanners, "Erro ao buscar banners", func() (interface{}, error) {
		return h.banners.ListActive(c.Request().Context())
	})
}

func (h *Handler) ListBanners(c echo.Context) error {
	return h.cachedList(c, revalidate.ViewBanners, "Erro ao buscar banners", func() (interface{}, error) {
		return h.banners.List(c.Request().Context())
	})
}

func (h *Handler) GetBanner(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	banner, err := h.banners.Get(c.Request().Context(), id)
	if err != nil {
		return failWith(c, err, "Erro ao buscar banner")
	}
	return respond(c, http.StatusOK, banner)
}

func (h *Handler) CreateBanner(c echo.Context) error {
	var req service.BannerInput
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}

	banner, err := h.banners.Create(c.Request().Context(), req)
	if err != nil {
		return failWith(c, err, "Erro ao criar banner")
	}
	return respond(c, http.StatusCreated, banner)
}

func (h *Handler) UpdateBanner(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	var req service.BannerUpdateInput
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}

	banner, err := h.banners.Update(c.Request().Context(), id, req)
	if err != nil {
		return failWith(c, err, "Erro ao editar banner")
	}
	return respond(c, http.StatusOK, banner)
}

func (h *Handler) DeleteBanner(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	if err := h.banners.Delete(c.Request().Context(), id); err != nil {
		return failWith(c, err, "Erro ao excluir banner")
	}
	return respond(c, http.StatusOK, echo.Map{"id": id})
}

func (h *Handler) ToggleBanner(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	banner, err := h.banners.ToggleActive(c.Request().Context(), id)
	if err != nil {
		return failWith(c, err, "Erro ao alterar status do banner")
	}
	return respond(c, http.StatusOK, banner)
}
