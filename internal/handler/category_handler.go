package handler

import (
	"net/http"
	"storefront-service/internal/revalidate"
	"storefront-service/internal/service"

	"github.com/labstack/echo/v4"
)

func (h *Handler) ListCategories(c echo.Context) error {
	return h.cachedList(c, revalidate.ViewCategories, "Erro ao buscar categorias", func() (interface{}, error) {
		return h.catalog.ListCategories(c.Request().Context())
	})
}

// GetCategoryBySlug serves the storefront category page with its products
func (h *Handler) GetCategoryBySlug(c echo.Context) error {
	category, err := h.catalog.CategoryBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return failWith(c, err, "Erro ao buscar categoria")
	}
	return respond(c, http.StatusOK, category)
}

func (h *Handler) CreateCategory(c echo.Context) error {
	var req service.CategoryInput
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}

	category, err := h.catalog.CreateCategory(c.Request().Context(), req)
	if err != nil {
		return failWith(c, err, "Erro ao criar categoria")
	}
	return respond(c, http.StatusCreated, category)
}

func (h *Handler) UpdateCategory(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	var req service.CategoryInput
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}

	category, err := h.catalog.UpdateCategory(c.Request().Context(), id, req)
	if err != nil {
		return failWith(c, err, "Erro ao editar categoria")
	}
	return respond(c, http.StatusOK, category)
}

func (h *Handler) DeleteCategory(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	if err := h.catalog.DeleteCategory(c.Request().Context(), id); err != nil {
		return failWith(c, err, "Erro ao excluir categoria")
	}
	return respond(c, http.StatusOK, echo.Map{"id": id})
}
