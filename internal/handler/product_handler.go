package handler

import (
	"net/http"
	"storefront-service/internal/revalidate"
	"storefront-service/internal/service"
	"storefront-service/pkg/logger"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListProducts lists products, optionally filtered by ?categoria=<id>
func (h *Handler) ListProducts(c echo.Context) error {
	var filter service.ProductFilter
	if raw := c.QueryParam("categoria"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return fail(c, http.StatusBadRequest, "Categoria inválida")
		}
		filter.CategoryID = uint(id)
	}

	return h.cachedList(c, revalidate.ViewProducts, "Erro ao buscar produtos", func() (interface{}, error) {
		return h.catalog.ListProducts(c.Request().Context(), filter)
	})
}

func (h *Handler) GetProduct(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	product, err := h.catalog.GetProduct(c.Request().Context(), id)
	if err != nil {
		return failWith(c, err, "Erro ao buscar produto")
	}
	return respond(c, http.StatusOK, product)
}

func (h *Handler) CreateProduct(c echo.Context) error {
	var req service.ProductInput
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}

	product, err := h.catalog.CreateProduct(c.Request().Context(), req)
	if err != nil {
		return failWith(c, err, "Erro ao criar produto")
	}
	return respond(c, http.StatusCreated, product)
}

func (h *Handler) UpdateProduct(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	var req service.ProductInput
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}

	product, err := h.catalog.UpdateProduct(c.Request().Context(), id, req)
	if err != nil {
		return failWith(c, err, "Erro ao editar produto")
	}
	logger.FromEcho(c).Info("Product updated", zap.Uint("product_id", id))
	return respond(c, http.StatusOK, product)
}

func (h *Handler) DeleteProduct(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	if err := h.catalog.DeleteProduct(c.Request().Context(), id); err != nil {
		return failWith(c, err, "Erro ao excluir produto")
	}
	logger.FromEcho(c).Info("Product deleted", zap.Uint("product_id", id))
	return respond(c, http.StatusOK, echo.Map{"id": id})
}
