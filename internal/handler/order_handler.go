package handler

import (
	"net/http"
	"storefront-service/internal/revalidate"
	"storefront-service/internal/service"

	"github.com/labstack/echo/v4"
)

func (h *Handler) ListOrders(c echo.Context) error {
	return h.cachedList(c, revalidate.ViewOrders, "Erro ao buscar pedidos", func() (interface{}, error) {
		return h.orders.List(c.Request().Context())
	})
}

func (h *Handler) GetOrder(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	order, err := h.orders.Get(c.Request().Context(), id)
	if err != nil {
		return failWith(c, err, "Erro ao buscar pedido")
	}
	return respond(c, http.StatusOK, order)
}

// CreateOrder places an order from the admin panel
func (h *Handler) CreateOrder(c echo.Context) error {
	var req service.PlaceOrderInput
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}

	order, err := h.orders.Place(c.Request().Context(), req)
	if err != nil {
		return failWith(c, err, "Erro ao criar pedido")
	}
	return respond(c, http.StatusCreated, order)
}

func (h *Handler) UpdateOrder(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	var req service.EditOrderInput
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}

	order, err := h.orders.Edit(c.Request().Context(), id, req)
	if err != nil {
		return failWith(c, err, "Erro ao editar pedido")
	}
	return respond(c, http.StatusOK, order)
}

func (h *Handler) DeleteOrder(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	if err := h.orders.Delete(c.Request().Context(), id); err != nil {
		return failWith(c, err, "Erro ao excluir pedido")
	}
	return respond(c, http.StatusOK, echo.Map{"id": id})
}
