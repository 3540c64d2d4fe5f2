package handler

import (
	"net/http"
	"storefront-service/internal/cart"
	"storefront-service/internal/service"
	"storefront-service/internal/validation"
	"storefront-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AddItemRequest puts a product in the cart
type AddItemRequest struct {
	ProductID uint `json:"produtoId" validate:"required"`
	Quantity  int  `json:"quantidade" validate:"required,gte=1"`
}

func (AddItemRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"produtoId.required":  "A seleção de produto é obrigatória.",
		"quantidade.required": "A quantidade é obrigatória.",
		"quantidade.gte":      "A quantidade deve ser um número inteiro positivo.",
	}
}

// SetItemRequest replaces the quantity of a cart line; zero removes it
type SetItemRequest struct {
	Quantity int `json:"quantidade" validate:"gte=0"`
}

func (SetItemRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"quantidade.gte": "A quantidade não pode ser negativa.",
	}
}

// CheckoutRequest carries the buyer's contact block
type CheckoutRequest struct {
	Customer service.CustomerInput `json:"cliente"`
}

// saveAndShow prices the cart against the current catalog, persists it and
// writes the summary
func (h *Handler) saveAndShow(c echo.Context, shopper *cart.Cart, status int) error {
	products, err := h.catalog.ProductsByID(c.Request().Context(), shopper.ProductIDs())
	if err != nil {
		return failWith(c, err, "Erro ao carregar o carrinho")
	}
	summary, removed := shopper.Price(products)
	if len(removed) > 0 {
		logger.FromEcho(c).Info("Dropped unavailable products from cart", zap.Any("product_ids", removed))
	}
	if err := shopper.Save(c.Request(), c.Response()); err != nil {
		return failWith(c, err, "Erro ao salvar o carrinho")
	}
	return respond(c, status, summary)
}

// checkStock fails when the product is missing or cannot cover quantity more
// units on top of the held ones
func (h *Handler) checkStock(c echo.Context, productID uint, held, quantity int) error {
	product, err := h.catalog.GetProduct(c.Request().Context(), productID)
	if err != nil {
		return err
	}
	if quantity > product.Stock-held {
		return &service.Error{
			Kind:    service.ErrConflict,
			Message: "Estoque insuficiente para o produto " + product.Name,
		}
	}
	return nil
}

func (h *Handler) GetCart(c echo.Context) error {
	return h.saveAndShow(c, h.carts.Load(c.Request()), http.StatusOK)
}

func (h *Handler) AddCartItem(c echo.Context) error {
	var req AddItemRequest
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}
	if err := validation.Validate(req); err != nil {
		return failWith(c, err, "Erro ao adicionar ao carrinho")
	}

	shopper := h.carts.Load(c.Request())
	if err := h.checkStock(c, req.ProductID, shopper.Quantity(req.ProductID), req.Quantity); err != nil {
		return failWith(c, err, "Erro ao adicionar ao carrinho")
	}
	if !shopper.Add(req.ProductID, req.Quantity) {
		return fail(c, http.StatusBadRequest, "Quantidade inválida")
	}
	return h.saveAndShow(c, shopper, http.StatusOK)
}

func (h *Handler) SetCartItem(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	var req SetItemRequest
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}
	if err := validation.Validate(req); err != nil {
		return failWith(c, err, "Erro ao atualizar o carrinho")
	}

	shopper := h.carts.Load(c.Request())
	if req.Quantity > 0 {
		if err := h.checkStock(c, id, 0, req.Quantity); err != nil {
			return failWith(c, err, "Erro ao atualizar o carrinho")
		}
	}
	shopper.Set(id, req.Quantity)
	return h.saveAndShow(c, shopper, http.StatusOK)
}

func (h *Handler) RemoveCartItem(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}
	shopper := h.carts.Load(c.Request())
	shopper.Remove(id)
	return h.saveAndShow(c, shopper, http.StatusOK)
}

func (h *Handler) ClearCart(c echo.Context) error {
	shopper := h.carts.Load(c.Request())
	shopper.Clear()
	return h.saveAndShow(c, shopper, http.StatusOK)
}

// Checkout turns the cart into an order and empties the cart on success
func (h *Handler) Checkout(c echo.Context) error {
	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}

	shopper := h.carts.Load(c.Request())
	order, err := h.orders.Place(c.Request().Context(), service.PlaceOrderInput{
		Customer: req.Customer,
		Items:    shopper.LineItems(),
	})
	if err != nil {
		return failWith(c, err, "Erro ao criar pedido")
	}

	shopper.Clear()
	if err := shopper.Save(c.Request(), c.Response()); err != nil {
		logger.FromEcho(c).Warn("Failed to clear cart after checkout", zap.Error(err))
	}
	return respond(c, http.StatusCreated, order)
}
