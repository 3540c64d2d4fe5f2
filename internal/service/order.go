package service

import (
	"context"
	"errors"
	"storefront-service/internal/model"
	"storefront-service/internal/revalidate"
	"storefront-service/internal/validation"
	"storefront-service/pkg/logger"
	"storefront-service/pkg/metrics"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CustomerInput is the contact block submitted with an order
type CustomerInput struct {
	Name    string `json:"nome" validate:"required,min=2"`
	Address string `json:"endereco" validate:"required,min=5"`
	Phone   string `json:"telefone" validate:"required,min=10"`
}

// LineItemInput is one (product, quantity) pair of a cart or order
type LineItemInput struct {
	ProductID uint `json:"produtoId" validate:"required"`
	Quantity  int  `json:"quantidade" validate:"required,gte=1"`
}

// PlaceOrderInput is the payload of the order placement flow
type PlaceOrderInput struct {
	Customer CustomerInput     `json:"cliente"`
	Items    []LineItemInput   `json:"itens" validate:"min=1,dive"`
	Status   model.OrderStatus `json:"status" validate:"omitempty,oneof=PENDENTE EM_PREPARACAO CONCLUIDO CANCELADO"`
}

func (PlaceOrderInput) ValidationMessages() map[string]string {
	return map[string]string{
		"cliente.nome.required":     "O nome do cliente é obrigatório.",
		"cliente.nome.min":          "O nome do cliente deve ter pelo menos 2 caracteres.",
		"cliente.endereco.required": "O endereço é obrigatório.",
		"cliente.endereco.min":      "O endereço deve ter pelo menos 5 caracteres.",
		"cliente.telefone.required": "O telefone é obrigatório.",
		"cliente.telefone.min":      "O telefone deve ter pelo menos 10 caracteres.",
		"itens.min":                 "Adicione pelo menos um produto ao pedido.",
		"itens.produtoId.required":  "A seleção de produto é obrigatória.",
		"itens.quantidade.required": "A quantidade é obrigatória.",
		"itens.quantidade.gte":      "A quantidade deve ser um número inteiro positivo.",
		"status.oneof":              "Status inválido.",
	}
}

func (in *PlaceOrderInput) normalize() {
	in.Customer.Name = strings.TrimSpace(in.Customer.Name)
	in.Customer.Address = strings.TrimSpace(in.Customer.Address)
	in.Customer.Phone = strings.TrimSpace(in.Customer.Phone)
	in.Status = model.OrderStatus(strings.TrimSpace(string(in.Status)))
}

// EditOrderInput replaces the total and status of an order
type EditOrderInput struct {
	Total  decimal.Decimal   `json:"valorTotal" validate:"required,gt=0"`
	Status model.OrderStatus `json:"status" validate:"required,oneof=PENDENTE EM_PREPARACAO CONCLUIDO CANCELADO"`
}

func (EditOrderInput) ValidationMessages() map[string]string {
	return map[string]string{
		"valorTotal.required": "Valor total é obrigatório.",
		"valorTotal.gt":       "O valor total deve ser positivo.",
		"status.required":     "Status é obrigatório.",
		"status.oneof":        "Status inválido.",
	}
}

// Orders implements order placement and administration
type Orders struct {
	db    *gorm.DB
	views *revalidate.Registry
	now   func() time.Time
}

func NewOrders(db *gorm.DB, views *revalidate.Registry) *Orders {
	return &Orders{db: db, views: views, now: time.Now}
}

// Place validates the cart, reserves stock, upserts the customer and records
// the order with its items. Everything after validation runs in one
// transaction; a failure leaves no partial order behind.
func (s *Orders) Place(ctx context.Context, in PlaceOrderInput) (*model.Order, error) {
	log := logger.FromContext(ctx)
	defer metrics.TrackDBOperation("place_order")(time.Now())

	in.normalize()
	if err := validation.Validate(in); err != nil {
		metrics.RecordOrderFailure("validation")
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = model.StatusPending
	}

	var order model.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products := make([]model.Product, len(in.Items))
		total := decimal.Zero
		for i, item := range in.Items {
			if err := tx.First(&products[i], item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return notFound("Produto %d não encontrado", item.ProductID)
				}
				return err
			}
			if products[i].Stock < item.Quantity {
				return conflict("Estoque insuficiente para o produto %s", products[i].Name)
			}
			total = total.Add(products[i].Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}

		customer, err := upsertCustomer(tx, in.Customer)
		if err != nil {
			return err
		}

		order = model.Order{
			CustomerID: customer.ID,
			Customer:   customer,
			Total:      total,
			Status:     status,
			CreatedAt:  s.now(),
		}
		if err := tx.Omit("Customer", "Items").Create(&order).Error; err != nil {
			return err
		}

		for i, item := range in.Items {
			p := products[i]
			qty := decimal.NewFromInt(int64(item.Quantity))
			line := model.OrderItem{
				OrderID:   order.ID,
				ProductID: p.ID,
				Quantity:  item.Quantity,
				UnitPrice: p.Price,
				Subtotal:  p.Price.Mul(qty),
			}
			if err := tx.Omit("Product").Create(&line).Error; err != nil {
				return err
			}

			res := tx.Model(&model.Product{}).
				Where("id = ? AND stock >= ?", p.ID, item.Quantity).
				Update("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return conflict("Estoque insuficiente para o produto %s", p.Name)
			}
			order.Items = append(order.Items, line)
		}
		return nil
	})
	if err != nil {
		metrics.RecordOrderFailure(failureReason(err))
		log.Warn("Order placement rejected", zap.Error(err))
		return nil, err
	}

	for _, item := range in.Items {
		var p model.Product
		if err := s.db.WithContext(ctx).Select("id", "stock").First(&p, item.ProductID).Error; err == nil {
			metrics.SetProductStock(p.ID, p.Stock)
		}
	}
	metrics.OrdersPlacedCounter.Inc()
	s.views.Invalidate(revalidate.ViewOrders, revalidate.ViewProducts)

	log.Info("Order placed",
		zap.Uint("order_id", order.ID),
		zap.Uint("customer_id", order.CustomerID),
		zap.String("total", order.Total.StringFixed(2)),
		zap.Int("items", len(order.Items)))
	return &order, nil
}

// upsertCustomer finds a customer by name or phone and overwrites its contact
// details, or creates one. Last write wins.
func upsertCustomer(tx *gorm.DB, in CustomerInput) (*model.Customer, error) {
	var customer model.Customer
	err := tx.Where("name = ? OR phone = ?", in.Name, in.Phone).Order("id").First(&customer).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		customer = model.Customer{Name: in.Name, Address: in.Address, Phone: in.Phone}
		if err := tx.Create(&customer).Error; err != nil {
			return nil, err
		}
		return &customer, nil
	case err != nil:
		return nil, err
	}

	customer.Name = in.Name
	customer.Address = in.Address
	customer.Phone = in.Phone
	if err := tx.Save(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConflict):
		return "insufficient_stock"
	default:
		return "storage"
	}
}

// List returns every order, newest first, with customer and items
func (s *Orders) List(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items.Product").
		Order("created_at desc").Order("id desc").
		Find(&orders).Error
	return orders, err
}

func (s *Orders) Get(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items.Product").
		First(&order, id).Error
	if err != nil {
		return nil, lookup(err, "Pedido não encontrado")
	}
	return &order, nil
}

// Edit overwrites total and status. There is no transition restriction.
func (s *Orders) Edit(ctx context.Context, id uint, in EditOrderInput) (*model.Order, error) {
	in.Status = model.OrderStatus(strings.TrimSpace(string(in.Status)))
	if err := validation.Validate(in); err != nil {
		return nil, err
	}

	var order model.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, id).Error; err != nil {
			return lookup(err, "Pedido não encontrado")
		}
		order.Total = in.Total
		order.Status = in.Status
		return tx.Save(&order).Error
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Order updated",
		zap.Uint("order_id", order.ID),
		zap.String("status", string(order.Status)))
	s.views.Invalidate(revalidate.ViewOrders)
	return &order, nil
}

// Delete removes an order and its items. Stock is not restored.
func (s *Orders) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order model.Order
		if err := tx.First(&order, id).Error; err != nil {
			return lookup(err, "Pedido não encontrado")
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&model.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info("Order deleted", zap.Uint("order_id", id))
	s.views.Invalidate(revalidate.ViewOrders)
	return nil
}
