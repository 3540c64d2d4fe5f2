package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle label of an order. Any status may follow any other.
type OrderStatus string

const (
	StatusPending       OrderStatus = "PENDENTE"
	StatusInPreparation OrderStatus = "EM_PREPARACAO"
	StatusDone          OrderStatus = "CONCLUIDO"
	StatusCanceled      OrderStatus = "CANCELADO"
)

// Statuses lists every valid order status
var Statuses = []OrderStatus{StatusPending, StatusInPreparation, StatusDone, StatusCanceled}

// Valid reports whether s is one of the known statuses
func (s OrderStatus) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Customer is matched by name or phone when an order is placed
type Customer struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Name      string    `json:"nome" gorm:"type:varchar(100);not null;index"`
	Address   string    `json:"endereco" gorm:"type:varchar(255)"`
	Phone     string    `json:"telefone" gorm:"type:varchar(30);index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Order holds a derived total; it is never supplied by the buyer
type Order struct {
	ID         uint            `json:"id" gorm:"primarykey"`
	CustomerID uint            `json:"clienteId" gorm:"index;not null"`
	Customer   *Customer       `json:"cliente,omitempty"`
	Total      decimal.Decimal `json:"valorTotal" gorm:"type:decimal(10,2);not null"`
	Status     OrderStatus     `json:"status" gorm:"type:varchar(20);not null;index"`
	Items      []OrderItem     `json:"itens,omitempty"`
	CreatedAt  time.Time       `json:"dataCriacao"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// OrderItem captures the unit price at order time and is never updated
type OrderItem struct {
	ID        uint            `json:"id" gorm:"primarykey"`
	OrderID   uint            `json:"pedidoId" gorm:"index;not null"`
	ProductID uint            `json:"produtoId" gorm:"index;not null"`
	Product   *Product        `json:"produto,omitempty"`
	Quantity  int             `json:"quantidade" gorm:"not null"`
	UnitPrice decimal.Decimal `json:"precoUnitario" gorm:"type:decimal(10,2);not null"`
	Subtotal  decimal.Decimal `json:"subtotal" gorm:"type:decimal(10,2);not null"`
	CreatedAt time.Time       `json:"createdAt"`
}
