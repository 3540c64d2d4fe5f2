package service

import (
	"context"
	"errors"
	"storefront-service/internal/model"
	"storefront-service/internal/validation"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newProduct(t *testing.T, db *gorm.DB, name, price string, stock int) *model.Product {
	t.Helper()
	p := model.Product{Name: name, Price: decimal.RequireFromString(price), Stock: stock}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("create product %s: %v", name, err)
	}
	return &p
}

func stockOf(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var p model.Product
	if err := db.First(&p, id).Error; err != nil {
		t.Fatalf("load product %d: %v", id, err)
	}
	return p.Stock
}

func count(t *testing.T, db *gorm.DB, m interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Model(m).Count(&n).Error; err != nil {
		t.Fatalf("count %T: %v", m, err)
	}
	return n
}

func requireKind(t *testing.T, err, kind error, message string) {
	t.Helper()
	if !errors.Is(err, kind) {
		t.Fatalf("expected %v error, got %v", kind, err)
	}
	if message != "" && err.Error() != message {
		t.Errorf("message = %q, want %q", err.Error(), message)
	}
}

func requireValidation(t *testing.T, err error, message string) {
	t.Helper()
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if message != "" && verr.Error() != message {
		t.Errorf("message = %q, want %q", verr.Error(), message)
	}
}

var ctx = context.Background()
