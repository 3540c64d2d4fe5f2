package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

type lineInput struct {
	ProductID uint `json:"produtoId" validate:"required"`
	Quantity  int  `json:"quantidade" validate:"required,gte=1"`
}

type contactInput struct {
	Name string `json:"nome" validate:"required,min=2"`
}

type orderInput struct {
	Contact contactInput    `json:"cliente"`
	Items   []lineInput     `json:"itens" validate:"min=1,dive"`
	Total   decimal.Decimal `json:"valorTotal" validate:"required,gt=0"`
}

func (orderInput) ValidationMessages() map[string]string {
	return map[string]string{
		"itens.min":            "Adicione pelo menos um produto ao pedido.",
		"itens.quantidade.gte": "A quantidade deve ser um número inteiro positivo.",
	}
}

func TestValidatePasses(t *testing.T) {
	in := orderInput{
		Contact: contactInput{Name: "Ana"},
		Items:   []lineInput{{ProductID: 1, Quantity: 2}},
		Total:   decimal.RequireFromString("10.50"),
	}
	if err := Validate(in); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidateUsesOverridesAndPaths(t *testing.T) {
	in := orderInput{
		Contact: contactInput{Name: "A"},
		Items:   []lineInput{{ProductID: 1, Quantity: 1}, {ProductID: 2, Quantity: -3}},
		Total:   decimal.NewFromInt(5),
	}
	err := Validate(in)

	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	want := "cliente.nome: deve ter pelo menos 2 caracteres, itens[1].quantidade: A quantidade deve ser um número inteiro positivo."
	if verr.Error() != want {
		t.Errorf("got %q\nwant %q", verr.Error(), want)
	}
}

func TestValidateEmptySlice(t *testing.T) {
	err := Validate(orderInput{Contact: contactInput{Name: "Ana"}, Total: decimal.NewFromInt(1)})
	if err == nil || !strings.Contains(err.Error(), "itens: Adicione pelo menos um produto ao pedido.") {
		t.Fatalf("expected item list message, got %v", err)
	}
}

func TestValidateDecimal(t *testing.T) {
	tests := []struct {
		name  string
		total decimal.Decimal
		tag   string
	}{
		{"zero is missing", decimal.Zero, "valorTotal: campo obrigatório"},
		{"negative", decimal.NewFromInt(-2), "valorTotal: deve ser maior que 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := orderInput{
				Contact: contactInput{Name: "Ana"},
				Items:   []lineInput{{ProductID: 1, Quantity: 1}},
				Total:   tt.total,
			}
			err := Validate(in)
			if err == nil || err.Error() != tt.tag {
				t.Fatalf("got %v, want %q", err, tt.tag)
			}
		})
	}
}

func TestNew(t *testing.T) {
	if got := New("slug", "vazio").Error(); got != "slug: vazio" {
		t.Errorf("unexpected message %q", got)
	}
}
