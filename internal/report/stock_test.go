package report

import (
	"bytes"
	"context"
	"storefront-service/internal/model"
	"storefront-service/internal/testutil"
	"storefront-service/pkg/metrics"
	"strings"
	"testing"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
)

func TestStockReport(t *testing.T) {
	db := testutil.NewDB(t)
	category := model.Category{Name: "Bolos", Slug: "bolos"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	products := []model.Product{
		{Name: "Bolo de cenoura", Price: decimal.RequireFromString("25.90"), Stock: 12, CategoryID: &category.ID},
		{Name: "Bolo de milho", Price: decimal.RequireFromString("22"), Stock: 2, CategoryID: &category.ID},
		{Name: "Brigadeiro", Price: decimal.RequireFromString("3.5"), Stock: 0},
	}
	for i := range products {
		if err := db.Create(&products[i]).Error; err != nil {
			t.Fatalf("create product: %v", err)
		}
	}

	rows, err := Stock(context.Background(), db, 3)
	if err != nil {
		t.Fatalf("Stock: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].Name != "Brigadeiro" || rows[0].Status != StatusOut || rows[0].Category != "" {
		t.Errorf("unexpected first row %+v", rows[0])
	}
	if rows[1].Status != StatusLow || rows[2].Status != StatusOK || rows[2].Category != "Bolos" {
		t.Errorf("unexpected rows %+v", rows[1:])
	}

	var buf bytes.Buffer
	if err := RenderStock(&buf, rows); err != nil {
		t.Fatalf("RenderStock: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Bolo de milho", "25.90", StatusOut, StatusLow} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}

	PublishStock(rows)
	if got := promtest.ToFloat64(metrics.ProductStockGauge.WithLabelValues("1")); got != 12 {
		t.Errorf("gauge for product 1 = %v, want 12", got)
	}
}
