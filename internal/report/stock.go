// Package report renders inventory reports for the admin CLI.
package report

import (
	"context"
	"io"
	"storefront-service/internal/model"
	"storefront-service/pkg/metrics"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Stock statuses
const (
	StatusOut = "ESGOTADO"
	StatusLow = "BAIXO"
	StatusOK  = "OK"
)

// StockRow is one product line of the stock report
type StockRow struct {
	ID       uint
	Name     string
	Category string
	Price    decimal.Decimal
	Stock    int
	Status   string
}

// Stock loads every product, lowest stock first. Products at or below
// lowStock are flagged as low.
func Stock(ctx context.Context, db *gorm.DB, lowStock int) ([]StockRow, error) {
	var products []model.Product
	err := db.WithContext(ctx).
		Preload("Category").
		Order("stock asc").Order("name asc").
		Find(&products).Error
	if err != nil {
		return nil, err
	}

	rows := make([]StockRow, 0, len(products))
	for _, p := range products {
		row := StockRow{ID: p.ID, Name: p.Name, Price: p.Price, Stock: p.Stock, Status: StatusOK}
		if p.Category != nil {
			row.Category = p.Category.Name
		}
		switch {
		case p.Stock == 0:
			row.Status = StatusOut
		case p.Stock <= lowStock:
			row.Status = StatusLow
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// PublishStock refreshes the stock gauge of every row
func PublishStock(rows []StockRow) {
	for _, r := range rows {
		metrics.SetProductStock(r.ID, r.Stock)
	}
}

// RenderStock writes rows as a text table
func RenderStock(w io.Writer, rows []StockRow) error {
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		category := r.Category
		if category == "" {
			category = "-"
		}
		data = append(data, []string{
			strconv.FormatUint(uint64(r.ID), 10),
			r.Name,
			category,
			r.Price.StringFixed(2),
			strconv.Itoa(r.Stock),
			r.Status,
		})
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Produto", "Categoria", "Preço", "Estoque", "Situação")
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
