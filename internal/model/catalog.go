package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category groups products on the storefront. Slug is unique and derived from Name.
type Category struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Name      string    `json:"nome" gorm:"type:varchar(50);not null"`
	Slug      string    `json:"slug" gorm:"type:varchar(80);uniqueIndex;not null"`
	Color     string    `json:"cor" gorm:"type:varchar(7)"`
	ImageURL  string    `json:"imagemUrl" gorm:"type:text"`
	Products  []Product `json:"produtos,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Product is a sellable item. Stock never goes below zero.
type Product struct {
	ID          uint            `json:"id" gorm:"primarykey"`
	Name        string          `json:"nome" gorm:"type:varchar(100);not null"`
	Description string          `json:"descricao" gorm:"type:text"`
	ImageURL    string          `json:"imagemUrl" gorm:"type:text"`
	Price       decimal.Decimal `json:"preco" gorm:"type:decimal(10,2);not null"`
	Stock       int             `json:"estoque" gorm:"not null;default:0"`
	CategoryID  *uint           `json:"categoriaId" gorm:"index"`
	Category    *Category       `json:"categoria,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Banner is a home page slide. Ordem is the display rank, lowest first.
type Banner struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	Title       string    `json:"titulo" gorm:"type:varchar(100);not null"`
	Subtitle    string    `json:"subtitulo" gorm:"type:varchar(150)"`
	Description string    `json:"descricao" gorm:"type:varchar(500)"`
	ImageURL    string    `json:"imagemUrl" gorm:"type:text"`
	LinkURL     string    `json:"linkUrl" gorm:"type:text"`
	ButtonText  string    `json:"textoBotao" gorm:"type:varchar(50)"`
	Active      bool      `json:"ativo" gorm:"not null"`
	Ordem       int       `json:"ordem" gorm:"not null;default:0;index"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
