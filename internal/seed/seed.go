// Package seed loads a starter catalog from a YAML file.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"storefront-service/internal/service"
	"storefront-service/internal/slug"
	"storefront-service/pkg/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Catalog is the YAML document layout
type Catalog struct {
	Categories []Category `yaml:"categorias"`
	Banners    []Banner   `yaml:"banners"`
}

type Category struct {
	Name     string    `yaml:"nome"`
	Color    string    `yaml:"cor"`
	ImageURL string    `yaml:"imagemUrl"`
	Products []Product `yaml:"produtos"`
}

type Product struct {
	Name        string `yaml:"nome"`
	Description string `yaml:"descricao"`
	Price       string `yaml:"preco"`
	Stock       int    `yaml:"estoque"`
	ImageURL    string `yaml:"imagemUrl"`
}

type Banner struct {
	Title       string `yaml:"titulo"`
	Subtitle    string `yaml:"subtitulo"`
	Description string `yaml:"descricao"`
	ImageURL    string `yaml:"imagemUrl"`
	LinkURL     string `yaml:"linkUrl"`
	ButtonText  string `yaml:"textoBotao"`
	Active      *bool  `yaml:"ativo"`
	Ordem       *int   `yaml:"ordem"`
}

// Result counts what Apply created and skipped
type Result struct {
	Categories int
	Products   int
	Banners    int
	Skipped    int
}

// Parse decodes a catalog document, rejecting unknown keys
func Parse(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var c Catalog
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return &c, nil
}

// Seeder writes a catalog through the services so every business rule applies
type Seeder struct {
	catalog *service.Catalog
	banners *service.Banners
}

func New(catalog *service.Catalog, banners *service.Banners) *Seeder {
	return &Seeder{catalog: catalog, banners: banners}
}

// Apply creates whatever the catalog lists that does not exist yet. Categories
// match by slug, products by name within their category and banners by title,
// so running it twice is harmless.
func (s *Seeder) Apply(ctx context.Context, c *Catalog) (Result, error) {
	log := logger.FromContext(ctx)
	var res Result

	for _, cat := range c.Categories {
		category, err := s.catalog.CategoryBySlug(ctx, slug.Generate(cat.Name))
		switch {
		case err == nil:
			res.Skipped++
		case errors.Is(err, service.ErrNotFound):
			category, err = s.catalog.CreateCategory(ctx, service.CategoryInput{
				Name: cat.Name, Color: cat.Color, ImageURL: cat.ImageURL,
			})
			if err != nil {
				return res, fmt.Errorf("category %q: %w", cat.Name, err)
			}
			res.Categories++
		default:
			return res, err
		}

		existing := make(map[string]bool, len(category.Products))
		for _, p := range category.Products {
			existing[p.Name] = true
		}
		for _, p := range cat.Products {
			if existing[p.Name] {
				res.Skipped++
				continue
			}
			price, err := decimal.NewFromString(p.Price)
			if err != nil {
				return res, fmt.Errorf("product %q: invalid price %q", p.Name, p.Price)
			}
			_, err = s.catalog.CreateProduct(ctx, service.ProductInput{
				Name:        p.Name,
				Description: p.Description,
				Price:       price,
				Stock:       p.Stock,
				CategoryID:  category.ID,
				ImageURL:    p.ImageURL,
			})
			if err != nil {
				return res, fmt.Errorf("product %q: %w", p.Name, err)
			}
			res.Products++
		}
	}

	current, err := s.banners.List(ctx)
	if err != nil {
		return res, err
	}
	titles := make(map[string]bool, len(current))
	for _, b := range current {
		titles[b.Title] = true
	}
	for _, b := range c.Banners {
		if titles[b.Title] {
			res.Skipped++
			continue
		}
		_, err := s.banners.Create(ctx, service.BannerInput{
			Title:       b.Title,
			Subtitle:    b.Subtitle,
			Description: b.Description,
			ImageURL:    b.ImageURL,
			LinkURL:     b.LinkURL,
			ButtonText:  b.ButtonText,
			Active:      b.Active,
			Ordem:       b.Ordem,
		})
		if err != nil {
			return res, fmt.Errorf("banner %q: %w", b.Title, err)
		}
		res.Banners++
	}

	log.Info("Catalog seeded",
		zap.Int("categories", res.Categories),
		zap.Int("products", res.Products),
		zap.Int("banners", res.Banners),
		zap.Int("skipped", res.Skipped))
	return res, nil
}
