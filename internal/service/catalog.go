package service

import (
	"context"
	"storefront-service/internal/model"
	"storefront-service/internal/revalidate"
	"storefront-service/internal/slug"
	"storefront-service/internal/validation"
	"storefront-service/pkg/logger"
	"storefront-service/pkg/metrics"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// fallbackSlug is used when a name has no word characters at all
const fallbackSlug = "categoria"

// CategoryInput is the admin form for a category
type CategoryInput struct {
	Name     string `json:"nome" form:"nome" validate:"required,min=2,max=50"`
	Color    string `json:"cor" form:"cor" validate:"omitempty,hexcolor"`
	ImageURL string `json:"imagemUrl" form:"imagemUrl" validate:"omitempty,url"`
}

func (CategoryInput) ValidationMessages() map[string]string {
	return map[string]string{
		"nome.required": "Nome da categoria é obrigatório",
		"nome.min":      "Nome da categoria deve ter pelo menos 2 caracteres",
		"nome.max":      "Nome muito longo",
		"cor.hexcolor":  "Cor inválida",
		"imagemUrl.url": "URL da imagem inválida.",
	}
}

func (in *CategoryInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Color = strings.TrimSpace(in.Color)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
}

// ProductInput is the admin form for a product
type ProductInput struct {
	Name        string          `json:"nome" validate:"required,min=2,max=100"`
	Description string          `json:"descricao" validate:"max=500"`
	Price       decimal.Decimal `json:"preco" validate:"required,gt=0"`
	Stock       int             `json:"estoque" validate:"gte=0"`
	CategoryID  uint            `json:"categoriaId" validate:"required"`
	ImageURL    string          `json:"imagemUrl" validate:"omitempty,url"`
}

func (ProductInput) ValidationMessages() map[string]string {
	return map[string]string{
		"nome.required":        "Nome do produto é obrigatório",
		"nome.min":             "Nome do produto deve ter pelo menos 2 caracteres",
		"nome.max":             "Nome muito longo",
		"descricao.max":        "Descrição muito longa",
		"preco.required":       "O preço é obrigatório.",
		"preco.gt":             "O preço deve ser positivo.",
		"estoque.gte":          "O estoque deve ser um número inteiro não negativo.",
		"categoriaId.required": "Categoria é obrigatória.",
		"imagemUrl.url":        "URL da imagem inválida.",
	}
}

func (in *ProductInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
}

// ProductFilter narrows product listings
type ProductFilter struct {
	CategoryID uint
}

// Catalog implements category and product administration and lookups
type Catalog struct {
	db    *gorm.DB
	views *revalidate.Registry
}

func NewCatalog(db *gorm.DB, views *revalidate.Registry) *Catalog {
	return &Catalog{db: db, views: views}
}

// assignSlug picks a free slug for name, ignoring the category with id exclude
func assignSlug(tx *gorm.DB, name string, exclude uint) (string, error) {
	base := slug.Generate(name)
	if base == "" {
		base = fallbackSlug
	}
	return slug.Unique(base, func(candidate string) (bool, error) {
		q := tx.Model(&model.Category{}).Where("slug = ?", candidate)
		if exclude != 0 {
			q = q.Where("id <> ?", exclude)
		}
		var count int64
		if err := q.Count(&count).Error; err != nil {
			return false, err
		}
		return count > 0, nil
	})
}

func (s *Catalog) CreateCategory(ctx context.Context, in CategoryInput) (*model.Category, error) {
	in.normalize()
	if err := validation.Validate(in); err != nil {
		return nil, err
	}

	category := model.Category{Name: in.Name, Color: in.Color, ImageURL: in.ImageURL}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if category.Slug, err = assignSlug(tx, in.Name, 0); err != nil {
			return err
		}
		return tx.Create(&category).Error
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Category created",
		zap.Uint("category_id", category.ID),
		zap.String("slug", category.Slug))
	metrics.RecordCatalogOperation("category", "create")
	s.views.Invalidate(revalidate.ViewCategories)
	return &category, nil
}

func (s *Catalog) UpdateCategory(ctx context.Context, id uint, in CategoryInput) (*model.Category, error) {
	in.normalize()
	if err := validation.Validate(in); err != nil {
		return nil, err
	}

	var category model.Category
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&category, id).Error; err != nil {
			return lookup(err, "Categoria não encontrada")
		}
		newSlug, err := assignSlug(tx, in.Name, category.ID)
		if err != nil {
			return err
		}
		category.Name = in.Name
		category.Slug = newSlug
		category.Color = in.Color
		category.ImageURL = in.ImageURL
		return tx.Save(&category).Error
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordCatalogOperation("category", "update")
	s.views.Invalidate(revalidate.ViewCategories, revalidate.ViewProducts)
	return &category, nil
}

// DeleteCategory refuses to remove a category still referenced by products
func (s *Catalog) DeleteCategory(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category model.Category
		if err := tx.First(&category, id).Error; err != nil {
			return lookup(err, "Categoria não encontrada")
		}
		var count int64
		if err := tx.Model(&model.Product{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return conflict("Categoria possui produtos vinculados")
		}
		return tx.Delete(&category).Error
	})
	if err != nil {
		return err
	}

	metrics.RecordCatalogOperation("category", "delete")
	s.views.Invalidate(revalidate.ViewCategories)
	return nil
}

func (s *Catalog) ListCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := s.db.WithContext(ctx).Order("name asc").Find(&categories).Error
	return categories, err
}

// CategoryBySlug loads a category with its products, newest first
func (s *Catalog) CategoryBySlug(ctx context.Context, categorySlug string) (*model.Category, error) {
	var category model.Category
	err := s.db.WithContext(ctx).
		Preload("Products", func(db *gorm.DB) *gorm.DB { return db.Order("created_at desc") }).
		Where("slug = ?", categorySlug).
		First(&category).Error
	if err != nil {
		return nil, lookup(err, "Categoria não encontrada")
	}
	return &category, nil
}

func (s *Catalog) ensureCategory(tx *gorm.DB, id uint) error {
	var category model.Category
	if err := tx.Select("id").First(&category, id).Error; err != nil {
		return lookup(err, "Categoria não encontrada")
	}
	return nil
}

func (s *Catalog) CreateProduct(ctx context.Context, in ProductInput) (*model.Product, error) {
	in.normalize()
	if err := validation.Validate(in); err != nil {
		return nil, err
	}

	categoryID := in.CategoryID
	product := model.Product{
		Name:        in.Name,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Price:       in.Price,
		Stock:       in.Stock,
		CategoryID:  &categoryID,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.ensureCategory(tx, in.CategoryID); err != nil {
			return err
		}
		return tx.Create(&product).Error
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Product created",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name),
		zap.String("price", product.Price.StringFixed(2)))
	metrics.RecordCatalogOperation("product", "create")
	metrics.SetProductStock(product.ID, product.Stock)
	s.views.Invalidate(revalidate.ViewProducts)
	return &product, nil
}

func (s *Catalog) UpdateProduct(ctx context.Context, id uint, in ProductInput) (*model.Product, error) {
	in.normalize()
	if err := validation.Validate(in); err != nil {
		return nil, err
	}

	var product model.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, id).Error; err != nil {
			return lookup(err, "Produto não encontrado")
		}
		if err := s.ensureCategory(tx, in.CategoryID); err != nil {
			return err
		}
		categoryID := in.CategoryID
		product.Name = in.Name
		product.Description = in.Description
		product.ImageURL = in.ImageURL
		product.Price = in.Price
		product.Stock = in.Stock
		product.CategoryID = &categoryID
		return tx.Omit("Category").Save(&product).Error
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordCatalogOperation("product", "update")
	metrics.SetProductStock(product.ID, product.Stock)
	s.views.Invalidate(revalidate.ViewProducts, revalidate.ViewOrders)
	return &product, nil
}

func (s *Catalog) DeleteProduct(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&model.Product{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound("Produto não encontrado")
	}

	metrics.RecordCatalogOperation("product", "delete")
	metrics.DeleteProductStock(id)
	s.views.Invalidate(revalidate.ViewProducts, revalidate.ViewOrders)
	return nil
}

// ListProducts returns products newest first with their category
func (s *Catalog) ListProducts(ctx context.Context, filter ProductFilter) ([]model.Product, error) {
	q := s.db.WithContext(ctx).Preload("Category").Order("created_at desc").Order("id desc")
	if filter.CategoryID != 0 {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	var products []model.Product
	err := q.Find(&products).Error
	return products, err
}

func (s *Catalog) GetProduct(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	if err := s.db.WithContext(ctx).Preload("Category").First(&product, id).Error; err != nil {
		return nil, lookup(err, "Produto não encontrado")
	}
	return &product, nil
}

// ProductsByID loads the given products keyed by id; missing ids are absent
func (s *Catalog) ProductsByID(ctx context.Context, ids []uint) (map[uint]model.Product, error) {
	out := make(map[uint]model.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var products []model.Product
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	for _, p := range products {
		out[p.ID] = p
	}
	return out, nil
}
