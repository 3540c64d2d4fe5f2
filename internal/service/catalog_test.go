package service

import (
	"storefront-service/internal/model"
	"storefront-service/internal/revalidate"
	"storefront-service/internal/testutil"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCategorySlugsAreUnique(t *testing.T) {
	db := testutil.NewDB(t)
	catalog := NewCatalog(db, revalidate.New())

	want := []string{"pizzas", "pizzas-1", "pizzas-2"}
	var created []*model.Category
	for _, w := range want {
		c, err := catalog.CreateCategory(ctx, CategoryInput{Name: "Pizzas"})
		if err != nil {
			t.Fatalf("CreateCategory: %v", err)
		}
		if c.Slug != w {
			t.Errorf("slug = %q, want %q", c.Slug, w)
		}
		created = append(created, c)
	}

	// Re-saving under the same name keeps the record's own slug
	same, err := catalog.UpdateCategory(ctx, created[1].ID, CategoryInput{Name: "Pizzas", Color: "#ff0000"})
	if err != nil {
		t.Fatalf("UpdateCategory: %v", err)
	}
	if same.Slug != "pizzas-1" {
		t.Errorf("slug changed to %q", same.Slug)
	}

	renamed, err := catalog.UpdateCategory(ctx, created[0].ID, CategoryInput{Name: "Bebidas Geladas"})
	if err != nil {
		t.Fatalf("UpdateCategory: %v", err)
	}
	if renamed.Slug != "bebidas-geladas" {
		t.Errorf("slug = %q", renamed.Slug)
	}

	// The freed slug is reused
	again, err := catalog.CreateCategory(ctx, CategoryInput{Name: "pizzas"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if again.Slug != "pizzas" {
		t.Errorf("slug = %q, want pizzas", again.Slug)
	}
}

func TestCategorySlugFallback(t *testing.T) {
	db := testutil.NewDB(t)
	catalog := NewCatalog(db, revalidate.New())

	c, err := catalog.CreateCategory(ctx, CategoryInput{Name: "!!!"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if c.Slug != "categoria" {
		t.Errorf("slug = %q, want categoria", c.Slug)
	}
}

func TestCategoryValidation(t *testing.T) {
	db := testutil.NewDB(t)
	catalog := NewCatalog(db, revalidate.New())

	_, err := catalog.CreateCategory(ctx, CategoryInput{Name: "Doces", Color: "azul"})
	requireValidation(t, err, "cor: Cor inválida")

	_, err = catalog.CreateCategory(ctx, CategoryInput{Name: " D "})
	requireValidation(t, err, "nome: Nome da categoria deve ter pelo menos 2 caracteres")

	_, err = catalog.UpdateCategory(ctx, 42, CategoryInput{Name: "Doces"})
	requireKind(t, err, ErrNotFound, "Categoria não encontrada")
}

func TestDeleteCategoryWithProducts(t *testing.T) {
	db := testutil.NewDB(t)
	catalog := NewCatalog(db, revalidate.New())

	c, err := catalog.CreateCategory(ctx, CategoryInput{Name: "Bolos"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	p, err := catalog.CreateProduct(ctx, ProductInput{
		Name: "Bolo de chocolate", Price: decimal.RequireFromString("35.90"), Stock: 3, CategoryID: c.ID,
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	requireKind(t, catalog.DeleteCategory(ctx, c.ID), ErrConflict, "Categoria possui produtos vinculados")

	if err := catalog.DeleteProduct(ctx, p.ID); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}
	if err := catalog.DeleteCategory(ctx, c.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	requireKind(t, catalog.DeleteCategory(ctx, c.ID), ErrNotFound, "Categoria não encontrada")
}

func TestCategoryBySlug(t *testing.T) {
	db := testutil.NewDB(t)
	catalog := NewCatalog(db, revalidate.New())

	c, _ := catalog.CreateCategory(ctx, CategoryInput{Name: "Salgados"})
	other, _ := catalog.CreateCategory(ctx, CategoryInput{Name: "Doces"})
	for _, in := range []ProductInput{
		{Name: "Coxinha", Price: decimal.NewFromInt(6), Stock: 10, CategoryID: c.ID},
		{Name: "Empada", Price: decimal.NewFromInt(7), Stock: 10, CategoryID: c.ID},
		{Name: "Brigadeiro", Price: decimal.NewFromInt(3), Stock: 10, CategoryID: other.ID},
	} {
		if _, err := catalog.CreateProduct(ctx, in); err != nil {
			t.Fatalf("CreateProduct: %v", err)
		}
	}

	got, err := catalog.CategoryBySlug(ctx, "salgados")
	if err != nil {
		t.Fatalf("CategoryBySlug: %v", err)
	}
	if len(got.Products) != 2 {
		t.Errorf("expected 2 products, got %d", len(got.Products))
	}

	_, err = catalog.CategoryBySlug(ctx, "bebidas")
	requireKind(t, err, ErrNotFound, "Categoria não encontrada")

	list, err := catalog.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(list) != 2 || list[0].Name != "Doces" {
		t.Errorf("expected categories sorted by name, got %+v", list)
	}
}

func TestProductCRUD(t *testing.T) {
	db := testutil.NewDB(t)
	views := revalidate.New()
	catalog := NewCatalog(db, views)
	c, _ := catalog.CreateCategory(ctx, CategoryInput{Name: "Cupcakes"})

	_, err := catalog.CreateProduct(ctx, ProductInput{Name: "Red velvet", Price: decimal.NewFromInt(9), CategoryID: 999})
	requireKind(t, err, ErrNotFound, "Categoria não encontrada")

	_, err = catalog.CreateProduct(ctx, ProductInput{Name: "Red velvet", Price: decimal.NewFromInt(-1), CategoryID: c.ID})
	requireValidation(t, err, "preco: O preço deve ser positivo.")

	_, err = catalog.CreateProduct(ctx, ProductInput{Name: "Red velvet", Price: decimal.NewFromInt(9), Stock: -2, CategoryID: c.ID})
	requireValidation(t, err, "estoque: O estoque deve ser um número inteiro não negativo.")

	_, err = catalog.CreateProduct(ctx, ProductInput{Name: "Red velvet", Price: decimal.NewFromInt(9), CategoryID: c.ID, ImageURL: "not a url"})
	requireValidation(t, err, "imagemUrl: URL da imagem inválida.")

	p, err := catalog.CreateProduct(ctx, ProductInput{
		Name: "  Red velvet  ", Price: decimal.RequireFromString("9.50"), Stock: 0, CategoryID: c.ID,
		ImageURL: "https://example.com/red.png",
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if p.Name != "Red velvet" || p.Stock != 0 {
		t.Errorf("unexpected product %+v", p)
	}

	updated, err := catalog.UpdateProduct(ctx, p.ID, ProductInput{
		Name: "Red velvet", Description: "Com cream cheese", Price: decimal.RequireFromString("10.00"), Stock: 12, CategoryID: c.ID,
	})
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	if updated.Stock != 12 || updated.Description != "Com cream cheese" {
		t.Errorf("unexpected product %+v", updated)
	}

	got, err := catalog.GetProduct(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if got.Category == nil || got.Category.Slug != "cupcakes" {
		t.Errorf("category not preloaded: %+v", got.Category)
	}

	_, err = catalog.UpdateProduct(ctx, 999, ProductInput{Name: "Nada", Price: decimal.NewFromInt(1), CategoryID: c.ID})
	requireKind(t, err, ErrNotFound, "Produto não encontrado")

	if err := catalog.DeleteProduct(ctx, p.ID); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}
	requireKind(t, catalog.DeleteProduct(ctx, p.ID), ErrNotFound, "Produto não encontrado")

	if views.Version(revalidate.ViewProducts) != 3 {
		t.Errorf("products view version = %d, want 3", views.Version(revalidate.ViewProducts))
	}
	// orders embed product rows, so edits and deletes refresh them too
	if views.Version(revalidate.ViewOrders) != 2 {
		t.Errorf("orders view version = %d, want 2", views.Version(revalidate.ViewOrders))
	}
}

func TestListProductsFilter(t *testing.T) {
	db := testutil.NewDB(t)
	catalog := NewCatalog(db, revalidate.New())
	a, _ := catalog.CreateCategory(ctx, CategoryInput{Name: "Tortas"})
	b, _ := catalog.CreateCategory(ctx, CategoryInput{Name: "Pães"})

	for _, in := range []ProductInput{
		{Name: "Torta de limão", Price: decimal.NewFromInt(40), Stock: 1, CategoryID: a.ID},
		{Name: "Pão de queijo", Price: decimal.NewFromInt(2), Stock: 50, CategoryID: b.ID},
		{Name: "Torta de maçã", Price: decimal.NewFromInt(42), Stock: 1, CategoryID: a.ID},
	} {
		if _, err := catalog.CreateProduct(ctx, in); err != nil {
			t.Fatalf("CreateProduct: %v", err)
		}
	}

	all, err := catalog.ListProducts(ctx, ProductFilter{})
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(all) != 3 || all[0].Name != "Torta de maçã" {
		t.Errorf("expected newest first, got %+v", all)
	}

	tortas, err := catalog.ListProducts(ctx, ProductFilter{CategoryID: a.ID})
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(tortas) != 2 {
		t.Errorf("expected 2 tortas, got %d", len(tortas))
	}
	for _, p := range tortas {
		if p.Category == nil || p.Category.ID != a.ID {
			t.Errorf("unexpected category for %s", p.Name)
		}
	}

	byID, err := catalog.ProductsByID(ctx, []uint{all[0].ID, 999})
	if err != nil {
		t.Fatalf("ProductsByID: %v", err)
	}
	if len(byID) != 1 {
		t.Errorf("expected 1 product, got %d", len(byID))
	}
}
