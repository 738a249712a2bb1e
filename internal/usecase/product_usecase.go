package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/yourusername/pc-build-assistant/internal/domain/constants"
	"github.com/yourusername/pc-build-assistant/internal/domain/entity"
	"github.com/yourusername/pc-build-assistant/internal/domain/repository"
)

// ProductUseCase katalog bilan ishlash uchun interface
type ProductUseCase interface {
	// Search matn bo'yicha mahsulot qidirish
	Search(ctx context.Context, query string) ([]entity.Product, error)

	// SearchCategory kategoriya bo'yicha mahsulot qidirish.
	// maxPrice <= 0 bo'lsa narx chegarasi yo'q.
	SearchCategory(ctx context.Context, category entity.Category, maxPrice float64) ([]entity.Product, error)

	// GetBySKU SKU bo'yicha bitta mahsulot olish
	GetBySKU(ctx context.Context, sku string) (entity.Product, error)

	// ImportCatalog katalogni to'liq yangilash
	ImportCatalog(ctx context.Context, products []entity.Product) error
}

type productUseCase struct {
	products repository.ProductRepository
}

// NewProductUseCase yangi ProductUseCase yaratish
func NewProductUseCase(products repository.ProductRepository) ProductUseCase {
	return &productUseCase{products: products}
}

func (u *productUseCase) Search(ctx context.Context, query string) ([]entity.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query is empty")
	}

	// Agar so'rov kategoriya nomi bo'lsa, kategoriya qidiruvini ishlatamiz
	if cat, ok := entity.ParseCategory(query); ok {
		return u.SearchCategory(ctx, cat, 0)
	}

	found, err := u.products.Search(ctx, query, constants.CandidateLimit)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return found, nil
}

func (u *productUseCase) SearchCategory(ctx context.Context, category entity.Category, maxPrice float64) ([]entity.Product, error) {
	found, err := u.products.SearchByCategory(ctx, category, 0, maxPrice, constants.CandidateLimit)
	if err != nil {
		return nil, fmt.Errorf("search category %s: %w", category, err)
	}
	return found, nil
}

func (u *productUseCase) GetBySKU(ctx context.Context, sku string) (entity.Product, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return entity.Product{}, fmt.Errorf("sku is empty")
	}
	return u.products.GetBySKU(ctx, sku)
}

func (u *productUseCase) ImportCatalog(ctx context.Context, products []entity.Product) error {
	if len(products) == 0 {
		return fmt.Errorf("catalog is empty")
	}
	if err := u.products.UpdateCatalog(ctx, products); err != nil {
		return fmt.Errorf("update catalog: %w", err)
	}
	return nil
}
