package repository

import (
	"context"
	"errors"

	"github.com/yourusername/pc-build-assistant/internal/domain/entity"
)

// ErrProductNotFound SKU katalogda topilmadi
var ErrProductNotFound = errors.New("product not found")

// ProductRepository katalog bilan ishlash uchun interface.
// Natija bo'sh bo'lishi xato emas: faqat transport/auth muammolari
// error qaytaradi.
type ProductRepository interface {
	// Search matn bo'yicha qidirish
	Search(ctx context.Context, query string, limit int) ([]entity.Product, error)

	// SearchByCategory toifa va narx oralig'i bo'yicha kandidatlar.
	// Ko'pi bilan limit ta, omborda borlari afzal ko'riladi.
	// maxPrice <= 0 bo'lsa yuqori chegara yo'q.
	SearchByCategory(ctx context.Context, cat entity.Category, minPrice, maxPrice float64, limit int) ([]entity.Product, error)

	// GetBySKU bitta tovarni olish. Topilmasa ErrProductNotFound.
	GetBySKU(ctx context.Context, sku string) (entity.Product, error)

	// UpdateCatalog katalogni to'liq yangilash (import uchun)
	UpdateCatalog(ctx context.Context, products []entity.Product) error
}
