package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jraflores/tindahan-api/internal/domain/entity"
	"github.com/jraflores/tindahan-api/pkg/pagination"
)

// ProductRepository defines read access to the sellable catalog. Catalog
// writes belong to the external maintenance layer; CreateProduct and
// CreateRecipeLine exist only for seeding.
type ProductRepository interface {
	CreateProduct(ctx context.Context, product *entity.Product) error
	CreateRecipeLine(ctx context.Context, line *entity.RecipeLine) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	// RecipeLinesFor returns the product's bill of materials in recipe order.
	// A product with no recipe returns an empty slice, not an error.
	RecipeLinesFor(ctx context.Context, productID uuid.UUID) ([]entity.RecipeLine, error)
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Category   string
	ActiveOnly bool
}
