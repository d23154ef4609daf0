package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jraflores/tindahan-api/internal/domain/entity"
	"github.com/jraflores/tindahan-api/internal/domain/repository"
	"github.com/jraflores/tindahan-api/pkg/apperror"
	"github.com/jraflores/tindahan-api/pkg/pagination"
)

// CatalogService exposes read access to the sellable catalog. The catalog is
// maintained elsewhere; settlement only needs to browse it and resolve
// recipes.
type CatalogService struct {
	productRepo repository.ProductRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(productRepo repository.ProductRepository) *CatalogService {
	return &CatalogService{productRepo: productRepo}
}

// GetProduct retrieves a product by ID
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists catalog products with filtering
func (s *CatalogService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// GetRecipe returns a product's bill of materials in recipe order. A product
// without a recipe returns an empty list.
func (s *CatalogService) GetRecipe(ctx context.Context, productID uuid.UUID) ([]entity.RecipeLine, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return s.productRepo.RecipeLinesFor(ctx, productID)
}
