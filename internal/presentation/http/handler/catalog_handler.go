package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jraflores/tindahan-api/internal/application/service"
	"github.com/jraflores/tindahan-api/internal/domain/repository"
	"github.com/jraflores/tindahan-api/internal/presentation/http/dto/response"
	"github.com/jraflores/tindahan-api/pkg/pagination"
	"github.com/jraflores/tindahan-api/pkg/utils"
)

// CatalogHandler handles read-only catalog endpoints
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// List handles GET /products
func (h *CatalogHandler) List(c *gin.Context) {
	params := &repository.ProductFilterParams{
		Pagination: pagination.DefaultPagination(),
		Search:     c.Query("search"),
		Category:   c.Query("category"),
		ActiveOnly: c.Query("active") != "false",
	}
	if err := c.ShouldBindQuery(params.Pagination); err != nil {
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}
	params.Pagination.Validate()

	result, err := h.catalogService.ListProducts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// Get handles GET /products/:id
func (h *CatalogHandler) Get(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// Recipe handles GET /products/:id/recipe
func (h *CatalogHandler) Recipe(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	recipe, err := h.catalogService.GetRecipe(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product recipe retrieved successfully", recipe)
}
