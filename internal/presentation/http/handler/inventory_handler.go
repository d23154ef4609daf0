package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jraflores/tindahan-api/internal/application/service"
	"github.com/jraflores/tindahan-api/internal/domain/enum"
	"github.com/jraflores/tindahan-api/internal/domain/repository"
	"github.com/jraflores/tindahan-api/internal/presentation/http/dto/request"
	"github.com/jraflores/tindahan-api/internal/presentation/http/dto/response"
	"github.com/jraflores/tindahan-api/internal/presentation/http/middleware"
	"github.com/jraflores/tindahan-api/pkg/pagination"
	"github.com/jraflores/tindahan-api/pkg/utils"
)

// InventoryHandler handles inventory ledger endpoints
type InventoryHandler struct {
	ledgerService *service.LedgerService
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(ledgerService *service.LedgerService) *InventoryHandler {
	return &InventoryHandler{ledgerService: ledgerService}
}

// List handles GET /inventory
func (h *InventoryHandler) List(c *gin.Context) {
	params := &repository.InventoryFilterParams{
		Pagination: pagination.DefaultPagination(),
		Search:     c.Query("search"),
		LowStock:   c.Query("low_stock") == "true",
	}
	if err := c.ShouldBindQuery(params.Pagination); err != nil {
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}
	params.Pagination.Validate()

	result, err := h.ledgerService.ListItems(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Inventory items retrieved successfully", result)
}

// LowStock handles GET /inventory/low-stock
func (h *InventoryHandler) LowStock(c *gin.Context) {
	items, err := h.ledgerService.ListLowStock(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock items retrieved successfully", items)
}

// Get handles GET /inventory/:id
func (h *InventoryHandler) Get(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid inventory item ID")
		return
	}

	item, err := h.ledgerService.GetItem(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Inventory item retrieved successfully", item)
}

// Movements handles GET /inventory/:id/movements
func (h *InventoryHandler) Movements(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid inventory item ID")
		return
	}

	params := &pagination.CursorParams{}
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Invalid cursor parameters")
		return
	}

	result, err := h.ledgerService.History(c.Request.Context(), id, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock movements retrieved successfully", result)
}

// CreateMovement handles POST /inventory/:id/movements. Manual movements cover
// deliveries, spoilage, counts, and transfers; sale deductions only ever come
// from settlement.
func (h *InventoryHandler) CreateMovement(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid inventory item ID")
		return
	}

	var req request.MovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	movement, err := h.ledgerService.ApplyMovement(c.Request.Context(), &repository.MovementInput{
		InventoryItemID: id,
		Delta:           req.Delta,
		Kind:            enum.MovementKind(req.Kind),
		Reference:       req.Reference,
		Actor:           middleware.GetCashier(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Stock movement recorded successfully", movement)
}
