package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jraflores/tindahan-api/internal/application/service"
	"github.com/jraflores/tindahan-api/internal/domain/enum"
	"github.com/jraflores/tindahan-api/internal/domain/repository"
	"github.com/jraflores/tindahan-api/internal/presentation/http/dto/request"
	"github.com/jraflores/tindahan-api/internal/presentation/http/dto/response"
	"github.com/jraflores/tindahan-api/internal/presentation/http/middleware"
	"github.com/jraflores/tindahan-api/pkg/apperror"
	"github.com/jraflores/tindahan-api/pkg/pagination"
	"github.com/jraflores/tindahan-api/pkg/utils"
)

// SettlementHandler handles sale settlement endpoints
type SettlementHandler struct {
	settlementService *service.SettlementService
}

// NewSettlementHandler creates a new settlement handler
func NewSettlementHandler(settlementService *service.SettlementService) *SettlementHandler {
	return &SettlementHandler{settlementService: settlementService}
}

// Settle handles POST /sales
func (h *SettlementHandler) Settle(c *gin.Context) {
	var req request.SettleSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	discountCode := req.DiscountCode
	if discountCode == "" {
		discountCode = "none"
	}

	input := &service.SettleSaleInput{
		DiscountCode:   discountCode,
		PaymentMethod:  enum.PaymentMethod(req.PaymentMethod),
		TenderedAmount: req.TenderedAmount,
		Cashier:        middleware.GetCashier(c),
		TerminalID:     middleware.GetTerminalID(c),
	}
	for _, line := range req.Lines {
		input.Lines = append(input.Lines, service.SettleLineInput{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	result, err := h.settlementService.SettleSale(c.Request.Context(), input)
	if err != nil {
		// A partial deduction still means the sale went through. Surface the
		// settled transaction together with the lines needing reconciliation.
		var partial *apperror.PartialDeductionError
		if errors.As(err, &partial) && result != nil {
			response.PartialSuccess(c, "Sale settled, but some stock was not deducted", result, partial.Failed)
			return
		}
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale settled successfully", result)
}

// Get handles GET /sales/:id
func (h *SettlementHandler) Get(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	transaction, err := h.settlementService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", transaction)
}

// List handles GET /sales
func (h *SettlementHandler) List(c *gin.Context) {
	params := &repository.SaleFilterParams{
		Pagination: pagination.DefaultPagination(),
		Search:     c.Query("search"),
	}
	if err := c.ShouldBindQuery(params.Pagination); err != nil {
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}
	params.Pagination.Validate()

	if raw := c.Query("start_date"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
			return
		}
		params.StartDate = &t
	}
	if raw := c.Query("end_date"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(c, "Invalid end_date, expected YYYY-MM-DD")
			return
		}
		// End date is inclusive on the wire, exclusive in the query.
		t = t.AddDate(0, 0, 1)
		params.EndDate = &t
	}
	if raw := c.Query("payment_method"); raw != "" {
		method := enum.PaymentMethod(raw)
		if !method.Valid() {
			response.BadRequest(c, "Unknown payment method "+raw)
			return
		}
		params.PaymentMethod = &method
	}

	transactions, total, err := h.settlementService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	result := pagination.NewPaginatedResult(transactions, pag)
	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

// Void handles POST /sales/:id/void
func (h *SettlementHandler) Void(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	result, err := h.settlementService.VoidSale(c.Request.Context(), id, middleware.GetCashier(c), middleware.GetTerminalID(c))
	if err != nil {
		var partial *apperror.PartialDeductionError
		if errors.As(err, &partial) && result != nil {
			response.PartialSuccess(c, "Sale voided, but some stock was not restored", result, partial.Failed)
			return
		}
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale voided successfully", result)
}

// Discounts handles GET /discounts
func (h *SettlementHandler) Discounts(c *gin.Context) {
	codes := service.DiscountCodes()
	policies := make([]service.DiscountPolicy, 0, len(codes))
	for _, code := range codes {
		policy, err := service.ResolveDiscount(code)
		if err != nil {
			continue
		}
		policies = append(policies, *policy)
	}
	response.OK(c, "Discount policies retrieved successfully", policies)
}
