package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jraflores/tindahan-api/internal/domain/entity"
	"github.com/jraflores/tindahan-api/internal/domain/enum"
	"github.com/jraflores/tindahan-api/internal/domain/repository"
	"github.com/jraflores/tindahan-api/pkg/apperror"
	"github.com/jraflores/tindahan-api/pkg/logger"
	"github.com/jraflores/tindahan-api/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// SettlementService composes the discount resolver, settlement calculator,
// recipe resolver, inventory ledger, and daily report aggregator into the
// all-or-nothing-per-sale settlement flow.
type SettlementService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	ledger      *LedgerService
	reports     *ReportService
	taxRate     decimal.Decimal
	log         *logrus.Entry
}

// NewSettlementService creates a new settlement service. taxRate is the
// configured VAT percent applied to non-exempt sales.
func NewSettlementService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	ledger *LedgerService,
	reports *ReportService,
	taxRate decimal.Decimal,
) *SettlementService {
	return &SettlementService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		ledger:      ledger,
		reports:     reports,
		taxRate:     taxRate,
		log:         logger.WithComponent("settlement"),
	}
}

// SettleLineInput is one cart line submitted by the register UI.
type SettleLineInput struct {
	ProductID uuid.UUID
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// SettleSaleInput is a completed cart ready to settle.
type SettleSaleInput struct {
	Lines          []SettleLineInput
	DiscountCode   string
	PaymentMethod  enum.PaymentMethod
	TenderedAmount decimal.Decimal
	Cashier        string
	TerminalID     string
}

// SettlementResult is the outcome of a settled sale. FailedDeductions is
// empty on full success; when present, the sale is still durable and the
// listed lines need manual stock reconciliation.
type SettlementResult struct {
	Transaction      *entity.SalesTransaction `json:"transaction"`
	Breakdown        *Breakdown               `json:"breakdown"`
	Movements        []entity.StockMovement   `json:"movements"`
	FailedDeductions []apperror.DeductionLine `json:"failed_deductions,omitempty"`
}

// SettleSale finalizes one sale.
//
// Validation happens before anything is persisted. The transaction record is
// made durable before inventory is touched; once it commits the sale is
// final. Recipe deductions are applied per line and failures are collected,
// not rolled back: the result then carries a *apperror.PartialDeductionError
// alongside the settled transaction so the operator can reconcile manually.
// Report aggregation failures never undo the sale.
func (s *SettlementService) SettleSale(ctx context.Context, input *SettleSaleInput) (*SettlementResult, error) {
	policy, err := ResolveDiscount(input.DiscountCode)
	if err != nil {
		return nil, err
	}

	cart := make([]CartLine, len(input.Lines))
	for i, line := range input.Lines {
		cart[i] = CartLine{UnitPrice: line.UnitPrice, Quantity: line.Quantity}
	}

	breakdown, err := ComputeBreakdown(cart, policy, s.taxRate)
	if err != nil {
		return nil, err
	}

	if !input.PaymentMethod.Valid() {
		return nil, apperror.NewBadRequestError("Unknown payment method " + string(input.PaymentMethod))
	}

	change := decimal.Zero
	if input.PaymentMethod == enum.PaymentMethodCash {
		if input.TenderedAmount.LessThan(breakdown.Total) {
			return nil, apperror.NewBadRequestError("Tendered amount is less than the total due")
		}
		change = input.TenderedAmount.Sub(breakdown.Total)
	}

	// Batch fetch all products in one query to snapshot names and prices.
	productIDs := make([]uuid.UUID, len(input.Lines))
	for i, line := range input.Lines {
		productIDs[i] = line.ProductID
	}
	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}
	for _, line := range input.Lines {
		if _, exists := productMap[line.ProductID]; !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", line.ProductID))
		}
	}

	transaction := &entity.SalesTransaction{
		ReceiptNo:       utils.GenerateReceiptNo(),
		Subtotal:        breakdown.Subtotal,
		DiscountType:    policy.Type,
		DiscountAmount:  breakdown.DiscountAmount,
		VatExemptAmount: breakdown.VatExemptAmount,
		VatableAmount:   breakdown.VatableAmount,
		VatAmount:       breakdown.VatAmount,
		Total:           breakdown.Total,
		PaymentMethod:   input.PaymentMethod,
		TenderedAmount:  input.TenderedAmount,
		ChangeAmount:    change,
		Cashier:         input.Cashier,
		TerminalID:      input.TerminalID,
		CreatedAt:       time.Now(),
	}
	for _, line := range input.Lines {
		product := productMap[line.ProductID]
		transaction.Lines = append(transaction.Lines, entity.SalesTransactionLine{
			ProductID:   line.ProductID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			LineTotal:   line.UnitPrice.Mul(line.Quantity).Round(2),
		})
	}

	// The sale becomes durable here; from this point nothing may delete or
	// overwrite it, only compensate.
	if err := s.saleRepo.Create(ctx, transaction); err != nil {
		return nil, err
	}

	result := &SettlementResult{
		Transaction: transaction,
		Breakdown:   breakdown,
	}

	applied, failed := s.deductRecipes(ctx, transaction, input.Lines)
	result.Movements = applied.movements
	result.FailedDeductions = failed

	s.aggregate(ctx, transaction)

	if len(failed) > 0 {
		return result, &apperror.PartialDeductionError{
			TransactionID: transaction.ID.String(),
			Applied:       applied.lines,
			Failed:        failed,
		}
	}

	return result, nil
}

type appliedDeductions struct {
	movements []entity.StockMovement
	lines     []apperror.DeductionLine
}

// deductRecipes resolves each sold product's recipe and applies the stock
// deductions. Per-line failures are collected and the remaining lines still
// run; already-applied movements are intentionally left in place.
func (s *SettlementService) deductRecipes(ctx context.Context, transaction *entity.SalesTransaction, lines []SettleLineInput) (appliedDeductions, []apperror.DeductionLine) {
	var applied appliedDeductions
	var failed []apperror.DeductionLine

	for _, line := range lines {
		recipe, err := s.productRepo.RecipeLinesFor(ctx, line.ProductID)
		if err != nil {
			failed = append(failed, apperror.DeductionLine{
				InventoryItemID: line.ProductID.String(),
				Reason:          "recipe lookup failed: " + err.Error(),
			})
			continue
		}

		// No recipe means nothing to deduct; the sale line stands on its own.
		for _, recipeLine := range recipe {
			delta := recipeLine.QtyPerUnit.Mul(line.Quantity).Neg()
			movement, err := s.ledger.ApplyMovement(ctx, &repository.MovementInput{
				InventoryItemID: recipeLine.InventoryItemID,
				Delta:           delta,
				Kind:            enum.MovementKindSale,
				SaleID:          &transaction.ID,
				Reference:       transaction.ReceiptNo,
				Actor:           transaction.Cashier,
			})
			if err != nil {
				failed = append(failed, apperror.DeductionLine{
					InventoryItemID: recipeLine.InventoryItemID.String(),
					Quantity:        delta.String(),
					Reason:          err.Error(),
				})
				continue
			}
			applied.movements = append(applied.movements, *movement)
			applied.lines = append(applied.lines, apperror.DeductionLine{
				InventoryItemID: recipeLine.InventoryItemID.String(),
				Quantity:        delta.String(),
			})
		}
	}

	if len(failed) > 0 {
		s.log.WithFields(logrus.Fields{
			"transaction_id": transaction.ID,
			"receipt_no":     transaction.ReceiptNo,
			"failed_lines":   len(failed),
		}).Warn("sale settled with partial inventory deduction, manual reconciliation needed")
	}

	return applied, failed
}

// aggregate hands the settled transaction to the daily report. Failures are
// logged and retried once; they must never roll back the sale.
func (s *SettlementService) aggregate(ctx context.Context, transaction *entity.SalesTransaction) {
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		if err = s.reports.ApplySettled(ctx, transaction); err == nil {
			return
		}
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == 409 {
			// Day already closed: the sale stands but is excluded from the
			// finalized report and must be reconciled into the next day.
			s.log.WithFields(logrus.Fields{
				"transaction_id": transaction.ID,
				"receipt_no":     transaction.ReceiptNo,
				"date":           transaction.ReportDate(),
			}).Warn("sale settled after report finalization, flagged for manual reconciliation")
			return
		}
	}
	s.log.WithFields(logrus.Fields{
		"transaction_id": transaction.ID,
		"receipt_no":     transaction.ReceiptNo,
	}).WithError(err).Error("daily report aggregation failed")
}

// GetSale retrieves a settled transaction with its lines
func (s *SettlementService) GetSale(ctx context.Context, id uuid.UUID) (*entity.SalesTransaction, error) {
	transaction, err := s.saleRepo.GetWithLines(ctx, id)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, apperror.NewNotFoundError("Sales transaction")
	}
	return transaction, nil
}

// ListSales lists settled transactions with filtering
func (s *SettlementService) ListSales(ctx context.Context, params *repository.SaleFilterParams) ([]entity.SalesTransaction, int64, error) {
	return s.saleRepo.List(ctx, params)
}

// VoidSale records a compensating transaction for an already-settled sale and
// re-increments the stock its recipe lines consumed. The original rows are
// never touched; history only ever grows.
func (s *SettlementService) VoidSale(ctx context.Context, saleID uuid.UUID, actor, terminalID string) (*SettlementResult, error) {
	original, err := s.saleRepo.GetWithLines(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if original == nil {
		return nil, apperror.NewNotFoundError("Sales transaction")
	}
	if original.VoidOfID != nil {
		return nil, apperror.NewBadRequestError("Cannot void a compensating transaction")
	}

	existing, err := s.saleRepo.GetVoidOf(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Sale " + original.ReceiptNo + " is already voided")
	}

	compensating := &entity.SalesTransaction{
		ReceiptNo:       utils.GenerateRefundNo(),
		Subtotal:        original.Subtotal.Neg(),
		DiscountType:    original.DiscountType,
		DiscountAmount:  original.DiscountAmount.Neg(),
		VatExemptAmount: original.VatExemptAmount.Neg(),
		VatableAmount:   original.VatableAmount.Neg(),
		VatAmount:       original.VatAmount.Neg(),
		Total:           original.Total.Neg(),
		PaymentMethod:   original.PaymentMethod,
		Cashier:         actor,
		TerminalID:      terminalID,
		VoidOfID:        &original.ID,
		CreatedAt:       time.Now(),
	}
	for _, line := range original.Lines {
		compensating.Lines = append(compensating.Lines, entity.SalesTransactionLine{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity.Neg(),
			UnitPrice:   line.UnitPrice,
			LineTotal:   line.LineTotal.Neg(),
		})
	}

	if err := s.saleRepo.Create(ctx, compensating); err != nil {
		return nil, err
	}

	result := &SettlementResult{Transaction: compensating}

	movements, err := s.ledger.inventoryRepo.ListMovementsBySale(ctx, saleID)
	if err != nil {
		return result, err
	}

	var failed []apperror.DeductionLine
	for _, m := range movements {
		reversal, err := s.ledger.ApplyMovement(ctx, &repository.MovementInput{
			InventoryItemID: m.InventoryItemID,
			Delta:           m.Delta.Neg(),
			Kind:            enum.MovementKindAdjustment,
			SaleID:          &compensating.ID,
			Reference:       compensating.ReceiptNo,
			Actor:           actor,
		})
		if err != nil {
			failed = append(failed, apperror.DeductionLine{
				InventoryItemID: m.InventoryItemID.String(),
				Quantity:        m.Delta.Neg().String(),
				Reason:          err.Error(),
			})
			continue
		}
		result.Movements = append(result.Movements, *reversal)
	}
	result.FailedDeductions = failed

	s.aggregate(ctx, compensating)

	if len(failed) > 0 {
		return result, &apperror.PartialDeductionError{
			TransactionID: compensating.ID.String(),
			Failed:        failed,
		}
	}

	return result, nil
}
