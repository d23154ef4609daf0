package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jraflores/tindahan-api/internal/domain/entity"
	"github.com/jraflores/tindahan-api/internal/domain/repository"
	"github.com/jraflores/tindahan-api/pkg/apperror"
	"github.com/jraflores/tindahan-api/pkg/logger"
	"github.com/jraflores/tindahan-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// LedgerService exposes the inventory ledger: current balances, atomic
// movement application, and the auditable movement history.
type LedgerService struct {
	inventoryRepo repository.InventoryRepository
	log           *logrus.Entry
}

// NewLedgerService creates a new ledger service
func NewLedgerService(inventoryRepo repository.InventoryRepository) *LedgerService {
	return &LedgerService{
		inventoryRepo: inventoryRepo,
		log:           logger.WithComponent("ledger"),
	}
}

// CurrentBalance returns the on-hand quantity for an item.
func (s *LedgerService) CurrentBalance(ctx context.Context, itemID uuid.UUID) (decimal.Decimal, error) {
	item, err := s.inventoryRepo.GetItem(ctx, itemID)
	if err != nil {
		return decimal.Zero, err
	}
	if item == nil {
		return decimal.Zero, apperror.NewUnknownItem(itemID.String())
	}
	return item.Quantity, nil
}

// ApplyMovement applies one signed stock change. The balance update and the
// movement row are persisted atomically; the resulting balance may go
// negative, which is logged as a signal for the operator rather than refused.
func (s *LedgerService) ApplyMovement(ctx context.Context, input *repository.MovementInput) (*entity.StockMovement, error) {
	if !input.Kind.Valid() {
		return nil, apperror.NewBadRequestError("Unknown movement kind " + string(input.Kind))
	}
	if input.Delta.IsZero() {
		return nil, apperror.NewBadRequestError("Movement delta must not be zero")
	}

	movement, err := s.inventoryRepo.ApplyMovement(ctx, input)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, apperror.NewUnknownItem(input.InventoryItemID.String())
		}
		return nil, err
	}

	if movement.QuantityAfter.IsNegative() {
		s.log.WithFields(logrus.Fields{
			"item_id":   input.InventoryItemID,
			"balance":   movement.QuantityAfter,
			"reference": input.Reference,
		}).Warn("inventory balance went negative")
	}

	return movement, nil
}

// History returns the item's movements newest-first. The cursor makes the
// sequence restartable; readers never block writers, so a page may trail the
// latest movements but is always a self-consistent slice of the chain.
func (s *LedgerService) History(ctx context.Context, itemID uuid.UUID, params *pagination.CursorParams) (*pagination.CursorPaginatedResult[entity.StockMovement], error) {
	item, err := s.inventoryRepo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewUnknownItem(itemID.String())
	}

	params.Validate()
	movements, err := s.inventoryRepo.ListMovements(ctx, itemID, params)
	if err != nil {
		return nil, err
	}

	cursorPag, items := pagination.NewCursorPagination(movements, params.Limit,
		func(m entity.StockMovement) string { return m.ID.String() },
		func(m entity.StockMovement) time.Time { return m.CreatedAt },
	)

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// GetItem retrieves an inventory item by ID
func (s *LedgerService) GetItem(ctx context.Context, itemID uuid.UUID) (*entity.InventoryItem, error) {
	item, err := s.inventoryRepo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewUnknownItem(itemID.String())
	}
	return item, nil
}

// ListItems lists inventory items with filtering
func (s *LedgerService) ListItems(ctx context.Context, params *repository.InventoryFilterParams) (*pagination.PaginatedResult[entity.InventoryItem], error) {
	items, total, err := s.inventoryRepo.ListItems(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(items, pag), nil
}

// ListLowStock returns items at or below their reorder level
func (s *LedgerService) ListLowStock(ctx context.Context) ([]entity.InventoryItem, error) {
	return s.inventoryRepo.ListLowStock(ctx)
}
