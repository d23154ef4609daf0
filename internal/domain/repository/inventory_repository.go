package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jraflores/tindahan-api/internal/domain/entity"
	"github.com/jraflores/tindahan-api/internal/domain/enum"
	"github.com/jraflores/tindahan-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ErrItemNotFound is returned by ApplyMovement when the target inventory
// item does not exist.
var ErrItemNotFound = errors.New("inventory item not found")

// MovementInput describes one stock movement to apply.
type MovementInput struct {
	InventoryItemID uuid.UUID
	Delta           decimal.Decimal
	Kind            enum.MovementKind
	SaleID          *uuid.UUID
	Reference       string
	Actor           string
}

// InventoryRepository defines the interface for the stock ledger.
//
// ApplyMovement is the only write path for item balances: it must persist the
// new balance and the movement row atomically, serialized per item, so the
// before/after chain never loses an update. Negative resulting balances are
// allowed; depleted stock is a business signal, not a storage error.
type InventoryRepository interface {
	CreateItem(ctx context.Context, item *entity.InventoryItem) error
	GetItem(ctx context.Context, id uuid.UUID) (*entity.InventoryItem, error)
	ListItems(ctx context.Context, params *InventoryFilterParams) ([]entity.InventoryItem, int64, error)
	ListLowStock(ctx context.Context) ([]entity.InventoryItem, error)
	ApplyMovement(ctx context.Context, input *MovementInput) (*entity.StockMovement, error)
	ListMovements(ctx context.Context, itemID uuid.UUID, params *pagination.CursorParams) ([]entity.StockMovement, error)
	ListMovementsBySale(ctx context.Context, saleID uuid.UUID) ([]entity.StockMovement, error)
}

// InventoryFilterParams contains filtering parameters for inventory queries
type InventoryFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	LowStock   bool
}
