package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jraflores/tindahan-api/internal/domain/entity"
	domainRepo "github.com/jraflores/tindahan-api/internal/domain/repository"
	"github.com/jraflores/tindahan-api/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *gorm.DB) domainRepo.InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) CreateItem(ctx context.Context, item *entity.InventoryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *inventoryRepository) GetItem(ctx context.Context, id uuid.UUID) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *inventoryRepository) ListItems(ctx context.Context, params *domainRepo.InventoryFilterParams) ([]entity.InventoryItem, int64, error) {
	var items []entity.InventoryItem
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.InventoryItem{})

	if params.Search != "" {
		query = query.Where("name ILIKE ?", "%"+params.Search+"%")
	}

	if params.LowStock {
		query = query.Where("quantity <= reorder_level")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("name ASC").
		Find(&items).Error

	return items, total, err
}

func (r *inventoryRepository) ListLowStock(ctx context.Context) ([]entity.InventoryItem, error) {
	var items []entity.InventoryItem
	err := r.db.WithContext(ctx).
		Where("quantity <= reorder_level").
		Order("name ASC").
		Find(&items).Error
	return items, err
}

// ApplyMovement updates the item balance and appends the movement row in one
// database transaction. The row lock on the item serializes concurrent
// movements per item, which keeps the before/after chain gapless.
func (r *inventoryRepository) ApplyMovement(ctx context.Context, input *domainRepo.MovementInput) (*entity.StockMovement, error) {
	var movement *entity.StockMovement

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item entity.InventoryItem
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&item, "id = ?", input.InventoryItemID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainRepo.ErrItemNotFound
		}
		if err != nil {
			return err
		}

		before := item.Quantity
		after := before.Add(input.Delta)

		if err := tx.Model(&entity.InventoryItem{}).
			Where("id = ?", item.ID).
			Update("quantity", after).Error; err != nil {
			return err
		}

		movement = &entity.StockMovement{
			InventoryItemID: item.ID,
			Delta:           input.Delta,
			QuantityBefore:  before,
			QuantityAfter:   after,
			Kind:            input.Kind,
			SaleID:          input.SaleID,
			Reference:       input.Reference,
			Actor:           input.Actor,
			CreatedAt:       time.Now(),
		}
		return tx.Create(movement).Error
	})
	if err != nil {
		return nil, err
	}

	return movement, nil
}

// ListMovements returns movements newest-first using keyset pagination, so an
// audit reader can restart from its cursor without blocking writers.
func (r *inventoryRepository) ListMovements(ctx context.Context, itemID uuid.UUID, params *pagination.CursorParams) ([]entity.StockMovement, error) {
	var movements []entity.StockMovement

	params.Validate()
	query := r.db.WithContext(ctx).Model(&entity.StockMovement{}).
		Where("inventory_item_id = ?", itemID)

	cursor, err := params.DecodeCursor()
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	// Fetch limit+1 to detect hasMore
	err = query.Limit(params.Limit + 1).
		Order("created_at DESC, id DESC").
		Find(&movements).Error

	return movements, err
}

func (r *inventoryRepository) ListMovementsBySale(ctx context.Context, saleID uuid.UUID) ([]entity.StockMovement, error) {
	var movements []entity.StockMovement
	err := r.db.WithContext(ctx).
		Where("sale_id = ?", saleID).
		Order("created_at ASC, id ASC").
		Find(&movements).Error
	return movements, err
}
