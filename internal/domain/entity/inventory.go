package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/jraflores/tindahan-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventoryItem represents a raw material tracked by the stock ledger.
// Quantity is only ever mutated by applying a StockMovement; it is the
// projection of the movement log, never written directly.
type InventoryItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name         string          `gorm:"size:255;not null;index" json:"name"`
	Unit         string          `gorm:"size:50;not null" json:"unit"` // g, ml, pcs
	Quantity     decimal.Decimal `gorm:"type:numeric(14,3);not null;default:0" json:"quantity"`
	ReorderLevel decimal.Decimal `gorm:"type:numeric(14,3);not null;default:0" json:"reorder_level"`
	CostPerUnit  decimal.Decimal `gorm:"type:numeric(14,4);not null;default:0" json:"cost_per_unit"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new inventory item
func (i *InventoryItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InventoryItem model
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// BelowReorderLevel reports whether the item is at or below its reorder level.
func (i *InventoryItem) BelowReorderLevel() bool {
	return i.Quantity.LessThanOrEqual(i.ReorderLevel)
}

// StockMovement is one signed, auditable change to an inventory item's
// quantity. Movements are append-only: they are created exactly once per
// stock-affecting event and never updated or deleted. For any item,
// QuantityAfter of movement n equals QuantityBefore of movement n+1.
type StockMovement struct {
	ID              uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	InventoryItemID uuid.UUID         `gorm:"type:uuid;not null;index" json:"inventory_item_id"`
	Delta           decimal.Decimal   `gorm:"type:numeric(14,3);not null" json:"delta"`
	QuantityBefore  decimal.Decimal   `gorm:"type:numeric(14,3);not null" json:"quantity_before"`
	QuantityAfter   decimal.Decimal   `gorm:"type:numeric(14,3);not null" json:"quantity_after"`
	Kind            enum.MovementKind `gorm:"size:20;not null;index" json:"kind"`
	SaleID          *uuid.UUID        `gorm:"type:uuid;index" json:"sale_id,omitempty"`
	Reference       string            `gorm:"size:100" json:"reference,omitempty"`
	Actor           string            `gorm:"size:100" json:"actor,omitempty"`
	CreatedAt       time.Time         `gorm:"index" json:"created_at"`

	// Relationships
	Item InventoryItem `gorm:"foreignKey:InventoryItemID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new stock movement
func (m *StockMovement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockMovement model
func (StockMovement) TableName() string {
	return "stock_movements"
}
