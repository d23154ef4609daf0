package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a sellable catalog entry. Catalog maintenance happens in the
// external UI layer; this service only reads products to snapshot names and
// resolve recipes.
type Product struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	Code      string          `gorm:"size:100;unique;not null" json:"code"`
	Price     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"price"`
	Category  string          `gorm:"size:100;index" json:"category"`
	Active    bool            `gorm:"default:true" json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// Relationships
	RecipeLines []RecipeLine `gorm:"foreignKey:ProductID" json:"recipe_lines,omitempty"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// RecipeLine maps one product to one inventory item it consumes per unit
// sold (the product's bill of materials). A product with no recipe lines is
// valid: selling it deducts nothing.
type RecipeLine struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_recipe_product" json:"product_id"`
	InventoryItemID uuid.UUID       `gorm:"type:uuid;not null;index" json:"inventory_item_id"`
	QtyPerUnit      decimal.Decimal `gorm:"type:numeric(14,3);not null" json:"qty_per_unit"`
	Position        int             `gorm:"not null;default:0" json:"position"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	// Relationships
	Product Product       `gorm:"foreignKey:ProductID" json:"-"`
	Item    InventoryItem `gorm:"foreignKey:InventoryItemID" json:"item,omitempty"`
}

// BeforeCreate generates a UUID before creating a new recipe line
func (r *RecipeLine) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the RecipeLine model
func (RecipeLine) TableName() string {
	return "recipe_lines"
}
