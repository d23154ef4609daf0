package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SettleLineRequest is one cart line submitted for settlement. The unit
// price is the price at time of sale as shown on the register, snapshotted
// into the transaction line.
type SettleLineRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// SettleSaleRequest is a completed cart ready to settle.
type SettleSaleRequest struct {
	Lines          []SettleLineRequest `json:"lines" binding:"required"`
	DiscountCode   string              `json:"discount_code" binding:"omitempty,discountcode"`
	PaymentMethod  string              `json:"payment_method" binding:"required"`
	TenderedAmount decimal.Decimal     `json:"tendered_amount"`
}

// MovementRequest records a manual stock movement (purchase, adjustment,
// waste, transfer). Sale movements only ever come from settlements.
type MovementRequest struct {
	Delta     decimal.Decimal `json:"delta" binding:"required"`
	Kind      string          `json:"kind" binding:"required,oneof=purchase adjustment waste transfer"`
	Reference string          `json:"reference"`
}
